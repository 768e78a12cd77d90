package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"hydro-bot/internal/logger"
	"hydro-bot/internal/models"

	"github.com/lib/pq"
)

type Database struct {
	db     *sql.DB
	logger logger.Logger
}

func New(databaseURL string, log logger.Logger) (*Database, error) {
	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	// Настраиваем пул соединений
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	return FromDB(db, log), nil
}

// FromDB оборачивает уже открытое соединение.
func FromDB(db *sql.DB, log logger.Logger) *Database {
	return &Database{
		db:     db,
		logger: log,
	}
}

func (d *Database) Close() error {
	return d.db.Close()
}

func (d *Database) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return d.db.BeginTx(ctx, nil)
}

// CreateTables создает таблицы в базе данных, если они не существуют
func (d *Database) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS users (
			user_id BIGINT PRIMARY KEY,
			weight DOUBLE PRECISION DEFAULT 0,
			height DOUBLE PRECISION DEFAULT 0,
			age INTEGER DEFAULT 0,
			activity_minutes INTEGER DEFAULT 0,
			city TEXT DEFAULT '',
			has_goals BOOLEAN DEFAULT FALSE,
			water_goal DOUBLE PRECISION DEFAULT 0,
			calorie_goal DOUBLE PRECISION DEFAULT 0,
			logged_water INTEGER DEFAULT 0,
			logged_calories DOUBLE PRECISION DEFAULT 0,
			burned_calories DOUBLE PRECISION DEFAULT 0,
			dialog_step TEXT DEFAULT '',
			pending_food_name TEXT,
			pending_food_kcal DOUBLE PRECISION,
			pending_food_at TIMESTAMP WITH TIME ZONE,
			created_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP WITH TIME ZONE DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS water_logs (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id),
			logged_at TIMESTAMP WITH TIME ZONE NOT NULL,
			amount INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS food_logs (
			id UUID PRIMARY KEY,
			user_id BIGINT NOT NULL REFERENCES users(user_id),
			logged_at TIMESTAMP WITH TIME ZONE NOT NULL,
			calories DOUBLE PRECISION NOT NULL
		)`,
	}

	for _, query := range queries {
		if _, err := d.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	// Запускаем миграции для обновления схемы
	if err := d.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}

// LoadUser читает запись пользователя вместе с логами и блокирует строку до конца транзакции.
// Если пользователя нет, возвращает nil без ошибки.
func (d *Database) LoadUser(ctx context.Context, tx *sql.Tx, userID int64) (*models.UserRecord, error) {
	query := `
		SELECT user_id, weight, height, age, activity_minutes, city, has_goals, water_goal, calorie_goal, temperature,
		       logged_water, logged_calories, burned_calories, dialog_step,
		       pending_food_name, pending_food_kcal, pending_food_at, updated_at
		FROM users
		WHERE user_id = $1
		FOR UPDATE
	`

	var (
		rec         models.UserRecord
		hasGoals    bool
		goals       models.Goals
		step        string
		pendingName sql.NullString
		pendingKcal sql.NullFloat64
		pendingAt   sql.NullTime
	)
	err := tx.QueryRowContext(ctx, query, userID).Scan(
		&rec.UserID, &rec.Profile.Weight, &rec.Profile.Height, &rec.Profile.Age, &rec.Profile.ActivityMinutes, &rec.Profile.City,
		&hasGoals, &goals.WaterML, &goals.CalorieKcal, &goals.TemperatureC,
		&rec.LoggedWater, &rec.LoggedCalories, &rec.BurnedCalories, &step,
		&pendingName, &pendingKcal, &pendingAt, &rec.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user %d: %w", userID, err)
	}

	rec.DialogStep = models.DialogStep(step)
	if hasGoals {
		rec.Goals = &goals
	}
	if pendingName.Valid && pendingKcal.Valid {
		rec.PendingFood = &models.PendingFood{
			Name:            pendingName.String,
			CaloriesPer100g: pendingKcal.Float64,
			CreatedAt:       pendingAt.Time,
		}
	}

	if rec.WaterLogs, err = d.loadWaterLogs(ctx, tx, userID); err != nil {
		return nil, err
	}
	if rec.FoodLogs, err = d.loadFoodLogs(ctx, tx, userID); err != nil {
		return nil, err
	}

	return &rec, nil
}

func (d *Database) loadWaterLogs(ctx context.Context, tx *sql.Tx, userID int64) ([]models.WaterLogEntry, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, logged_at, amount FROM water_logs WHERE user_id = $1 ORDER BY logged_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query water logs: %w", err)
	}
	defer rows.Close()

	logs := []models.WaterLogEntry{}
	for rows.Next() {
		var e models.WaterLogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.AmountML); err != nil {
			return nil, fmt.Errorf("failed to scan water log: %w", err)
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}

func (d *Database) loadFoodLogs(ctx context.Context, tx *sql.Tx, userID int64) ([]models.FoodLogEntry, error) {
	rows, err := tx.QueryContext(ctx, `SELECT id, logged_at, calories FROM food_logs WHERE user_id = $1 ORDER BY logged_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query food logs: %w", err)
	}
	defer rows.Close()

	logs := []models.FoodLogEntry{}
	for rows.Next() {
		var e models.FoodLogEntry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Calories); err != nil {
			return nil, fmt.Errorf("failed to scan food log: %w", err)
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}

// SaveUser сохраняет запись пользователя: обновляет строку users, удаляет
// исчезнувшие записи логов и добавляет новые.
func (d *Database) SaveUser(ctx context.Context, tx *sql.Tx, rec *models.UserRecord) error {
	query := `
		INSERT INTO users (user_id, weight, height, age, activity_minutes, city, has_goals, water_goal, calorie_goal, temperature,
			logged_water, logged_calories, burned_calories, dialog_step, pending_food_name, pending_food_kcal, pending_food_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		ON CONFLICT (user_id)
		DO UPDATE SET
			weight = EXCLUDED.weight,
			height = EXCLUDED.height,
			age = EXCLUDED.age,
			activity_minutes = EXCLUDED.activity_minutes,
			city = EXCLUDED.city,
			has_goals = EXCLUDED.has_goals,
			water_goal = EXCLUDED.water_goal,
			calorie_goal = EXCLUDED.calorie_goal,
			temperature = EXCLUDED.temperature,
			logged_water = EXCLUDED.logged_water,
			logged_calories = EXCLUDED.logged_calories,
			burned_calories = EXCLUDED.burned_calories,
			dialog_step = EXCLUDED.dialog_step,
			pending_food_name = EXCLUDED.pending_food_name,
			pending_food_kcal = EXCLUDED.pending_food_kcal,
			pending_food_at = EXCLUDED.pending_food_at,
			updated_at = EXCLUDED.updated_at
	`

	var goals models.Goals
	if rec.Goals != nil {
		goals = *rec.Goals
	}
	var (
		pendingName sql.NullString
		pendingKcal sql.NullFloat64
		pendingAt   sql.NullTime
	)
	if rec.PendingFood != nil {
		pendingName = sql.NullString{String: rec.PendingFood.Name, Valid: true}
		pendingKcal = sql.NullFloat64{Float64: rec.PendingFood.CaloriesPer100g, Valid: true}
		pendingAt = sql.NullTime{Time: rec.PendingFood.CreatedAt, Valid: true}
	}

	_, err := tx.ExecContext(ctx, query,
		rec.UserID, rec.Profile.Weight, rec.Profile.Height, rec.Profile.Age, rec.Profile.ActivityMinutes, rec.Profile.City,
		rec.Goals != nil, goals.WaterML, goals.CalorieKcal, goals.TemperatureC,
		rec.LoggedWater, rec.LoggedCalories, rec.BurnedCalories, string(rec.DialogStep),
		pendingName, pendingKcal, pendingAt, rec.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save user %d: %w", rec.UserID, err)
	}

	waterIDs := make([]string, len(rec.WaterLogs))
	for i, e := range rec.WaterLogs {
		waterIDs[i] = e.ID.String()
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM water_logs WHERE user_id = $1 AND NOT (id = ANY($2::uuid[]))`, rec.UserID, pq.Array(waterIDs)); err != nil {
		return fmt.Errorf("failed to prune water logs: %w", err)
	}
	for _, e := range rec.WaterLogs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO water_logs (id, user_id, logged_at, amount) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			e.ID, rec.UserID, e.Timestamp, e.AmountML); err != nil {
			return fmt.Errorf("failed to insert water log: %w", err)
		}
	}

	foodIDs := make([]string, len(rec.FoodLogs))
	for i, e := range rec.FoodLogs {
		foodIDs[i] = e.ID.String()
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM food_logs WHERE user_id = $1 AND NOT (id = ANY($2::uuid[]))`, rec.UserID, pq.Array(foodIDs)); err != nil {
		return fmt.Errorf("failed to prune food logs: %w", err)
	}
	for _, e := range rec.FoodLogs {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO food_logs (id, user_id, logged_at, calories) VALUES ($1, $2, $3, $4) ON CONFLICT (id) DO NOTHING`,
			e.ID, rec.UserID, e.Timestamp, e.Calories); err != nil {
			return fmt.Errorf("failed to insert food log: %w", err)
		}
	}

	return nil
}

// CountUsers возвращает количество пользователей с рассчитанными нормами
func (d *Database) CountUsers(ctx context.Context) (int, error) {
	var n int
	err := d.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE has_goals = TRUE`).Scan(&n)
	return n, err
}
