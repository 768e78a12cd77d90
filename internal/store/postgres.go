package store

import (
	"context"
	"fmt"
	"time"

	"hydro-bot/internal/database"
	"hydro-bot/internal/models"
)

// PostgresStore хранит записи в Postgres. Операции одного пользователя
// сериализуются мьютексом внутри процесса и блокировкой строки в транзакции.
type PostgresStore struct {
	db   *database.Database
	keys *keyedMutex
	now  func() time.Time
}

func NewPostgresStore(db *database.Database) *PostgresStore {
	return &PostgresStore{
		db:   db,
		keys: newKeyedMutex(),
		now:  time.Now,
	}
}

func (s *PostgresStore) Get(ctx context.Context, userID int64) (*models.UserRecord, error) {
	unlock := s.keys.Lock(userID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rec, err := s.db.LoadUser(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrNotFound
	}
	return rec, tx.Commit()
}

func (s *PostgresStore) Update(ctx context.Context, userID int64, fn MutateFunc) error {
	return s.mutate(ctx, userID, false, fn)
}

func (s *PostgresStore) Upsert(ctx context.Context, userID int64, fn MutateFunc) error {
	return s.mutate(ctx, userID, true, fn)
}

func (s *PostgresStore) mutate(ctx context.Context, userID int64, create bool, fn MutateFunc) error {
	unlock := s.keys.Lock(userID)
	defer unlock()

	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Откатываем в случае ошибки

	rec, err := s.db.LoadUser(ctx, tx, userID)
	if err != nil {
		return err
	}
	if rec == nil {
		if !create {
			return ErrNotFound
		}
		rec = models.NewUserRecord(userID)
	}

	if err := fn(rec); err != nil {
		return err
	}
	rec.UpdatedAt = s.now()

	if err := s.db.SaveUser(ctx, tx, rec); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit user %d: %w", userID, err)
	}
	return nil
}

func (s *PostgresStore) Count(ctx context.Context) (int, error) {
	return s.db.CountUsers(ctx)
}
