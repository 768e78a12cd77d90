package models

import (
	"slices"
	"time"

	"github.com/google/uuid"
)

// DialogStep - текущий шаг диалога настройки профиля
type DialogStep string

const (
	StepNone     DialogStep = ""
	StepWeight   DialogStep = "weight"
	StepHeight   DialogStep = "height"
	StepAge      DialogStep = "age"
	StepActivity DialogStep = "activity"
	StepCity     DialogStep = "city"
	StepDone     DialogStep = "done"
)

// Active сообщает, ожидает ли диалог ввода пользователя.
func (s DialogStep) Active() bool {
	switch s {
	case StepWeight, StepHeight, StepAge, StepActivity, StepCity:
		return true
	}
	return false
}

// UserProfile - физиологический профиль пользователя
type UserProfile struct {
	Weight          float64 `json:"weight" db:"weight" validate:"gt=0"`
	Height          float64 `json:"height" db:"height" validate:"gt=0"`
	Age             int     `json:"age" db:"age" validate:"gt=0"`
	ActivityMinutes int     `json:"activity_minutes" db:"activity_minutes" validate:"gte=0"`
	City            string  `json:"city" db:"city" validate:"required"`
}

// Goals - дневные нормы воды и калорий
type Goals struct {
	WaterML      float64 `json:"water_goal_ml" db:"water_goal"`
	CalorieKcal  float64 `json:"calorie_goal_kcal" db:"calorie_goal"`
	TemperatureC float64 `json:"temperature_c" db:"temperature"`
}

// WaterLogEntry - запись о выпитой воде
type WaterLogEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"logged_at"`
	AmountML  int       `json:"amount_ml" db:"amount"`
}

// FoodLogEntry - запись о съеденной еде
type FoodLogEntry struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Timestamp time.Time `json:"timestamp" db:"logged_at"`
	Calories  float64   `json:"calories" db:"calories"`
}

// PendingFood - найденный продукт, для которого ещё не указан вес
type PendingFood struct {
	Name            string    `json:"name"`
	CaloriesPer100g float64   `json:"calories_per_100g"`
	CreatedAt       time.Time `json:"created_at"`
}

// UserRecord - всё состояние одного пользователя
type UserRecord struct {
	UserID         int64           `json:"user_id" db:"user_id"`
	Profile        UserProfile     `json:"profile"`
	Goals          *Goals          `json:"goals,omitempty"`
	LoggedWater    int             `json:"logged_water" db:"logged_water"`
	LoggedCalories float64         `json:"logged_calories" db:"logged_calories"`
	BurnedCalories float64         `json:"burned_calories" db:"burned_calories"`
	WaterLogs      []WaterLogEntry `json:"water_logs"`
	FoodLogs       []FoodLogEntry  `json:"food_logs"`
	DialogStep     DialogStep      `json:"dialog_step" db:"dialog_step"`
	PendingFood    *PendingFood    `json:"pending_food,omitempty"`
	UpdatedAt      time.Time       `json:"updated_at" db:"updated_at"`
}

func NewUserRecord(userID int64) *UserRecord {
	return &UserRecord{UserID: userID}
}

// Configured - профиль заполнен и нормы рассчитаны
func (r *UserRecord) Configured() bool {
	return r.Goals != nil
}

// Clone делает глубокую копию записи, чтобы изменения можно было отбросить.
func (r *UserRecord) Clone() *UserRecord {
	c := *r
	if r.Goals != nil {
		g := *r.Goals
		c.Goals = &g
	}
	if r.PendingFood != nil {
		p := *r.PendingFood
		c.PendingFood = &p
	}
	// пустой, но не nil журнал остаётся пустым
	c.WaterLogs = slices.Clone(r.WaterLogs)
	c.FoodLogs = slices.Clone(r.FoodLogs)
	return &c
}

func (r *UserRecord) AppendWater(at time.Time, amount int) WaterLogEntry {
	entry := WaterLogEntry{ID: uuid.New(), Timestamp: at, AmountML: amount}
	r.WaterLogs = append(r.WaterLogs, entry)
	r.LoggedWater += amount
	return entry
}

func (r *UserRecord) AppendFood(at time.Time, calories float64) FoodLogEntry {
	entry := FoodLogEntry{ID: uuid.New(), Timestamp: at, Calories: calories}
	r.FoodLogs = append(r.FoodLogs, entry)
	r.LoggedCalories += calories
	return entry
}

// ResetTracking обнуляет счётчики и историю после пересчёта норм.
func (r *UserRecord) ResetTracking() {
	r.LoggedWater = 0
	r.LoggedCalories = 0
	r.BurnedCalories = 0
	r.WaterLogs = []WaterLogEntry{}
	r.FoodLogs = []FoodLogEntry{}
}
