// Package tracker - ядро бота: диалог профиля, журналы воды и еды,
// тренировки, прогресс и рекомендации. Все изменения записи пользователя
// выполняются через store и применяются целиком или не применяются вовсе.
package tracker

import (
	"context"
	"errors"
	"time"

	"hydro-bot/internal/logger"
	"hydro-bot/internal/lookup"
	"hydro-bot/internal/models"
	"hydro-bot/internal/store"
	"hydro-bot/internal/utils"
	"hydro-bot/internal/workouts"
)

// WeatherProvider возвращает текущую температуру в городе (°C).
type WeatherProvider interface {
	Temperature(ctx context.Context, city string) (float64, error)
}

// FoodProvider ищет продукт и его калорийность.
type FoodProvider interface {
	SearchFood(ctx context.Context, query string) (*lookup.FoodItem, error)
}

type Tracker struct {
	store      store.Store
	weather    WeatherProvider
	food       FoodProvider
	workouts   *workouts.Table
	clock      *utils.Clock
	pendingTTL time.Duration
	logger     logger.Logger
}

// New создаёт трекер. pendingTTL <= 0 отключает истечение ожидающего продукта.
func New(st store.Store, weather WeatherProvider, food FoodProvider, table *workouts.Table, clock *utils.Clock, pendingTTL time.Duration, log logger.Logger) *Tracker {
	if table == nil {
		table = workouts.Default()
	}
	if clock == nil {
		clock = utils.NewClock(nil)
	}
	return &Tracker{
		store:      st,
		weather:    weather,
		food:       food,
		workouts:   table,
		clock:      clock,
		pendingTTL: pendingTTL,
		logger:     log,
	}
}

func (t *Tracker) Workouts() *workouts.Table {
	return t.workouts
}

func (t *Tracker) Clock() *utils.Clock {
	return t.clock
}

// TextKind - какой обработчик принял свободный текст
type TextKind int

const (
	TextIgnored TextKind = iota
	TextFood
	TextProfile
)

type TextResult struct {
	Kind    TextKind
	Food    *FoodLogged
	Profile *ProfileProgress
}

// HandleText направляет текст ровно одному обработчику: сначала ожидающий
// продукт, затем шаг диалога профиля. Остальной текст игнорируется.
func (t *Tracker) HandleText(ctx context.Context, userID int64, text string) (*TextResult, error) {
	rec, err := t.store.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return &TextResult{Kind: TextIgnored}, nil
	}
	if err != nil {
		return nil, err
	}

	if rec.PendingFood != nil {
		if !t.pendingExpired(rec.PendingFood) {
			food, err := t.FoodGramsText(ctx, userID, text)
			if !errors.Is(err, ErrNoPendingFood) {
				return &TextResult{Kind: TextFood, Food: food}, err
			}
		} else if err := t.dropExpiredPending(ctx, userID); err != nil {
			return nil, err
		}
	}

	if rec.DialogStep.Active() {
		profile, err := t.ProfileText(ctx, userID, text)
		if !errors.Is(err, ErrNoDialog) {
			return &TextResult{Kind: TextProfile, Profile: profile}, err
		}
	}

	return &TextResult{Kind: TextIgnored}, nil
}

func (t *Tracker) pendingExpired(p *models.PendingFood) bool {
	if t.pendingTTL <= 0 {
		return false
	}
	return t.clock.Now().Sub(p.CreatedAt) > t.pendingTTL
}

func (t *Tracker) dropExpiredPending(ctx context.Context, userID int64) error {
	return t.store.Update(ctx, userID, func(rec *models.UserRecord) error {
		if rec.PendingFood != nil && t.pendingExpired(rec.PendingFood) {
			t.logger.WithField("user_id", userID).Infof("Pending food %q expired", rec.PendingFood.Name)
			rec.PendingFood = nil
		}
		return nil
	})
}

// CancelResult сообщает, что именно было отменено
type CancelResult struct {
	FoodCleared   bool
	DialogStopped bool
}

// Cancel сбрасывает ожидающий продукт и останавливает незавершённый диалог
// профиля. Профиль, нормы и журналы не меняются.
func (t *Tracker) Cancel(ctx context.Context, userID int64) (*CancelResult, error) {
	res := &CancelResult{}
	err := t.store.Update(ctx, userID, func(rec *models.UserRecord) error {
		*res = CancelResult{}
		if rec.PendingFood != nil {
			rec.PendingFood = nil
			res.FoodCleared = true
		}
		if rec.DialogStep.Active() {
			if rec.Configured() {
				rec.DialogStep = models.StepDone
			} else {
				rec.DialogStep = models.StepNone
			}
			res.DialogStopped = true
		}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return res, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// configured читает запись и проверяет, что нормы рассчитаны.
func (t *Tracker) configured(ctx context.Context, userID int64) (*models.UserRecord, error) {
	rec, err := t.store.Get(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNotConfigured
	}
	if err != nil {
		return nil, err
	}
	if !rec.Configured() {
		return nil, ErrNotConfigured
	}
	return rec, nil
}

// updateConfigured изменяет запись, только если нормы рассчитаны.
func (t *Tracker) updateConfigured(ctx context.Context, userID int64, fn store.MutateFunc) error {
	err := t.store.Update(ctx, userID, func(rec *models.UserRecord) error {
		if !rec.Configured() {
			return ErrNotConfigured
		}
		return fn(rec)
	})
	if errors.Is(err, store.ErrNotFound) {
		return ErrNotConfigured
	}
	return err
}

// Snapshot возвращает копию записи настроенного пользователя (для выгрузки).
func (t *Tracker) Snapshot(ctx context.Context, userID int64) (*models.UserRecord, error) {
	return t.configured(ctx, userID)
}

// ConfiguredUsers - число пользователей с рассчитанными нормами
func (t *Tracker) ConfiguredUsers(ctx context.Context) (int, error) {
	return t.store.Count(ctx)
}
