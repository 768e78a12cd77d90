package tracker

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"hydro-bot/internal/goals"
	"hydro-bot/internal/models"
	"hydro-bot/internal/store"

	"github.com/looplab/fsm"
)

const eventAdvance = "advance"

// Допустимые переходы диалога профиля. Других переходов нет.
var profileEvents = fsm.Events{
	{Name: eventAdvance, Src: []string{string(models.StepWeight)}, Dst: string(models.StepHeight)},
	{Name: eventAdvance, Src: []string{string(models.StepHeight)}, Dst: string(models.StepAge)},
	{Name: eventAdvance, Src: []string{string(models.StepAge)}, Dst: string(models.StepActivity)},
	{Name: eventAdvance, Src: []string{string(models.StepActivity)}, Dst: string(models.StepCity)},
	{Name: eventAdvance, Src: []string{string(models.StepCity)}, Dst: string(models.StepDone)},
}

// nextStep возвращает шаг, следующий за current.
func nextStep(ctx context.Context, current models.DialogStep) (models.DialogStep, error) {
	machine := fsm.NewFSM(string(current), profileEvents, nil)
	if err := machine.Event(ctx, eventAdvance); err != nil {
		return current, fmt.Errorf("no transition from step %q: %w", current, err)
	}
	return models.DialogStep(machine.Current()), nil
}

// ProfileProgress - состояние диалога после обработки ответа.
// Step - шаг, ввода для которого теперь ждём; Goals заполнены на шаге done.
type ProfileProgress struct {
	Step  models.DialogStep
	Goals *models.Goals
}

// BeginProfile (пере)запускает диалог: шаг weight, физиологические поля
// обнулены. Нормы и журналы остаются до завершения шага city.
func (t *Tracker) BeginProfile(ctx context.Context, userID int64) error {
	err := t.store.Upsert(ctx, userID, func(rec *models.UserRecord) error {
		rec.DialogStep = models.StepWeight
		rec.Profile.Weight = 0
		rec.Profile.Height = 0
		rec.Profile.Age = 0
		rec.Profile.ActivityMinutes = 0
		return nil
	})
	if err != nil {
		return err
	}
	t.logger.WithField("user_id", userID).Info("Profile setup started")
	return nil
}

// ProfileText принимает ответ на текущий шаг диалога.
// При ошибке разбора шаг не меняется.
func (t *Tracker) ProfileText(ctx context.Context, userID int64, text string) (*ProfileProgress, error) {
	res, err := t.advanceProfile(ctx, userID, strings.TrimSpace(text))
	if errors.Is(err, errCityStep) {
		return t.completeProfile(ctx, userID, strings.TrimSpace(text))
	}
	return res, err
}

var errCityStep = errors.New("city step requires lookup")

func (t *Tracker) advanceProfile(ctx context.Context, userID int64, text string) (*ProfileProgress, error) {
	res := &ProfileProgress{}
	err := t.store.Update(ctx, userID, func(rec *models.UserRecord) error {
		if !rec.DialogStep.Active() {
			return ErrNoDialog
		}
		if rec.DialogStep == models.StepCity {
			return errCityStep
		}
		if err := applyProfileValue(rec, text); err != nil {
			return err
		}
		next, err := nextStep(ctx, rec.DialogStep)
		if err != nil {
			return err
		}
		rec.DialogStep = next
		res.Step = next
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoDialog
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// applyProfileValue разбирает ответ для текущего шага и записывает его в профиль.
func applyProfileValue(rec *models.UserRecord, text string) error {
	step := rec.DialogStep
	switch step {
	case models.StepWeight, models.StepHeight:
		v, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
			return &ValidationError{Field: string(step), Input: text}
		}
		if step == models.StepWeight {
			rec.Profile.Weight = v
		} else {
			rec.Profile.Height = v
		}
	case models.StepAge:
		v, err := strconv.Atoi(text)
		if err != nil || v <= 0 {
			return &ValidationError{Field: string(step), Input: text}
		}
		rec.Profile.Age = v
	case models.StepActivity:
		v, err := strconv.Atoi(text)
		if err != nil || v < 0 {
			return &ValidationError{Field: string(step), Input: text}
		}
		rec.Profile.ActivityMinutes = v
	default:
		return ErrNoDialog
	}
	return nil
}

// completeProfile обрабатывает шаг city. Погода запрашивается вне блокировки
// записи; при сохранении шаг проверяется повторно.
func (t *Tracker) completeProfile(ctx context.Context, userID int64, city string) (*ProfileProgress, error) {
	if city == "" {
		return nil, &ValidationError{Field: string(models.StepCity), Input: city}
	}

	log := t.logger.WithField("user_id", userID)

	temperature, err := t.weather.Temperature(ctx, city)
	if err != nil {
		log.Warnf("Failed to get weather for %q: %v", city, err)
		return nil, &TransientError{Op: "weather lookup", Err: err}
	}

	res := &ProfileProgress{}
	err = t.store.Update(ctx, userID, func(rec *models.UserRecord) error {
		if rec.DialogStep != models.StepCity {
			return ErrNoDialog
		}
		profile := rec.Profile
		profile.City = city
		computed, err := goals.Compute(profile, temperature)
		if err != nil {
			return err
		}
		next, err := nextStep(ctx, rec.DialogStep)
		if err != nil {
			return err
		}

		rec.Profile = profile
		rec.Goals = computed
		rec.ResetTracking()
		rec.DialogStep = next

		g := *computed
		res.Step = next
		res.Goals = &g
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoDialog
	}
	if err != nil {
		return nil, err
	}

	log.Infof("Profile completed: water goal %.0f ml, calorie goal %.2f kcal, temperature %.1f°C",
		res.Goals.WaterML, res.Goals.CalorieKcal, temperature)
	return res, nil
}
