package tracker

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"hydro-bot/internal/lookup"
	"hydro-bot/internal/models"
	"hydro-bot/internal/store"
)

// FoodPrompt - найденный продукт, для которого нужно указать граммы
type FoodPrompt struct {
	Name            string
	CaloriesPer100g float64
}

// FoodLogged - итог записи еды
type FoodLogged struct {
	Name     string
	Grams    float64
	Calories float64
}

// LogFoodStart ищет продукт и запоминает его до ответа с количеством грамм.
func (t *Tracker) LogFoodStart(ctx context.Context, userID int64, query string) (*FoodPrompt, error) {
	if _, err := t.configured(ctx, userID); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, &ValidationError{Field: "query", Input: query}
	}

	log := t.logger.WithField("user_id", userID)

	item, err := t.food.SearchFood(ctx, query)
	switch {
	case errors.Is(err, lookup.ErrNotFound):
		return nil, &NotFoundError{Query: query}
	case err != nil:
		log.Warnf("Failed to search food %q: %v", query, err)
		return nil, &TransientError{Op: "food lookup", Err: err}
	case !item.HasCalories:
		return nil, &NotFoundError{Query: query, Incomplete: true}
	}

	pending := &models.PendingFood{
		Name:            item.Name,
		CaloriesPer100g: item.CaloriesPer100g,
		CreatedAt:       t.clock.Now(),
	}
	err = t.updateConfigured(ctx, userID, func(rec *models.UserRecord) error {
		rec.PendingFood = pending
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Pending food %q, %.1f kcal/100g", item.Name, item.CaloriesPer100g)
	return &FoodPrompt{Name: item.Name, CaloriesPer100g: item.CaloriesPer100g}, nil
}

// FoodGramsText завершает запись еды. При ошибке разбора продукт остаётся
// в ожидании и ввод можно повторить.
func (t *Tracker) FoodGramsText(ctx context.Context, userID int64, text string) (*FoodLogged, error) {
	text = strings.TrimSpace(text)
	res := &FoodLogged{}
	err := t.store.Update(ctx, userID, func(rec *models.UserRecord) error {
		if rec.PendingFood == nil {
			return ErrNoPendingFood
		}
		grams, err := strconv.ParseFloat(text, 64)
		if err != nil || math.IsNaN(grams) || math.IsInf(grams, 0) || grams < 0 {
			return &ValidationError{Field: "grams", Input: text}
		}

		pending := rec.PendingFood
		consumed := pending.CaloriesPer100g / 100 * grams
		rec.AppendFood(t.clock.Now(), consumed)
		rec.PendingFood = nil

		*res = FoodLogged{Name: pending.Name, Grams: grams, Calories: consumed}
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrNoPendingFood
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}
