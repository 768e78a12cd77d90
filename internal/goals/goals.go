// Package goals рассчитывает дневные нормы воды и калорий по профилю.
package goals

import (
	"errors"
	"fmt"

	"hydro-bot/internal/models"

	"github.com/go-playground/validator/v10"
)

const (
	WaterBaseMultiplier  = 30  // мл на кг веса
	ActivityWaterBonus   = 500 // мл за каждые 30 минут активности
	HotWeatherWaterBonus = 500 // мл при температуре > 25°C
	HotWeatherThresholdC = 25.0
	CalorieActivityBonus = 200 // ккал за каждые 30 минут активности
	activityBlockMinutes = 30
)

var validate = validator.New()

// InvalidProfileError перечисляет поля профиля, не прошедшие проверку.
type InvalidProfileError struct {
	Fields []string
}

func (e *InvalidProfileError) Error() string {
	return fmt.Sprintf("invalid profile fields: %v", e.Fields)
}

// Validate проверяет, что вес, рост и возраст положительные, активность неотрицательна.
func Validate(p models.UserProfile) error {
	err := validate.Struct(p)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate profile: %w", err)
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	return &InvalidProfileError{Fields: fields}
}

func activityBlocks(activityMinutes int) int {
	return activityMinutes / activityBlockMinutes
}

// WaterGoal = вес*30 + (активность/30)*500 + 500 при жаре.
func WaterGoal(weight float64, activityMinutes int, temperatureC float64) float64 {
	goal := weight * WaterBaseMultiplier
	goal += float64(activityBlocks(activityMinutes) * ActivityWaterBonus)
	if temperatureC > HotWeatherThresholdC {
		goal += HotWeatherWaterBonus
	}
	return goal
}

// CalorieGoal = 10*вес + 6.25*рост - 5*возраст + (активность/30)*200.
func CalorieGoal(weight, height float64, age, activityMinutes int) float64 {
	goal := 10*weight + 6.25*height - 5*float64(age)
	goal += float64(activityBlocks(activityMinutes) * CalorieActivityBonus)
	return goal
}

// Compute проверяет профиль и возвращает обе нормы.
func Compute(p models.UserProfile, temperatureC float64) (*models.Goals, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	return &models.Goals{
		WaterML:      WaterGoal(p.Weight, p.ActivityMinutes, temperatureC),
		CalorieKcal:  CalorieGoal(p.Weight, p.Height, p.Age, p.ActivityMinutes),
		TemperatureC: temperatureC,
	}, nil
}
