package tracker

import (
	"context"
	"sort"
	"time"
)

// Progress - текущие суммы и нормы.
// CalorieBalance = потреблено - сожжено, без учёта нормы калорий.
type Progress struct {
	WaterGoal      float64
	LoggedWater    int
	CalorieGoal    float64
	LoggedCalories float64
	BurnedCalories float64
	RemainingWater float64
	CalorieBalance float64
}

func (t *Tracker) CheckProgress(ctx context.Context, userID int64) (*Progress, error) {
	rec, err := t.configured(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Progress{
		WaterGoal:      rec.Goals.WaterML,
		LoggedWater:    rec.LoggedWater,
		CalorieGoal:    rec.Goals.CalorieKcal,
		LoggedCalories: rec.LoggedCalories,
		BurnedCalories: rec.BurnedCalories,
		RemainingWater: rec.Goals.WaterML - float64(rec.LoggedWater),
		CalorieBalance: rec.LoggedCalories - rec.BurnedCalories,
	}, nil
}

// Point - накопленное значение на момент записи
type Point struct {
	Time  time.Time
	Value float64
}

// Series - накопительные ряды воды и калорий за окно.
// Date пустая, если окно - вся история. Start - начало окна: полночь даты
// или самая ранняя запись.
type Series struct {
	Date  string
	Start time.Time
	Water []Point
	Food  []Point
}

// Empty - в окне нет ни одной записи
func (s *Series) Empty() bool {
	return len(s.Water) == 0 && len(s.Food) == 0
}

type sample struct {
	at    time.Time
	value float64
}

// cumulate сортирует записи по времени и считает накопительную сумму с нуля.
func cumulate(samples []sample) []Point {
	sort.SliceStable(samples, func(i, j int) bool {
		return samples[i].at.Before(samples[j].at)
	})
	points := make([]Point, 0, len(samples))
	var total float64
	for _, s := range samples {
		total += s.value
		points = append(points, Point{Time: s.at, Value: total})
	}
	return points
}

// TimeSeries выбирает записи за дату dateStr (YYYY-MM-DD) или за всю историю,
// если дата пустая. Отсутствие данных - не ошибка, см. Series.Empty.
func (t *Tracker) TimeSeries(ctx context.Context, userID int64, dateStr string) (*Series, error) {
	rec, err := t.configured(ctx, userID)
	if err != nil {
		return nil, err
	}

	var (
		day       time.Time
		filterDay bool
	)
	if dateStr != "" {
		day, err = t.clock.ParseDate(dateStr)
		if err != nil {
			return nil, &ValidationError{Field: "date", Input: dateStr}
		}
		filterDay = true
	}
	inWindow := func(at time.Time) bool {
		return !filterDay || t.clock.SameDate(at, day)
	}

	water := make([]sample, 0, len(rec.WaterLogs))
	for _, e := range rec.WaterLogs {
		if inWindow(e.Timestamp) {
			water = append(water, sample{at: e.Timestamp, value: float64(e.AmountML)})
		}
	}
	food := make([]sample, 0, len(rec.FoodLogs))
	for _, e := range rec.FoodLogs {
		if inWindow(e.Timestamp) {
			food = append(food, sample{at: e.Timestamp, value: e.Calories})
		}
	}

	series := &Series{
		Date:  dateStr,
		Start: day,
		Water: cumulate(water),
		Food:  cumulate(food),
	}
	if !filterDay {
		series.Start = earliest(series.Water, series.Food)
	}
	return series, nil
}

func earliest(lines ...[]Point) time.Time {
	var first time.Time
	for _, points := range lines {
		if len(points) > 0 && (first.IsZero() || points[0].Time.Before(first)) {
			first = points[0].Time
		}
	}
	return first
}
