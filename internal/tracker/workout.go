package tracker

import (
	"context"
	"strconv"
	"strings"

	"hydro-bot/internal/models"
	"hydro-bot/internal/workouts"
)

const workoutWaterBlockMinutes = 30

// WorkoutLogged - итог записи тренировки. ExtraWater уже добавлена к норме воды.
type WorkoutLogged struct {
	Workout    workouts.Workout
	Minutes    int
	Burned     float64
	ExtraWater int
}

// LogWorkout учитывает сожжённые калории и повышает норму воды за каждые
// полные 30 минут. История тренировок не хранится, только сумма.
func (t *Tracker) LogWorkout(ctx context.Context, userID int64, workoutType, minutesStr string) (*WorkoutLogged, error) {
	workoutType = strings.TrimSpace(workoutType)
	minutesStr = strings.TrimSpace(minutesStr)

	res := &WorkoutLogged{}
	err := t.updateConfigured(ctx, userID, func(rec *models.UserRecord) error {
		if workoutType == "" || minutesStr == "" {
			return &ValidationError{Field: "workout", Options: t.workouts.Names()}
		}
		minutes, err := strconv.Atoi(minutesStr)
		if err != nil || minutes < 0 {
			return &ValidationError{Field: "minutes", Input: minutesStr}
		}
		w, ok := t.workouts.Lookup(workoutType)
		if !ok {
			return &UnknownOptionError{Value: strings.ToLower(workoutType), Options: t.workouts.Names()}
		}

		burned := w.CaloriesPerMinute * float64(minutes)
		extra := (minutes / workoutWaterBlockMinutes) * w.WaterBonusPer30Min

		rec.BurnedCalories += burned
		if extra > 0 {
			rec.Goals.WaterML += float64(extra)
		}

		*res = WorkoutLogged{Workout: w, Minutes: minutes, Burned: burned, ExtraWater: extra}
		return nil
	})
	if err != nil {
		return nil, err
	}

	t.logger.WithField("user_id", userID).Debugf("Workout %s %d min: %.1f kcal, +%d ml", res.Workout.Name, res.Minutes, res.Burned, res.ExtraWater)
	return res, nil
}
