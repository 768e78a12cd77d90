package tracker

import (
	"context"
	"errors"
	"testing"

	"hydro-bot/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileScenario(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.tracker.BeginProfile(ctx, 1))

	res, err := env.tracker.ProfileText(ctx, 1, "70")
	require.NoError(t, err)
	assert.Equal(t, models.StepHeight, res.Step)
	res, err = env.tracker.ProfileText(ctx, 1, " 175 ")
	require.NoError(t, err)
	assert.Equal(t, models.StepAge, res.Step)
	res, err = env.tracker.ProfileText(ctx, 1, "30")
	require.NoError(t, err)
	assert.Equal(t, models.StepActivity, res.Step)
	res, err = env.tracker.ProfileText(ctx, 1, "60")
	require.NoError(t, err)
	assert.Equal(t, models.StepCity, res.Step)
	assert.Nil(t, res.Goals)

	res, err = env.tracker.ProfileText(ctx, 1, "Moscow")
	require.NoError(t, err)
	assert.Equal(t, models.StepDone, res.Step)
	require.NotNil(t, res.Goals)
	assert.InDelta(t, 3600, res.Goals.WaterML, 1e-9)
	assert.InDelta(t, 2043.75, res.Goals.CalorieKcal, 1e-9)

	rec := env.record(t, 1)
	assert.Equal(t, models.UserProfile{Weight: 70, Height: 175, Age: 30, ActivityMinutes: 60, City: "Moscow"}, rec.Profile)
	assert.Equal(t, models.StepDone, rec.DialogStep)
	assert.Equal(t, 0, rec.LoggedWater)
	assert.Zero(t, rec.LoggedCalories)
	assert.Zero(t, rec.BurnedCalories)
	assert.NotNil(t, rec.WaterLogs)
	assert.Empty(t, rec.WaterLogs)
	assert.NotNil(t, rec.FoodLogs)
	assert.Empty(t, rec.FoodLogs)
}

func TestProfileInvalidInputKeepsStep(t *testing.T) {
	tests := []struct {
		name    string
		answers []string
		bad     string
		step    models.DialogStep
	}{
		{"weight not a number", nil, "abc", models.StepWeight},
		{"weight zero", nil, "0", models.StepWeight},
		{"weight nan", nil, "NaN", models.StepWeight},
		{"height negative", []string{"70"}, "-175", models.StepHeight},
		{"age fractional", []string{"70", "175"}, "30.5", models.StepAge},
		{"age zero", []string{"70", "175"}, "0", models.StepAge},
		{"activity negative", []string{"70", "175", "30"}, "-10", models.StepActivity},
		{"city empty", []string{"70", "175", "30", "60"}, "   ", models.StepCity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)
			ctx := context.Background()
			require.NoError(t, env.tracker.BeginProfile(ctx, 1))
			for _, a := range tt.answers {
				_, err := env.tracker.ProfileText(ctx, 1, a)
				require.NoError(t, err)
			}
			before := env.record(t, 1)

			_, err := env.tracker.ProfileText(ctx, 1, tt.bad)
			var verr *ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, string(tt.step), verr.Field)

			after := env.record(t, 1)
			assert.Equal(t, tt.step, after.DialogStep)
			assert.Equal(t, before.Profile, after.Profile)
		})
	}
}

func TestProfileZeroActivityAllowed(t *testing.T) {
	env := newTestEnv(t)
	env.weather.temp = 10
	ctx := context.Background()
	require.NoError(t, env.tracker.BeginProfile(ctx, 1))
	for _, a := range []string{"70", "175", "30", "0"} {
		_, err := env.tracker.ProfileText(ctx, 1, a)
		require.NoError(t, err)
	}
	res, err := env.tracker.ProfileText(ctx, 1, "Oslo")
	require.NoError(t, err)
	assert.InDelta(t, 2100, res.Goals.WaterML, 1e-9)
	assert.InDelta(t, 1643.75, res.Goals.CalorieKcal, 1e-9)
}

func TestProfileWeatherFailureStaysAtCity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	require.NoError(t, env.tracker.BeginProfile(ctx, 1))
	for _, a := range []string{"70", "175", "30", "60"} {
		_, err := env.tracker.ProfileText(ctx, 1, a)
		require.NoError(t, err)
	}

	cause := errors.New("service unavailable")
	env.weather.err = cause
	_, err := env.tracker.ProfileText(ctx, 1, "Atlantis")
	var terr *TransientError
	require.True(t, errors.As(err, &terr))
	assert.ErrorIs(t, err, cause)

	rec := env.record(t, 1)
	assert.Equal(t, models.StepCity, rec.DialogStep)
	assert.Nil(t, rec.Goals)
	assert.Empty(t, rec.Profile.City)

	// Повтор с тем же шагом
	env.weather.err = nil
	res, err := env.tracker.ProfileText(ctx, 1, "Moscow")
	require.NoError(t, err)
	assert.Equal(t, models.StepDone, res.Step)
	assert.Equal(t, 2, env.weather.calls)
}

func TestProfileRestartKeepsLogsUntilCity(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.setupProfile(t, 1)

	_, err := env.tracker.LogWater(ctx, 1, "500")
	require.NoError(t, err)
	_, err = env.tracker.LogWorkout(ctx, 1, "бег", "30")
	require.NoError(t, err)

	require.NoError(t, env.tracker.BeginProfile(ctx, 1))
	rec := env.record(t, 1)
	assert.Equal(t, models.StepWeight, rec.DialogStep)
	assert.Zero(t, rec.Profile.Weight)
	assert.Zero(t, rec.Profile.ActivityMinutes)
	assert.Equal(t, "Moscow", rec.Profile.City)
	assert.Equal(t, 500, rec.LoggedWater)
	assert.Len(t, rec.WaterLogs, 1)
	assert.Equal(t, 300.0, rec.BurnedCalories)
	require.NotNil(t, rec.Goals)
	assert.InDelta(t, 3800, rec.Goals.WaterML, 1e-9)

	// Логирование работает, пока старые нормы на месте
	_, err = env.tracker.LogWater(ctx, 1, "100")
	require.NoError(t, err)

	env.weather.temp = 20
	for _, a := range []string{"80", "180", "31", "0", "Sochi"} {
		_, err := env.tracker.ProfileText(ctx, 1, a)
		require.NoError(t, err)
	}
	rec = env.record(t, 1)
	assert.Equal(t, 0, rec.LoggedWater)
	assert.Empty(t, rec.WaterLogs)
	assert.Zero(t, rec.BurnedCalories)
	assert.InDelta(t, 2400, rec.Goals.WaterML, 1e-9)
}

func TestProfileTextOutsideDialog(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.tracker.ProfileText(ctx, 1, "70")
	assert.ErrorIs(t, err, ErrNoDialog)

	env.setupProfile(t, 1)
	_, err = env.tracker.ProfileText(ctx, 1, "70")
	assert.ErrorIs(t, err, ErrNoDialog)
}

func TestNextStep(t *testing.T) {
	ctx := context.Background()
	order := []models.DialogStep{models.StepWeight, models.StepHeight, models.StepAge, models.StepActivity, models.StepCity, models.StepDone}
	for i := 0; i < len(order)-1; i++ {
		next, err := nextStep(ctx, order[i])
		require.NoError(t, err)
		assert.Equal(t, order[i+1], next)
	}

	_, err := nextStep(ctx, models.StepDone)
	assert.Error(t, err)
	_, err = nextStep(ctx, models.StepNone)
	assert.Error(t, err)
}
