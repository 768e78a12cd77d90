package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDialogStepActive(t *testing.T) {
	for _, s := range []DialogStep{StepWeight, StepHeight, StepAge, StepActivity, StepCity} {
		assert.True(t, s.Active(), s)
	}
	assert.False(t, StepNone.Active())
	assert.False(t, StepDone.Active())
}

func TestCloneIsDeep(t *testing.T) {
	now := time.Now()
	rec := NewUserRecord(1)
	rec.Goals = &Goals{WaterML: 2000, CalorieKcal: 1800}
	rec.PendingFood = &PendingFood{Name: "apple", CaloriesPer100g: 52}
	rec.AppendWater(now, 250)
	rec.AppendFood(now, 100)

	c := rec.Clone()
	c.Goals.WaterML = 1
	c.PendingFood.Name = "pear"
	c.AppendWater(now, 500)
	c.WaterLogs[0].AmountML = 1
	c.FoodLogs[0].Calories = 1

	assert.Equal(t, 2000.0, rec.Goals.WaterML)
	assert.Equal(t, "apple", rec.PendingFood.Name)
	assert.Len(t, rec.WaterLogs, 1)
	assert.Equal(t, 250, rec.WaterLogs[0].AmountML)
	assert.Equal(t, 100.0, rec.FoodLogs[0].Calories)
	assert.Equal(t, 250, rec.LoggedWater)

	rec.ResetTracking()
	c = rec.Clone()
	assert.NotNil(t, c.WaterLogs)
	assert.NotNil(t, c.FoodLogs)
	assert.Empty(t, c.WaterLogs)
	assert.Empty(t, c.FoodLogs)
}

func TestAppendKeepsRunningSums(t *testing.T) {
	rec := NewUserRecord(1)
	now := time.Now()
	rec.AppendWater(now, 200)
	rec.AppendWater(now, 300)
	rec.AppendFood(now, 12.5)
	rec.AppendFood(now, 7.5)

	assert.Equal(t, 500, rec.LoggedWater)
	assert.Equal(t, 20.0, rec.LoggedCalories)
	assert.NotEqual(t, rec.WaterLogs[0].ID, rec.WaterLogs[1].ID)

	rec.BurnedCalories = 10
	rec.ResetTracking()
	assert.Zero(t, rec.LoggedWater)
	assert.Zero(t, rec.LoggedCalories)
	assert.Zero(t, rec.BurnedCalories)
	assert.NotNil(t, rec.WaterLogs)
	assert.Empty(t, rec.WaterLogs)
	assert.Empty(t, rec.FoodLogs)
}
