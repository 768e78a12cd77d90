package tracker

import "context"

// Advice - вид рекомендации
type Advice string

const (
	AdviceDrinkWater  Advice = "drink_water"
	AdviceEatLess     Advice = "eat_less"
	AdviceEatMore     Advice = "eat_more"
	AdviceHighBalance Advice = "high_balance"
	AdviceMoveMore    Advice = "move_more"
	AdviceAllGood     Advice = "all_good"
)

const (
	waterShortfallShare = 0.2
	underEatingShare    = 0.7
	lowActivityShare    = 0.2
)

// Recommendations проверяет правила в фиксированном порядке. Правила
// чистого баланса и активности срабатывают независимо друг от друга.
func Recommendations(p *Progress) []Advice {
	var advice []Advice

	if p.WaterGoal-float64(p.LoggedWater) > waterShortfallShare*p.WaterGoal {
		advice = append(advice, AdviceDrinkWater)
	}

	if p.LoggedCalories > p.CalorieGoal {
		advice = append(advice, AdviceEatLess)
	} else if p.LoggedCalories < underEatingShare*p.CalorieGoal {
		advice = append(advice, AdviceEatMore)
	}

	if p.LoggedCalories-p.BurnedCalories > p.CalorieGoal {
		advice = append(advice, AdviceHighBalance)
	}
	if p.BurnedCalories < lowActivityShare*p.CalorieGoal {
		advice = append(advice, AdviceMoveMore)
	}

	if len(advice) == 0 {
		advice = append(advice, AdviceAllGood)
	}
	return advice
}

func (t *Tracker) Recommend(ctx context.Context, userID int64) ([]Advice, error) {
	p, err := t.CheckProgress(ctx, userID)
	if err != nil {
		return nil, err
	}
	return Recommendations(p), nil
}
