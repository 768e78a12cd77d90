package tracker

import (
	"context"
	"strconv"
	"strings"

	"hydro-bot/internal/models"
)

// WaterLogged - итог записи воды. Remaining может быть отрицательным.
type WaterLogged struct {
	Amount    int
	Remaining float64
}

// LogWater записывает выпитую воду в мл.
func (t *Tracker) LogWater(ctx context.Context, userID int64, amountStr string) (*WaterLogged, error) {
	amountStr = strings.TrimSpace(amountStr)
	res := &WaterLogged{}
	err := t.updateConfigured(ctx, userID, func(rec *models.UserRecord) error {
		amount, err := strconv.Atoi(amountStr)
		if err != nil || amount <= 0 {
			return &ValidationError{Field: "amount", Input: amountStr}
		}
		rec.AppendWater(t.clock.Now(), amount)
		*res = WaterLogged{
			Amount:    amount,
			Remaining: rec.Goals.WaterML - float64(rec.LoggedWater),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}
