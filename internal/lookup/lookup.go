// Package lookup содержит клиенты внешних сервисов: погоды и базы продуктов.
package lookup

import (
	"errors"
	"net/http"
	"time"
)

// ErrNotFound - сервис ответил, но совпадений нет.
var ErrNotFound = errors.New("not found")

// FoodItem - найденный продукт. HasCalories=false, если в базе нет калорийности.
type FoodItem struct {
	Name            string  `json:"name"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	HasCalories     bool    `json:"has_calories"`
}

func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
