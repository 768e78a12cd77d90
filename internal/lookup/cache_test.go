package lookup

import (
	"context"
	"testing"
	"time"

	"hydro-bot/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSearcher struct {
	calls int
	item  *FoodItem
	err   error
}

func (c *countingSearcher) SearchFood(ctx context.Context, query string) (*FoodItem, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	item := *c.item
	return &item, nil
}

func TestCacheServesRepeatedQueries(t *testing.T) {
	next := &countingSearcher{item: &FoodItem{Name: "Banana", CaloriesPer100g: 89, HasCalories: true}}
	cache := NewCachedFoodService(next, 8, time.Hour, nil, logger.Discard())

	for _, q := range []string{"banana", " Banana ", "BANANA"} {
		item, err := cache.SearchFood(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, "Banana", item.Name)
	}
	assert.Equal(t, 1, next.calls)
}

func TestCacheDoesNotStoreMisses(t *testing.T) {
	next := &countingSearcher{err: ErrNotFound}
	cache := NewCachedFoodService(next, 8, time.Hour, nil, logger.Discard())

	_, err := cache.SearchFood(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = cache.SearchFood(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, next.calls)
}

func TestCachedItemIsCopy(t *testing.T) {
	next := &countingSearcher{item: &FoodItem{Name: "Banana", CaloriesPer100g: 89, HasCalories: true}}
	cache := NewCachedFoodService(next, 8, time.Hour, nil, logger.Discard())

	item, err := cache.SearchFood(context.Background(), "banana")
	require.NoError(t, err)
	item.Name = "changed"

	again, err := cache.SearchFood(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, "Banana", again.Name)
}
