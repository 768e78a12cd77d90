package lookup

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func foodServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "1", r.URL.Query().Get("json"))
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestSearchFood(t *testing.T) {
	server := foodServer(t, `{"products":[{"product_name":"Banana","nutriments":{"energy-kcal_100g":89}},{"product_name":"Other"}]}`)

	fs := NewFoodService(server.URL, time.Second)
	item, err := fs.SearchFood(context.Background(), "banana")
	require.NoError(t, err)
	assert.Equal(t, "Banana", item.Name)
	assert.True(t, item.HasCalories)
	assert.Equal(t, 89.0, item.CaloriesPer100g)
}

func TestSearchFoodStringCalories(t *testing.T) {
	server := foodServer(t, `{"products":[{"product_name":"","nutriments":{"energy-kcal_100g":"52.5"}}]}`)

	fs := NewFoodService(server.URL, time.Second)
	item, err := fs.SearchFood(context.Background(), "apple")
	require.NoError(t, err)
	assert.Equal(t, unknownProductName, item.Name)
	assert.Equal(t, 52.5, item.CaloriesPer100g)
}

func TestSearchFoodWithoutCalories(t *testing.T) {
	server := foodServer(t, `{"products":[{"product_name":"Mystery","nutriments":{}}]}`)

	fs := NewFoodService(server.URL, time.Second)
	item, err := fs.SearchFood(context.Background(), "mystery")
	require.NoError(t, err)
	assert.False(t, item.HasCalories)
}

func TestSearchFoodNoProducts(t *testing.T) {
	server := foodServer(t, `{"products":[]}`)

	fs := NewFoodService(server.URL, time.Second)
	_, err := fs.SearchFood(context.Background(), "zzz")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSearchFoodBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	fs := NewFoodService(server.URL, time.Second)
	_, err := fs.SearchFood(context.Background(), "banana")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}
