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

func TestTemperature(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Moscow", r.URL.Query().Get("q"))
		assert.Equal(t, "key", r.URL.Query().Get("appid"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{"main":{"temp":27.5}}`))
	}))
	defer server.Close()

	ws := NewWeatherService("key", server.URL, time.Second)
	temp, err := ws.Temperature(context.Background(), "Moscow")
	require.NoError(t, err)
	assert.Equal(t, 27.5, temp)
}

func TestTemperatureCityNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod":"404","message":"city not found"}`))
	}))
	defer server.Close()

	ws := NewWeatherService("key", server.URL, time.Second)
	_, err := ws.Temperature(context.Background(), "Nowhere")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTemperatureServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	ws := NewWeatherService("bad", server.URL, time.Second)
	_, err := ws.Temperature(context.Background(), "Moscow")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestTemperatureMissingField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"main":{}}`))
	}))
	defer server.Close()

	ws := NewWeatherService("key", server.URL, time.Second)
	_, err := ws.Temperature(context.Background(), "Moscow")
	assert.Error(t, err)
}
