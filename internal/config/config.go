package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	APIToken string `env:"API_TOKEN"`
	OwnerID  int64  `env:"OWNER_ID" envDefault:"0"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	Timezone string `env:"TIMEZONE" envDefault:"Europe/Moscow"`

	WeatherAPIKey  string        `env:"WEATHER_API_KEY"`
	WeatherBaseURL string        `env:"WEATHER_BASE_URL" envDefault:"http://api.openweathermap.org/data/2.5/weather"`
	FoodBaseURL    string        `env:"FOOD_BASE_URL" envDefault:"https://world.openfoodfacts.org/cgi/search.pl"`
	LookupTimeout  time.Duration `env:"LOOKUP_TIMEOUT" envDefault:"10s"`

	// Пустой DATABASE_URL означает хранение в памяти процесса
	DatabaseURL string `env:"DATABASE_URL"`

	RedisAddr     string        `env:"REDIS_ADDR"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB" envDefault:"0"`
	FoodCacheSize int           `env:"FOOD_CACHE_SIZE" envDefault:"256"`
	FoodCacheTTL  time.Duration `env:"FOOD_CACHE_TTL" envDefault:"6h"`

	PendingFoodTTL time.Duration `env:"PENDING_FOOD_TTL" envDefault:"15m"`
	WorkoutsFile   string        `env:"WORKOUTS_FILE"`
	MetricsAddr    string        `env:"METRICS_ADDR" envDefault:":9090"`
}

func Load() (*Config, error) {
	// Загружаем .env файл если он существует
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if cfg.FoodCacheSize <= 0 {
		return nil, fmt.Errorf("invalid FOOD_CACHE_SIZE: %d", cfg.FoodCacheSize)
	}
	if cfg.PendingFoodTTL < 0 {
		return nil, fmt.Errorf("invalid PENDING_FOOD_TTL: %s", cfg.PendingFoodTTL)
	}

	return cfg, nil
}

// Location возвращает часовой пояс, в котором считаются даты логов.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}
