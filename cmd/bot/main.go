package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"hydro-bot/internal/bot"
	"hydro-bot/internal/config"
	"hydro-bot/internal/database"
	"hydro-bot/internal/logger"
	"hydro-bot/internal/lookup"
	"hydro-bot/internal/metrics"
	"hydro-bot/internal/store"
	"hydro-bot/internal/tracker"
	"hydro-bot/internal/utils"
	"hydro-bot/internal/workouts"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Инициализируем логгер
	logger := logger.New(cfg.LogLevel)

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatalf("Failed to load time zone: %v", err)
	}

	// Контекст для graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Хранилище: Postgres, если задан DATABASE_URL, иначе память процесса
	var st store.Store
	if cfg.DatabaseURL != "" {
		db, err := database.New(cfg.DatabaseURL, logger)
		if err != nil {
			logger.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()

		if err := db.CreateTables(); err != nil {
			logger.Fatalf("Failed to create tables: %v", err)
		}
		st = store.NewPostgresStore(db)
		logger.Info("Using Postgres store")
	} else {
		st = store.NewMemoryStore()
		logger.Warn("DATABASE_URL is empty, user data will be lost on restart")
	}

	table := workouts.Default()
	if cfg.WorkoutsFile != "" {
		table, err = workouts.Load(cfg.WorkoutsFile)
		if err != nil {
			logger.Fatalf("Failed to load workouts: %v", err)
		}
	}
	logger.Infof("Workouts: %v", table.Names())

	weather := lookup.NewWeatherService(cfg.WeatherAPIKey, cfg.WeatherBaseURL, cfg.LookupTimeout)

	var food tracker.FoodProvider = lookup.NewFoodService(cfg.FoodBaseURL, cfg.LookupTimeout)
	if cfg.RedisAddr != "" {
		rdb, err := lookup.NewRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			logger.Fatalf("Failed to connect to redis: %v", err)
		}
		defer rdb.Close()
		food = lookup.NewCachedFoodService(food, cfg.FoodCacheSize, cfg.FoodCacheTTL, rdb, logger)
	} else {
		food = lookup.NewCachedFoodService(food, cfg.FoodCacheSize, cfg.FoodCacheTTL, nil, logger)
	}

	tr := tracker.New(st, weather, food, table, utils.NewClock(loc), cfg.PendingFoodTTL, logger)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.NewMetrics(reg)
	if n, err := tr.ConfiguredUsers(ctx); err == nil {
		m.UsersTotal.Set(float64(n))
	}

	// Создаем бота
	b, err := bot.New(cfg, tr, m, logger)
	if err != nil {
		logger.Fatalf("Failed to create bot: %v", err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return b.Start(gctx)
	})
	if cfg.MetricsAddr != "" {
		g.Go(func() error {
			logger.Infof("Metrics server listening on %s", cfg.MetricsAddr)
			return metrics.Serve(gctx, cfg.MetricsAddr, reg)
		})
	}

	if err := g.Wait(); err != nil {
		logger.Errorf("Bot error: %v", err)
	}
	logger.Info("Shutting down...")
}
