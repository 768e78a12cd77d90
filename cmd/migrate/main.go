package main

import (
	"log"

	"hydro-bot/internal/config"
	"hydro-bot/internal/database"
	"hydro-bot/internal/logger"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.New(cfg.LogLevel)

	if cfg.DatabaseURL == "" {
		logger.Fatal("DATABASE_URL is required for migrations")
	}

	// Подключаемся к базе данных
	db, err := database.New(cfg.DatabaseURL, logger)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	logger.Info("🚀 Starting database migrations...")

	// CreateTables создаёт схему и запускает миграции
	if err := db.CreateTables(); err != nil {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	logger.Info("✅ All migrations completed successfully!")
}
