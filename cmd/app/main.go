package main

import (
	"log"

	"nutrify-backend/cmd/config"
	migration "nutrify-backend/cmd/database/migrate"
	"nutrify-backend/internal/logger"
	"nutrify-backend/internal/utils"

	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; the config loader also reads the environment
	_ = godotenv.Load()

	cfg, err := utils.LoadConfig("config.yaml")
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	appLogger, err := logger.New(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogOutput,
		Format:     cfg.LogFormat,
	})
	if err != nil {
		log.Fatalf("error initializing logger: %v", err)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		log.Fatalf("error connecting to database: %v", err)
	}

	if err := migration.Migrate(db); err != nil {
		log.Fatalf("error running migrations: %v", err)
	}

	app, cleanup, err := config.NewApp(db, cfg, appLogger)
	if err != nil {
		log.Fatalf("error setting up app: %v", err)
	}
	defer func() {
		if err := cleanup(); err != nil {
			appLogger.Error("closing model client", "error", err)
		}
	}()

	appLogger.Info("starting server", "port", cfg.AppPort)
	if err := app.Listen(":" + cfg.AppPort); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
