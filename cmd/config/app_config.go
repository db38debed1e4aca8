package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"nutrify-backend/internal/api/handlers"
	"nutrify-backend/internal/api/routes"
	"nutrify-backend/internal/middleware"
	"nutrify-backend/internal/utils"
	"nutrify-backend/internal/utils/storage"
	"nutrify-backend/pkg/gemini"
	"nutrify-backend/pkg/jwt"
	"nutrify-backend/pkg/scan"
	"nutrify-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const maxUploadBytes = 16 * 1024 * 1024

// NewApp wires the application together and returns it with a cleanup
// func releasing the outbound model client.
func NewApp(db *gorm.DB, cfg *utils.Config, log *slog.Logger) (*fiber.App, func() error, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		BodyLimit: maxUploadBytes,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// request logging and limiter
	if err := os.MkdirAll("./logs", os.ModePerm); err != nil {
		return nil, nil, fmt.Errorf("creating logs directory: %w", err)
	}
	file, err := os.OpenFile(
		"./logs/access.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		return nil, nil, fmt.Errorf("opening access log: %w", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Second,
	}))

	// utils
	store, err := newStorage(cfg)
	if err != nil {
		return nil, nil, err
	}

	gateway, err := gemini.NewGateway(context.Background(), cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		return nil, nil, err
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	scanRepository := scan.NewScanRepository(db)

	// Service
	jwtService := jwt.NewJWTService(cfg.SecretKey)
	userService := user.NewUserService(userRepository, jwtService)
	scanService := scan.NewScanService(scanRepository, userRepository, store, gateway, log)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	scanHandler := handlers.NewScanHandler(scanService)

	// routes
	routesConfig := routes.Config{
		App:         app,
		UserHandler: userHandler,
		ScanHandler: scanHandler,
		Middleware:  middlewares,
		JWTService:  jwtService,
		StaticDir:   cfg.StaticDir,
	}
	routesConfig.Setup()
	return app, gateway.Close, nil
}

func newStorage(cfg *utils.Config) (storage.Storage, error) {
	switch cfg.StorageBackend {
	case "s3":
		return storage.NewAwsS3(context.Background(), storage.S3Config{
			Bucket:    cfg.AWSS3Bucket,
			Region:    cfg.AWSS3Region,
			AccessKey: cfg.AWSAccessKey,
			SecretKey: cfg.AWSSecretKey,
		})
	default:
		return storage.NewLocalStorage(cfg.UploadDir, "/static/uploads")
	}
}
