package routes

import (
	"nutrify-backend/internal/api/handlers"
	"nutrify-backend/internal/middleware"
	"nutrify-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App         *fiber.App
	UserHandler handlers.UserHandler
	ScanHandler handlers.ScanHandler
	Middleware  middleware.Middleware
	JWTService  jwt.JWTService
	StaticDir   string
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Auth()
	c.Scan()
	c.Static()
}

func (c *Config) Auth() {
	api := c.App.Group("/api")
	{
		api.Post("/signup", c.UserHandler.Signup)
		api.Post("/login", c.UserHandler.Login)
		api.Post("/logout", c.UserHandler.Logout)
		api.Get("/check-auth", c.Middleware.OptionalAuthMiddleware(c.JWTService), c.UserHandler.CheckAuth)
		api.Post("/profile", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.UpdateProfile)
	}
}

func (c *Config) Scan() {
	api := c.App.Group("/api", c.Middleware.OptionalAuthMiddleware(c.JWTService))
	{
		api.Post("/analyze-food", c.ScanHandler.AnalyzeFood)
		api.Post("/analyze-health", c.ScanHandler.AnalyzeHealth)
		api.Get("/history", c.ScanHandler.History)
	}
}

func (c *Config) Static() {
	c.App.Static("/static", c.StaticDir)
}
