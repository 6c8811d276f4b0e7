package routes

import (
	"school_fees_backend/handlers"
	"school_fees_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Post("/auth/login", handlers.Login)
	api.Get("/auth/me", middleware.Protected(), handlers.Me)
	api.Post("/auth/users", middleware.Protected(), middleware.AdminRequired(), handlers.CreateUser)
}
