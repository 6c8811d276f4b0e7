package routes

import (
	"school_fees_backend/handlers"
	"school_fees_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func StudentRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.CashierRequired())

	api.Get("/classes", handlers.ListClasses)
	api.Get("/classes/:classId/fees", handlers.ResolveFees)

	api.Post("/students", handlers.CreateStudent)
	api.Get("/students", handlers.ListStudents)
	api.Get("/students/:id", handlers.GetStudent)
}
