package routes

import (
	"school_fees_backend/handlers"
	"school_fees_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func AdminRoutes(app *fiber.App) {
	admin := app.Group("/api/v1/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Post("/academic-years", handlers.CreateAcademicYear)
	admin.Put("/academic-years/:code/current", handlers.SetCurrentAcademicYear)

	admin.Post("/classes", handlers.CreateClass)

	admin.Post("/fee-structures", handlers.UpsertFeeStructure)
	admin.Get("/fee-structures/:classId", handlers.ListFeeStructures)
}
