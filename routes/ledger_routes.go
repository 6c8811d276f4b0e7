package routes

import (
	"school_fees_backend/handlers"
	"school_fees_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func LedgerRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.CashierRequired())

	api.Get("/academic-years", handlers.ListAcademicYears)
	api.Get("/academic-years/current", handlers.GetCurrentAcademicYear)

	api.Post("/accounts/open", handlers.OpenAccount)

	api.Get("/students/:studentId/summary", handlers.GetFinanceSummary)
	api.Get("/students/:studentId/dues", handlers.ListDues)
}
