package routes

import (
	"school_fees_backend/handlers"
	"school_fees_backend/middleware"

	"github.com/gofiber/fiber/v2"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1", middleware.Protected(), middleware.CashierRequired())

	api.Post("/payments", handlers.RecordPayment)
	api.Put("/payments/:paymentId/verify", handlers.VerifyPayment)
	api.Get("/payments/:paymentId/receipt", handlers.GetReceipt)

	api.Post("/uploads/signature", handlers.GenerateUploadSignature)
}
