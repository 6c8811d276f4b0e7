package handlers

import (
	"errors"
	"log"

	"school_fees_backend/database"
	"school_fees_backend/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var validate = validator.New()

var (
	roster         services.RosterProvider
	feeResolver    *services.FeeResolver
	accountService *services.AccountService
	summaryService *services.SummaryService
	paymentService *services.PaymentService
)

// InitServices wires the ledger services onto the shared connection. Must run
// after database.ConnectDB.
func InitServices() {
	db := database.DB
	roster = services.NewRoster(db)
	feeResolver = services.NewFeeResolver(db)
	accountService = services.NewAccountService(db, roster, feeResolver)
	summaryService = services.NewSummaryService(db, roster)
	paymentService = services.NewPaymentService(db, accountService, summaryService)
}

// respondServiceError maps the ledger error taxonomy onto HTTP statuses.
// Unexpected errors are logged with context and surfaced as an opaque 500.
func respondServiceError(c *fiber.Ctx, err error) error {
	var validationErr *services.ValidationError
	if errors.As(err, &validationErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": validationErr.Message})
	}
	var notFoundErr *services.NotFoundError
	if errors.As(err, &notFoundErr) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": notFoundErr.Message})
	}
	var conflictErr *services.ConflictError
	if errors.As(err, &conflictErr) {
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": conflictErr.Message})
	}

	log.Printf("🔥 Internal error on %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}

// currentUserID pulls the authenticated user's id out of the JWT, when there
// is one.
func currentUserID(c *fiber.Ctx) *uuid.UUID {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	raw, ok := claims["user_id"].(string)
	if !ok {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}
