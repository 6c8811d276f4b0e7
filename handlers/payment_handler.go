package handlers

import (
	"school_fees_backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RecordPayment stores a payment with its allocations atomically and returns
// the refreshed finance summary alongside it.
func RecordPayment(c *fiber.Ctx) error {
	var input services.RecordPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(input); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	input.CreatedBy = currentUserID(c)

	result, err := paymentService.Record(input)
	if err != nil {
		return respondServiceError(c, err)
	}

	if input.Verify {
		go services.GenerateReceiptPDF(paymentService, result.Payment.ID)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}

// VerifyPayment flips a pending payment to paid.
func VerifyPayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment id"})
	}

	payment, err := paymentService.Verify(paymentID, currentUserID(c))
	if err != nil {
		return respondServiceError(c, err)
	}

	go services.GenerateReceiptPDF(paymentService, payment.ID)

	return c.JSON(payment)
}

// GetReceipt returns the read-only receipt projection for one payment.
func GetReceipt(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("paymentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment id"})
	}

	receipt, err := paymentService.GetReceipt(paymentID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(receipt)
}
