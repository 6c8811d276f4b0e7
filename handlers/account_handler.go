package handlers

import (
	"school_fees_backend/services"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type OpenAccountRequest struct {
	StudentID      string `json:"student_id" validate:"required,uuid"`
	AcademicYear   string `json:"academic_year,omitempty"`
	Reopen         bool   `json:"reopen,omitempty"`
	IsNewAdmission *bool  `json:"is_new_admission,omitempty"`
}

// OpenAccount opens (or reuses) the student's ledger account for the year
// and seeds its dues.
func OpenAccount(c *fiber.Ctx) error {
	var req OpenAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	account, duesCreated, err := accountService.OpenAccount(studentID, services.OpenAccountOptions{
		AcademicYear:   req.AcademicYear,
		Reopen:         req.Reopen,
		IsNewAdmission: req.IsNewAdmission,
	})
	if err != nil {
		return respondServiceError(c, err)
	}

	return c.JSON(fiber.Map{
		"account": fiber.Map{
			"id":            account.ID,
			"ledger_number": account.LedgerNumber,
			"academic_year": account.AcademicYear,
			"status":        account.Status,
		},
		"dues_created": duesCreated,
	})
}
