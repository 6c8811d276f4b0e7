package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetFinanceSummary projects a student's dues into totals and buckets. A
// student with nothing recorded yet gets an explicit null summary, not an
// error.
func GetFinanceSummary(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	summary, err := summaryService.Summarize(studentID, c.Query("academic_year"))
	if err != nil {
		return respondServiceError(c, err)
	}
	if summary == nil {
		return c.JSON(fiber.Map{"summary": nil})
	}
	return c.JSON(fiber.Map{"summary": summary})
}

// ListDues returns the raw due rows for a student and year.
func ListDues(c *fiber.Ctx) error {
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	dues, err := summaryService.ListDues(studentID, c.Query("academic_year"))
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(dues)
}
