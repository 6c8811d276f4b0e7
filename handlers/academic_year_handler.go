package handlers

import (
	"errors"
	"time"

	"school_fees_backend/database"
	"school_fees_backend/models"
	"school_fees_backend/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type CreateAcademicYearRequest struct {
	Code     string  `json:"code" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	StartsOn *string `json:"starts_on,omitempty"`
	EndsOn   *string `json:"ends_on,omitempty"`
}

func CreateAcademicYear(c *fiber.Ctx) error {
	var req CreateAcademicYearRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	year := models.AcademicYear{
		Code: req.Code,
		Name: req.Name,
	}
	if req.StartsOn != nil {
		t, err := time.Parse("2006-01-02", *req.StartsOn)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid starts_on date"})
		}
		year.StartsOn = &t
	}
	if req.EndsOn != nil {
		t, err := time.Parse("2006-01-02", *req.EndsOn)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid ends_on date"})
		}
		year.EndsOn = &t
	}

	if err := database.DB.Create(&year).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Academic year already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create academic year"})
	}

	return c.Status(fiber.StatusCreated).JSON(year)
}

func ListAcademicYears(c *fiber.Ctx) error {
	var years []models.AcademicYear
	if err := database.DB.Order("code DESC").Find(&years).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(years)
}

// SetCurrentAcademicYear marks one year as current. The flag is cleared on
// every other year inside the same transaction, so at most one year carries
// it at any time.
func SetCurrentAcademicYear(c *fiber.Ctx) error {
	code := c.Params("code")

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var year models.AcademicYear
		if err := tx.Where("code = ?", code).First(&year).Error; err != nil {
			return err
		}

		err := tx.Model(&models.AcademicYear{}).
			Where("is_current = ?", true).
			Update("is_current", false).Error
		if err != nil {
			return err
		}
		return tx.Model(&models.AcademicYear{}).
			Where("id = ?", year.ID).
			Update("is_current", true).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Academic year not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update academic year"})
	}

	return c.JSON(fiber.Map{"message": "Academic year set as current", "code": code})
}

// GetCurrentAcademicYear returns the year flagged current, falling back to
// the calendar-derived code when none is flagged.
func GetCurrentAcademicYear(c *fiber.Ctx) error {
	var year models.AcademicYear
	err := database.DB.Where("is_current = ?", true).First(&year).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.JSON(fiber.Map{"code": services.CurrentAcademicYear(time.Now())})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(year)
}
