package handlers

import (
	"errors"

	"school_fees_backend/database"
	"school_fees_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UpsertFeeStructureRequest struct {
	ClassID      string         `json:"class_id" validate:"required,uuid"`
	AcademicYear string         `json:"academic_year" validate:"required"`
	Tier         models.FeeTier `json:"tier" validate:"required,oneof=resident non_resident"`

	Admission   float64 `json:"admission" validate:"gte=0"`
	Uniform     float64 `json:"uniform" validate:"gte=0"`
	HostelDress float64 `json:"hostel_dress" validate:"gte=0"`
	Copy        float64 `json:"copy" validate:"gte=0"`
	Book        float64 `json:"book" validate:"gte=0"`
	Monthly     float64 `json:"monthly" validate:"gte=0"`
}

// UpsertFeeStructure creates or replaces the fee components for one
// class+year+tier.
func UpsertFeeStructure(c *fiber.Ctx) error {
	var req UpsertFeeStructureRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	var structure models.FeeStructure
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("class_id = ? AND academic_year = ? AND tier = ?",
			classID, req.AcademicYear, req.Tier).
			First(&structure).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		structure.ClassID = classID
		structure.AcademicYear = req.AcademicYear
		structure.Tier = req.Tier
		structure.Admission = req.Admission
		structure.Uniform = req.Uniform
		structure.HostelDress = req.HostelDress
		structure.Copy = req.Copy
		structure.Book = req.Book
		structure.Monthly = req.Monthly
		structure.IsActive = true

		return tx.Save(&structure).Error
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to save fee structure"})
	}

	return c.JSON(structure)
}

func ListFeeStructures(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}

	var structures []models.FeeStructure
	err = database.DB.Where("class_id = ?", classID).
		Order("academic_year DESC, tier ASC").
		Find(&structures).Error
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(structures)
}

// ResolveFees previews the effective fee components for a class and year,
// including the prior-year fallback the due seeder would use.
func ResolveFees(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid class id"})
	}
	year := c.Query("academic_year")
	if year == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "academic_year query parameter is required"})
	}

	components, err := feeResolver.Resolve(classID, year)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(components)
}
