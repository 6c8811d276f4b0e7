package handlers

import (
	"school_fees_backend/database"
	"school_fees_backend/models"

	"github.com/gofiber/fiber/v2"
)

type CreateClassRequest struct {
	Name    string  `json:"name" validate:"required"`
	Section *string `json:"section,omitempty"`
}

func CreateClass(c *fiber.Ctx) error {
	var req CreateClassRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	class := models.Class{Name: req.Name, Section: req.Section}
	if err := database.DB.Create(&class).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create class"})
	}
	return c.Status(fiber.StatusCreated).JSON(class)
}

func ListClasses(c *fiber.Ctx) error {
	var classes []models.Class
	if err := database.DB.Order("name ASC").Find(&classes).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(classes)
}
