package handlers

import (
	"errors"
	"time"

	"school_fees_backend/database"
	"school_fees_backend/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type CreateStudentRequest struct {
	FullName        string  `json:"full_name" validate:"required,min=2"`
	ClassID         string  `json:"class_id" validate:"required,uuid"`
	AdmissionNumber *string `json:"admission_number,omitempty"`
	AdmissionDate   *string `json:"admission_date,omitempty"`
	IsHosteller     bool    `json:"is_hosteller"`
	GuardianName    *string `json:"guardian_name,omitempty"`
	GuardianPhone   *string `json:"guardian_phone,omitempty"`
	GuardianEmail   *string `json:"guardian_email,omitempty" validate:"omitempty,email"`
}

func CreateStudent(c *fiber.Ctx) error {
	var req CreateStudentRequest
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
	var class models.Class
	if err := database.DB.Where("id = ?", classID).First(&class).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Class not found"})
	}

	student := models.Student{
		FullName:        req.FullName,
		ClassID:         classID,
		AdmissionNumber: req.AdmissionNumber,
		IsHosteller:     req.IsHosteller,
		GuardianName:    req.GuardianName,
		GuardianPhone:   req.GuardianPhone,
		GuardianEmail:   req.GuardianEmail,
	}
	if req.AdmissionDate != nil {
		t, err := time.Parse("2006-01-02", *req.AdmissionDate)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid admission date"})
		}
		student.AdmissionDate = &t
	}

	if err := database.DB.Create(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": "Admission number already exists"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create student"})
	}

	return c.Status(fiber.StatusCreated).JSON(student)
}

func ListStudents(c *fiber.Ctx) error {
	query := database.DB.Preload("Class").Where("is_active = ?", true)
	if classID := c.Query("class_id"); classID != "" {
		query = query.Where("class_id = ?", classID)
	}

	var students []models.Student
	if err := query.Order("full_name ASC").Find(&students).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(students)
}

func GetStudent(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid student id"})
	}

	var student models.Student
	if err := database.DB.Preload("Class").Where("id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Student not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	return c.JSON(student)
}
