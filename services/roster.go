package services

import (
	"errors"

	"school_fees_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RosterProvider is the read-only directory of students and classes the
// ledger core depends on. The production implementation reads the local
// tables; tests may substitute their own.
type RosterProvider interface {
	GetStudent(id uuid.UUID) (*models.Student, error)
	GetClass(id uuid.UUID) (*models.Class, error)
}

type dbRoster struct {
	db *gorm.DB
}

func NewRoster(db *gorm.DB) RosterProvider {
	return &dbRoster{db: db}
}

func (r *dbRoster) GetStudent(id uuid.UUID) (*models.Student, error) {
	var student models.Student
	if err := r.db.Where("id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("student %s not found", id)
		}
		return nil, err
	}
	return &student, nil
}

func (r *dbRoster) GetClass(id uuid.UUID) (*models.Class, error) {
	var class models.Class
	if err := r.db.Where("id = ?", id).First(&class).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("class %s not found", id)
		}
		return nil, err
	}
	return &class, nil
}
