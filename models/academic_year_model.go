package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AcademicYear is an April-to-March school cycle, e.g. code "2024-25".
type AcademicYear struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Code      string     `gorm:"size:10;not null;unique" json:"code"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	StartsOn  *time.Time `gorm:"type:date" json:"starts_on,omitempty"`
	EndsOn    *time.Time `gorm:"type:date" json:"ends_on,omitempty"`
	IsCurrent bool       `gorm:"default:false" json:"is_current"`
	IsActive  bool       `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (y *AcademicYear) BeforeCreate(tx *gorm.DB) error {
	if y.ID == uuid.Nil {
		y.ID = uuid.New()
	}
	return nil
}
