package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Student struct {
	ID              uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	FullName        string     `gorm:"size:255;not null" json:"full_name"`
	ClassID         uuid.UUID  `gorm:"type:uuid;not null;index" json:"class_id"`
	AdmissionNumber *string    `gorm:"size:50;unique" json:"admission_number,omitempty"`
	AdmissionDate   *time.Time `gorm:"type:date" json:"admission_date,omitempty"`
	IsHosteller     bool       `gorm:"default:false" json:"is_hosteller"`

	GuardianName  *string `gorm:"size:255" json:"guardian_name,omitempty"`
	GuardianPhone *string `gorm:"size:20" json:"guardian_phone,omitempty"`
	GuardianEmail *string `gorm:"size:255" json:"guardian_email,omitempty"`

	// Convenience flag set after the first ledger account is opened.
	// Not load-bearing for correctness.
	AccountOpened bool `gorm:"default:false" json:"account_opened"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	Class Class `gorm:"foreignkey:ClassID" json:"class,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Student) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
