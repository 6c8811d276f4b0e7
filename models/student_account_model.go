package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// StudentAccount is a student's ledger for one academic year. The partial
// unique index guarantees at most one open account per student and year; the
// losing side of a concurrent open is retried as a reuse.
type StudentAccount struct {
	ID           uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	StudentID    uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uniq_open_account,where:status = 'open'" json:"student_id"`
	AcademicYear string        `gorm:"size:10;not null;uniqueIndex:uniq_open_account,where:status = 'open'" json:"academic_year"`
	LedgerNumber string        `gorm:"size:50;not null;unique" json:"ledger_number"`
	Status       AccountStatus `gorm:"size:10;not null;default:'open';index" json:"status"`
	ClosedAt     *time.Time    `json:"closed_at,omitempty"`

	Student Student `gorm:"foreignkey:StudentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *StudentAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
