package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Due is a single amount a student owes: a one-time charge, one month of the
// recurring fee, or a miscellaneous charge created at payment time.
type Due struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	AccountID    uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`
	StudentID    uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	AcademicYear string    `gorm:"size:10;not null;index" json:"academic_year"`

	DueType  DueType  `gorm:"size:10;not null" json:"due_type"`
	ItemType ItemType `gorm:"size:20;not null" json:"item_type"`
	// Set only for monthly dues, formatted "2006-01".
	DueMonth *string `gorm:"size:7" json:"due_month,omitempty"`

	Amount     float64   `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaidAmount float64   `gorm:"type:numeric(10,2);default:0" json:"paid_amount"`
	Status     DueStatus `gorm:"size:10;not null;default:'due';index" json:"status"`
	Notes      *string   `gorm:"type:text" json:"notes,omitempty"`

	Account StudentAccount `gorm:"foreignkey:AccountID" json:"-"`
	Student Student        `gorm:"foreignkey:StudentID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (d *Due) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Balance is the amount still owed, never negative.
func (d *Due) Balance() float64 {
	if b := d.Amount - d.PaidAmount; b > 0 {
		return b
	}
	return 0
}
