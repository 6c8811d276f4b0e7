package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PaymentAllocation is the portion of one payment applied to one due.
type PaymentAllocation struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	PaymentID uuid.UUID  `gorm:"type:uuid;not null;index" json:"payment_id"`
	DueID     *uuid.UUID `gorm:"type:uuid;index" json:"due_id,omitempty"`

	Label    string   `gorm:"size:255;not null" json:"label"`
	Category ItemType `gorm:"size:20;not null" json:"category"`
	Amount   float64  `gorm:"type:numeric(10,2);not null" json:"amount"`
	Notes    *string  `gorm:"type:text" json:"notes,omitempty"`

	Payment Payment `gorm:"foreignkey:PaymentID" json:"-"`
	Due     *Due    `gorm:"foreignkey:DueID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *PaymentAllocation) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
