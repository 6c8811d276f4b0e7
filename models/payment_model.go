package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Payment struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index" json:"account_id"`

	Amount          float64       `gorm:"type:numeric(10,2);not null" json:"amount"`
	PaymentMethod   string        `gorm:"size:50;not null" json:"payment_method"`
	PaymentDate     time.Time     `gorm:"type:date;not null" json:"payment_date"`
	ReferenceNumber *string       `gorm:"size:100" json:"reference_number,omitempty"`
	Remarks         *string       `gorm:"type:text" json:"remarks,omitempty"`
	Status          PaymentStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`

	CreatedBy  *uuid.UUID `gorm:"type:uuid" json:"created_by,omitempty"`
	VerifiedBy *uuid.UUID `gorm:"type:uuid" json:"verified_by,omitempty"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`

	// Filled asynchronously once the PDF receipt has been uploaded.
	ReceiptURL *string `gorm:"size:255" json:"receipt_url,omitempty"`

	Student     Student             `gorm:"foreignkey:StudentID" json:"-"`
	Account     StudentAccount      `gorm:"foreignkey:AccountID" json:"-"`
	Allocations []PaymentAllocation `gorm:"foreignkey:PaymentID" json:"allocations,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
