package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeTier separates hosteller and day-scholar pricing.
type FeeTier string

const (
	TierResident    FeeTier = "resident"
	TierNonResident FeeTier = "non_resident"
)

// FeeStructure holds the fee components for one class, academic year and tier.
// One row per (class, year, tier); amounts of zero mean the component is not
// charged for that class.
type FeeStructure struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	ClassID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uniq_fee_structure" json:"class_id"`
	AcademicYear string    `gorm:"size:10;not null;uniqueIndex:uniq_fee_structure" json:"academic_year"`
	Tier         FeeTier   `gorm:"size:20;not null;uniqueIndex:uniq_fee_structure" json:"tier"`

	Admission   float64 `gorm:"type:numeric(10,2);default:0" json:"admission"`
	Uniform     float64 `gorm:"type:numeric(10,2);default:0" json:"uniform"`
	HostelDress float64 `gorm:"type:numeric(10,2);default:0" json:"hostel_dress"`
	Copy        float64 `gorm:"type:numeric(10,2);default:0" json:"copy"`
	Book        float64 `gorm:"type:numeric(10,2);default:0" json:"book"`
	Monthly     float64 `gorm:"type:numeric(10,2);default:0" json:"monthly"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	Class Class `gorm:"foreignkey:ClassID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (f *FeeStructure) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}
