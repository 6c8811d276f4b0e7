package services

import (
	"school_fees_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// FeeComponentSet is the resolved pricing for one tier of one class.
type FeeComponentSet struct {
	Admission   float64 `json:"admission"`
	Uniform     float64 `json:"uniform"`
	HostelDress float64 `json:"hostel_dress"`
	Copy        float64 `json:"copy"`
	Book        float64 `json:"book"`
	Monthly     float64 `json:"monthly"`
}

// FeeComponents carries both tiers of a class's pricing.
type FeeComponents struct {
	Resident    FeeComponentSet `json:"resident"`
	NonResident FeeComponentSet `json:"non_resident"`
}

// ForTier selects the hosteller or day-scholar set.
func (c FeeComponents) ForTier(isHosteller bool) FeeComponentSet {
	if isHosteller {
		return c.Resident
	}
	return c.NonResident
}

type FeeResolver struct {
	db *gorm.DB
}

func NewFeeResolver(db *gorm.DB) *FeeResolver {
	return &FeeResolver{db: db}
}

// WithTx returns a resolver bound to an open transaction so lookups share
// its connection.
func (r *FeeResolver) WithTx(tx *gorm.DB) *FeeResolver {
	return &FeeResolver{db: tx}
}

// Resolve returns the fee components for a class and academic year. When the
// exact year has no structure, the most recent prior structure for the class
// is carried forward; a class with no structure at all resolves to zero
// amounts so the caller simply seeds nothing.
func (r *FeeResolver) Resolve(classID uuid.UUID, academicYear string) (FeeComponents, error) {
	year := academicYear

	var count int64
	err := r.db.Model(&models.FeeStructure{}).
		Where("class_id = ? AND academic_year = ? AND is_active = ?", classID, year, true).
		Count(&count).Error
	if err != nil {
		return FeeComponents{}, err
	}

	if count == 0 {
		// Year codes sort chronologically, so a plain descending order
		// finds the latest configured pricing.
		var latest models.FeeStructure
		err := r.db.Where("class_id = ? AND is_active = ?", classID, true).
			Order("academic_year DESC").
			First(&latest).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return FeeComponents{}, nil
			}
			return FeeComponents{}, err
		}
		year = latest.AcademicYear
	}

	var rows []models.FeeStructure
	err = r.db.Where("class_id = ? AND academic_year = ? AND is_active = ?", classID, year, true).
		Find(&rows).Error
	if err != nil {
		return FeeComponents{}, err
	}

	var components FeeComponents
	for _, row := range rows {
		set := FeeComponentSet{
			Admission:   row.Admission,
			Uniform:     row.Uniform,
			HostelDress: row.HostelDress,
			Copy:        row.Copy,
			Book:        row.Book,
			Monthly:     row.Monthly,
		}
		switch row.Tier {
		case models.TierResident:
			components.Resident = set
		case models.TierNonResident:
			components.NonResident = set
		}
	}
	return components, nil
}
