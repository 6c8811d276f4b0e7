package services

import (
	"testing"

	"school_fees_backend/models"

	"github.com/google/uuid"
)

func TestResolveExactYear(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	resolver := NewFeeResolver(db)

	components, err := resolver.Resolve(school.class.ID, "2024-25")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	day := components.ForTier(false)
	if day.Admission != 5000 || day.Monthly != 1200 {
		t.Errorf("non-resident tier = %+v", day)
	}
	if day.HostelDress != 0 {
		t.Errorf("day scholar should have no hostel dress charge, got %v", day.HostelDress)
	}

	hosteller := components.ForTier(true)
	if hosteller.Monthly != 3500 || hosteller.HostelDress != 2000 {
		t.Errorf("resident tier = %+v", hosteller)
	}
}

func TestResolveFallsBackToLatestYear(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	resolver := NewFeeResolver(db)

	// Nothing configured for 2025-26 yet; the 2024-25 pricing carries over.
	components, err := resolver.Resolve(school.class.ID, "2025-26")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := components.ForTier(false).Monthly; got != 1200 {
		t.Errorf("fallback monthly = %v, want 1200", got)
	}
}

func TestResolveUnconfiguredClass(t *testing.T) {
	db := newTestDB(t)
	seedSchool(t, db)
	resolver := NewFeeResolver(db)

	components, err := resolver.Resolve(uuid.New(), "2024-25")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if components != (FeeComponents{}) {
		t.Errorf("unconfigured class should resolve to zero amounts, got %+v", components)
	}
}

func TestResolveIgnoresInactiveStructures(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)

	err := db.Model(&models.FeeStructure{}).
		Where("class_id = ?", school.class.ID).
		Update("is_active", false).Error
	if err != nil {
		t.Fatalf("deactivate structures: %v", err)
	}

	components, err := NewFeeResolver(db).Resolve(school.class.ID, "2024-25")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if components != (FeeComponents{}) {
		t.Errorf("inactive structures should not resolve, got %+v", components)
	}
}
