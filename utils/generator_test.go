package utils

import (
	"testing"

	"school_fees_backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestDeriveLedgerNumber(t *testing.T) {
	id := uuid.MustParse("00000001-0000-0000-0000-000000000000")

	cases := []struct {
		name      string
		admission *string
		want      string
	}{
		{"lowercase with punctuation", strPtr("adm-1023"), "LGR-ADM1023"},
		{"already clean", strPtr("ADM1023"), "LGR-ADM1023"},
		{"spaces stripped", strPtr(" adm 1023 "), "LGR-ADM1023"},
		{"nil falls back to id", nil, "LGR-0000000001"},
		{"empty after cleaning falls back", strPtr("---"), "LGR-0000000001"},
	}
	for _, tc := range cases {
		if got := DeriveLedgerNumber(id, tc.admission); got != tc.want {
			t.Errorf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestGenerateUniqueLedgerNumber(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.Student{}, &models.StudentAccount{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	got, err := GenerateUniqueLedgerNumber(db, "LGR-ADM1023")
	if err != nil {
		t.Fatalf("first generate: %v", err)
	}
	if got != "LGR-ADM1023" {
		t.Errorf("unclaimed base = %q, want LGR-ADM1023", got)
	}

	taken := []models.StudentAccount{
		{StudentID: uuid.New(), AcademicYear: "2024-25", LedgerNumber: "LGR-ADM1023", Status: models.AccountStatusClosed},
		{StudentID: uuid.New(), AcademicYear: "2024-25", LedgerNumber: "LGR-ADM1023-2", Status: models.AccountStatusClosed},
	}
	if err := db.Create(&taken).Error; err != nil {
		t.Fatalf("seed accounts: %v", err)
	}

	got, err = GenerateUniqueLedgerNumber(db, "LGR-ADM1023")
	if err != nil {
		t.Fatalf("second generate: %v", err)
	}
	if got != "LGR-ADM1023-3" {
		t.Errorf("suffixed = %q, want LGR-ADM1023-3", got)
	}
}

func strPtr(s string) *string { return &s }
