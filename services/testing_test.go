package services

import (
	"testing"
	"time"

	"school_fees_backend/models"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	// The in-memory database vanishes when its last connection closes, so
	// every query has to run over the same one.
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Class{},
		&models.Student{},
		&models.AcademicYear{},
		&models.FeeStructure{},
		&models.StudentAccount{},
		&models.Due{},
		&models.Payment{},
		&models.PaymentAllocation{},
		&models.User{},
	)
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

type testSchool struct {
	class   models.Class
	student models.Student
}

// seedSchool sets up one class with both fee tiers for 2024-25 and one
// day-scholar admitted during that year.
func seedSchool(t *testing.T, db *gorm.DB) testSchool {
	t.Helper()

	section := "A"
	class := models.Class{Name: "Class 5", Section: &section}
	if err := db.Create(&class).Error; err != nil {
		t.Fatalf("create class: %v", err)
	}

	structures := []models.FeeStructure{
		{
			ClassID:      class.ID,
			AcademicYear: "2024-25",
			Tier:         models.TierNonResident,
			Admission:    5000,
			Uniform:      1500,
			Copy:         800,
			Book:         1200,
			Monthly:      1200,
			IsActive:     true,
		},
		{
			ClassID:      class.ID,
			AcademicYear: "2024-25",
			Tier:         models.TierResident,
			Admission:    5000,
			Uniform:      1500,
			HostelDress:  2000,
			Copy:         800,
			Book:         1200,
			Monthly:      3500,
			IsActive:     true,
		},
	}
	if err := db.Create(&structures).Error; err != nil {
		t.Fatalf("create fee structures: %v", err)
	}

	admissionNumber := "ADM-1023"
	admissionDate := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	guardianEmail := "guardian@example.com"
	student := models.Student{
		FullName:        "Aarav Sharma",
		ClassID:         class.ID,
		AdmissionNumber: &admissionNumber,
		AdmissionDate:   &admissionDate,
		IsHosteller:     false,
		GuardianEmail:   &guardianEmail,
		IsActive:        true,
	}
	if err := db.Create(&student).Error; err != nil {
		t.Fatalf("create student: %v", err)
	}

	return testSchool{class: class, student: student}
}

func newTestServices(db *gorm.DB) (*AccountService, *PaymentService, *SummaryService) {
	roster := NewRoster(db)
	fees := NewFeeResolver(db)
	accounts := NewAccountService(db, roster, fees)
	summaries := NewSummaryService(db, roster)
	payments := NewPaymentService(db, accounts, summaries)
	return accounts, payments, summaries
}

func findDue(t *testing.T, db *gorm.DB, studentID uuid.UUID, item models.ItemType, month string) models.Due {
	t.Helper()

	q := db.Where("student_id = ? AND item_type = ?", studentID, item)
	if month != "" {
		q = q.Where("due_month = ?", month)
	}
	var due models.Due
	if err := q.First(&due).Error; err != nil {
		t.Fatalf("find %s due: %v", item, err)
	}
	return due
}
