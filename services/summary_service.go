package services

import (
	"errors"
	"time"

	"school_fees_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DueLine is one due as the payment UI sees it.
type DueLine struct {
	ID         uuid.UUID        `json:"id"`
	DueType    models.DueType   `json:"due_type"`
	ItemType   models.ItemType  `json:"item_type"`
	Label      string           `json:"label"`
	DueMonth   *string          `json:"due_month,omitempty"`
	Amount     float64          `json:"amount"`
	PaidAmount float64          `json:"paid_amount"`
	Balance    float64          `json:"balance"`
	Status     models.DueStatus `json:"status"`
	Notes      *string          `json:"notes,omitempty"`
}

type FinanceTotals struct {
	Outstanding  float64 `json:"outstanding"`
	FullyPaid    float64 `json:"fully_paid"`
	PartialCount int     `json:"partial_count"`
	DueCount     int     `json:"due_count"`
}

type FinanceBuckets struct {
	OneTime []DueLine `json:"one_time"`
	Monthly []DueLine `json:"monthly"`
	Misc    []DueLine `json:"misc"`
}

type SummaryStudent struct {
	ID              uuid.UUID `json:"id"`
	FullName        string    `json:"full_name"`
	AdmissionNumber *string   `json:"admission_number,omitempty"`
	GuardianName    *string   `json:"guardian_name,omitempty"`
}

type SummaryAccount struct {
	ID           uuid.UUID            `json:"id"`
	LedgerNumber string               `json:"ledger_number"`
	AcademicYear string               `json:"academic_year"`
	Status       models.AccountStatus `json:"status"`
}

// FinanceSummary is the caller-facing projection of a student's dues.
type FinanceSummary struct {
	Student SummaryStudent  `json:"student"`
	Account *SummaryAccount `json:"account,omitempty"`
	Totals  FinanceTotals   `json:"totals"`
	Buckets FinanceBuckets  `json:"buckets"`
}

// SummaryService projects due records into bucketed summaries.
type SummaryService struct {
	db     *gorm.DB
	roster RosterProvider
}

func NewSummaryService(db *gorm.DB, roster RosterProvider) *SummaryService {
	return &SummaryService{db: db, roster: roster}
}

// Summarize builds the finance summary for a student and academic year. A
// student with no account and no dues yet yields a nil summary, which is a
// legitimate "nothing owed" state rather than an error.
func (s *SummaryService) Summarize(studentID uuid.UUID, academicYear string) (*FinanceSummary, error) {
	student, err := s.roster.GetStudent(studentID)
	if err != nil {
		return nil, err
	}

	year := academicYear
	if year == "" {
		year = CurrentAcademicYear(time.Now())
	}

	var account models.StudentAccount
	hasAccount := true
	err = s.db.Where("student_id = ? AND academic_year = ?", studentID, year).
		Order("created_at DESC").
		First(&account).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
		hasAccount = false
	}

	var dues []models.Due
	err = s.db.Where("student_id = ? AND academic_year = ?", studentID, year).
		Order("created_at ASC").
		Find(&dues).Error
	if err != nil {
		return nil, err
	}

	if !hasAccount && len(dues) == 0 {
		return nil, nil
	}

	summary := &FinanceSummary{
		Student: SummaryStudent{
			ID:              student.ID,
			FullName:        student.FullName,
			AdmissionNumber: student.AdmissionNumber,
			GuardianName:    student.GuardianName,
		},
	}
	if hasAccount {
		summary.Account = &SummaryAccount{
			ID:           account.ID,
			LedgerNumber: account.LedgerNumber,
			AcademicYear: account.AcademicYear,
			Status:       account.Status,
		}
	}

	for i := range dues {
		due := &dues[i]
		line := DueLine{
			ID:         due.ID,
			DueType:    due.DueType,
			ItemType:   due.ItemType,
			Label:      dueLabel(due),
			DueMonth:   due.DueMonth,
			Amount:     due.Amount,
			PaidAmount: due.PaidAmount,
			Balance:    Round2(due.Balance()),
			Status:     due.Status,
			Notes:      due.Notes,
		}

		switch {
		case due.DueType == models.DueTypeMonthly:
			summary.Buckets.Monthly = append(summary.Buckets.Monthly, line)
		case due.ItemType == models.ItemMisc:
			summary.Buckets.Misc = append(summary.Buckets.Misc, line)
		default:
			summary.Buckets.OneTime = append(summary.Buckets.OneTime, line)
		}

		if line.Balance > 0 {
			summary.Totals.Outstanding = Round2(summary.Totals.Outstanding + line.Balance)
		} else {
			summary.Totals.FullyPaid = Round2(summary.Totals.FullyPaid + due.PaidAmount)
		}
		switch due.Status {
		case models.DueStatusPartial:
			summary.Totals.PartialCount++
		case models.DueStatusDue:
			summary.Totals.DueCount++
		}
	}

	return summary, nil
}

// ListDues returns the raw due rows for a student and year, oldest first.
func (s *SummaryService) ListDues(studentID uuid.UUID, academicYear string) ([]models.Due, error) {
	year := academicYear
	if year == "" {
		year = CurrentAcademicYear(time.Now())
	}
	var dues []models.Due
	err := s.db.Where("student_id = ? AND academic_year = ?", studentID, year).
		Order("created_at ASC").
		Find(&dues).Error
	return dues, err
}
