package services

import (
	"errors"
	"fmt"
	"time"

	"school_fees_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AllocationInput is one slice of a payment: either applied to an existing
// due (DueID set) or a miscellaneous charge created on the fly.
type AllocationInput struct {
	DueID  *uuid.UUID `json:"due_id,omitempty"`
	Amount float64    `json:"amount" validate:"required,gt=0"`
	Label  string     `json:"label,omitempty"`
	Notes  *string    `json:"notes,omitempty"`
}

// RecordPaymentInput is the full payment-recording request.
type RecordPaymentInput struct {
	StudentID       uuid.UUID         `json:"student_id" validate:"required"`
	PaymentDate     string            `json:"payment_date" validate:"required"`
	PaymentMethod   string            `json:"payment_method" validate:"required"`
	ReferenceNumber *string           `json:"reference_number,omitempty"`
	Remarks         *string           `json:"remarks,omitempty"`
	Allocations     []AllocationInput `json:"allocations" validate:"required,min=1,dive"`
	AcademicYear    string            `json:"academic_year,omitempty"`
	CreatedBy       *uuid.UUID        `json:"-"`
	Verify          bool              `json:"verify"`
}

// RecordPaymentResult is what the caller gets back: the stored payment, its
// allocations and a fresh finance summary so the UI can render the updated
// balance without a second request.
type RecordPaymentResult struct {
	Payment     models.Payment             `json:"payment"`
	Allocations []models.PaymentAllocation `json:"allocations"`
	Summary     *FinanceSummary            `json:"summary"`
}

// PaymentService records payments against a student's dues atomically.
type PaymentService struct {
	db        *gorm.DB
	accounts  *AccountService
	summaries *SummaryService
}

func NewPaymentService(db *gorm.DB, accounts *AccountService, summaries *SummaryService) *PaymentService {
	return &PaymentService{db: db, accounts: accounts, summaries: summaries}
}

// Record validates and stores one payment with all its allocations in a
// single transaction. Any failure rolls the whole payment back; a payment is
// never partially recorded.
func (s *PaymentService) Record(input RecordPaymentInput) (*RecordPaymentResult, error) {
	if len(input.Allocations) == 0 {
		return nil, validationErrorf("payment needs at least one allocation")
	}

	paymentDate, err := time.Parse("2006-01-02", input.PaymentDate)
	if err != nil {
		return nil, validationErrorf("invalid payment date %q, expected YYYY-MM-DD", input.PaymentDate)
	}
	if input.PaymentMethod == "" {
		return nil, validationErrorf("payment method is required")
	}

	total := 0.0
	for i, alloc := range input.Allocations {
		amount := Round2(alloc.Amount)
		if amount <= 0 {
			return nil, validationErrorf("allocation %d must have a positive amount", i+1)
		}
		input.Allocations[i].Amount = amount
		total = Round2(total + amount)
	}
	if total <= 0 {
		return nil, validationErrorf("payment total must be positive")
	}

	year := input.AcademicYear
	if year == "" {
		year = CurrentAcademicYear(time.Now())
	}

	account, err := s.accounts.FindOpenAccount(input.StudentID, year)
	if err != nil {
		return nil, err
	}
	if account == nil {
		account, _, err = s.accounts.OpenAccount(input.StudentID, OpenAccountOptions{AcademicYear: year})
		if err != nil {
			return nil, err
		}
	}

	var payment models.Payment
	var allocations []models.PaymentAllocation

	err = s.db.Transaction(func(tx *gorm.DB) error {
		payment = models.Payment{
			StudentID:       input.StudentID,
			AccountID:       account.ID,
			Amount:          total,
			PaymentMethod:   input.PaymentMethod,
			PaymentDate:     paymentDate,
			ReferenceNumber: input.ReferenceNumber,
			Remarks:         input.Remarks,
			Status:          models.PaymentStatusPending,
			CreatedBy:       input.CreatedBy,
		}
		if input.Verify {
			now := time.Now()
			payment.Status = models.PaymentStatusPaid
			payment.VerifiedBy = input.CreatedBy
			payment.VerifiedAt = &now
		}
		if err := tx.Create(&payment).Error; err != nil {
			return err
		}

		for _, alloc := range input.Allocations {
			var row models.PaymentAllocation
			var err error
			if alloc.DueID != nil {
				row, err = s.applyToDue(tx, &payment, input.StudentID, alloc)
			} else {
				row, err = s.createMiscCharge(tx, account, &payment, alloc, year, input.Verify)
			}
			if err != nil {
				return err
			}
			allocations = append(allocations, row)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary, err := s.summaries.Summarize(input.StudentID, year)
	if err != nil {
		// The payment is committed; a failed projection should not fail the
		// whole request.
		summary = nil
	}

	return &RecordPaymentResult{Payment: payment, Allocations: allocations, Summary: summary}, nil
}

// applyToDue credits one allocation against an existing due. The paid amount
// is advanced with a guarded update so the balance check runs against the
// row's current value under the transaction's lock, not the value the caller
// saw before the transaction started.
func (s *PaymentService) applyToDue(tx *gorm.DB, payment *models.Payment, studentID uuid.UUID, alloc AllocationInput) (models.PaymentAllocation, error) {
	var due models.Due
	if err := tx.Where("id = ?", alloc.DueID).First(&due).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.PaymentAllocation{}, notFoundErrorf("due %s not found", alloc.DueID)
		}
		return models.PaymentAllocation{}, err
	}
	if due.StudentID != studentID {
		return models.PaymentAllocation{}, conflictErrorf("due %s does not belong to student %s", due.ID, studentID)
	}

	res := tx.Model(&models.Due{}).
		Where("id = ? AND paid_amount + ? <= amount + ?", due.ID, alloc.Amount, Epsilon).
		Update("paid_amount", gorm.Expr("paid_amount + ?", alloc.Amount))
	if res.Error != nil {
		return models.PaymentAllocation{}, res.Error
	}
	if res.RowsAffected == 0 {
		if err := tx.Where("id = ?", due.ID).First(&due).Error; err != nil {
			return models.PaymentAllocation{}, err
		}
		return models.PaymentAllocation{}, conflictErrorf(
			"allocation for due %s exceeds outstanding balance of %.2f", due.ID, due.Balance())
	}

	if err := tx.Where("id = ?", due.ID).First(&due).Error; err != nil {
		return models.PaymentAllocation{}, err
	}
	due.PaidAmount = Round2(due.PaidAmount)
	status := deriveDueStatus(due.Amount, due.PaidAmount)
	err := tx.Model(&models.Due{}).
		Where("id = ?", due.ID).
		Updates(map[string]interface{}{"paid_amount": due.PaidAmount, "status": status}).Error
	if err != nil {
		return models.PaymentAllocation{}, err
	}

	label := alloc.Label
	if label == "" {
		label = dueLabel(&due)
	}
	row := models.PaymentAllocation{
		PaymentID: payment.ID,
		DueID:     &due.ID,
		Label:     label,
		Category:  due.ItemType,
		Amount:    alloc.Amount,
		Notes:     alloc.Notes,
	}
	if err := tx.Create(&row).Error; err != nil {
		return models.PaymentAllocation{}, err
	}
	return row, nil
}

// createMiscCharge records an ad-hoc charge that had no prior due: the due is
// created on the fly and, when the payment is verified immediately, settled
// in the same breath.
func (s *PaymentService) createMiscCharge(tx *gorm.DB, account *models.StudentAccount, payment *models.Payment, alloc AllocationInput, year string, verify bool) (models.PaymentAllocation, error) {
	label := alloc.Label
	if label == "" {
		label = models.ItemMisc.Label()
	}

	notes := alloc.Notes
	if notes == nil {
		notes = &label
	}

	due := models.Due{
		AccountID:    account.ID,
		StudentID:    account.StudentID,
		AcademicYear: year,
		DueType:      models.DueTypeOneTime,
		ItemType:     models.ItemMisc,
		Amount:       alloc.Amount,
		Status:       models.DueStatusDue,
		Notes:        notes,
	}
	if verify {
		due.PaidAmount = alloc.Amount
		due.Status = models.DueStatusPaid
	}
	if err := tx.Create(&due).Error; err != nil {
		return models.PaymentAllocation{}, err
	}

	row := models.PaymentAllocation{
		PaymentID: payment.ID,
		DueID:     &due.ID,
		Label:     label,
		Category:  models.ItemMisc,
		Amount:    alloc.Amount,
		Notes:     alloc.Notes,
	}
	if err := tx.Create(&row).Error; err != nil {
		return models.PaymentAllocation{}, err
	}
	return row, nil
}

// Verify flips a pending payment to paid and settles the misc dues the
// payment created while it was unverified.
func (s *PaymentService) Verify(paymentID uuid.UUID, verifierID *uuid.UUID) (*models.Payment, error) {
	var payment models.Payment

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", paymentID).First(&payment).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return notFoundErrorf("payment %s not found", paymentID)
			}
			return err
		}
		if payment.Status == models.PaymentStatusPaid {
			return conflictErrorf("payment %s is already verified", paymentID)
		}

		now := time.Now()
		payment.Status = models.PaymentStatusPaid
		payment.VerifiedBy = verifierID
		payment.VerifiedAt = &now
		if err := tx.Save(&payment).Error; err != nil {
			return err
		}

		// Misc dues created by this payment were left unsettled pending
		// verification.
		var allocations []models.PaymentAllocation
		err := tx.Where("payment_id = ? AND category = ?", payment.ID, models.ItemMisc).
			Find(&allocations).Error
		if err != nil {
			return err
		}
		for _, alloc := range allocations {
			if alloc.DueID == nil {
				continue
			}
			err := tx.Model(&models.Due{}).
				Where("id = ? AND paid_amount = 0", alloc.DueID).
				Updates(map[string]interface{}{
					"paid_amount": alloc.Amount,
					"status":      models.DueStatusPaid,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// Receipt is the read-only projection used for rendering a payment receipt.
type Receipt struct {
	Payment     models.Payment             `json:"payment"`
	Allocations []models.PaymentAllocation `json:"allocations"`
	Student     models.Student             `json:"student"`
	Account     models.StudentAccount      `json:"account"`
}

// GetReceipt loads one payment with its allocations and the student's
// display identity.
func (s *PaymentService) GetReceipt(paymentID uuid.UUID) (*Receipt, error) {
	var payment models.Payment
	err := s.db.Preload("Allocations").Where("id = ?", paymentID).First(&payment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, notFoundErrorf("payment %s not found", paymentID)
		}
		return nil, err
	}

	var student models.Student
	if err := s.db.Where("id = ?", payment.StudentID).First(&student).Error; err != nil {
		return nil, err
	}
	var account models.StudentAccount
	if err := s.db.Where("id = ?", payment.AccountID).First(&account).Error; err != nil {
		return nil, err
	}

	return &Receipt{
		Payment:     payment,
		Allocations: payment.Allocations,
		Student:     student,
		Account:     account,
	}, nil
}

// dueLabel builds the human-readable label for an allocation against a due,
// e.g. "Monthly Fee (Mar 2025)".
func dueLabel(due *models.Due) string {
	if due.ItemType == models.ItemMisc && due.Notes != nil && *due.Notes != "" {
		return *due.Notes
	}
	label := due.ItemType.Label()
	if due.DueType == models.DueTypeMonthly && due.DueMonth != nil {
		label = fmt.Sprintf("%s (%s)", label, MonthLabel(*due.DueMonth))
	}
	return label
}
