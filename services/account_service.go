package services

import (
	"errors"
	"log"
	"time"

	"school_fees_backend/models"
	"school_fees_backend/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OpenAccountOptions tune how a ledger account is opened. Zero values mean
// "current academic year, reuse an existing open account, infer new-admission
// from the roster".
type OpenAccountOptions struct {
	AcademicYear   string
	Reopen         bool
	IsNewAdmission *bool
}

// AccountService opens and reuses student ledger accounts and seeds their
// dues for the year.
type AccountService struct {
	db     *gorm.DB
	roster RosterProvider
	fees   *FeeResolver
}

func NewAccountService(db *gorm.DB, roster RosterProvider, fees *FeeResolver) *AccountService {
	return &AccountService{db: db, roster: roster, fees: fees}
}

// OpenAccount finds or creates the student's open ledger account for the
// academic year and makes sure its dues are seeded. It returns the account
// and the number of dues created by this call (zero when the account was
// already seeded).
func (s *AccountService) OpenAccount(studentID uuid.UUID, opts OpenAccountOptions) (*models.StudentAccount, int, error) {
	student, err := s.roster.GetStudent(studentID)
	if err != nil {
		return nil, 0, err
	}

	year := opts.AcademicYear
	if year == "" {
		year = CurrentAcademicYear(time.Now())
	}

	isNewAdmission := s.resolveIsNewAdmission(student, year, opts.IsNewAdmission)

	account, duesCreated, err := s.openAccountTx(student, year, opts.Reopen, isNewAdmission)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent request created the open account between our lookup
		// and our insert. Retry once; the reuse path will pick it up. A
		// second failure is a genuine ledger-number collision.
		account, duesCreated, err = s.openAccountTx(student, year, false, isNewAdmission)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, 0, conflictErrorf("ledger number collision while opening account for student %s", student.ID)
		}
	}
	if err != nil {
		return nil, 0, err
	}

	if !student.AccountOpened {
		// Convenience flag, deliberately outside the transaction.
		if err := s.db.Model(&models.Student{}).
			Where("id = ?", student.ID).
			Update("account_opened", true).Error; err != nil {
			log.Printf("⚠️ Failed to flag account_opened for student %s: %v", student.ID, err)
		}
	}

	return account, duesCreated, nil
}

func (s *AccountService) resolveIsNewAdmission(student *models.Student, year string, override *bool) bool {
	if override != nil {
		return *override
	}
	if student.AdmissionDate != nil {
		return !student.AdmissionDate.Before(AcademicYearStart(year))
	}

	var priorAccounts int64
	if err := s.db.Model(&models.StudentAccount{}).
		Where("student_id = ?", student.ID).
		Count(&priorAccounts).Error; err != nil {
		log.Printf("⚠️ Failed to count prior accounts for student %s: %v", student.ID, err)
	}
	return priorAccounts == 0
}

func (s *AccountService) openAccountTx(student *models.Student, year string, reopen, isNewAdmission bool) (*models.StudentAccount, int, error) {
	var account *models.StudentAccount
	var duesCreated int

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var existing models.StudentAccount
		err := tx.Where("student_id = ? AND status = ?", student.ID, models.AccountStatusOpen).
			First(&existing).Error
		found := err == nil
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if found && existing.AcademicYear == year && !reopen {
			// Reuse. Re-seeding is idempotent and backfills dues for fee
			// components configured after the account was first opened.
			created, err := s.seedDues(tx, &existing, student, year, isNewAdmission)
			if err != nil {
				return err
			}
			account = &existing
			duesCreated = created
			return nil
		}

		if found {
			now := time.Now()
			err := tx.Model(&models.StudentAccount{}).
				Where("id = ?", existing.ID).
				Updates(map[string]interface{}{
					"status":    models.AccountStatusClosed,
					"closed_at": now,
				}).Error
			if err != nil {
				return err
			}
		}

		base := utils.DeriveLedgerNumber(student.ID, student.AdmissionNumber)
		ledgerNumber, err := utils.GenerateUniqueLedgerNumber(tx, base)
		if err != nil {
			return err
		}

		newAccount := models.StudentAccount{
			StudentID:    student.ID,
			AcademicYear: year,
			LedgerNumber: ledgerNumber,
			Status:       models.AccountStatusOpen,
		}
		if err := tx.Create(&newAccount).Error; err != nil {
			return err
		}

		created, err := s.seedDues(tx, &newAccount, student, year, isNewAdmission)
		if err != nil {
			return err
		}
		account = &newAccount
		duesCreated = created
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return account, duesCreated, nil
}

// seedDues creates the year's owed-fee records for an account exactly once.
// A second call for the same account and year is a no-op.
func (s *AccountService) seedDues(tx *gorm.DB, account *models.StudentAccount, student *models.Student, year string, isNewAdmission bool) (int, error) {
	var existing int64
	err := tx.Model(&models.Due{}).
		Where("account_id = ? AND academic_year = ?", account.ID, year).
		Count(&existing).Error
	if err != nil {
		return 0, err
	}
	if existing > 0 {
		return 0, nil
	}

	components, err := s.fees.WithTx(tx).Resolve(student.ClassID, year)
	if err != nil {
		return 0, err
	}
	set := components.ForTier(student.IsHosteller)

	admissionItem := models.ItemRegistration
	if isNewAdmission {
		admissionItem = models.ItemAdmission
	}

	oneTime := []struct {
		item   models.ItemType
		amount float64
	}{
		{admissionItem, set.Admission},
		{models.ItemUniform, set.Uniform},
		{models.ItemCopy, set.Copy},
		{models.ItemBook, set.Book},
		{models.ItemHostelDress, set.HostelDress},
	}

	var dues []models.Due
	for _, component := range oneTime {
		if component.amount <= 0 {
			continue
		}
		dues = append(dues, models.Due{
			AccountID:    account.ID,
			StudentID:    student.ID,
			AcademicYear: year,
			DueType:      models.DueTypeOneTime,
			ItemType:     component.item,
			Amount:       Round2(component.amount),
			Status:       models.DueStatusDue,
		})
	}

	if set.Monthly > 0 {
		for _, month := range AcademicYearMonths(year) {
			dueMonth := month
			dues = append(dues, models.Due{
				AccountID:    account.ID,
				StudentID:    student.ID,
				AcademicYear: year,
				DueType:      models.DueTypeMonthly,
				ItemType:     models.ItemMonthly,
				DueMonth:     &dueMonth,
				Amount:       Round2(set.Monthly),
				Status:       models.DueStatusDue,
			})
		}
	}

	if len(dues) == 0 {
		return 0, nil
	}
	if err := tx.Create(&dues).Error; err != nil {
		return 0, err
	}
	return len(dues), nil
}

// FindOpenAccount returns the student's open account for the year, or nil.
func (s *AccountService) FindOpenAccount(studentID uuid.UUID, year string) (*models.StudentAccount, error) {
	var account models.StudentAccount
	err := s.db.Where("student_id = ? AND academic_year = ? AND status = ?",
		studentID, year, models.AccountStatusOpen).
		First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}
