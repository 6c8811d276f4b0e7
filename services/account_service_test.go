package services

import (
	"errors"
	"testing"

	"school_fees_backend/models"

	"github.com/google/uuid"
)

func TestOpenAccountSeedsDues(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, _ := newTestServices(db)

	account, created, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"})
	if err != nil {
		t.Fatalf("open account: %v", err)
	}

	if account.LedgerNumber != "LGR-ADM1023" {
		t.Errorf("ledger number = %q, want LGR-ADM1023", account.LedgerNumber)
	}
	if account.Status != models.AccountStatusOpen {
		t.Errorf("status = %q, want open", account.Status)
	}
	if account.AcademicYear != "2024-25" {
		t.Errorf("academic year = %q", account.AcademicYear)
	}

	// Day scholar: admission, uniform, copy and book, plus twelve months.
	if created != 16 {
		t.Errorf("dues created = %d, want 16", created)
	}

	var oneTime, monthly int64
	db.Model(&models.Due{}).Where("account_id = ? AND due_type = ?", account.ID, models.DueTypeOneTime).Count(&oneTime)
	db.Model(&models.Due{}).Where("account_id = ? AND due_type = ?", account.ID, models.DueTypeMonthly).Count(&monthly)
	if oneTime != 4 || monthly != 12 {
		t.Errorf("seeded %d one-time and %d monthly dues, want 4 and 12", oneTime, monthly)
	}

	// Admitted in June 2024, so this is a new admission for 2024-25.
	admission := findDue(t, db, school.student.ID, models.ItemAdmission, "")
	if admission.Amount != 5000 {
		t.Errorf("admission due amount = %v, want 5000", admission.Amount)
	}

	april := findDue(t, db, school.student.ID, models.ItemMonthly, "2024-04")
	if april.Amount != 1200 || april.Status != models.DueStatusDue {
		t.Errorf("april due = %+v", april)
	}

	var hostelDress int64
	db.Model(&models.Due{}).Where("account_id = ? AND item_type = ?", account.ID, models.ItemHostelDress).Count(&hostelDress)
	if hostelDress != 0 {
		t.Errorf("day scholar got a hostel dress due")
	}

	var student models.Student
	if err := db.First(&student, "id = ?", school.student.ID).Error; err != nil {
		t.Fatalf("reload student: %v", err)
	}
	if !student.AccountOpened {
		t.Errorf("account_opened flag not set")
	}
}

func TestOpenAccountIsIdempotent(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, _ := newTestServices(db)

	first, _, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}

	second, created, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("second open created a new account")
	}
	if created != 0 {
		t.Errorf("second open seeded %d dues, want 0", created)
	}

	var total int64
	db.Model(&models.Due{}).Where("student_id = ?", school.student.ID).Count(&total)
	if total != 16 {
		t.Errorf("%d dues after double open, want 16", total)
	}
}

func TestOpenAccountReturningStudent(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, _ := newTestServices(db)

	returning := false
	_, _, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{
		AcademicYear:   "2024-25",
		IsNewAdmission: &returning,
	})
	if err != nil {
		t.Fatalf("open account: %v", err)
	}

	registration := findDue(t, db, school.student.ID, models.ItemRegistration, "")
	if registration.Amount != 5000 {
		t.Errorf("registration due amount = %v, want 5000", registration.Amount)
	}

	var admission int64
	db.Model(&models.Due{}).Where("student_id = ? AND item_type = ?", school.student.ID, models.ItemAdmission).Count(&admission)
	if admission != 0 {
		t.Errorf("returning student still got an admission due")
	}
}

func TestReopenClosesOldAccount(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, _ := newTestServices(db)

	first, _, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}

	second, created, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{
		AcademicYear: "2024-25",
		Reopen:       true,
	})
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}

	if second.ID == first.ID {
		t.Fatalf("reopen reused the old account")
	}
	if second.LedgerNumber != "LGR-ADM1023-2" {
		t.Errorf("reopened ledger number = %q, want LGR-ADM1023-2", second.LedgerNumber)
	}
	if created != 16 {
		t.Errorf("reopen seeded %d dues, want 16", created)
	}

	var old models.StudentAccount
	if err := db.First(&old, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("reload old account: %v", err)
	}
	if old.Status != models.AccountStatusClosed {
		t.Errorf("old account status = %q, want closed", old.Status)
	}
	if old.ClosedAt == nil {
		t.Errorf("old account has no closed_at")
	}
}

func TestOpenAccountNextYearClosesCurrent(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, _ := newTestServices(db)

	first, _, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"})
	if err != nil {
		t.Fatalf("open 2024-25: %v", err)
	}

	// Fee pricing for 2025-26 is carried forward from 2024-25.
	next, created, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2025-26"})
	if err != nil {
		t.Fatalf("open 2025-26: %v", err)
	}
	if next.AcademicYear != "2025-26" {
		t.Errorf("academic year = %q", next.AcademicYear)
	}
	if created == 0 {
		t.Errorf("new year seeded no dues")
	}

	var old models.StudentAccount
	if err := db.First(&old, "id = ?", first.ID).Error; err != nil {
		t.Fatalf("reload old account: %v", err)
	}
	if old.Status != models.AccountStatusClosed {
		t.Errorf("previous year's account stayed %q", old.Status)
	}
}

func TestOpenAccountUnknownStudent(t *testing.T) {
	db := newTestDB(t)
	seedSchool(t, db)
	accounts, _, _ := newTestServices(db)

	_, _, err := accounts.OpenAccount(uuid.New(), OpenAccountOptions{})
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
}

func TestFindOpenAccount(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, _ := newTestServices(db)

	account, err := accounts.FindOpenAccount(school.student.ID, "2024-25")
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if account != nil {
		t.Fatalf("found an account before any was opened")
	}

	opened, _, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	account, err = accounts.FindOpenAccount(school.student.ID, "2024-25")
	if err != nil {
		t.Fatalf("find after open: %v", err)
	}
	if account == nil || account.ID != opened.ID {
		t.Fatalf("open account not found")
	}
}
