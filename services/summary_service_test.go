package services

import (
	"testing"

	"school_fees_backend/models"
)

func TestSummarizeWithoutAccount(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	_, _, summaries := newTestServices(db)

	summary, err := summaries.Summarize(school.student.ID, "2024-25")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary != nil {
		t.Fatalf("student with no ledger got a summary: %+v", summary)
	}
}

func TestSummarizeBuckets(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, summaries := newTestServices(db)

	account, _, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"})
	if err != nil {
		t.Fatalf("open account: %v", err)
	}

	summary, err := summaries.Summarize(school.student.ID, "2024-25")
	if err != nil {
		t.Fatalf("summarize: %v", err)
	}
	if summary == nil {
		t.Fatalf("no summary after account open")
	}

	if summary.Student.FullName != "Aarav Sharma" {
		t.Errorf("student name = %q", summary.Student.FullName)
	}
	if summary.Account == nil || summary.Account.ID != account.ID {
		t.Fatalf("summary missing account")
	}
	if summary.Account.LedgerNumber != "LGR-ADM1023" {
		t.Errorf("ledger = %q", summary.Account.LedgerNumber)
	}

	if len(summary.Buckets.OneTime) != 4 {
		t.Errorf("one-time bucket has %d lines, want 4", len(summary.Buckets.OneTime))
	}
	if len(summary.Buckets.Monthly) != 12 {
		t.Errorf("monthly bucket has %d lines, want 12", len(summary.Buckets.Monthly))
	}
	if len(summary.Buckets.Misc) != 0 {
		t.Errorf("misc bucket has %d lines, want 0", len(summary.Buckets.Misc))
	}

	// 8500 one-time plus 14400 of monthly fees, nothing paid yet.
	if summary.Totals.Outstanding != 22900 {
		t.Errorf("outstanding = %v, want 22900", summary.Totals.Outstanding)
	}
	if summary.Totals.DueCount != 16 {
		t.Errorf("due count = %d, want 16", summary.Totals.DueCount)
	}
	if summary.Totals.PartialCount != 0 {
		t.Errorf("partial count = %d, want 0", summary.Totals.PartialCount)
	}

	for _, line := range summary.Buckets.Monthly {
		if line.DueMonth == nil {
			t.Fatalf("monthly line without due month: %+v", line)
		}
	}
	if first := summary.Buckets.Monthly[0]; first.Label != "Monthly Fee (Apr 2024)" {
		t.Errorf("first monthly label = %q", first.Label)
	}
}

func TestListDues(t *testing.T) {
	db := newTestDB(t)
	school := seedSchool(t, db)
	accounts, _, summaries := newTestServices(db)

	if _, _, err := accounts.OpenAccount(school.student.ID, OpenAccountOptions{AcademicYear: "2024-25"}); err != nil {
		t.Fatalf("open account: %v", err)
	}

	dues, err := summaries.ListDues(school.student.ID, "2024-25")
	if err != nil {
		t.Fatalf("list dues: %v", err)
	}
	if len(dues) != 16 {
		t.Fatalf("listed %d dues, want 16", len(dues))
	}
	for _, due := range dues {
		if due.Status != models.DueStatusDue {
			t.Errorf("fresh due with status %q", due.Status)
		}
	}
}
