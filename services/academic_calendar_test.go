package services

import (
	"testing"
	"time"
)

func TestCurrentAcademicYear(t *testing.T) {
	cases := []struct {
		ref  time.Time
		want string
	}{
		{time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2024, time.December, 15, 0, 0, 0, 0, time.UTC), "2024-25"},
		{time.Date(2025, time.March, 31, 23, 59, 0, 0, time.UTC), "2024-25"},
		{time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC), "2025-26"},
		{time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC), "2023-24"},
	}
	for _, tc := range cases {
		if got := CurrentAcademicYear(tc.ref); got != tc.want {
			t.Errorf("CurrentAcademicYear(%s) = %q, want %q", tc.ref.Format("2006-01-02"), got, tc.want)
		}
	}
}

func TestFormatAcademicYear(t *testing.T) {
	if got := FormatAcademicYear(2024); got != "2024-25" {
		t.Errorf("FormatAcademicYear(2024) = %q, want 2024-25", got)
	}
	if got := FormatAcademicYear(2099); got != "2099-00" {
		t.Errorf("FormatAcademicYear(2099) = %q, want 2099-00", got)
	}
}

func TestParseAcademicYear(t *testing.T) {
	start, end := ParseAcademicYear("2024-25")
	if start != 2024 || end != 2025 {
		t.Errorf("ParseAcademicYear(2024-25) = %d, %d", start, end)
	}

	// Malformed codes fall back to the current calendar year.
	start, _ = ParseAcademicYear("garbage")
	if start != time.Now().Year() {
		t.Errorf("malformed code resolved to start year %d", start)
	}
}

func TestAcademicYearMonths(t *testing.T) {
	months := AcademicYearMonths("2024-25")
	if len(months) != 12 {
		t.Fatalf("got %d months, want 12", len(months))
	}
	if months[0] != "2024-04" {
		t.Errorf("first month = %q, want 2024-04", months[0])
	}
	if months[11] != "2025-03" {
		t.Errorf("last month = %q, want 2025-03", months[11])
	}
}

func TestMonthLabel(t *testing.T) {
	if got := MonthLabel("2025-03"); got != "Mar 2025" {
		t.Errorf("MonthLabel(2025-03) = %q, want Mar 2025", got)
	}
	if got := MonthLabel("bogus"); got != "bogus" {
		t.Errorf("MonthLabel(bogus) = %q, want input echoed back", got)
	}
}
