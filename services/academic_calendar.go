package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// The school year runs April through March.
const academicYearStartMonth = time.April

// FormatAcademicYear encodes a start year as "2024-25".
func FormatAcademicYear(startYear int) string {
	return fmt.Sprintf("%d-%02d", startYear, (startYear+1)%100)
}

// CurrentAcademicYear returns the code of the academic year containing ref:
// the year whose April 1st is the latest one not after ref.
func CurrentAcademicYear(ref time.Time) string {
	startYear := ref.Year()
	if ref.Month() < academicYearStartMonth {
		startYear--
	}
	return FormatAcademicYear(startYear)
}

// ParseAcademicYear extracts the start and end calendar years from a code
// like "2024-25". Malformed codes fall back to the current calendar year
// rather than failing the caller.
func ParseAcademicYear(code string) (startYear, endYear int) {
	head := strings.SplitN(strings.TrimSpace(code), "-", 2)[0]
	y, err := strconv.Atoi(head)
	if err != nil || y < 1900 || y > 2999 {
		y = time.Now().Year()
	}
	return y, y + 1
}

// AcademicYearStart returns the first day of the academic year.
func AcademicYearStart(code string) time.Time {
	startYear, _ := ParseAcademicYear(code)
	return time.Date(startYear, academicYearStartMonth, 1, 0, 0, 0, 0, time.UTC)
}

// AcademicYearMonths returns the 12 year-month strings ("2024-04" ...
// "2025-03") of the academic year in chronological order.
func AcademicYearMonths(code string) []string {
	cursor := AcademicYearStart(code)
	months := make([]string, 0, 12)
	for i := 0; i < 12; i++ {
		months = append(months, cursor.Format("2006-01"))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return months
}

// MonthLabel renders a "2006-01" year-month as "Jan 2006" for receipts and
// summaries. Unparseable input is returned as-is.
func MonthLabel(yearMonth string) string {
	t, err := time.Parse("2006-01", yearMonth)
	if err != nil {
		return yearMonth
	}
	return t.Format("Jan 2006")
}
