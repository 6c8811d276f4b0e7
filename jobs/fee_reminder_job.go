package jobs

import (
	"fmt"
	"log"
	"time"

	"school_fees_backend/database"
	"school_fees_backend/models"
	"school_fees_backend/notifications"
	"school_fees_backend/services"
)

// SendFeeReminders mails guardians whose monthly dues for past months still
// carry a balance. Runs daily; the ledger itself is untouched.
func SendFeeReminders() {
	log.Println("Running job: SendFeeReminders...")

	currentMonth := time.Now().Format("2006-01")

	var overdue []models.Due
	err := database.DB.Preload("Student").
		Where("due_type = ? AND status <> ? AND due_month < ?",
			models.DueTypeMonthly, models.DueStatusPaid, currentMonth).
		Find(&overdue).Error
	if err != nil {
		log.Printf("Error checking for overdue monthly dues: %v", err)
		return
	}

	if len(overdue) == 0 {
		return
	}

	// One mail per student, covering all their overdue months.
	type reminder struct {
		student models.Student
		total   float64
		months  []string
	}
	byStudent := make(map[string]*reminder)
	for _, due := range overdue {
		if due.Student.GuardianEmail == nil {
			continue
		}
		key := due.StudentID.String()
		r, ok := byStudent[key]
		if !ok {
			r = &reminder{student: due.Student}
			byStudent[key] = r
		}
		r.total = services.Round2(r.total + due.Balance())
		if due.DueMonth != nil {
			r.months = append(r.months, services.MonthLabel(*due.DueMonth))
		}
	}

	for _, r := range byStudent {
		guardian := r.student.FullName
		if r.student.GuardianName != nil {
			guardian = *r.student.GuardianName
		}

		subject := "Fee Reminder: Pending Monthly Dues"
		body := fmt.Sprintf(
			"<h1>Fee Reminder</h1><p>Dear %s,</p><p>The monthly fees for %s are pending for: %s.</p><p><b>Total outstanding:</b> %.2f</p><p>Kindly clear the dues at the school office at your earliest convenience.</p>",
			guardian, r.student.FullName, joinMonths(r.months), r.total,
		)

		go notifications.SendEmail(guardian, *r.student.GuardianEmail, subject, body)
	}

	log.Printf("Sent fee reminders for %d students.", len(byStudent))
}

func joinMonths(months []string) string {
	out := ""
	for i, m := range months {
		if i > 0 {
			out += ", "
		}
		out += m
	}
	return out
}
