package services

import (
	"testing"

	"school_fees_backend/models"
)

func TestRound2(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{199.999, 200},
		{199.994, 199.99},
		{0.005, 0.01},
		{-1.005, -1},
		{1200, 1200},
	}
	for _, tc := range cases {
		if got := Round2(tc.in); got != tc.want {
			t.Errorf("Round2(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestDeriveDueStatus(t *testing.T) {
	cases := []struct {
		name   string
		amount float64
		paid   float64
		want   models.DueStatus
	}{
		{"untouched", 200, 0, models.DueStatusDue},
		{"partial", 200, 50, models.DueStatusPartial},
		{"exact", 200, 200, models.DueStatusPaid},
		{"one paisa short stays partial", 200, 199.99, models.DueStatusPartial},
		{"sub-epsilon remainder settles", 200, 199.995, models.DueStatusPaid},
		{"overpaid within tolerance", 200, 200.01, models.DueStatusPaid},
	}
	for _, tc := range cases {
		if got := deriveDueStatus(tc.amount, tc.paid); got != tc.want {
			t.Errorf("%s: deriveDueStatus(%v, %v) = %q, want %q", tc.name, tc.amount, tc.paid, got, tc.want)
		}
	}
}
