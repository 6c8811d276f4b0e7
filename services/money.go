package services

import (
	"math"

	"school_fees_backend/models"
)

// Epsilon is the rounding tolerance for rupee amounts stored as numeric(10,2).
const Epsilon = 0.01

// Round2 normalizes an amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// deriveDueStatus keeps a due's status consistent with its amounts: paid
// once the remainder drops below the rounding tolerance, partial when
// anything has been paid, due otherwise.
func deriveDueStatus(amount, paidAmount float64) models.DueStatus {
	remaining := Round2(amount - paidAmount)
	switch {
	case remaining < Epsilon:
		return models.DueStatusPaid
	case paidAmount > 0:
		return models.DueStatusPartial
	default:
		return models.DueStatusDue
	}
}
