package utils

import (
	"encoding/binary"
	"fmt"
	"strings"
	"unicode"

	"school_fees_backend/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const ledgerPrefix = "LGR"

// DeriveLedgerNumber builds the base ledger identifier for a student. The
// admission number is cleaned and upper-cased; a student without one gets a
// zero-padded identifier derived from their id.
func DeriveLedgerNumber(studentID uuid.UUID, admissionNumber *string) string {
	if admissionNumber != nil {
		cleaned := strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				return unicode.ToUpper(r)
			}
			return -1
		}, *admissionNumber)
		if cleaned != "" {
			return fmt.Sprintf("%s-%s", ledgerPrefix, cleaned)
		}
	}
	return fmt.Sprintf("%s-%010d", ledgerPrefix, binary.BigEndian.Uint32(studentID[:4]))
}

// GenerateUniqueLedgerNumber returns the base ledger number, or the first
// suffixed variant ("-2", "-3", ...) that is not already taken. A reopened
// account for the same student lands on the next suffix.
func GenerateUniqueLedgerNumber(tx *gorm.DB, base string) (string, error) {
	candidate := base
	for attempt := 2; ; attempt++ {
		var count int64
		if err := tx.Model(&models.StudentAccount{}).Where("ledger_number = ?", candidate).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, attempt)
	}
}
