package domain

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Validation errors
var (
	ErrAmountTooLarge = errors.New("amount exceeds maximum allowed")
	ErrNoteTooLong    = errors.New("note exceeds maximum length")
)

// Validation constants
const (
	MaxNoteLength = 200
	MaxAmount     = "1000000"
)

// ValidationError is a field-level validation failure, surfaced to the
// user as a message against a specific input field.
type ValidationError struct {
	Field   string
	Message string
	err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.err
}

// ValidateAmount checks that amount is within (0, MaxAmount].
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return &ValidationError{
			Field:   "amount",
			Message: "amount must be greater than zero",
			err:     ErrInvalidAmount,
		}
	}

	maxAmount, _ := decimal.NewFromString(MaxAmount)
	if amount.GreaterThan(maxAmount) {
		return &ValidationError{
			Field:   "amount",
			Message: fmt.Sprintf("amount must not exceed %s", MaxAmount),
			err:     ErrAmountTooLarge,
		}
	}

	return nil
}

// ValidateNote checks the optional note against the length bound.
func ValidateNote(note string) error {
	if len(strings.TrimSpace(note)) > MaxNoteLength {
		return &ValidationError{
			Field:   "note",
			Message: fmt.Sprintf("note must be under %d characters", MaxNoteLength),
			err:     ErrNoteTooLong,
		}
	}

	return nil
}

// ValidateMembers checks that both members belong to the roster and
// differ from each other.
func ValidateMembers(roster Roster, from, to Member) error {
	if from == to {
		return ErrSameMember
	}
	if !roster.Contains(from) {
		return fmt.Errorf("%w: %s", ErrUnknownMember, from)
	}
	if !roster.Contains(to) {
		return fmt.Errorf("%w: %s", ErrUnknownMember, to)
	}
	return nil
}

// ValidateRoster checks that the roster is non-empty and free of
// duplicates.
func ValidateRoster(roster Roster) error {
	if len(roster) == 0 {
		return ErrEmptyRoster
	}

	seen := make(map[Member]bool, len(roster))
	for _, m := range roster {
		if strings.TrimSpace(string(m)) == "" {
			return fmt.Errorf("%w: blank member name", ErrUnknownMember)
		}
		if seen[m] {
			return fmt.Errorf("duplicate roster member: %s", m)
		}
		seen[m] = true
	}

	return nil
}
