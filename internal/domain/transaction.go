package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Kind is the type of a ledger transaction, always phrased from the
// recording member's point of view.
type Kind string

const (
	// KindBorrow means the actor borrowed money from the counterparty.
	KindBorrow Kind = "borrow"
	// KindLend means the actor lent money to the counterparty.
	KindLend Kind = "lend"
	// KindRepayment means the actor paid the counterparty back.
	KindRepayment Kind = "repayment"
)

// ParseKind parses a kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBorrow, KindLend, KindRepayment:
		return Kind(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, s)
	}
}

// Transaction is a single directional entry in the shared ledger.
// FromMember is the member who recorded it (the actor). ID, FromMember,
// ToMember and Kind are immutable once created; editing direction or
// kind requires delete and recreate.
type Transaction struct {
	ID         string
	FromMember Member
	ToMember   Member
	Kind       Kind
	Amount     decimal.Decimal
	Note       string
	// OccurredOn is the calendar date the transfer is considered to
	// have happened. Nil means fall back to RecordedAt for ordering.
	// Never used for balance computation.
	OccurredOn *time.Time
	RecordedAt time.Time
}

// Validate checks the structural invariants of a transaction.
func (t *Transaction) Validate() error {
	if t.FromMember == t.ToMember {
		return ErrSameMember
	}
	if !t.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return err
	}
	return nil
}

// EffectiveDate is the instant used for history ordering: OccurredOn
// when present, otherwise RecordedAt.
func (t *Transaction) EffectiveDate() time.Time {
	if t.OccurredOn != nil {
		return *t.OccurredOn
	}
	return t.RecordedAt
}

// Involves reports whether the transaction is between exactly the two
// given members, in either direction.
func (t *Transaction) Involves(a, b Member) bool {
	return (t.FromMember == a && t.ToMember == b) ||
		(t.FromMember == b && t.ToMember == a)
}
