package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestTransactionValidate(t *testing.T) {
	t.Parallel()

	valid := Transaction{
		ID:         "t1",
		FromMember: "Arun",
		ToMember:   "Vivek",
		Kind:       KindLend,
		Amount:     decimal.NewFromInt(100),
		RecordedAt: time.Now().UTC(),
	}

	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid transaction, got %v", err)
	}

	same := valid
	same.ToMember = "Arun"
	if err := same.Validate(); !errors.Is(err, ErrSameMember) {
		t.Fatalf("expected ErrSameMember, got %v", err)
	}

	zero := valid
	zero.Amount = decimal.Zero
	if err := zero.Validate(); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount, got %v", err)
	}

	badKind := valid
	badKind.Kind = Kind("transfer")
	if err := badKind.Validate(); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestParseKind(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"borrow", "lend", "repayment"} {
		kind, err := ParseKind(s)
		if err != nil {
			t.Fatalf("expected %q to parse, got %v", s, err)
		}
		if string(kind) != s {
			t.Fatalf("expected %q, got %q", s, kind)
		}
	}

	if _, err := ParseKind("gift"); !errors.Is(err, ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestEffectiveDate(t *testing.T) {
	t.Parallel()

	recorded := time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC)
	occurred := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	withDate := Transaction{RecordedAt: recorded, OccurredOn: &occurred}
	if !withDate.EffectiveDate().Equal(occurred) {
		t.Fatalf("expected occurred-on to win, got %s", withDate.EffectiveDate())
	}

	withoutDate := Transaction{RecordedAt: recorded}
	if !withoutDate.EffectiveDate().Equal(recorded) {
		t.Fatalf("expected recorded-at fallback, got %s", withoutDate.EffectiveDate())
	}
}

func TestInvolves(t *testing.T) {
	t.Parallel()

	entry := Transaction{FromMember: "Arun", ToMember: "Vivek"}

	if !entry.Involves("Arun", "Vivek") || !entry.Involves("Vivek", "Arun") {
		t.Fatal("expected pair match in both directions")
	}
	if entry.Involves("Arun", "Nidit") {
		t.Fatal("expected no match for a different pair")
	}
}
