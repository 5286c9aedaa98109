package domain

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	t.Parallel()

	if err := ValidateAmount(decimal.NewFromInt(250)); err != nil {
		t.Fatalf("expected valid amount, got %v", err)
	}

	if err := ValidateAmount(decimal.Zero); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for zero, got %v", err)
	}

	if err := ValidateAmount(decimal.NewFromInt(-10)); !errors.Is(err, ErrInvalidAmount) {
		t.Fatalf("expected ErrInvalidAmount for negative, got %v", err)
	}

	max := decimal.RequireFromString(MaxAmount)
	if err := ValidateAmount(max); err != nil {
		t.Fatalf("expected max amount to be inclusive, got %v", err)
	}

	if err := ValidateAmount(max.Add(decimal.NewFromInt(1))); !errors.Is(err, ErrAmountTooLarge) {
		t.Fatalf("expected ErrAmountTooLarge, got %v", err)
	}
}

func TestValidateAmountFieldError(t *testing.T) {
	t.Parallel()

	err := ValidateAmount(decimal.Zero)

	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationError, got %T", err)
	}
	if ve.Field != "amount" {
		t.Fatalf("expected field amount, got %q", ve.Field)
	}
	if ve.Message == "" {
		t.Fatal("expected a user-facing message")
	}
}

func TestValidateNote(t *testing.T) {
	t.Parallel()

	if err := ValidateNote(""); err != nil {
		t.Fatalf("empty note should be valid, got %v", err)
	}

	if err := ValidateNote("chai at the dhaba"); err != nil {
		t.Fatalf("expected valid note, got %v", err)
	}

	if err := ValidateNote(strings.Repeat("a", MaxNoteLength)); err != nil {
		t.Fatalf("expected boundary note to be valid, got %v", err)
	}

	err := ValidateNote(strings.Repeat("a", MaxNoteLength+1))
	if !errors.Is(err, ErrNoteTooLong) {
		t.Fatalf("expected ErrNoteTooLong, got %v", err)
	}

	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "note" {
		t.Fatalf("expected note field error, got %v", err)
	}
}

func TestValidateMembers(t *testing.T) {
	t.Parallel()

	roster := Roster{"Arun", "Vivek", "Nidit"}

	if err := ValidateMembers(roster, "Arun", "Vivek"); err != nil {
		t.Fatalf("expected valid pair, got %v", err)
	}

	if err := ValidateMembers(roster, "Arun", "Arun"); !errors.Is(err, ErrSameMember) {
		t.Fatalf("expected ErrSameMember, got %v", err)
	}

	if err := ValidateMembers(roster, "Arun", "Stranger"); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}

	if err := ValidateMembers(roster, "Stranger", "Arun"); !errors.Is(err, ErrUnknownMember) {
		t.Fatalf("expected ErrUnknownMember, got %v", err)
	}
}

func TestValidateRoster(t *testing.T) {
	t.Parallel()

	if err := ValidateRoster(Roster{"Arun", "Vivek"}); err != nil {
		t.Fatalf("expected valid roster, got %v", err)
	}

	if err := ValidateRoster(nil); !errors.Is(err, ErrEmptyRoster) {
		t.Fatalf("expected ErrEmptyRoster, got %v", err)
	}

	if err := ValidateRoster(Roster{"Arun", "Arun"}); err == nil {
		t.Fatal("expected duplicate member error")
	}

	if err := ValidateRoster(Roster{"Arun", "  "}); err == nil {
		t.Fatal("expected blank member error")
	}
}
