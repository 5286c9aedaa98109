package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/usecase"
)

// dateLayout is the wire format for calendar dates.
const dateLayout = "2006-01-02"

// AddTransactionRequest represents a request to record a transaction.
type AddTransactionRequest struct {
	FromMember string          `json:"from_member"`
	ToMember   string          `json:"to_member"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	OccurredOn *string         `json:"occurred_on,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *AddTransactionRequest) ToUseCaseInput() (usecase.AddTransactionInput, error) {
	occurredOn, err := parseDate(r.OccurredOn)
	if err != nil {
		return usecase.AddTransactionInput{}, err
	}

	return usecase.AddTransactionInput{
		FromMember: domain.Member(r.FromMember),
		ToMember:   domain.Member(r.ToMember),
		Kind:       r.Kind,
		Amount:     r.Amount,
		Note:       r.Note,
		OccurredOn: occurredOn,
	}, nil
}

// EditTransactionRequest represents a request to edit a transaction's
// amount, note or date.
type EditTransactionRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	OccurredOn *string         `json:"occurred_on,omitempty"`
}

// ToUseCaseInput converts to use case input for the given transaction.
func (r *EditTransactionRequest) ToUseCaseInput(id string) (usecase.EditTransactionInput, error) {
	occurredOn, err := parseDate(r.OccurredOn)
	if err != nil {
		return usecase.EditTransactionInput{}, err
	}

	return usecase.EditTransactionInput{
		ID:         id,
		Amount:     r.Amount,
		Note:       r.Note,
		OccurredOn: occurredOn,
	}, nil
}

// SettleUpRequest represents a request to settle a pair's balance.
type SettleUpRequest struct {
	Viewpoint string `json:"viewpoint"`
	Other     string `json:"other"`
}

func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}

	t, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q: expected YYYY-MM-DD", *s)
	}

	return &t, nil
}
