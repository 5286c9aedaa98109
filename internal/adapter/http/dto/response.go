package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/usecase"
)

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID         string          `json:"id"`
	FromMember string          `json:"from_member"`
	ToMember   string          `json:"to_member"`
	Kind       string          `json:"kind"`
	Amount     decimal.Decimal `json:"amount"`
	Note       string          `json:"note,omitempty"`
	OccurredOn *string         `json:"occurred_on,omitempty"`
	RecordedAt time.Time       `json:"recorded_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	var occurredOn *string
	if t.OccurredOn != nil {
		formatted := t.OccurredOn.Format(dateLayout)
		occurredOn = &formatted
	}

	return &TransactionResponse{
		ID:         t.ID,
		FromMember: string(t.FromMember),
		ToMember:   string(t.ToMember),
		Kind:       string(t.Kind),
		Amount:     t.Amount,
		Note:       t.Note,
		OccurredOn: occurredOn,
		RecordedAt: t.RecordedAt,
	}
}

// BalanceResponse represents a pairwise balance in API responses.
// Status is "owes_you", "you_owe" or "settled" from the viewpoint's
// perspective.
type BalanceResponse struct {
	Viewpoint string          `json:"viewpoint"`
	Other     string          `json:"other"`
	Balance   decimal.Decimal `json:"balance"`
	Status    string          `json:"status"`
}

// BalanceFromDomain converts a pairwise balance to a response.
func BalanceFromDomain(viewpoint, other domain.Member, balance decimal.Decimal) *BalanceResponse {
	return &BalanceResponse{
		Viewpoint: string(viewpoint),
		Other:     string(other),
		Balance:   balance,
		Status:    balanceStatus(balance),
	}
}

// SummaryResponse represents aggregate totals in API responses.
type SummaryResponse struct {
	Viewpoint string          `json:"viewpoint"`
	OwedToMe  decimal.Decimal `json:"owed_to_me"`
	IOwe      decimal.Decimal `json:"i_owe"`
}

// SummaryFromDomain converts aggregate totals to a response.
func SummaryFromDomain(viewpoint domain.Member, totals domain.Totals) *SummaryResponse {
	return &SummaryResponse{
		Viewpoint: string(viewpoint),
		OwedToMe:  totals.OwedToMe,
		IOwe:      totals.IOwe,
	}
}

// MemberBalanceResponse represents one ranked roster member.
type MemberBalanceResponse struct {
	Member      string          `json:"member"`
	Balance     decimal.Decimal `json:"balance"`
	Status      string          `json:"status"`
	IsViewpoint bool            `json:"is_viewpoint,omitempty"`
}

// ListMembersResponse represents the ranked roster.
type ListMembersResponse struct {
	Viewpoint string                   `json:"viewpoint"`
	Members   []*MemberBalanceResponse `json:"members"`
}

// MembersFromDomain converts ranked member balances to a response.
func MembersFromDomain(viewpoint domain.Member, ranked []usecase.MemberBalance) *ListMembersResponse {
	members := make([]*MemberBalanceResponse, 0, len(ranked))
	for _, mb := range ranked {
		members = append(members, &MemberBalanceResponse{
			Member:      string(mb.Member),
			Balance:     mb.Balance,
			Status:      balanceStatus(mb.Balance),
			IsViewpoint: mb.IsViewpoint,
		})
	}

	return &ListMembersResponse{
		Viewpoint: string(viewpoint),
		Members:   members,
	}
}

// HistoryItemResponse represents one annotated pair transaction.
type HistoryItemResponse struct {
	Transaction  *TransactionResponse `json:"transaction"`
	Label        string               `json:"label"`
	SignedAmount decimal.Decimal      `json:"signed_amount"`
}

// HistoryResponse represents a pair's transaction history.
type HistoryResponse struct {
	Viewpoint string                 `json:"viewpoint"`
	Other     string                 `json:"other"`
	Items     []*HistoryItemResponse `json:"items"`
}

// HistoryFromDomain converts annotated history items to a response.
func HistoryFromDomain(viewpoint, other domain.Member, items []domain.HistoryItem) *HistoryResponse {
	result := make([]*HistoryItemResponse, 0, len(items))
	for _, item := range items {
		result = append(result, &HistoryItemResponse{
			Transaction:  TransactionFromDomain(item.Transaction),
			Label:        item.Label,
			SignedAmount: item.SignedAmount,
		})
	}

	return &HistoryResponse{
		Viewpoint: string(viewpoint),
		Other:     string(other),
		Items:     result,
	}
}

// SettleUpResponse represents the outcome of a settle-up request.
// Settlement is null when the pair was already settled.
type SettleUpResponse struct {
	Settlement *TransactionResponse `json:"settlement"`
	Settled    bool                 `json:"settled"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Field   string `json:"field,omitempty"`
}

func balanceStatus(balance decimal.Decimal) string {
	switch {
	case balance.IsPositive():
		return "owes_you"
	case balance.IsNegative():
		return "you_owe"
	default:
		return "settled"
	}
}
