package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/splittab/internal/adapter/http/dto"
	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/usecase"
)

// LedgerService defines the behavior needed by LedgerHandler.
type LedgerService interface {
	BalanceWith(ctx context.Context, viewpoint, other domain.Member) (decimal.Decimal, error)
	Summary(ctx context.Context, viewpoint domain.Member) (domain.Totals, error)
	RankedMembers(ctx context.Context, viewpoint domain.Member) ([]usecase.MemberBalance, error)
	PairHistory(ctx context.Context, viewpoint, other domain.Member) ([]domain.HistoryItem, error)
}

// LedgerHandler handles balance view HTTP requests.
type LedgerHandler struct {
	ledgerUC LedgerService
}

// NewLedgerHandler creates a new LedgerHandler.
func NewLedgerHandler(ledgerUC LedgerService) *LedgerHandler {
	return &LedgerHandler{ledgerUC: ledgerUC}
}

// ListMembers returns the roster ranked for the viewpoint, with
// per-member balances.
func (h *LedgerHandler) ListMembers(w http.ResponseWriter, r *http.Request) {
	viewpoint, ok := viewpointQuery(w, r)
	if !ok {
		return
	}

	ranked, err := h.ledgerUC.RankedMembers(r.Context(), viewpoint)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.MembersFromDomain(viewpoint, ranked))
}

// GetBalance returns the pairwise balance between the viewpoint and the
// member in the path.
func (h *LedgerHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	viewpoint, ok := viewpointQuery(w, r)
	if !ok {
		return
	}
	other := domain.Member(chi.URLParam(r, "member"))

	balance, err := h.ledgerUC.BalanceWith(r.Context(), viewpoint, other)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceFromDomain(viewpoint, other, balance))
}

// GetSummary returns the viewpoint's aggregate totals.
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	viewpoint, ok := viewpointQuery(w, r)
	if !ok {
		return
	}

	totals, err := h.ledgerUC.Summary(r.Context(), viewpoint)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromDomain(viewpoint, totals))
}

// GetHistory returns the annotated transaction history between the
// viewpoint and the member in the path, newest first.
func (h *LedgerHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	viewpoint, ok := viewpointQuery(w, r)
	if !ok {
		return
	}
	other := domain.Member(chi.URLParam(r, "member"))

	items, err := h.ledgerUC.PairHistory(r.Context(), viewpoint, other)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.HistoryFromDomain(viewpoint, other, items))
}
