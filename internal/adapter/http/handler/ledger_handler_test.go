package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/splittab/internal/adapter/http/dto"
	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/usecase"
)

type ledgerServiceStub struct {
	balanceFn func(ctx context.Context, viewpoint, other domain.Member) (decimal.Decimal, error)
	summaryFn func(ctx context.Context, viewpoint domain.Member) (domain.Totals, error)
	rankedFn  func(ctx context.Context, viewpoint domain.Member) ([]usecase.MemberBalance, error)
	historyFn func(ctx context.Context, viewpoint, other domain.Member) ([]domain.HistoryItem, error)
}

func (s *ledgerServiceStub) BalanceWith(ctx context.Context, viewpoint, other domain.Member) (decimal.Decimal, error) {
	return s.balanceFn(ctx, viewpoint, other)
}

func (s *ledgerServiceStub) Summary(ctx context.Context, viewpoint domain.Member) (domain.Totals, error) {
	return s.summaryFn(ctx, viewpoint)
}

func (s *ledgerServiceStub) RankedMembers(ctx context.Context, viewpoint domain.Member) ([]usecase.MemberBalance, error) {
	return s.rankedFn(ctx, viewpoint)
}

func (s *ledgerServiceStub) PairHistory(ctx context.Context, viewpoint, other domain.Member) ([]domain.HistoryItem, error) {
	return s.historyFn(ctx, viewpoint, other)
}

func mustDate(t *testing.T, s string) time.Time {
	t.Helper()

	day, err := time.Parse("2006-01-02", s)
	if err != nil {
		t.Fatalf("bad date fixture %q: %v", s, err)
	}

	return day
}

func requestWithMember(req *http.Request, member string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("member", member)

	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestLedgerHandler_GetBalance(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		balanceFn: func(ctx context.Context, viewpoint, other domain.Member) (decimal.Decimal, error) {
			assert.Equal(t, domain.Member("Arun"), viewpoint)
			assert.Equal(t, domain.Member("Vivek"), other)
			return decimal.RequireFromString("700"), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members/Vivek/balance?viewpoint=Arun", nil)
	req = requestWithMember(req, "Vivek")
	rec := httptest.NewRecorder()

	h.GetBalance(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Balance.Equal(decimal.RequireFromString("700")))
	assert.Equal(t, "owes_you", resp.Status)
}

func TestLedgerHandler_GetBalance_MissingViewpoint(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		balanceFn: func(ctx context.Context, viewpoint, other domain.Member) (decimal.Decimal, error) {
			t.Fatal("BalanceWith should not be called without a viewpoint")
			return decimal.Zero, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members/Vivek/balance", nil)
	req = requestWithMember(req, "Vivek")
	rec := httptest.NewRecorder()

	h.GetBalance(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestLedgerHandler_GetBalance_UnknownMember(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		balanceFn: func(ctx context.Context, viewpoint, other domain.Member) (decimal.Decimal, error) {
			return decimal.Zero, domain.ErrUnknownMember
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members/Stranger/balance?viewpoint=Arun", nil)
	req = requestWithMember(req, "Stranger")
	rec := httptest.NewRecorder()

	h.GetBalance(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLedgerHandler_GetSummary(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		summaryFn: func(ctx context.Context, viewpoint domain.Member) (domain.Totals, error) {
			return domain.Totals{
				OwedToMe: decimal.RequireFromString("950"),
				IOwe:     decimal.RequireFromString("120"),
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/summary?viewpoint=Arun", nil)
	rec := httptest.NewRecorder()

	h.GetSummary(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.SummaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Arun", resp.Viewpoint)
	assert.True(t, resp.OwedToMe.Equal(decimal.RequireFromString("950")))
	assert.True(t, resp.IOwe.Equal(decimal.RequireFromString("120")))
}

func TestLedgerHandler_ListMembers(t *testing.T) {
	h := NewLedgerHandler(&ledgerServiceStub{
		rankedFn: func(ctx context.Context, viewpoint domain.Member) ([]usecase.MemberBalance, error) {
			return []usecase.MemberBalance{
				{Member: "Arun", IsViewpoint: true, Balance: decimal.Zero},
				{Member: "Vivek", Balance: decimal.RequireFromString("700")},
				{Member: "Nidit", Balance: decimal.RequireFromString("-300")},
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members?viewpoint=Arun", nil)
	rec := httptest.NewRecorder()

	h.ListMembers(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.ListMembersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Members, 3)
	assert.True(t, resp.Members[0].IsViewpoint)
	assert.Equal(t, "owes_you", resp.Members[1].Status)
	assert.Equal(t, "you_owe", resp.Members[2].Status)
}

func TestLedgerHandler_GetHistory(t *testing.T) {
	day := mustDate(t, "2025-06-12")
	item := domain.HistoryItem{
		Transaction: &domain.Transaction{
			ID:         "tx-1",
			FromMember: "Arun",
			ToMember:   "Vivek",
			Kind:       domain.KindLend,
			Amount:     decimal.RequireFromString("700"),
			OccurredOn: &day,
			RecordedAt: day,
		},
		Label:        "You lent",
		SignedAmount: decimal.RequireFromString("700"),
	}

	h := NewLedgerHandler(&ledgerServiceStub{
		historyFn: func(ctx context.Context, viewpoint, other domain.Member) ([]domain.HistoryItem, error) {
			return []domain.HistoryItem{item}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/members/Vivek/history?viewpoint=Arun", nil)
	req = requestWithMember(req, "Vivek")
	rec := httptest.NewRecorder()

	h.GetHistory(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp dto.HistoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "You lent", resp.Items[0].Label)
	require.NotNil(t, resp.Items[0].Transaction.OccurredOn)
	assert.Equal(t, "2025-06-12", *resp.Items[0].Transaction.OccurredOn)
}
