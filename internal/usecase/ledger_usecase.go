package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/infrastructure/metrics"
)

// LedgerUseCase derives balance views from the transaction log. It
// holds no state beyond the injected roster: every call re-fetches the
// snapshot and recomputes, so an output is exactly as fresh as the
// snapshot it was computed from.
type LedgerUseCase struct {
	txRepo  TransactionRepository
	roster  domain.Roster
	metrics *metrics.Metrics
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(txRepo TransactionRepository, roster domain.Roster, metrics *metrics.Metrics) *LedgerUseCase {
	return &LedgerUseCase{
		txRepo:  txRepo,
		roster:  roster,
		metrics: metrics,
	}
}

func (uc *LedgerUseCase) observeDerivation(snapshotSize int) {
	if uc.metrics == nil {
		return
	}

	uc.metrics.BalanceComputations.Inc()
	uc.metrics.SnapshotSize.Observe(float64(snapshotSize))
}

// MemberBalance is one roster member with their balance against the
// viewpoint, in display rank order.
type MemberBalance struct {
	Member      domain.Member
	Balance     decimal.Decimal
	IsViewpoint bool
}

// BalanceWith returns the signed net balance between viewpoint and
// other: positive means other owes viewpoint.
func (uc *LedgerUseCase) BalanceWith(ctx context.Context, viewpoint, other domain.Member) (decimal.Decimal, error) {
	if err := domain.ValidateMembers(uc.roster, viewpoint, other); err != nil {
		return decimal.Zero, err
	}

	txs, err := uc.txRepo.ListByPair(ctx, viewpoint, other)
	if err != nil {
		return decimal.Zero, err
	}

	uc.observeDerivation(len(txs))

	return domain.PairwiseBalance(txs, viewpoint, other), nil
}

// Summary returns the viewpoint's aggregate exposure in both
// directions across the whole roster.
func (uc *LedgerUseCase) Summary(ctx context.Context, viewpoint domain.Member) (domain.Totals, error) {
	if !uc.roster.Contains(viewpoint) {
		return domain.Totals{}, domain.ErrUnknownMember
	}

	txs, err := uc.txRepo.ListAll(ctx)
	if err != nil {
		return domain.Totals{}, err
	}

	uc.observeDerivation(len(txs))

	return domain.AggregateTotals(txs, viewpoint, uc.roster.Others(viewpoint)), nil
}

// RankedMembers returns the roster in display order for the viewpoint,
// each member annotated with their current pairwise balance.
func (uc *LedgerUseCase) RankedMembers(ctx context.Context, viewpoint domain.Member) ([]MemberBalance, error) {
	if !uc.roster.Contains(viewpoint) {
		return nil, domain.ErrUnknownMember
	}

	txs, err := uc.txRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	uc.observeDerivation(len(txs))

	ranked := domain.RankMembers(uc.roster, viewpoint, txs)

	result := make([]MemberBalance, 0, len(ranked))
	for _, m := range ranked {
		mb := MemberBalance{Member: m, Balance: decimal.Zero}
		if m == viewpoint {
			mb.IsViewpoint = true
		} else {
			mb.Balance = domain.PairwiseBalance(txs, viewpoint, m)
		}
		result = append(result, mb)
	}

	return result, nil
}

// PairHistory returns the annotated transaction history between
// viewpoint and other, newest first.
func (uc *LedgerUseCase) PairHistory(ctx context.Context, viewpoint, other domain.Member) ([]domain.HistoryItem, error) {
	if err := domain.ValidateMembers(uc.roster, viewpoint, other); err != nil {
		return nil, err
	}

	txs, err := uc.txRepo.ListByPair(ctx, viewpoint, other)
	if err != nil {
		return nil, err
	}

	return domain.PairHistory(txs, viewpoint, other), nil
}
