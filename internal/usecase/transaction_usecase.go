package usecase

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/splittab/internal/domain"
	"github.com/iho/splittab/internal/infrastructure/metrics"
)

// TransactionUseCase handles the write path of the ledger: add, edit,
// delete and settle-up. All writes go through the retrier so transient
// database failures are retried before surfacing.
type TransactionUseCase struct {
	txRepo  TransactionRepository
	idGen   IDGenerator
	retrier Retrier
	roster  domain.Roster
	metrics *metrics.Metrics
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txRepo TransactionRepository,
	idGen IDGenerator,
	retrier Retrier,
	roster domain.Roster,
	metrics *metrics.Metrics,
) *TransactionUseCase {
	return &TransactionUseCase{
		txRepo:  txRepo,
		idGen:   idGen,
		retrier: retrier,
		roster:  roster,
		metrics: metrics,
	}
}

// AddTransactionInput represents input for recording a transaction.
type AddTransactionInput struct {
	FromMember domain.Member
	ToMember   domain.Member
	Kind       string
	Amount     decimal.Decimal
	Note       string
	OccurredOn *time.Time
}

// AddTransaction validates and records a new transaction. FromMember
// is the member recording it.
func (uc *TransactionUseCase) AddTransaction(ctx context.Context, input AddTransactionInput) (*domain.Transaction, error) {
	kind, err := domain.ParseKind(input.Kind)
	if err != nil {
		return nil, err
	}

	if err := domain.ValidateMembers(uc.roster, input.FromMember, input.ToMember); err != nil {
		return nil, err
	}

	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateNote(input.Note); err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		ID:         uc.idGen.Generate(),
		FromMember: input.FromMember,
		ToMember:   input.ToMember,
		Kind:       kind,
		Amount:     input.Amount,
		Note:       input.Note,
		OccurredOn: input.OccurredOn,
		RecordedAt: time.Now().UTC(),
	}

	if err := tx.Validate(); err != nil {
		return nil, err
	}

	err = uc.retrier.Retry(ctx, func() error {
		return uc.txRepo.Create(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsCreated.WithLabelValues(string(tx.Kind)).Inc()
		uc.metrics.TransactionAmount.Observe(tx.Amount.InexactFloat64())
	}

	return tx, nil
}

// EditTransactionInput represents input for editing a transaction.
// Only amount, note and occurred-on are editable; direction and kind
// are immutable (changing them means delete and recreate).
type EditTransactionInput struct {
	ID         string
	Amount     decimal.Decimal
	Note       string
	OccurredOn *time.Time
}

// EditTransaction re-validates and applies the editable fields of an
// existing transaction.
func (uc *TransactionUseCase) EditTransaction(ctx context.Context, input EditTransactionInput) (*domain.Transaction, error) {
	if err := domain.ValidateAmount(input.Amount); err != nil {
		return nil, err
	}

	if err := domain.ValidateNote(input.Note); err != nil {
		return nil, err
	}

	tx, err := uc.txRepo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	tx.Amount = input.Amount
	tx.Note = input.Note
	tx.OccurredOn = input.OccurredOn

	err = uc.retrier.Retry(ctx, func() error {
		return uc.txRepo.Update(ctx, tx)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsEdited.Inc()
	}

	return tx, nil
}

// DeleteTransaction removes a transaction by ID. Balances recomputed
// afterwards simply exclude it.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	err := uc.retrier.Retry(ctx, func() error {
		return uc.txRepo.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsDeleted.Inc()
	}

	return nil
}

// SettleUp records the repayment that zeroes out the balance between
// viewpoint and other. Returns nil when the pair is already settled.
func (uc *TransactionUseCase) SettleUp(ctx context.Context, viewpoint, other domain.Member) (*domain.Transaction, error) {
	if err := domain.ValidateMembers(uc.roster, viewpoint, other); err != nil {
		return nil, err
	}

	txs, err := uc.txRepo.ListByPair(ctx, viewpoint, other)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	settlement := domain.SettlementFor(txs, viewpoint, other, today)
	if settlement == nil {
		if uc.metrics != nil {
			uc.metrics.SettlementsNoOp.Inc()
		}

		return nil, nil
	}

	settlement.ID = uc.idGen.Generate()
	settlement.RecordedAt = now

	err = uc.retrier.Retry(ctx, func() error {
		return uc.txRepo.Create(ctx, settlement)
	})
	if err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.SettlementsCreated.Inc()
	}

	return settlement, nil
}
