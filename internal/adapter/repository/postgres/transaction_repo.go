package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/iho/splittab/internal/domain"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const createTransactionQuery = `
INSERT INTO transactions (id, from_member, to_member, kind, amount, note, occurred_on, recorded_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// Create inserts a new transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	_, err := r.pool.Exec(ctx, createTransactionQuery,
		tx.ID,
		string(tx.FromMember),
		string(tx.ToMember),
		string(tx.Kind),
		decimalToNumeric(tx.Amount),
		tx.Note,
		dateToPgDate(tx.OccurredOn),
		timeToPgTimestamptz(tx.RecordedAt),
	)

	return err
}

const getTransactionQuery = `
SELECT id, from_member, to_member, kind, amount, note, occurred_on, recorded_at
FROM transactions
WHERE id = $1
`

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	tx, err := scanTransaction(r.pool.QueryRow(ctx, getTransactionQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, err
	}

	return tx, nil
}

const updateTransactionQuery = `
UPDATE transactions
SET amount = $2, note = $3, occurred_on = $4
WHERE id = $1
`

// Update rewrites the mutable fields of an existing transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx *domain.Transaction) error {
	tag, err := r.pool.Exec(ctx, updateTransactionQuery,
		tx.ID,
		decimalToNumeric(tx.Amount),
		tx.Note,
		dateToPgDate(tx.OccurredOn),
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

// Delete removes a transaction by ID.
func (r *TransactionRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM transactions WHERE id = $1`, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}

const listTransactionsQuery = `
SELECT id, from_member, to_member, kind, amount, note, occurred_on, recorded_at
FROM transactions
ORDER BY recorded_at, id
`

// ListAll returns the full transaction snapshot in insertion order.
func (r *TransactionRepository) ListAll(ctx context.Context) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, listTransactionsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

const listByPairQuery = `
SELECT id, from_member, to_member, kind, amount, note, occurred_on, recorded_at
FROM transactions
WHERE (from_member = $1 AND to_member = $2) OR (from_member = $2 AND to_member = $1)
ORDER BY recorded_at, id
`

// ListByPair returns all transactions between two members, in either direction.
func (r *TransactionRepository) ListByPair(ctx context.Context, a, b domain.Member) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, listByPairQuery, string(a), string(b))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]*domain.Transaction, error) {
	var txs []*domain.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return txs, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var (
		tx         domain.Transaction
		from, to   string
		kind       string
		amount     pgtype.Numeric
		occurredOn pgtype.Date
		recordedAt pgtype.Timestamptz
	)

	err := row.Scan(&tx.ID, &from, &to, &kind, &amount, &tx.Note, &occurredOn, &recordedAt)
	if err != nil {
		return nil, err
	}

	tx.FromMember = domain.Member(from)
	tx.ToMember = domain.Member(to)
	tx.Kind = domain.Kind(kind)
	tx.Amount = numericToDecimal(amount)
	tx.OccurredOn = pgDateToDate(occurredOn)
	tx.RecordedAt = recordedAt.Time

	return &tx, nil
}

// Type conversion helpers.
func decimalToNumeric(d decimal.Decimal) pgtype.Numeric {
	var n pgtype.Numeric

	_ = n.Scan(d.String())

	return n
}

func numericToDecimal(n pgtype.Numeric) decimal.Decimal {
	if !n.Valid {
		return decimal.Zero
	}

	d, _ := decimal.NewFromString(n.Int.String())
	if n.Exp != 0 {
		d = d.Shift(n.Exp)
	}

	return d
}

func timeToPgTimestamptz(t time.Time) pgtype.Timestamptz {
	return pgtype.Timestamptz{Time: t, Valid: true}
}

func dateToPgDate(t *time.Time) pgtype.Date {
	if t == nil {
		return pgtype.Date{}
	}

	return pgtype.Date{Time: *t, Valid: true}
}

func pgDateToDate(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}

	t := d.Time

	return &t
}
