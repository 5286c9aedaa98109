package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SettlementNote marks transactions created by the settle-up operation.
const SettlementNote = "Settled up"

// Totals are the aggregate exposures of a viewpoint member across the
// roster. Both fields are always non-negative: each pairwise balance is
// clamped to its sign before summing, so a large debt never hides a
// large credit.
type Totals struct {
	OwedToMe decimal.Decimal
	IOwe     decimal.Decimal
}

// HistoryItem is one pair transaction annotated for display.
type HistoryItem struct {
	Transaction  *Transaction
	Label        string
	SignedAmount decimal.Decimal
}

// PairwiseBalance returns the signed net amount between viewpoint and
// other: positive means other owes viewpoint, negative means viewpoint
// owes other. The fold is commutative, so transaction order never
// affects the result.
func PairwiseBalance(txs []*Transaction, viewpoint, other Member) decimal.Decimal {
	balance := decimal.Zero
	for _, t := range txs {
		if !t.Involves(viewpoint, other) {
			continue
		}
		balance = balance.Add(signedEffect(t, viewpoint))
	}
	return balance
}

// signedEffect is the per-transaction sign rule, keyed on whether the
// actor is the viewpoint and on the transaction kind. Repayment is the
// easy one to get backwards: the actor paying back always reduces what
// the counterparty owes the actor.
func signedEffect(t *Transaction, viewpoint Member) decimal.Decimal {
	if t.FromMember == viewpoint {
		switch t.Kind {
		case KindLend:
			return t.Amount
		case KindBorrow, KindRepayment:
			return t.Amount.Neg()
		}
	} else {
		switch t.Kind {
		case KindLend:
			return t.Amount.Neg()
		case KindBorrow, KindRepayment:
			return t.Amount
		}
	}
	return decimal.Zero
}

// AggregateTotals computes the total owed to the viewpoint and the
// total the viewpoint owes, across the given counterparties.
func AggregateTotals(txs []*Transaction, viewpoint Member, others []Member) Totals {
	totals := Totals{OwedToMe: decimal.Zero, IOwe: decimal.Zero}
	for _, other := range others {
		if other == viewpoint {
			continue
		}
		balance := PairwiseBalance(txs, viewpoint, other)
		switch {
		case balance.IsPositive():
			totals.OwedToMe = totals.OwedToMe.Add(balance)
		case balance.IsNegative():
			totals.IOwe = totals.IOwe.Add(balance.Neg())
		}
	}
	return totals
}

// RankMembers orders the roster for display from the viewpoint's
// perspective: the viewpoint first, then members with nonzero balance
// by descending |balance|, then settled members. Equal entries keep
// roster declaration order.
func RankMembers(roster Roster, viewpoint Member, txs []*Transaction) []Member {
	ranked := make([]Member, 0, len(roster))
	var rest []Member
	for _, m := range roster {
		if m == viewpoint {
			ranked = append(ranked, m)
			continue
		}
		rest = append(rest, m)
	}

	magnitudes := make(map[Member]decimal.Decimal, len(rest))
	for _, m := range rest {
		magnitudes[m] = PairwiseBalance(txs, viewpoint, m).Abs()
	}

	sort.SliceStable(rest, func(i, j int) bool {
		return magnitudes[rest[i]].GreaterThan(magnitudes[rest[j]])
	})

	return append(ranked, rest...)
}

// PairHistory returns the transactions between viewpoint and other,
// newest first by effective date (OccurredOn when set, otherwise
// RecordedAt). Same-date entries order by RecordedAt then ID,
// descending, so the result is deterministic regardless of input order.
func PairHistory(txs []*Transaction, viewpoint, other Member) []HistoryItem {
	var pair []*Transaction
	for _, t := range txs {
		if t.Involves(viewpoint, other) {
			pair = append(pair, t)
		}
	}

	sort.SliceStable(pair, func(i, j int) bool {
		di, dj := pair[i].EffectiveDate(), pair[j].EffectiveDate()
		if !di.Equal(dj) {
			return di.After(dj)
		}
		if !pair[i].RecordedAt.Equal(pair[j].RecordedAt) {
			return pair[i].RecordedAt.After(pair[j].RecordedAt)
		}
		return pair[i].ID > pair[j].ID
	})

	items := make([]HistoryItem, 0, len(pair))
	for _, t := range pair {
		items = append(items, HistoryItem{
			Transaction:  t,
			Label:        historyLabel(t, viewpoint, other),
			SignedAmount: signedEffect(t, viewpoint),
		})
	}
	return items
}

func historyLabel(t *Transaction, viewpoint, other Member) string {
	mine := t.FromMember == viewpoint
	switch t.Kind {
	case KindRepayment:
		if mine {
			return "You paid back"
		}
		return string(other) + " paid back"
	case KindLend:
		if mine {
			return "You lent"
		}
		return string(other) + " lent you"
	default:
		if mine {
			return "You borrowed"
		}
		return string(other) + " borrowed"
	}
}

// SettlementFor builds the repayment that zeroes out the pair's
// current balance, with OccurredOn set to today. Returns nil when the
// pair is already settled, so a zero-amount transaction can never be
// created. The creditor records the repayment: a repayment folds as
// minus-amount for its actor, so only a repayment recorded by whoever
// is owed drives the balance to exactly zero. ID and RecordedAt are
// left for the caller to assign.
func SettlementFor(txs []*Transaction, viewpoint, other Member, today time.Time) *Transaction {
	balance := PairwiseBalance(txs, viewpoint, other)
	if balance.IsZero() {
		return nil
	}

	from, to := viewpoint, other
	if balance.IsNegative() {
		from, to = other, viewpoint
	}

	occurredOn := today
	return &Transaction{
		FromMember: from,
		ToMember:   to,
		Kind:       KindRepayment,
		Amount:     balance.Abs(),
		Note:       SettlementNote,
		OccurredOn: &occurredOn,
	}
}
