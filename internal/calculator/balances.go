package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
)

// ExpenseWithSplits pairs an expense with its split rows, the unit the
// aggregation walks over.
type ExpenseWithSplits struct {
	Expense *models.Expense
	Splits  []models.ExpenseSplit
}

// Balance is the aggregate view of a group's history from one user's
// perspective.
type Balance struct {
	// PaidTotal is the sum of amounts of expenses this user paid.
	PaidTotal decimal.Decimal

	// OwnShare is the sum of this user's own split shares across all
	// expenses they participate in.
	OwnShare decimal.Decimal

	// OweTo maps other user IDs to the amount this user owes them.
	OweTo map[string]decimal.Decimal

	// OwedBy maps other user IDs to the amount they owe this user.
	OwedBy map[string]decimal.Decimal
}

// Net returns the pairwise net balance with other: positive means other owes
// the perspective user, negative means the perspective user owes other.
func (b *Balance) Net(other string) decimal.Decimal {
	return b.OwedBy[other].Sub(b.OweTo[other])
}

// NetAll returns the pairwise nets for every counterparty that appears on
// either side of the balance.
func (b *Balance) NetAll() map[string]decimal.Decimal {
	nets := make(map[string]decimal.Decimal)
	for id := range b.OwedBy {
		nets[id] = b.Net(id)
	}
	for id := range b.OweTo {
		if _, ok := nets[id]; !ok {
			nets[id] = b.Net(id)
		}
	}
	return nets
}

// Aggregate folds a group's expenses, splits, and settlements into a balance
// from the perspective of one user. The computation is a single pass and
// order-independent: money is only moved between totals, never created.
//
// For each expense:
//   - paid by the perspective user: every other participant's share lands in
//     OwedBy, and the user's own share accrues to OwnShare
//   - paid by someone else: the perspective user's share (if any) accrues to
//     both OwnShare and OweTo[payer]
//
// Settlements offset the pairwise nets directly: a payment from the
// perspective user reduces what they owe the payee, and a payment to them
// reduces what the payer still owes.
func Aggregate(history []ExpenseWithSplits, settlements []*models.Settlement, perspectiveUserID string) *Balance {
	b := &Balance{
		PaidTotal: decimal.Zero,
		OwnShare:  decimal.Zero,
		OweTo:     make(map[string]decimal.Decimal),
		OwedBy:    make(map[string]decimal.Decimal),
	}

	for _, ews := range history {
		exp := ews.Expense
		if exp.PaidBy == perspectiveUserID {
			b.PaidTotal = b.PaidTotal.Add(exp.Amount)
			for _, split := range ews.Splits {
				if split.UserID == perspectiveUserID {
					b.OwnShare = b.OwnShare.Add(split.Share)
					continue
				}
				b.OwedBy[split.UserID] = b.OwedBy[split.UserID].Add(split.Share)
			}
			continue
		}

		for _, split := range ews.Splits {
			if split.UserID == perspectiveUserID {
				b.OwnShare = b.OwnShare.Add(split.Share)
				b.OweTo[exp.PaidBy] = b.OweTo[exp.PaidBy].Add(split.Share)
			}
		}
	}

	for _, s := range settlements {
		switch perspectiveUserID {
		case s.PayerID:
			b.OweTo[s.PayeeID] = b.OweTo[s.PayeeID].Sub(s.Amount)
		case s.PayeeID:
			b.OwedBy[s.PayerID] = b.OwedBy[s.PayerID].Sub(s.Amount)
		}
	}

	return b
}
