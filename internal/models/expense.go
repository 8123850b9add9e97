package models

import "github.com/shopspring/decimal"

// SplitType is the policy governing how an expense's amount is divided
// among its participants.
type SplitType string

const (
	// SplitEqual divides the amount evenly among participants.
	SplitEqual SplitType = "equal"
	// SplitRatio divides the amount by integer percentages summing to 100.
	SplitRatio SplitType = "ratio"
	// SplitExact uses caller-supplied per-participant amounts.
	SplitExact SplitType = "exact"
)

// Valid reports whether t is a known split type.
func (t SplitType) Valid() bool {
	switch t {
	case SplitEqual, SplitRatio, SplitExact:
		return true
	}
	return false
}

// Expense is the root financial event of the ledger. Immutable once
// created; the only mutation is deletion, which removes its splits with it.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// GroupID is the group this expense belongs to.
	GroupID string

	// Description is the human-readable label (e.g., "Dinner", "Fuel").
	Description string

	// Amount is the full expense amount.
	Amount decimal.Decimal

	// PaidBy is the user ID of the member who paid.
	PaidBy string

	// CreatedBy is the user ID of the member who recorded the expense.
	CreatedBy string

	// SplitType is the policy used to divide Amount.
	SplitType SplitType

	// CreatedAt is the Unix timestamp when the expense was recorded.
	CreatedAt int64
}

// ExpenseSplit is one participant's share of an expense. The splits of an
// expense always sum to the expense amount.
type ExpenseSplit struct {
	// ID is the unique identifier for the split row (UUID format).
	ID string

	// ExpenseID is the parent expense. Splits never outlive their expense.
	ExpenseID string

	// UserID is the participant this share belongs to.
	UserID string

	// Share is the portion of the expense amount attributed to UserID.
	Share decimal.Decimal

	// Paid tracks settlement progress against this share.
	Paid decimal.Decimal

	// Ratio is the integer percentage for ratio splits, 0 otherwise.
	Ratio int
}
