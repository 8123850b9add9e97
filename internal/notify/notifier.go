// Package notify is the seam for telling group members about new expenses.
// The ledger never depends on how messages get delivered; a delivery failure
// is logged, not propagated, so it can never fail a write.
package notify

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"
)

// ExpenseAdded describes a newly recorded expense from one recipient's
// point of view.
type ExpenseAdded struct {
	RecipientID   string
	RecipientName string
	GroupName     string
	Description   string
	Amount        decimal.Decimal
	PayerName     string
	Share         decimal.Decimal
}

// Notifier delivers expense notifications to group members.
type Notifier interface {
	NotifyExpenseAdded(ctx context.Context, n ExpenseAdded) error
}

// LogNotifier writes notifications to the log. It stands in for an SMS or
// push gateway in development and tests.
type LogNotifier struct{}

// NotifyExpenseAdded logs the notification.
func (LogNotifier) NotifyExpenseAdded(ctx context.Context, n ExpenseAdded) error {
	slog.Info("expense notification",
		"recipient_id", n.RecipientID,
		"group", n.GroupName,
		"description", n.Description,
		"amount", n.Amount,
		"paid_by", n.PayerName,
		"share", n.Share,
	)
	return nil
}
