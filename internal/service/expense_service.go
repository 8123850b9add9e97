// Package service implements the request-facing operations of the ledger:
// recording and deleting expenses, managing groups, settling up, and
// producing balance, feed, and report views. Services validate input against
// group membership, call into the pure calculator/ledger packages, and talk
// to storage; they hold no state of their own.
package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/notify"
	"github.com/splitease/splitease/internal/storage"
)

// ExpenseService records and deletes expenses.
type ExpenseService struct {
	store    storage.Store
	notifier notify.Notifier
}

// NewExpenseService creates an ExpenseService with the given storage backend
// and notifier.
func NewExpenseService(store storage.Store, notifier notify.Notifier) *ExpenseService {
	return &ExpenseService{store: store, notifier: notifier}
}

// CreateExpenseInput is the caller-supplied description of a new expense.
// Ratios are required for ratio splits, ExactShares for exact splits.
// Empty Participants means "the whole group", which is only meaningful for
// equal splits.
type CreateExpenseInput struct {
	GroupID      string
	Description  string
	Amount       decimal.Decimal
	PaidBy       string
	SplitType    models.SplitType
	Participants []string
	Ratios       []int
	ExactShares  []decimal.Decimal
}

// CreateExpense validates the input, computes the splits, and persists the
// expense with its splits as one atomic unit. Other participants are
// notified after the write; notification failures are logged and ignored.
func (s *ExpenseService) CreateExpense(ctx context.Context, cur models.CurrentUser, in CreateExpenseInput) (*models.Expense, []models.ExpenseSplit, error) {
	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, nil, err
	}
	if !group.HasMember(cur.UserID) {
		return nil, nil, models.ErrAccessDenied("you must be a member of group %s to add expenses", group.ID)
	}
	if in.Description == "" {
		return nil, nil, models.ErrValidation("description required")
	}
	if in.PaidBy == "" {
		in.PaidBy = cur.UserID
	}
	if !group.HasMember(in.PaidBy) {
		return nil, nil, models.ErrValidation("payer %s is not a member of group %s", in.PaidBy, group.ID)
	}

	participants := in.Participants
	if len(participants) == 0 {
		// An unspecified participant list means the whole group, but only an
		// equal split can be expanded that way.
		if in.SplitType != models.SplitEqual {
			return nil, nil, models.ErrValidation("%s split requires an explicit participant list", in.SplitType)
		}
		participants = group.Members
	}
	for _, p := range participants {
		if !group.HasMember(p) {
			return nil, nil, models.ErrValidation("participant %s is not a member of group %s", p, group.ID)
		}
	}

	shares, err := calculator.ComputeSplits(in.Amount, in.SplitType, participants, in.Ratios, in.ExactShares)
	if err != nil {
		return nil, nil, err
	}

	expense := &models.Expense{
		GroupID:     group.ID,
		Description: in.Description,
		Amount:      in.Amount,
		PaidBy:      in.PaidBy,
		CreatedBy:   cur.UserID,
		SplitType:   in.SplitType,
	}
	splits := make([]models.ExpenseSplit, len(shares))
	for i, share := range shares {
		splits[i] = models.ExpenseSplit{
			UserID: share.UserID,
			Share:  share.Share,
			Paid:   decimal.Zero,
			Ratio:  share.Ratio,
		}
	}

	if err := s.store.CreateExpense(ctx, expense, splits); err != nil {
		slog.Error("CreateExpense failed", "group_id", group.ID, "error", err)
		return nil, nil, err
	}

	s.notifyParticipants(ctx, group, expense, splits)

	return expense, splits, nil
}

// DeleteExpense removes an expense and its splits. Any group member may
// delete, matching how any member may record.
func (s *ExpenseService) DeleteExpense(ctx context.Context, cur models.CurrentUser, expenseID string) error {
	expense, err := s.store.GetExpense(ctx, expenseID)
	if err != nil {
		return err
	}
	group, err := s.store.GetGroup(ctx, expense.GroupID)
	if err != nil {
		return err
	}
	if !group.HasMember(cur.UserID) {
		return models.ErrAccessDenied("you must be a member of group %s to delete expenses", group.ID)
	}

	if err := s.store.DeleteExpense(ctx, expenseID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", expenseID, "error", err)
		return err
	}
	return nil
}

// notifyParticipants tells every split participant other than the payer
// about the new expense.
func (s *ExpenseService) notifyParticipants(ctx context.Context, group *models.Group, expense *models.Expense, splits []models.ExpenseSplit) {
	ids := make([]string, 0, len(splits)+1)
	for _, split := range splits {
		ids = append(ids, split.UserID)
	}
	ids = append(ids, expense.PaidBy)

	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		slog.Warn("notify: failed to resolve users", "expense_id", expense.ID, "error", err)
		return
	}

	payerName := expense.PaidBy
	if payer, ok := users[expense.PaidBy]; ok {
		payerName = payer.DisplayName()
	}

	for _, split := range splits {
		if split.UserID == expense.PaidBy {
			continue
		}
		recipientName := split.UserID
		if u, ok := users[split.UserID]; ok {
			recipientName = u.DisplayName()
		}
		n := notify.ExpenseAdded{
			RecipientID:   split.UserID,
			RecipientName: recipientName,
			GroupName:     group.Name,
			Description:   expense.Description,
			Amount:        expense.Amount,
			PayerName:     payerName,
			Share:         split.Share,
		}
		if err := s.notifier.NotifyExpenseAdded(ctx, n); err != nil {
			slog.Warn("notify: delivery failed", "recipient_id", split.UserID, "error", err)
		}
	}
}
