package service

import (
	"context"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/ledger"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

// LedgerService computes balances, feeds, and reports over a group's
// history. Each call works on one point-in-time snapshot of the group's
// rows; nothing is cached between requests.
type LedgerService struct {
	store storage.Store
}

// NewLedgerService creates a new LedgerService with the given storage
// backend.
func NewLedgerService(store storage.Store) *LedgerService {
	return &LedgerService{store: store}
}

// snapshot is one consistent read of a group's ledger rows.
type snapshot struct {
	group       *models.Group
	expenses    []*models.Expense
	splits      map[string][]models.ExpenseSplit
	settlements []*models.Settlement
	users       map[string]*models.User
}

func (s *LedgerService) loadSnapshot(ctx context.Context, cur models.CurrentUser, groupID string) (*snapshot, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(cur.UserID) {
		return nil, models.ErrAccessDenied("you must be a member of group %s", groupID)
	}

	expenses, err := s.store.ListExpensesByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(expenses))
	for i, exp := range expenses {
		ids[i] = exp.ID
	}
	splits, err := s.store.ListSplitsByExpenseIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	settlements, err := s.store.ListSettlementsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	users, err := s.store.GetUsersByIDs(ctx, group.Members)
	if err != nil {
		return nil, err
	}

	return &snapshot{
		group:       group,
		expenses:    expenses,
		splits:      splits,
		settlements: settlements,
		users:       users,
	}, nil
}

// Balances aggregates the group history from the caller's perspective.
func (s *LedgerService) Balances(ctx context.Context, cur models.CurrentUser, groupID string) (*calculator.Balance, error) {
	snap, err := s.loadSnapshot(ctx, cur, groupID)
	if err != nil {
		return nil, err
	}

	history := make([]calculator.ExpenseWithSplits, len(snap.expenses))
	for i, exp := range snap.expenses {
		history[i] = calculator.ExpenseWithSplits{Expense: exp, Splits: snap.splits[exp.ID]}
	}

	return calculator.Aggregate(history, snap.settlements, cur.UserID), nil
}

// Feed builds the caller's month-grouped transaction feed for a group.
func (s *LedgerService) Feed(ctx context.Context, cur models.CurrentUser, groupID string) ([]ledger.FeedMonth, error) {
	snap, err := s.loadSnapshot(ctx, cur, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.BuildFeed(snap.expenses, snap.splits, snap.users, cur.UserID), nil
}

// Report builds the caller's summary report for a group, optionally bounded
// to a period.
func (s *LedgerService) Report(ctx context.Context, cur models.CurrentUser, groupID string, period *ledger.Period) (*ledger.Report, error) {
	snap, err := s.loadSnapshot(ctx, cur, groupID)
	if err != nil {
		return nil, err
	}
	return ledger.BuildReport(groupID, snap.expenses, snap.splits, snap.users, cur.UserID, period), nil
}
