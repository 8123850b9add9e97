// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"

	"github.com/splitease/splitease/internal/models"
)

// Store defines the persistence interface the ledger core depends on.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Reads used for balance computation only need per-group consistency: a
// reader must never observe an expense without its splits. CreateExpense and
// DeleteExpense guarantee this by writing the expense and its split rows as
// one atomic unit.
type Store interface {
	// CreateUser persists a new user account.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByEmail retrieves a user by email. Returns (nil, nil) when no
	// such user exists.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUserByID retrieves a user by ID.
	GetUserByID(ctx context.Context, id string) (*models.User, error)

	// GetUsersByIDs retrieves multiple users keyed by ID. Missing users are
	// omitted from the result.
	GetUsersByIDs(ctx context.Context, ids []string) (map[string]*models.User, error)

	// CreateGroup persists a group together with its initial member rows.
	// The group.ID field will be populated by the store.
	CreateGroup(ctx context.Context, group *models.Group) error

	// GetGroup retrieves a group and its member IDs.
	GetGroup(ctx context.Context, groupID string) (*models.Group, error)

	// ListGroupsForUser retrieves every group the user is a member of.
	ListGroupsForUser(ctx context.Context, userID string) ([]*models.Group, error)

	// AddGroupMembers adds members to a group, ignoring IDs already present.
	AddGroupMembers(ctx context.Context, groupID string, userIDs []string) error

	// RemoveGroupMember removes one membership edge. Split and settlement
	// rows the user already appears in are kept: membership is checked when
	// an expense is written, and history must keep summing to the recorded
	// amounts after the user leaves.
	RemoveGroupMember(ctx context.Context, groupID, userID string) error

	// CreateExpense persists an expense and all of its splits in a single
	// transaction: either everything lands or nothing does.
	CreateExpense(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error

	// GetExpense retrieves an expense by ID.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpensesByGroup retrieves all expenses of a group, newest first.
	ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error)

	// ListSplitsByExpenseIDs retrieves splits for a set of expenses, keyed
	// by expense ID.
	ListSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]models.ExpenseSplit, error)

	// DeleteExpense removes an expense and its splits as one unit.
	DeleteExpense(ctx context.Context, expenseID string) error

	// CreateSettlement appends a settlement row.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsByGroup retrieves all settlements for a group, newest
	// first.
	ListSettlementsByGroup(ctx context.Context, groupID string) ([]*models.Settlement, error)

	// ListSettlementsByPayer retrieves a group's settlements filtered by the
	// paying user.
	ListSettlementsByPayer(ctx context.Context, groupID, payerID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
