package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
)

// CreateExpense persists an expense and all of its split rows in a single
// transaction. A partial write (expense without splits) would corrupt the
// ledger, so any failure rolls the whole unit back.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense, splits []models.ExpenseSplit) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, group_id, description, amount, paid_by, created_by, split_type, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.GroupID, expense.Description, expense.Amount.String(),
		expense.PaidBy, expense.CreatedBy, string(expense.SplitType), expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for i := range splits {
		split := &splits[i]
		if split.ID == "" {
			split.ID = uuid.New().String()
		}
		split.ExpenseID = expense.ID

		_, err = tx.ExecContext(ctx,
			`INSERT INTO expense_splits (id, expense_id, user_id, share, paid, ratio)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			split.ID, split.ExpenseID, split.UserID, split.Share.String(), split.Paid.String(), split.Ratio,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense split: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	expense := &models.Expense{}
	var amount, splitType string

	err := s.db.QueryRowContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, created_by, split_type, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	).Scan(&expense.ID, &expense.GroupID, &expense.Description, &amount,
		&expense.PaidBy, &expense.CreatedBy, &splitType, &expense.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, models.ErrNotFound("expense not found: %s", expenseID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	expense.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
	}
	expense.SplitType = models.SplitType(splitType)

	return expense, nil
}

// ListExpensesByGroup retrieves all expenses of a group, newest first.
func (s *SQLiteStore) ListExpensesByGroup(ctx context.Context, groupID string) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, group_id, description, amount, paid_by, created_by, split_type, created_at
		 FROM expenses WHERE group_id = ? ORDER BY created_at DESC, id`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses by group: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense := &models.Expense{}
		var amount, splitType string
		if err := rows.Scan(&expense.ID, &expense.GroupID, &expense.Description, &amount,
			&expense.PaidBy, &expense.CreatedBy, &splitType, &expense.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expense.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("failed to parse expense amount %q: %w", amount, err)
		}
		expense.SplitType = models.SplitType(splitType)
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	return expenses, nil
}

// ListSplitsByExpenseIDs retrieves splits for a set of expenses, keyed by
// expense ID.
func (s *SQLiteStore) ListSplitsByExpenseIDs(ctx context.Context, expenseIDs []string) (map[string][]models.ExpenseSplit, error) {
	result := make(map[string][]models.ExpenseSplit)
	if len(expenseIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT id, expense_id, user_id, share, paid, ratio
		FROM expense_splits
		WHERE expense_id IN (?` + repeatPlaceholder(len(expenseIDs)-1) + `)
		ORDER BY expense_id, id`

	args := make([]interface{}, len(expenseIDs))
	for i, id := range expenseIDs {
		args[i] = id
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expense splits: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var split models.ExpenseSplit
		var share, paid string
		if err := rows.Scan(&split.ID, &split.ExpenseID, &split.UserID, &share, &paid, &split.Ratio); err != nil {
			return nil, fmt.Errorf("failed to scan expense split: %w", err)
		}
		split.Share, err = decimal.NewFromString(share)
		if err != nil {
			return nil, fmt.Errorf("failed to parse split share %q: %w", share, err)
		}
		split.Paid, err = decimal.NewFromString(paid)
		if err != nil {
			return nil, fmt.Errorf("failed to parse split paid %q: %w", paid, err)
		}
		result[split.ExpenseID] = append(result[split.ExpenseID], split)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expense splits: %w", err)
	}

	return result, nil
}

// DeleteExpense removes an expense and its splits as one unit. The splits
// are deleted explicitly inside the transaction rather than left to ON
// DELETE CASCADE, so split rows can never outlive their expense even on a
// connection where the foreign-key pragma is off.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM expense_splits WHERE expense_id = ?", expenseID); err != nil {
		return fmt.Errorf("failed to delete expense splits: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", expenseID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deleted rows: %w", err)
	}
	if affected == 0 {
		return models.ErrNotFound("expense not found: %s", expenseID)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
