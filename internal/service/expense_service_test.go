package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/notify"
	"github.com/splitease/splitease/internal/storage"
	"github.com/splitease/splitease/internal/storage/sqlite"
)

func newTestStore(t *testing.T) storage.Store {
	t.Helper()
	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create test store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

// seedGroup registers n users and puts them in one group. Returns the group
// and the user IDs in creation order.
func seedGroup(t *testing.T, store storage.Store, n int) (*models.Group, []string) {
	t.Helper()
	ctx := context.Background()

	ids := make([]string, n)
	for i := 0; i < n; i++ {
		u := models.NewUser(
			fmt.Sprintf("user%d@example.com", i),
			fmt.Sprintf("User%d", i),
			"Test",
			"hash",
		)
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("failed to create user %d: %v", i, err)
		}
		ids[i] = u.ID
	}

	group := &models.Group{Name: "Trip", Members: ids}
	if err := store.CreateGroup(ctx, group); err != nil {
		t.Fatalf("failed to create group: %v", err)
	}
	return group, ids
}

func asUser(id string) models.CurrentUser {
	return models.CurrentUser{UserID: id, DisplayName: "Test User"}
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestCreateExpenseEqualSplit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 3)
	svc := NewExpenseService(store, notify.LogNotifier{})

	expense, splits, err := svc.CreateExpense(ctx, asUser(ids[0]), CreateExpenseInput{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      dec(t, "300"),
		SplitType:   models.SplitEqual,
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if expense.ID == "" {
		t.Error("expected expense ID to be assigned")
	}
	if expense.PaidBy != ids[0] {
		t.Errorf("expected payer to default to caller, got %s", expense.PaidBy)
	}
	if len(splits) != 3 {
		t.Fatalf("expected 3 splits, got %d", len(splits))
	}

	sum := decimal.Zero
	for _, s := range splits {
		if !s.Share.Equal(dec(t, "100")) {
			t.Errorf("expected share 100 for %s, got %s", s.UserID, s.Share)
		}
		sum = sum.Add(s.Share)
	}
	if !sum.Equal(expense.Amount) {
		t.Errorf("shares sum %s != amount %s", sum, expense.Amount)
	}

	// Round-trip through storage.
	got, err := store.GetExpense(ctx, expense.ID)
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if !got.Amount.Equal(expense.Amount) {
		t.Errorf("stored amount %s != %s", got.Amount, expense.Amount)
	}
}

func TestCreateExpenseRatioSplit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 2)
	svc := NewExpenseService(store, notify.LogNotifier{})

	_, splits, err := svc.CreateExpense(ctx, asUser(ids[0]), CreateExpenseInput{
		GroupID:      group.ID,
		Description:  "Rent",
		Amount:       dec(t, "500"),
		SplitType:    models.SplitRatio,
		Participants: []string{ids[0], ids[1]},
		Ratios:       []int{60, 40},
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if !splits[0].Share.Equal(dec(t, "300")) || !splits[1].Share.Equal(dec(t, "200")) {
		t.Errorf("expected shares 300/200, got %s/%s", splits[0].Share, splits[1].Share)
	}
	if splits[0].Ratio != 60 || splits[1].Ratio != 40 {
		t.Errorf("expected ratios 60/40, got %d/%d", splits[0].Ratio, splits[1].Ratio)
	}
}

func TestCreateExpenseValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 2)
	svc := NewExpenseService(store, notify.LogNotifier{})

	tests := []struct {
		name string
		cur  models.CurrentUser
		in   CreateExpenseInput
	}{
		{
			name: "missing description",
			cur:  asUser(ids[0]),
			in: CreateExpenseInput{
				GroupID:   group.ID,
				Amount:    dec(t, "100"),
				SplitType: models.SplitEqual,
			},
		},
		{
			name: "ratio split without participants",
			cur:  asUser(ids[0]),
			in: CreateExpenseInput{
				GroupID:     group.ID,
				Description: "Rent",
				Amount:      dec(t, "100"),
				SplitType:   models.SplitRatio,
				Ratios:      []int{60, 40},
			},
		},
		{
			name: "non-member payer",
			cur:  asUser(ids[0]),
			in: CreateExpenseInput{
				GroupID:     group.ID,
				Description: "Dinner",
				Amount:      dec(t, "100"),
				PaidBy:      "stranger",
				SplitType:   models.SplitEqual,
			},
		},
		{
			name: "non-member participant",
			cur:  asUser(ids[0]),
			in: CreateExpenseInput{
				GroupID:      group.ID,
				Description:  "Dinner",
				Amount:       dec(t, "100"),
				SplitType:    models.SplitEqual,
				Participants: []string{ids[0], "stranger"},
			},
		},
		{
			name: "ratios not summing to 100",
			cur:  asUser(ids[0]),
			in: CreateExpenseInput{
				GroupID:      group.ID,
				Description:  "Rent",
				Amount:       dec(t, "100"),
				SplitType:    models.SplitRatio,
				Participants: []string{ids[0], ids[1]},
				Ratios:       []int{50, 40},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := svc.CreateExpense(ctx, tt.cur, tt.in)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestCreateExpenseAccessDenied(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, _ := seedGroup(t, store, 2)
	svc := NewExpenseService(store, notify.LogNotifier{})

	outsider := models.NewUser("out@example.com", "Out", "Sider", "hash")
	if err := store.CreateUser(ctx, outsider); err != nil {
		t.Fatalf("failed to create outsider: %v", err)
	}

	_, _, err := svc.CreateExpense(ctx, asUser(outsider.ID), CreateExpenseInput{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      dec(t, "100"),
		SplitType:   models.SplitEqual,
	})
	var aerr *models.AccessDeniedError
	if !errors.As(err, &aerr) {
		t.Errorf("expected access denied error, got %v", err)
	}
}

func TestDeleteExpense(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 2)
	svc := NewExpenseService(store, notify.LogNotifier{})

	expense, _, err := svc.CreateExpense(ctx, asUser(ids[0]), CreateExpenseInput{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      dec(t, "100"),
		SplitType:   models.SplitEqual,
	})
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// Any member may delete, not just the creator.
	if err := svc.DeleteExpense(ctx, asUser(ids[1]), expense.ID); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}

	_, err = store.GetExpense(ctx, expense.ID)
	var nerr *models.NotFoundError
	if !errors.As(err, &nerr) {
		t.Errorf("expected not found after delete, got %v", err)
	}

	if err := svc.DeleteExpense(ctx, asUser(ids[0]), expense.ID); !errors.As(err, &nerr) {
		t.Errorf("expected not found on double delete, got %v", err)
	}
}
