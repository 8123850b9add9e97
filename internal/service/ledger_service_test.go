package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/notify"
)

func TestBalancesAfterExpensesAndSettlement(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 3)
	a, b, c := ids[0], ids[1], ids[2]

	expenses := NewExpenseService(store, notify.LogNotifier{})
	settlements := NewSettlementService(store)
	ledgerSvc := NewLedgerService(store)

	// A pays 300 split equally across A, B, C.
	if _, _, err := expenses.CreateExpense(ctx, asUser(a), CreateExpenseInput{
		GroupID:     group.ID,
		Description: "Dinner",
		Amount:      dec(t, "300"),
		SplitType:   models.SplitEqual,
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	bal, err := ledgerSvc.Balances(ctx, asUser(a), group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if !bal.PaidTotal.Equal(dec(t, "300")) {
		t.Errorf("expected paid total 300, got %s", bal.PaidTotal)
	}
	if !bal.OwnShare.Equal(dec(t, "100")) {
		t.Errorf("expected own share 100, got %s", bal.OwnShare)
	}
	if !bal.OwedBy[b].Equal(dec(t, "100")) || !bal.OwedBy[c].Equal(dec(t, "100")) {
		t.Errorf("expected B and C to owe 100 each, got %s/%s", bal.OwedBy[b], bal.OwedBy[c])
	}

	// B settles their 100 with A.
	if _, err := settlements.RecordSettlement(ctx, asUser(b), RecordSettlementInput{
		GroupID: group.ID,
		PayeeID: a,
		Amount:  dec(t, "100"),
		Note:    "dinner repaid",
	}); err != nil {
		t.Fatalf("RecordSettlement failed: %v", err)
	}

	bal, err = ledgerSvc.Balances(ctx, asUser(a), group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if !bal.Net(b).IsZero() {
		t.Errorf("expected zero net with B after settlement, got %s", bal.Net(b))
	}
	if !bal.Net(c).Equal(dec(t, "100")) {
		t.Errorf("expected C to still owe 100, got %s", bal.Net(c))
	}

	// From B's side the settlement cancels the debt symmetrically.
	balB, err := ledgerSvc.Balances(ctx, asUser(b), group.ID)
	if err != nil {
		t.Fatalf("Balances failed: %v", err)
	}
	if !balB.Net(a).IsZero() {
		t.Errorf("expected zero net from B's perspective, got %s", balB.Net(a))
	}
}

func TestFeedSharesAndAccess(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 3)
	a, b := ids[0], ids[1]

	expenses := NewExpenseService(store, notify.LogNotifier{})
	ledgerSvc := NewLedgerService(store)

	if _, _, err := expenses.CreateExpense(ctx, asUser(a), CreateExpenseInput{
		GroupID:     group.ID,
		Description: "Groceries",
		Amount:      dec(t, "300"),
		SplitType:   models.SplitEqual,
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	// The payer sees what the rest of the group owes them.
	months, err := ledgerSvc.Feed(ctx, asUser(a), group.ID)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if len(months) != 1 || len(months[0].Entries) != 1 {
		t.Fatalf("expected one month with one entry, got %+v", months)
	}
	if !months[0].Entries[0].Share.Equal(dec(t, "200")) {
		t.Errorf("expected payer share 200, got %s", months[0].Entries[0].Share)
	}

	// A participant sees their own share.
	months, err = ledgerSvc.Feed(ctx, asUser(b), group.ID)
	if err != nil {
		t.Fatalf("Feed failed: %v", err)
	}
	if !months[0].Entries[0].Share.Equal(dec(t, "100")) {
		t.Errorf("expected participant share 100, got %s", months[0].Entries[0].Share)
	}

	outsider := models.NewUser("out@example.com", "Out", "Sider", "hash")
	if err := store.CreateUser(ctx, outsider); err != nil {
		t.Fatalf("failed to create outsider: %v", err)
	}
	_, err = ledgerSvc.Feed(ctx, asUser(outsider.ID), group.ID)
	var aerr *models.AccessDeniedError
	if !errors.As(err, &aerr) {
		t.Errorf("expected access denied for non-member, got %v", err)
	}
}

func TestReportZeroesWithoutParticipation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 3)
	a, b, c := ids[0], ids[1], ids[2]

	expenses := NewExpenseService(store, notify.LogNotifier{})
	ledgerSvc := NewLedgerService(store)

	// A and B split an expense; C is a member but not a participant.
	if _, _, err := expenses.CreateExpense(ctx, asUser(a), CreateExpenseInput{
		GroupID:      group.ID,
		Description:  "Taxi",
		Amount:       dec(t, "80"),
		SplitType:    models.SplitEqual,
		Participants: []string{a, b},
	}); err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}

	report, err := ledgerSvc.Report(ctx, asUser(c), group.ID, nil)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !report.TotalPaid.IsZero() || !report.OwnShare.IsZero() {
		t.Errorf("expected zeroed totals, got paid=%s share=%s", report.TotalPaid, report.OwnShare)
	}
	if len(report.Rows) != 0 {
		t.Errorf("expected no rows for non-participant, got %d", len(report.Rows))
	}

	report, err = ledgerSvc.Report(ctx, asUser(b), group.ID, nil)
	if err != nil {
		t.Fatalf("Report failed: %v", err)
	}
	if !report.OwnShare.Equal(dec(t, "40")) {
		t.Errorf("expected own share 40, got %s", report.OwnShare)
	}
	if len(report.PayTo) != 1 {
		t.Errorf("expected one pay-to entry, got %d", len(report.PayTo))
	}
	var payTotal decimal.Decimal
	for _, amt := range report.PayTo {
		payTotal = payTotal.Add(amt)
	}
	if !payTotal.Equal(dec(t, "40")) {
		t.Errorf("expected pay-to total 40, got %s", payTotal)
	}
}

func TestSettlementValidation(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	group, ids := seedGroup(t, store, 2)
	a, b := ids[0], ids[1]
	settlements := NewSettlementService(store)

	tests := []struct {
		name string
		in   RecordSettlementInput
	}{
		{"zero amount", RecordSettlementInput{GroupID: group.ID, PayeeID: b, Amount: decimal.Zero}},
		{"negative amount", RecordSettlementInput{GroupID: group.ID, PayeeID: b, Amount: dec(t, "-5")}},
		{"self payment", RecordSettlementInput{GroupID: group.ID, PayeeID: a, Amount: dec(t, "10")}},
		{"non-member payee", RecordSettlementInput{GroupID: group.ID, PayeeID: "stranger", Amount: dec(t, "10")}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := settlements.RecordSettlement(ctx, asUser(a), tt.in)
			var verr *models.ValidationError
			if !errors.As(err, &verr) {
				t.Errorf("expected validation error, got %v", err)
			}
		})
	}
}

func TestGroupServiceMembership(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	groups := NewGroupService(store)

	u1 := models.NewUser("a@example.com", "Asha", "Rao", "hash")
	u2 := models.NewUser("b@example.com", "Ben", "Iyer", "hash")
	for _, u := range []*models.User{u1, u2} {
		if err := store.CreateUser(ctx, u); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
	}

	group, err := groups.CreateGroup(ctx, asUser(u1.ID), "Flat", nil)
	if err != nil {
		t.Fatalf("CreateGroup failed: %v", err)
	}
	if !group.HasMember(u1.ID) {
		t.Error("expected creator to be a member")
	}

	if _, err := groups.CreateGroup(ctx, asUser(u1.ID), "Bad", []string{"nope"}); err == nil {
		t.Error("expected error for unknown member")
	}

	if err := groups.AddMembers(ctx, asUser(u1.ID), group.ID, []string{u2.ID}); err != nil {
		t.Fatalf("AddMembers failed: %v", err)
	}
	got, err := groups.GetGroup(ctx, asUser(u2.ID), group.ID)
	if err != nil {
		t.Fatalf("GetGroup failed: %v", err)
	}
	if !got.HasMember(u2.ID) {
		t.Error("expected added member in group")
	}

	if err := groups.RemoveMember(ctx, asUser(u1.ID), group.ID, u2.ID); err != nil {
		t.Fatalf("RemoveMember failed: %v", err)
	}
	list, err := groups.ListGroups(ctx, asUser(u2.ID))
	if err != nil {
		t.Fatalf("ListGroups failed: %v", err)
	}
	if len(list) != 0 {
		t.Errorf("expected no groups after removal, got %d", len(list))
	}
}
