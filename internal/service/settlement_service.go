package service

import (
	"context"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/storage"
)

// SettlementService records direct payments between group members.
type SettlementService struct {
	store storage.Store
}

// NewSettlementService creates a new SettlementService with the given
// storage backend.
func NewSettlementService(store storage.Store) *SettlementService {
	return &SettlementService{store: store}
}

// RecordSettlementInput describes a payment to record. An empty PayerID
// defaults to the caller.
type RecordSettlementInput struct {
	GroupID string
	PayerID string
	PayeeID string
	Amount  decimal.Decimal
	Note    string
}

// RecordSettlement validates and appends a settlement.
func (s *SettlementService) RecordSettlement(ctx context.Context, cur models.CurrentUser, in RecordSettlementInput) (*models.Settlement, error) {
	group, err := s.store.GetGroup(ctx, in.GroupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(cur.UserID) {
		return nil, models.ErrAccessDenied("you must be a member of group %s to settle up", group.ID)
	}

	payer := in.PayerID
	if payer == "" {
		payer = cur.UserID
	}
	if !in.Amount.IsPositive() {
		return nil, models.ErrValidation("settlement amount must be positive, got %s", in.Amount)
	}
	if payer == in.PayeeID {
		return nil, models.ErrValidation("payer and payee must differ")
	}
	if !group.HasMember(payer) {
		return nil, models.ErrValidation("payer %s is not a member of group %s", payer, group.ID)
	}
	if !group.HasMember(in.PayeeID) {
		return nil, models.ErrValidation("payee %s is not a member of group %s", in.PayeeID, group.ID)
	}

	settlement := &models.Settlement{
		GroupID:   group.ID,
		PayerID:   payer,
		PayeeID:   in.PayeeID,
		Amount:    in.Amount,
		Note:      in.Note,
		CreatedBy: cur.UserID,
	}
	if err := s.store.CreateSettlement(ctx, settlement); err != nil {
		slog.Error("RecordSettlement failed", "group_id", group.ID, "error", err)
		return nil, err
	}

	return settlement, nil
}

// ListSettlements retrieves a group's settlements, optionally filtered by
// payer.
func (s *SettlementService) ListSettlements(ctx context.Context, cur models.CurrentUser, groupID, payerID string) ([]*models.Settlement, error) {
	group, err := s.store.GetGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if !group.HasMember(cur.UserID) {
		return nil, models.ErrAccessDenied("you must be a member of group %s", groupID)
	}

	if payerID != "" {
		return s.store.ListSettlementsByPayer(ctx, groupID, payerID)
	}
	return s.store.ListSettlementsByGroup(ctx, groupID)
}
