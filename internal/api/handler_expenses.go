package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/middleware"
	"github.com/splitease/splitease/internal/models"
	"github.com/splitease/splitease/internal/service"
)

type createExpenseRequest struct {
	Description  string            `json:"description"`
	Amount       decimal.Decimal   `json:"amount"`
	PaidBy       string            `json:"paid_by"`
	SplitType    models.SplitType  `json:"split_type"`
	Participants []string          `json:"participants"`
	Ratios       []int             `json:"ratios"`
	ExactShares  []decimal.Decimal `json:"exact_shares"`
}

type splitResponse struct {
	UserID string          `json:"user_id"`
	Share  decimal.Decimal `json:"share"`
	Ratio  int             `json:"ratio"`
}

type expenseResponse struct {
	ID          string           `json:"id"`
	GroupID     string           `json:"group_id"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	PaidBy      string           `json:"paid_by"`
	SplitType   models.SplitType `json:"split_type"`
	CreatedAt   int64            `json:"created_at"`
	Splits      []splitResponse  `json:"splits"`
}

func (h *Handler) createExpense(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	var req createExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, models.ErrValidation("invalid request body"))
		return
	}

	expense, splits, err := h.expenses.CreateExpense(r.Context(), cur, service.CreateExpenseInput{
		GroupID:      chi.URLParam(r, "groupID"),
		Description:  req.Description,
		Amount:       req.Amount,
		PaidBy:       req.PaidBy,
		SplitType:    req.SplitType,
		Participants: req.Participants,
		Ratios:       req.Ratios,
		ExactShares:  req.ExactShares,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	resp := expenseResponse{
		ID:          expense.ID,
		GroupID:     expense.GroupID,
		Description: expense.Description,
		Amount:      expense.Amount,
		PaidBy:      expense.PaidBy,
		SplitType:   expense.SplitType,
		CreatedAt:   expense.CreatedAt,
	}
	for _, s := range splits {
		resp.Splits = append(resp.Splits, splitResponse{UserID: s.UserID, Share: s.Share, Ratio: s.Ratio})
	}

	writeJSON(w, http.StatusCreated, resp)
}

func (h *Handler) deleteExpense(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	if err := h.expenses.DeleteExpense(r.Context(), cur, chi.URLParam(r, "expenseID")); err != nil {
		writeError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type recordSettlementRequest struct {
	PayerID string          `json:"payer_id"`
	PayeeID string          `json:"payee_id"`
	Amount  decimal.Decimal `json:"amount"`
	Note    string          `json:"note"`
}

type settlementResponse struct {
	ID        string          `json:"id"`
	GroupID   string          `json:"group_id"`
	PayerID   string          `json:"payer_id"`
	PayeeID   string          `json:"payee_id"`
	Amount    decimal.Decimal `json:"amount"`
	Note      string          `json:"note,omitempty"`
	SettledAt int64           `json:"settled_at"`
}

func settlementToAPI(s *models.Settlement) settlementResponse {
	return settlementResponse{
		ID:        s.ID,
		GroupID:   s.GroupID,
		PayerID:   s.PayerID,
		PayeeID:   s.PayeeID,
		Amount:    s.Amount,
		Note:      s.Note,
		SettledAt: s.SettledAt,
	}
}

func (h *Handler) recordSettlement(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	var req recordSettlementRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, models.ErrValidation("invalid request body"))
		return
	}

	settlement, err := h.settlements.RecordSettlement(r.Context(), cur, service.RecordSettlementInput{
		GroupID: chi.URLParam(r, "groupID"),
		PayerID: req.PayerID,
		PayeeID: req.PayeeID,
		Amount:  req.Amount,
		Note:    req.Note,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, settlementToAPI(settlement))
}

func (h *Handler) listSettlements(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	settlements, err := h.settlements.ListSettlements(r.Context(), cur, chi.URLParam(r, "groupID"), r.URL.Query().Get("payer_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]settlementResponse, len(settlements))
	for i, s := range settlements {
		out[i] = settlementToAPI(s)
	}
	writeJSON(w, http.StatusOK, map[string][]settlementResponse{"settlements": out})
}
