package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/calculator"
	"github.com/splitease/splitease/internal/ledger"
	"github.com/splitease/splitease/internal/middleware"
	"github.com/splitease/splitease/internal/models"
)

type balanceResponse struct {
	PaidTotal decimal.Decimal            `json:"paid_total"`
	OwnShare  decimal.Decimal            `json:"own_share"`
	OweTo     map[string]decimal.Decimal `json:"owe_to"`
	OwedBy    map[string]decimal.Decimal `json:"owed_by"`
	Net       map[string]decimal.Decimal `json:"net"`
}

func balanceToAPI(b *calculator.Balance) balanceResponse {
	return balanceResponse{
		PaidTotal: b.PaidTotal,
		OwnShare:  b.OwnShare,
		OweTo:     b.OweTo,
		OwedBy:    b.OwedBy,
		Net:       b.NetAll(),
	}
}

func (h *Handler) balances(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	balance, err := h.ledger.Balances(r.Context(), cur, chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceToAPI(balance))
}

type feedEntryResponse struct {
	ExpenseID    string           `json:"expense_id"`
	Description  string           `json:"description"`
	Date         string           `json:"date"`
	DateLabel    string           `json:"date_label"`
	PaidByText   string           `json:"paid_by_text"`
	SplitType    models.SplitType `json:"split_type"`
	Share        decimal.Decimal  `json:"share"`
	ShareText    string           `json:"share_text"`
	Participants []string         `json:"participants"`
}

type feedMonthResponse struct {
	Label   string              `json:"label"`
	Entries []feedEntryResponse `json:"entries"`
}

func (h *Handler) feed(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	months, err := h.ledger.Feed(r.Context(), cur, chi.URLParam(r, "groupID"))
	if err != nil {
		writeError(w, err)
		return
	}

	out := make([]feedMonthResponse, len(months))
	for i, m := range months {
		entries := make([]feedEntryResponse, len(m.Entries))
		for j, e := range m.Entries {
			entries[j] = feedEntryResponse{
				ExpenseID:    e.ExpenseID,
				Description:  e.Description,
				Date:         e.Date.Format(time.RFC3339),
				DateLabel:    e.DateLabel,
				PaidByText:   e.PaidByText,
				SplitType:    e.SplitType,
				Share:        e.Share,
				ShareText:    e.ShareText,
				Participants: e.Participants,
			}
		}
		out[i] = feedMonthResponse{Label: m.Label, Entries: entries}
	}

	writeJSON(w, http.StatusOK, map[string][]feedMonthResponse{"months": out})
}

type reportRowResponse struct {
	ExpenseID   string           `json:"expense_id"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	PaidBy      string           `json:"paid_by"`
	SplitType   models.SplitType `json:"split_type"`
	Share       decimal.Decimal  `json:"share"`
}

type reportResponse struct {
	GroupID     string                     `json:"group_id"`
	TotalPaid   decimal.Decimal            `json:"total_paid"`
	OwnShare    decimal.Decimal            `json:"own_share"`
	PayTo       map[string]decimal.Decimal `json:"pay_to"`
	ReceiveFrom map[string]decimal.Decimal `json:"receive_from"`
	Rows        []reportRowResponse        `json:"rows"`
}

func (h *Handler) report(w http.ResponseWriter, r *http.Request) {
	cur := middleware.GetCurrentUser(r.Context())

	period, err := parsePeriod(r)
	if err != nil {
		writeError(w, err)
		return
	}

	rep, err := h.ledger.Report(r.Context(), cur, chi.URLParam(r, "groupID"), period)
	if err != nil {
		writeError(w, err)
		return
	}

	resp := reportResponse{
		GroupID:     rep.GroupID,
		TotalPaid:   rep.TotalPaid,
		OwnShare:    rep.OwnShare,
		PayTo:       rep.PayTo,
		ReceiveFrom: rep.ReceiveFrom,
		Rows:        make([]reportRowResponse, len(rep.Rows)),
	}
	for i, row := range rep.Rows {
		resp.Rows[i] = reportRowResponse{
			ExpenseID:   row.ExpenseID,
			Description: row.Description,
			Amount:      row.Amount,
			PaidBy:      row.PaidBy,
			SplitType:   row.SplitType,
			Share:       row.Share,
		}
	}

	writeJSON(w, http.StatusOK, resp)
}

// parsePeriod reads optional from/to query params, RFC 3339 or plain date.
func parsePeriod(r *http.Request) (*ledger.Period, error) {
	from := r.URL.Query().Get("from")
	to := r.URL.Query().Get("to")
	if from == "" && to == "" {
		return nil, nil
	}

	p := &ledger.Period{}
	var err error
	if from != "" {
		if p.From, err = parseTime(from); err != nil {
			return nil, models.ErrValidation("invalid 'from' time: %s", from)
		}
	}
	if to != "" {
		if p.To, err = parseTime(to); err != nil {
			return nil, models.ErrValidation("invalid 'to' time: %s", to)
		}
	}
	return p, nil
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	return time.Parse("2006-01-02", s)
}
