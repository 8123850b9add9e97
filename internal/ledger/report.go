package ledger

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
)

// Period bounds a report to expenses created within [From, To). A nil Period
// covers the whole history.
type Period struct {
	From time.Time
	To   time.Time
}

func (p *Period) contains(unix int64) bool {
	if p == nil {
		return true
	}
	t := time.Unix(unix, 0).UTC()
	if !p.From.IsZero() && t.Before(p.From) {
		return false
	}
	if !p.To.IsZero() && !t.Before(p.To) {
		return false
	}
	return true
}

// ReportRow is one itemized expense in the summary report.
type ReportRow struct {
	ExpenseID   string
	Description string
	Amount      decimal.Decimal
	PaidBy      string // display name
	SplitType   models.SplitType
	Share       decimal.Decimal // the viewer's share of this expense
}

// Report is a point-in-time summary of the viewer's position in a group,
// structured for the caller to render into a page or document.
type Report struct {
	GroupID   string
	ViewerID  string
	TotalPaid decimal.Decimal
	OwnShare  decimal.Decimal

	// PayTo maps other members' display names to the amount the viewer must
	// pay them; ReceiveFrom is the reverse direction.
	PayTo       map[string]decimal.Decimal
	ReceiveFrom map[string]decimal.Decimal

	Rows []ReportRow
}

// BuildReport computes the viewer's summary over a group's expenses. A
// viewer with no split rows gets zeroed totals and no rows, not an error.
// Derivation follows the same single-pass rule as the balance aggregation,
// but runs over the raw rows so the itemized list and the boxes always
// agree.
func BuildReport(groupID string, expenses []*models.Expense, splitsByExpense map[string][]models.ExpenseSplit, users map[string]*models.User, viewerID string, period *Period) *Report {
	r := &Report{
		GroupID:     groupID,
		ViewerID:    viewerID,
		TotalPaid:   decimal.Zero,
		OwnShare:    decimal.Zero,
		PayTo:       make(map[string]decimal.Decimal),
		ReceiveFrom: make(map[string]decimal.Decimal),
	}

	for _, exp := range expenses {
		if !period.contains(exp.CreatedAt) {
			continue
		}
		splits := splitsByExpense[exp.ID]
		viewerShare, participates := findShare(splits, viewerID)
		if exp.PaidBy != viewerID && !participates {
			continue
		}

		if exp.PaidBy == viewerID {
			r.TotalPaid = r.TotalPaid.Add(exp.Amount)
			for _, s := range splits {
				if s.UserID == viewerID {
					continue
				}
				name := displayName(users, s.UserID)
				r.ReceiveFrom[name] = r.ReceiveFrom[name].Add(s.Share)
			}
		} else if participates {
			name := displayName(users, exp.PaidBy)
			r.PayTo[name] = r.PayTo[name].Add(viewerShare)
		}
		if participates {
			r.OwnShare = r.OwnShare.Add(viewerShare)
		}

		r.Rows = append(r.Rows, ReportRow{
			ExpenseID:   exp.ID,
			Description: exp.Description,
			Amount:      exp.Amount,
			PaidBy:      displayName(users, exp.PaidBy),
			SplitType:   exp.SplitType,
			Share:       viewerShare,
		})
	}

	return r
}
