// Package ledger builds user-facing views of a group's financial history:
// the chronological transaction feed and the point-in-time summary report.
// Both work from raw expense and split rows, never from pre-aggregated
// balances. Rendering into pages or documents belongs to the caller.
package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
)

// FeedEntry is one expense as seen by the viewer.
type FeedEntry struct {
	ExpenseID   string
	Description string
	Date        time.Time
	DateLabel   string // e.g. "Jan 2"
	PaidByText  string // e.g. "Priya Sharma paid ₹300.00"
	SplitType   models.SplitType

	// Share is the figure shown next to the entry: the viewer's own share,
	// or, when the viewer paid, what the others owe them for this expense.
	Share     decimal.Decimal
	ShareText string

	// Participants are the display names of everyone splitting the expense.
	Participants []string
}

// FeedMonth groups feed entries for one calendar month.
type FeedMonth struct {
	Label   string // e.g. "January 2026"
	Year    int
	Month   time.Month
	Entries []FeedEntry
}

// BuildFeed assembles the viewer's transaction feed for a group: every
// expense the viewer touches (as payer or split participant), newest first,
// grouped by calendar month. The ordering inside a month follows the overall
// descending order.
func BuildFeed(expenses []*models.Expense, splitsByExpense map[string][]models.ExpenseSplit, users map[string]*models.User, viewerID string) []FeedMonth {
	sorted := make([]*models.Expense, len(expenses))
	copy(sorted, expenses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})

	var months []FeedMonth
	for _, exp := range sorted {
		splits := splitsByExpense[exp.ID]
		viewerShare, participates := findShare(splits, viewerID)
		if exp.PaidBy != viewerID && !participates {
			continue
		}

		// The payer's displayed figure is what the rest of the group owes
		// them for this expense.
		share := viewerShare
		if exp.PaidBy == viewerID {
			share = exp.Amount.Sub(viewerShare)
		}

		when := time.Unix(exp.CreatedAt, 0).UTC()
		entry := FeedEntry{
			ExpenseID:    exp.ID,
			Description:  exp.Description,
			Date:         when,
			DateLabel:    when.Format("Jan 2"),
			PaidByText:   displayName(users, exp.PaidBy) + " paid " + FormatAmount(exp.Amount),
			SplitType:    exp.SplitType,
			Share:        share,
			ShareText:    FormatAmount(share),
			Participants: participantNames(splits, users),
		}

		year, month := when.Year(), when.Month()
		if len(months) == 0 || months[len(months)-1].Year != year || months[len(months)-1].Month != month {
			months = append(months, FeedMonth{
				Label: when.Format("January 2006"),
				Year:  year,
				Month: month,
			})
		}
		last := &months[len(months)-1]
		last.Entries = append(last.Entries, entry)
	}

	return months
}

func findShare(splits []models.ExpenseSplit, userID string) (decimal.Decimal, bool) {
	for _, s := range splits {
		if s.UserID == userID {
			return s.Share, true
		}
	}
	return decimal.Zero, false
}

func participantNames(splits []models.ExpenseSplit, users map[string]*models.User) []string {
	names := make([]string, 0, len(splits))
	for _, s := range splits {
		names = append(names, displayName(users, s.UserID))
	}
	return names
}

func displayName(users map[string]*models.User, userID string) string {
	if u, ok := users[userID]; ok {
		return u.DisplayName()
	}
	return userID
}

// FormatAmount renders a decimal as a two-place currency string. This is the
// only place amounts get rounded.
func FormatAmount(d decimal.Decimal) string {
	return "₹" + d.StringFixed(2)
}
