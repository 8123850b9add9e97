// Package calculator holds the pure computations of the ledger: dividing an
// expense into per-participant shares and folding a group's history into
// balances. No I/O happens here.
package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
)

// oneCent is the smallest currency unit: the step size for remainder
// distribution and the tolerance when checking that shares sum back to the
// amount.
var oneCent = decimal.New(1, -2)

// Share is one participant's computed portion of an expense amount.
type Share struct {
	UserID string
	Share  decimal.Decimal
	Ratio  int // integer percentage for ratio splits, 0 otherwise
}

// ComputeSplits divides amount among participants per the split type.
//
// ratios is required for models.SplitRatio (one integer percentage per
// participant, summing to exactly 100) and must be nil otherwise.
// exactShares is required for models.SplitExact (one amount per participant,
// summing to amount within a cent) and must be nil otherwise.
//
// Equal and ratio splits cannot always divide evenly into cents. The
// remainder policy is largest-remainder in input order: each share is
// truncated to cents and the leftover cents are handed out one at a time to
// participants in the order supplied. The same inputs always produce the
// same output, and the shares always sum to amount.
func ComputeSplits(amount decimal.Decimal, splitType models.SplitType, participants []string, ratios []int, exactShares []decimal.Decimal) ([]Share, error) {
	if !splitType.Valid() {
		return nil, models.ErrValidation("unknown split type %q", splitType)
	}
	if !amount.IsPositive() {
		return nil, models.ErrValidation("amount must be positive, got %s", amount)
	}
	if len(participants) == 0 {
		return nil, models.ErrValidation("%s split requires at least one participant", splitType)
	}

	var shares []Share
	var err error
	switch splitType {
	case models.SplitEqual:
		shares, err = equalSplits(amount, participants)
	case models.SplitRatio:
		shares, err = ratioSplits(amount, participants, ratios)
	case models.SplitExact:
		shares, err = exactSplits(amount, participants, exactShares)
	}
	if err != nil {
		return nil, err
	}

	// Invariant: shares sum back to the amount. A miss here is a defect in
	// the computation above, not bad input.
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Share)
	}
	if sum.Sub(amount).Abs().GreaterThanOrEqual(oneCent) {
		return nil, models.ErrConsistency("split shares sum to %s, expense amount is %s", sum, amount)
	}

	return shares, nil
}

// equalSplits gives every participant amount/n truncated to cents, then
// distributes the leftover cents in input order.
func equalSplits(amount decimal.Decimal, participants []string) ([]Share, error) {
	n := int64(len(participants))
	base := amount.Div(decimal.NewFromInt(n)).RoundDown(2)

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p, Share: base}
	}
	distributeRemainder(shares, amount)
	return shares, nil
}

// ratioSplits divides amount by integer percentages. The ratios must sum to
// exactly 100, one per participant.
func ratioSplits(amount decimal.Decimal, participants []string, ratios []int) ([]Share, error) {
	if len(ratios) != len(participants) {
		return nil, models.ErrValidation("ratio split requires one ratio per participant: %d ratios for %d participants", len(ratios), len(participants))
	}
	sum := 0
	for _, r := range ratios {
		if r < 0 {
			return nil, models.ErrValidation("ratios must be non-negative, got %d", r)
		}
		sum += r
	}
	if sum != 100 {
		return nil, models.ErrValidation("ratios must sum to 100, got %d", sum)
	}

	hundred := decimal.NewFromInt(100)
	shares := make([]Share, len(participants))
	for i, p := range participants {
		share := amount.Mul(decimal.NewFromInt(int64(ratios[i]))).Div(hundred).RoundDown(2)
		shares[i] = Share{UserID: p, Share: share, Ratio: ratios[i]}
	}
	distributeRemainder(shares, amount)
	return shares, nil
}

// exactSplits validates caller-supplied shares against the amount.
func exactSplits(amount decimal.Decimal, participants []string, exactShares []decimal.Decimal) ([]Share, error) {
	if len(exactShares) != len(participants) {
		return nil, models.ErrValidation("exact split requires one share per participant: %d shares for %d participants", len(exactShares), len(participants))
	}
	sum := decimal.Zero
	for _, s := range exactShares {
		if s.IsNegative() {
			return nil, models.ErrValidation("shares must be non-negative, got %s", s)
		}
		sum = sum.Add(s)
	}
	if sum.Sub(amount).Abs().GreaterThanOrEqual(oneCent) {
		return nil, models.ErrValidation("exact shares sum to %s, expense amount is %s", sum, amount)
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{UserID: p, Share: exactShares[i]}
	}
	return shares, nil
}

// distributeRemainder adds the cents lost to truncation back to the shares,
// one cent per participant in input order.
func distributeRemainder(shares []Share, amount decimal.Decimal) {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Share)
	}
	remainder := amount.Sub(sum)
	for i := 0; remainder.IsPositive() && i < len(shares); i++ {
		cent := oneCent
		if remainder.LessThan(cent) {
			cent = remainder
		}
		shares[i].Share = shares[i].Share.Add(cent)
		remainder = remainder.Sub(cent)
	}
}
