package calculator

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/splitease/splitease/internal/models"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeSplits(t *testing.T) {
	tests := []struct {
		name         string
		amount       string
		splitType    models.SplitType
		participants []string
		ratios       []int
		exactShares  []string
		wantErr      bool
		wantShares   map[string]string
	}{
		{
			name:         "equal three-way split",
			amount:       "300",
			splitType:    models.SplitEqual,
			participants: []string{"A", "B", "C"},
			wantShares:   map[string]string{"A": "100", "B": "100", "C": "100"},
		},
		{
			name:         "equal split with remainder goes to first participants",
			amount:       "100",
			splitType:    models.SplitEqual,
			participants: []string{"A", "B", "C"},
			wantShares:   map[string]string{"A": "33.34", "B": "33.33", "C": "33.33"},
		},
		{
			name:         "equal split two cents of remainder",
			amount:       "200",
			splitType:    models.SplitEqual,
			participants: []string{"A", "B", "C"},
			wantShares:   map[string]string{"A": "66.67", "B": "66.67", "C": "66.66"},
		},
		{
			name:         "ratio 60/40",
			amount:       "500",
			splitType:    models.SplitRatio,
			participants: []string{"A", "B"},
			ratios:       []int{60, 40},
			wantShares:   map[string]string{"A": "300", "B": "200"},
		},
		{
			name:         "ratio sum not 100 rejected",
			amount:       "500",
			splitType:    models.SplitRatio,
			participants: []string{"A", "B"},
			ratios:       []int{60, 30},
			wantErr:      true,
		},
		{
			name:         "ratio count mismatch rejected",
			amount:       "500",
			splitType:    models.SplitRatio,
			participants: []string{"A", "B", "C"},
			ratios:       []int{60, 40},
			wantErr:      true,
		},
		{
			name:         "exact shares accepted",
			amount:       "200",
			splitType:    models.SplitExact,
			participants: []string{"A", "B"},
			exactShares:  []string{"120", "80"},
			wantShares:   map[string]string{"A": "120", "B": "80"},
		},
		{
			name:         "exact shares not summing to amount rejected",
			amount:       "200",
			splitType:    models.SplitExact,
			participants: []string{"A", "B"},
			exactShares:  []string{"100", "80"},
			wantErr:      true,
		},
		{
			name:         "empty participants rejected for equal",
			amount:       "100",
			splitType:    models.SplitEqual,
			participants: nil,
			wantErr:      true,
		},
		{
			name:         "empty participants rejected for ratio",
			amount:       "100",
			splitType:    models.SplitRatio,
			participants: nil,
			wantErr:      true,
		},
		{
			name:         "empty participants rejected for exact",
			amount:       "100",
			splitType:    models.SplitExact,
			participants: nil,
			wantErr:      true,
		},
		{
			name:         "zero amount rejected",
			amount:       "0",
			splitType:    models.SplitEqual,
			participants: []string{"A"},
			wantErr:      true,
		},
		{
			name:         "unknown split type rejected",
			amount:       "100",
			splitType:    models.SplitType("percentage"),
			participants: []string{"A"},
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var exact []decimal.Decimal
			for _, s := range tt.exactShares {
				exact = append(exact, dec(s))
			}

			shares, err := ComputeSplits(dec(tt.amount), tt.splitType, tt.participants, tt.ratios, exact)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got none")
				}
				var verr *models.ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected ValidationError, got %T: %v", err, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ComputeSplits failed: %v", err)
			}

			if len(shares) != len(tt.participants) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.participants))
			}
			sum := decimal.Zero
			for i, s := range shares {
				if s.UserID != tt.participants[i] {
					t.Errorf("share %d is for %s, want %s (output must preserve input order)", i, s.UserID, tt.participants[i])
				}
				want := dec(tt.wantShares[s.UserID])
				if !s.Share.Equal(want) {
					t.Errorf("%s share = %s, want %s", s.UserID, s.Share, want)
				}
				sum = sum.Add(s.Share)
			}
			if !sum.Equal(dec(tt.amount)) {
				t.Errorf("shares sum to %s, want %s", sum, tt.amount)
			}
		})
	}
}

func TestComputeSplitsRatioFieldSet(t *testing.T) {
	shares, err := ComputeSplits(dec("500"), models.SplitRatio, []string{"A", "B"}, []int{60, 40}, nil)
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}
	if shares[0].Ratio != 60 || shares[1].Ratio != 40 {
		t.Errorf("ratios = %d/%d, want 60/40", shares[0].Ratio, shares[1].Ratio)
	}

	shares, err = ComputeSplits(dec("300"), models.SplitEqual, []string{"A", "B", "C"}, nil, nil)
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}
	for _, s := range shares {
		if s.Ratio != 0 {
			t.Errorf("%s ratio = %d, want 0 for equal split", s.UserID, s.Ratio)
		}
	}
}

func TestComputeSplitsDeterministic(t *testing.T) {
	first, err := ComputeSplits(dec("100"), models.SplitEqual, []string{"A", "B", "C", "D", "E", "F", "G"}, nil, nil)
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}
	for i := 0; i < 50; i++ {
		again, err := ComputeSplits(dec("100"), models.SplitEqual, []string{"A", "B", "C", "D", "E", "F", "G"}, nil, nil)
		if err != nil {
			t.Fatalf("ComputeSplits failed: %v", err)
		}
		for j := range first {
			if again[j].UserID != first[j].UserID || !again[j].Share.Equal(first[j].Share) {
				t.Fatalf("run %d diverged at %d: %s=%s vs %s=%s", i, j, again[j].UserID, again[j].Share, first[j].UserID, first[j].Share)
			}
		}
	}
}

func TestComputeSplitsRatioRemainder(t *testing.T) {
	// 100 split 33/33/34 leaves a truncation remainder; the sum must still
	// come back to the full amount.
	shares, err := ComputeSplits(dec("99.99"), models.SplitRatio, []string{"A", "B", "C"}, []int{33, 33, 34}, nil)
	if err != nil {
		t.Fatalf("ComputeSplits failed: %v", err)
	}
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Share)
	}
	if !sum.Equal(dec("99.99")) {
		t.Errorf("shares sum to %s, want 99.99", sum)
	}
}
