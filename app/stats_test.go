package app

import (
	"math"
	"testing"
	"time"

	"sales-intel/config"
)

// testAnalyticsConfig mirrors the documented defaults without reading env.
func testAnalyticsConfig() config.AnalyticsConfig {
	return config.AnalyticsConfig{
		RecentWindowDays:       30,
		PriorWindowDays:        60,
		AcceleratingMultiplier: 1.5,
		CoolingMultiplier:      0.5,
		CallDurationWeight:     0.1,
		TradeCountWeight:       2.0,
		LargeTradeWeight:       5.0,
		DefaultStockVol60D:     0.25,
		HighVolThreshold:       0.35,
		InvestorTypeWeight:     0.30,
		TurnoverWeight:         0.25,
		ConcentrationWeight:    0.15,
		SentimentWeight:        0.15,
		ReadingWeight:          0.15,
		DefaultConcentration:   0.25,
		DefaultPortfolioVol:    0.20,
		NeutralFactorScore:     0.5,
		AggressiveCutoff:       0.65,
		ModerateCutoff:         0.45,
	}
}

var testNow = time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestTopCategory(t *testing.T) {
	tests := []struct {
		name      string
		counts    map[string]int
		wantKey   string
		wantCount int
	}{
		{
			name:      "clear winner",
			counts:    map[string]int{"Technology": 7, "Energy": 3},
			wantKey:   "Technology",
			wantCount: 7,
		},
		{
			name:      "tie breaks lexicographically",
			counts:    map[string]int{"Utilities": 4, "Energy": 4, "Materials": 4},
			wantKey:   "Energy",
			wantCount: 4,
		},
		{
			name:      "empty counts",
			counts:    map[string]int{},
			wantKey:   "",
			wantCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, count := topCategory(tt.counts)
			if key != tt.wantKey || count != tt.wantCount {
				t.Errorf("topCategory() = (%q, %d), want (%q, %d)", key, count, tt.wantKey, tt.wantCount)
			}
		})
	}
}

func TestHerfindahl(t *testing.T) {
	tests := []struct {
		name   string
		counts map[string]int
		want   float64
	}{
		{
			name:   "70/30 split",
			counts: map[string]int{"Technology": 7, "Energy": 3},
			want:   0.58,
		},
		{
			name:   "single category is maximal",
			counts: map[string]int{"Technology": 12},
			want:   1.0,
		},
		{
			name:   "even four-way spread",
			counts: map[string]int{"A": 1, "B": 1, "C": 1, "D": 1},
			want:   0.25,
		},
		{
			name:   "no observations",
			counts: map[string]int{},
			want:   0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := herfindahl(tt.counts)
			if !almostEqual(got, tt.want) {
				t.Errorf("herfindahl() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPercentileRanks(t *testing.T) {
	t.Run("distinct values span 0 to 1", func(t *testing.T) {
		ranks := percentileRanks([]float64{10, 20, 30})
		want := []float64{0, 0.5, 1}
		for i := range want {
			if !almostEqual(ranks[i], want[i]) {
				t.Errorf("ranks[%d] = %v, want %v", i, ranks[i], want[i])
			}
		}
	})

	t.Run("ties share the mean rank", func(t *testing.T) {
		ranks := percentileRanks([]float64{5, 5, 9})
		// the two tied values occupy ordinals 0 and 1, mean 0.5, scaled by n-1
		if !almostEqual(ranks[0], 0.25) || !almostEqual(ranks[1], 0.25) {
			t.Errorf("tied ranks = %v, %v, want 0.25 each", ranks[0], ranks[1])
		}
		if !almostEqual(ranks[2], 1) {
			t.Errorf("top rank = %v, want 1", ranks[2])
		}
	})

	t.Run("single element ranks 0.5", func(t *testing.T) {
		ranks := percentileRanks([]float64{42})
		if !almostEqual(ranks[0], 0.5) {
			t.Errorf("rank = %v, want 0.5", ranks[0])
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := percentileRanks(nil); len(got) != 0 {
			t.Errorf("expected empty ranks, got %v", got)
		}
	})
}

func TestRatioOrNil(t *testing.T) {
	if got := ratioOrNil(3, 0); got != nil {
		t.Errorf("zero prior must yield nil, got %v", *got)
	}
	got := ratioOrNil(3, 2)
	if got == nil || !almostEqual(*got, 1.5) {
		t.Errorf("ratioOrNil(3, 2) = %v, want 1.5", got)
	}
	got = ratioOrNil(0, 4)
	if got == nil || !almostEqual(*got, 0) {
		t.Errorf("ratioOrNil(0, 4) = %v, want 0", got)
	}
}
