package app

import (
	"testing"

	models "sales-intel/database/models_pkg"
)

func TestCountSentimentHits(t *testing.T) {
	tests := []struct {
		notes        string
		wantBullish  int
		wantBearish  int
	}{
		{"Very bullish on the name, sees upside", 2, 0},
		{"cautious near term, downside risk if guidance slips", 0, 2},
		{"bullish but cautious into the print", 1, 1},
		{"no sentiment language here", 0, 0},
		{"BULLISH BULLISH", 2, 0},
		{"took a long position", 1, 0},
		{"belongs to the watchlist", 0, 0}, // "long" inside a word does not count
	}
	for _, tt := range tests {
		bull, bear := CountSentimentHits(tt.notes)
		if bull != tt.wantBullish || bear != tt.wantBearish {
			t.Errorf("CountSentimentHits(%q) = %d/%d, want %d/%d",
				tt.notes, bull, bear, tt.wantBullish, tt.wantBearish)
		}
	}
}

func TestBuildConvictions(t *testing.T) {
	acmeID, betaID := int64(10), int64(11)
	acme, beta := "ACME", "BETA"
	stocks := map[int64]models.Stock{
		acmeID: {StockID: acmeID, Ticker: acme},
		betaID: {StockID: betaID, Ticker: beta},
	}

	trades := []models.TradeExecution{
		{ClientID: 1, StockID: &acmeID, Ticker: &acme, Side: "Buy"},
		{ClientID: 1, StockID: &acmeID, Ticker: &acme, Side: "Buy"},
		{ClientID: 1, StockID: &acmeID, Ticker: &acme, Side: "Sell"},
		{ClientID: 1, StockID: &betaID, Ticker: &beta, Side: "Buy"},
		{ClientID: 1, Side: "Buy"}, // basket fill without a ticker, ignored
	}
	calls := []models.CallLog{
		{ClientID: 1, StockID: &acmeID, NotesRaw: "bullish, sees real upside here"},
		{ClientID: 1, StockID: &betaID, NotesRaw: "cautious on the quarter"},
	}

	rows := BuildConvictions(trades, calls, stocks, testNow)
	if len(rows) != 1 {
		t.Fatalf("expected 1 conviction row, got %d", len(rows))
	}
	r := rows[0]

	// ACME: 3 trades + 2*1 mention + 3*2 bullish = 11; BETA: 1 + 2 - 2 = 1
	if r.TopConvictionStock != "ACME" {
		t.Fatalf("top stock = %q, want ACME", r.TopConvictionStock)
	}
	if !almostEqual(r.ConvictionScore, 11) {
		t.Errorf("conviction score = %v, want 11", r.ConvictionScore)
	}
	if r.TopConvictionStockID == nil || *r.TopConvictionStockID != acmeID {
		t.Errorf("top stock id = %v, want %d", r.TopConvictionStockID, acmeID)
	}
	if r.TradeCount != 3 || r.CallMentions != 1 || r.NetDirection != 1 {
		t.Errorf("stats trades=%d mentions=%d net=%d", r.TradeCount, r.CallMentions, r.NetDirection)
	}
	if r.BullishMentions != 2 || r.BearishMentions != 0 {
		t.Errorf("sentiment hits bull=%d bear=%d", r.BullishMentions, r.BearishMentions)
	}
	// 3 of 4 ticker-linked trades; the basket fill dilutes nothing
	if !almostEqual(r.TradeConcentration, 0.75) {
		t.Errorf("trade concentration = %v, want 0.75", r.TradeConcentration)
	}
	if r.ConvictionLevel != "Very High" {
		t.Errorf("conviction level = %q, want Very High", r.ConvictionLevel)
	}
	if r.SentimentSignal != "Bullish" {
		t.Errorf("sentiment = %q, want Bullish", r.SentimentSignal)
	}
}

func TestBuildConvictionsTieBreaksLexicographically(t *testing.T) {
	alpha, zeta := "ALPHA", "ZETA"
	trades := []models.TradeExecution{
		{ClientID: 1, Ticker: &zeta, Side: "Buy"},
		{ClientID: 1, Ticker: &alpha, Side: "Buy"},
	}
	rows := BuildConvictions(trades, nil, nil, testNow)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].TopConvictionStock != "ALPHA" {
		t.Errorf("equal scores must pick the lexicographically smaller ticker, got %q", rows[0].TopConvictionStock)
	}
}

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		name                       string
		net, bullish, bearish      int
		want                       string
	}{
		{"buying with bullish language", 2, 3, 1, "Bullish"},
		{"selling with bearish language", -2, 0, 2, "Bearish"},
		{"buying without language", 2, 0, 0, "Accumulating"},
		{"buying against bearish language", 2, 1, 3, "Accumulating"},
		{"selling without language", -1, 0, 0, "Reducing"},
		{"flat book", 0, 5, 0, "Neutral"},
	}
	for _, tt := range tests {
		if got := classifySentiment(tt.net, tt.bullish, tt.bearish); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestClassifyConvictionLevel(t *testing.T) {
	tests := []struct {
		share float64
		want  string
	}{
		{0.30, "Very High"},
		{0.25, "Very High"},
		{0.20, "High"},
		{0.10, "Moderate"},
		{0.05, "Diversified"},
		{0.0, "Diversified"},
	}
	for _, tt := range tests {
		if got := classifyConvictionLevel(tt.share); got != tt.want {
			t.Errorf("classifyConvictionLevel(%v) = %q, want %q", tt.share, got, tt.want)
		}
	}
}
