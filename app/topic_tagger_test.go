package app

import (
	"testing"
	"time"

	models "sales-intel/database/models_pkg"
)

func TestTagTopic(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{"valuation keyword", "thinks the P/E multiple looks cheap here", "Valuation"},
		{"earnings keyword", "asked about Q3 guidance vs consensus", "Earnings"},
		{"macro keyword", "worried about rates and inflation", "Risk"}, // "worried" matches Risk first
		{"precedence on multi-match", "valuation reset after the earnings miss", "Valuation"},
		{"case insensitive", "DIVIDEND sustainability question", "Dividend"},
		{"no match falls back", "catch-up call, no specific agenda", "General"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TagTopic(tt.text, DefaultTopicRules); got != tt.want {
				t.Errorf("TagTopic(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestBuildTopicSignals(t *testing.T) {
	base := testNow.AddDate(0, 0, -3)
	calls := []models.CallLog{
		{ClientID: 1, CallTimestamp: base, NotesRaw: "valuation looks stretched"},
		{ClientID: 1, CallTimestamp: base.Add(time.Hour), NotesRaw: "another valuation discussion"},
		{ClientID: 1, CallTimestamp: base.Add(2 * time.Hour), NotesRaw: "earnings preview"},
	}

	signals := BuildTopicSignals(calls, nil, DefaultTopicRules, testNow)
	if len(signals) != 1 {
		t.Fatalf("expected 1 signal, got %d", len(signals))
	}
	s := signals[0]
	if s.TopTopic != "Valuation" || s.TopTopicCount != 2 {
		t.Errorf("top topic = %s (%d), want Valuation (2)", s.TopTopic, s.TopTopicCount)
	}
	if !almostEqual(s.TopTopicShare, 2.0/3.0) {
		t.Errorf("share = %v, want 2/3", s.TopTopicShare)
	}
	if !s.LastSignalTs.Equal(base.Add(time.Hour)) {
		t.Errorf("last signal ts = %v, want the latest Valuation call", s.LastSignalTs)
	}
}

func TestBuildTopicSignalsTieBreaksByPrecedence(t *testing.T) {
	base := testNow.AddDate(0, 0, -1)
	calls := []models.CallLog{
		{ClientID: 1, CallTimestamp: base, NotesRaw: "inflation and the fed"},
		{ClientID: 1, CallTimestamp: base.Add(time.Hour), NotesRaw: "earnings quarter recap"},
	}

	s := BuildTopicSignals(calls, nil, DefaultTopicRules, testNow)[0]
	// Earnings precedes Macro in the rule table
	if s.TopTopic != "Earnings" {
		t.Errorf("tie must break by rule precedence, got %q", s.TopTopic)
	}
}

func TestBuildTopicSignalsUsesLinkedReportText(t *testing.T) {
	reportID := int64(7)
	reports := map[int64]models.Report{
		reportID: {ReportID: reportID, Title: "Dividend outlook 2026", Summary3Bullets: "payout coverage improving"},
	}
	calls := []models.CallLog{
		{ClientID: 1, CallTimestamp: testNow, NotesRaw: "followed up on the note", RelatedReportID: &reportID},
	}

	s := BuildTopicSignals(calls, reports, DefaultTopicRules, testNow)[0]
	if s.TopTopic != "Dividend" {
		t.Errorf("linked report text must feed tagging, got %q", s.TopTopic)
	}
}
