package app

import (
	"testing"

	models "sales-intel/database/models_pkg"
)

func TestBuildClientProfiles(t *testing.T) {
	clients := []models.Client{
		{ClientID: 1, ClientType: "Hedge Fund"},
		{ClientID: 2, ClientType: "Pension Fund"},
		{ClientID: 3, ClientType: "Private Bank"},
	}
	summaries := []models.TradeSummary{
		{ClientID: 1, TradeCount: 30, HerfindahlConcentration: 0.50, SizeProxy: floatPtr(8.0), SideBias: 0.5, TopTheme: "AI"},
		{ClientID: 2, TradeCount: 6, HerfindahlConcentration: 0.18, SizeProxy: floatPtr(2.0), SideBias: -0.4},
	}
	patterns := []models.CallPattern{
		{ClientID: 1, CallCount: 4, BestWeekdayNum: 1, BestHour: 9, BestTimeWindow: "Morning", TimingConfidence: 0.8},
	}
	topics := []models.TopicSignal{
		{ClientID: 1, TopTopic: "Valuation", TopTopicShare: 0.6},
		{ClientID: 3, TopTopic: "Macro", TopTopicShare: 1.0},
	}

	rows := BuildClientProfiles(clients, summaries, patterns, topics, testNow)
	if len(rows) != 3 {
		t.Fatalf("expected 3 profiles, got %d", len(rows))
	}

	p1 := rows[0]
	if p1.ClientID != 1 {
		t.Fatalf("rows not ordered by client, first = %d", p1.ClientID)
	}
	// two-client population: client 1 holds the top rank on every measure
	if p1.ActivityRank == nil || !almostEqual(*p1.ActivityRank, 1.0) {
		t.Errorf("activity rank = %v, want 1.0", p1.ActivityRank)
	}
	if p1.RiskScore == nil || !almostEqual(*p1.RiskScore, 0.4*1.0+0.4*1.0+0.2*1.0) {
		t.Errorf("risk score = %v, want 1.0", p1.RiskScore)
	}
	if p1.SizeAggressivenessScore == nil || !almostEqual(*p1.SizeAggressivenessScore, 8.0/notionalSizeProxy["Large"]) {
		t.Errorf("size aggressiveness = %v", p1.SizeAggressivenessScore)
	}
	if p1.ConcentrationFlag != "Concentrated" || p1.DirectionFlag != "Net Buyer" || p1.ActivityFlag != "Active" {
		t.Errorf("flags = %q/%q/%q", p1.ConcentrationFlag, p1.DirectionFlag, p1.ActivityFlag)
	}
	if p1.DominantTheme == nil || *p1.DominantTheme != "AI" {
		t.Errorf("dominant theme = %v", p1.DominantTheme)
	}
	if p1.BestDay == nil || *p1.BestDay != "Monday" || p1.BestHour == nil || *p1.BestHour != 9 {
		t.Errorf("availability = %v / %v", p1.BestDay, p1.BestHour)
	}
	if p1.EngagementLevel != "High" {
		t.Errorf("engagement level = %q, want High", p1.EngagementLevel)
	}
	// dominant Valuation topic overrides the hedge-fund style prior
	if p1.InvestmentStyle != "Value" {
		t.Errorf("investment style = %q, want Value", p1.InvestmentStyle)
	}
	if p1.RiskAppetite != "Aggressive" {
		t.Errorf("risk appetite = %q, want Aggressive", p1.RiskAppetite)
	}
	if !almostEqual(p1.ProfileConfidenceScore, (0.8+1.0)/2) {
		t.Errorf("confidence score = %v, want 0.9", p1.ProfileConfidenceScore)
	}
	if p1.ProfileConfidenceLevel != "High" {
		t.Errorf("confidence level = %q, want High", p1.ProfileConfidenceLevel)
	}

	p2 := rows[1]
	if p2.ConcentrationFlag != "Diversified" || p2.DirectionFlag != "Net Seller" || p2.ActivityFlag != "Regular" {
		t.Errorf("client 2 flags = %q/%q/%q", p2.ConcentrationFlag, p2.DirectionFlag, p2.ActivityFlag)
	}
	if p2.InvestmentStyle != "Fundamental" || p2.RiskAppetite != "Conservative" {
		t.Errorf("client 2 style/appetite = %q/%q", p2.InvestmentStyle, p2.RiskAppetite)
	}
	if p2.EngagementLevel != "Medium" {
		t.Errorf("client 2 engagement = %q, want Medium", p2.EngagementLevel)
	}
	if p2.DominantTheme != nil {
		t.Errorf("empty top theme must stay nil, got %v", p2.DominantTheme)
	}

	// client 3 has a topic signal only: no ranks, no flags, still profiled
	p3 := rows[2]
	if p3.ActivityRank != nil || p3.RiskScore != nil {
		t.Errorf("client 3 must carry no trade-derived ranks: %+v", p3)
	}
	if p3.DominantTopic == nil || *p3.DominantTopic != "Macro" {
		t.Errorf("client 3 topic = %v", p3.DominantTopic)
	}
	if p3.InvestmentStyle != "Macro" {
		t.Errorf("client 3 style = %q, want Macro", p3.InvestmentStyle)
	}
	if !almostEqual(p3.ProfileConfidenceScore, 0) || p3.ProfileConfidenceLevel != "Low" {
		t.Errorf("client 3 confidence = %v / %q", p3.ProfileConfidenceScore, p3.ProfileConfidenceLevel)
	}
}

func TestBuildClientProfilesNilSizeProxyKeepsNilRiskScore(t *testing.T) {
	clients := []models.Client{{ClientID: 1, ClientType: "Asset Manager"}}
	summaries := []models.TradeSummary{
		{ClientID: 1, TradeCount: 10, HerfindahlConcentration: 0.3, SizeProxy: nil},
	}
	rows := BuildClientProfiles(clients, summaries, nil, nil, testNow)
	if len(rows) != 1 {
		t.Fatalf("expected 1 profile, got %d", len(rows))
	}
	p := rows[0]
	if p.SizeRank != nil {
		t.Errorf("size rank must be nil without a size proxy, got %v", p.SizeRank)
	}
	if p.RiskScore != nil {
		t.Errorf("risk score must stay nil when any component rank is missing, got %v", p.RiskScore)
	}
	if p.ActivityRank == nil || p.ConcentrationRank == nil {
		t.Error("activity and concentration ranks must still be computed")
	}
}

func TestDeriveInvestmentStyle(t *testing.T) {
	valuation := "Valuation"
	general := "General"
	tests := []struct {
		name       string
		topic      *string
		clientType string
		want       string
	}{
		{"topic mapping wins", &valuation, "Hedge Fund", "Value"},
		{"unmapped topic falls through to type prior", &general, "Hedge Fund", "Active Trading"},
		{"quant prior", nil, "Quant Fund", "Quantitative"},
		{"default prior", nil, "Asset Manager", "Fundamental"},
	}
	for _, tt := range tests {
		if got := deriveInvestmentStyle(tt.topic, tt.clientType); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestProfileConfidence(t *testing.T) {
	if got := profileConfidence(nil, nil); got != 0 {
		t.Errorf("confidence with no components = %v, want 0", got)
	}
	if got := profileConfidence(floatPtr(0.8), nil); !almostEqual(got, 0.8) {
		t.Errorf("availability-only confidence = %v, want 0.8", got)
	}
	if got := profileConfidence(floatPtr(0.6), floatPtr(0.2)); !almostEqual(got, 0.4) {
		t.Errorf("mean confidence = %v, want 0.4", got)
	}
}
