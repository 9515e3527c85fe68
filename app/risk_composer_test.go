package app

import (
	"testing"

	"sales-intel/database/facts"
	models "sales-intel/database/models_pkg"
)

func TestInvestorTypeScore(t *testing.T) {
	tests := []struct {
		clientType string
		want       float64
	}{
		{"Hedge Fund", 0.90},
		{"Quant Fund", 0.80},
		{"Global Asset Manager", 0.50},
		{"Private Bank", 0.45},
		{"Insurance Company", 0.25},
		{"Pension Fund", 0.20},
		{"Family Office", 0.5},
		{"", 0.5},
	}
	for _, tt := range tests {
		if got := investorTypeScore(tt.clientType); !almostEqual(got, tt.want) {
			t.Errorf("investorTypeScore(%q) = %v, want %v", tt.clientType, got, tt.want)
		}
	}
}

func TestTurnoverScore(t *testing.T) {
	tests := []struct {
		trades int
		want   *float64
	}{
		{80, floatPtr(0.9)},
		{60, floatPtr(0.9)},
		{30, floatPtr(0.7)},
		{12, floatPtr(0.5)},
		{1, floatPtr(0.3)},
		{0, nil},
	}
	for _, tt := range tests {
		got := turnoverScore(tt.trades)
		switch {
		case tt.want == nil && got != nil:
			t.Errorf("turnoverScore(%d) = %v, want nil", tt.trades, *got)
		case tt.want != nil && (got == nil || !almostEqual(*got, *tt.want)):
			t.Errorf("turnoverScore(%d) = %v, want %v", tt.trades, got, *tt.want)
		}
	}
}

func TestCombineConcentration(t *testing.T) {
	if got := combineConcentration(floatPtr(0.6), floatPtr(0.2), 0.25); !almostEqual(got, 0.4) {
		t.Errorf("both present = %v, want 0.4", got)
	}
	if got := combineConcentration(floatPtr(0.6), nil, 0.25); !almostEqual(got, 0.6) {
		t.Errorf("sector only = %v, want 0.6", got)
	}
	if got := combineConcentration(nil, floatPtr(0.2), 0.25); !almostEqual(got, 0.2) {
		t.Errorf("position only = %v, want 0.2", got)
	}
	if got := combineConcentration(nil, nil, 0.25); !almostEqual(got, 0.25) {
		t.Errorf("neither = %v, want default", got)
	}
}

func TestMultiFactorScoreFullInputs(t *testing.T) {
	cfg := testAnalyticsConfig()
	in := RiskInputs{
		Client:       models.Client{ClientID: 1, ClientType: "Hedge Fund"},
		TradeCount6M: 40,
		TradeSummary: &models.TradeSummary{ClientID: 1, TradeCount: 40, HerfindahlConcentration: 0.30},
		PortfolioRisk: &models.PortfolioRisk{
			ClientID:            1,
			PortfolioVolatility: 0.22,
			MaxPositionWeight:   0.20,
		},
		Conviction:              &models.Conviction{BullishMentions: 3, BearishMentions: 1},
		Readership:              &models.ReadershipIntel{ReadVelocityScore: 0.5},
		VolatileSectorReadShare: 0.5,
		HasReads:                true,
	}

	row := MultiFactorStrategy{}.Score(in, cfg)

	// factors: type 0.9, turnover 0.7, concentration mean(0.30, 0.50)=0.40,
	// sentiment 0.75, reading 0.5*0.6+0.5*0.4=0.5
	want := 0.30*0.9 + 0.25*0.7 + 0.15*0.40 + 0.15*0.75 + 0.15*0.5
	if !almostEqual(row.CompositeRiskScore, want) {
		t.Errorf("composite = %v, want %v", row.CompositeRiskScore, want)
	}
	if row.RiskCategory != "Aggressive" {
		t.Errorf("category = %q, want Aggressive", row.RiskCategory)
	}
	if row.TurnoverScore == nil || !almostEqual(*row.TurnoverScore, 0.7) {
		t.Errorf("turnover score = %v", row.TurnoverScore)
	}
	if row.SentimentScore == nil || !almostEqual(*row.SentimentScore, 0.75) {
		t.Errorf("sentiment score = %v", row.SentimentScore)
	}
	if row.PortfolioVolatility == nil || !almostEqual(*row.PortfolioVolatility, 0.22) {
		t.Errorf("portfolio vol = %v", row.PortfolioVolatility)
	}
}

func TestMultiFactorScoreSparseInputs(t *testing.T) {
	cfg := testAnalyticsConfig()
	in := RiskInputs{Client: models.Client{ClientID: 2, ClientType: "Pension Fund"}}

	row := MultiFactorStrategy{}.Score(in, cfg)

	// absent factors take their combination-point defaults: turnover 0.5,
	// concentration 0.25, sentiment 0.5, reading 0.5
	want := 0.30*0.20 + 0.25*0.5 + 0.15*0.25 + 0.15*0.5 + 0.15*0.5
	if !almostEqual(row.CompositeRiskScore, want) {
		t.Errorf("composite = %v, want %v", row.CompositeRiskScore, want)
	}
	if row.RiskCategory != "Conservative" {
		t.Errorf("category = %q, want Conservative", row.RiskCategory)
	}
	if row.TurnoverScore != nil || row.SentimentScore != nil || row.ReadingScore != nil {
		t.Errorf("absent factors must stay nil on the row: %+v", row)
	}
}

func TestEnhancedScore(t *testing.T) {
	cfg := testAnalyticsConfig()
	in := RiskInputs{
		Client: models.Client{ClientID: 1, ClientType: "Hedge Fund"},
		PortfolioRisk: &models.PortfolioRisk{
			PortfolioVolatility: 0.32,
			MaxPositionWeight:   0.30,
		},
		Momentum:   &models.EngagementMomentum{EngagementTrend: TrendAccelerating},
		Conviction: &models.Conviction{ConvictionLevel: "Very High"},
	}

	row := EnhancedStrategy{}.Score(in, cfg)

	// vol 0.32/0.40=0.8, position min(0.30*2.5, 1)=0.75, trend 0.9, conviction 0.9
	want := 0.40*0.8 + 0.30*0.75 + 0.20*0.9 + 0.10*0.9
	if !almostEqual(row.CompositeRiskScore, want) {
		t.Errorf("composite = %v, want %v", row.CompositeRiskScore, want)
	}
	if row.RiskCategory != "Aggressive" {
		t.Errorf("category = %q, want Aggressive", row.RiskCategory)
	}
}

func TestEnhancedScoreDefaults(t *testing.T) {
	cfg := testAnalyticsConfig()
	in := RiskInputs{Client: models.Client{ClientID: 3}}

	row := EnhancedStrategy{}.Score(in, cfg)

	// vol default 0.20 -> 0.5, position 0.5, trend 0.5, conviction 0.5
	want := 0.40*0.5 + 0.30*0.5 + 0.20*0.5 + 0.10*0.5
	if !almostEqual(row.CompositeRiskScore, want) {
		t.Errorf("composite = %v, want %v", row.CompositeRiskScore, want)
	}
	if row.RiskCategory != "Moderate" {
		t.Errorf("category = %q, want Moderate", row.RiskCategory)
	}
}

func TestActionSignalFor(t *testing.T) {
	tests := []struct {
		trend string
		want  string
	}{
		{TrendAccelerating, "Hot Lead - High Activity"},
		{TrendCoolingOff, "Re-engage - Activity Declining"},
		{TrendDormant, "Wake Up Call Needed"},
		{TrendStable, "Normal Engagement"},
		{"", "Normal Engagement"},
	}
	for _, tt := range tests {
		if got := actionSignalFor(tt.trend); got != tt.want {
			t.Errorf("actionSignalFor(%q) = %q, want %q", tt.trend, got, tt.want)
		}
	}
}

func TestDataConfidence(t *testing.T) {
	summary := func(n int) *models.TradeSummary { return &models.TradeSummary{TradeCount: n} }
	risk := &models.PortfolioRisk{}
	tests := []struct {
		name string
		in   RiskInputs
		want string
	}{
		{"many trades with portfolio", RiskInputs{TradeSummary: summary(25), PortfolioRisk: risk}, "High"},
		{"many trades without portfolio", RiskInputs{TradeSummary: summary(25)}, "Medium"},
		{"few trades", RiskInputs{TradeSummary: summary(5)}, "Medium"},
		{"portfolio only", RiskInputs{PortfolioRisk: risk}, "Medium"},
		{"nothing", RiskInputs{}, "Low"},
	}
	for _, tt := range tests {
		if got := dataConfidence(tt.in); got != tt.want {
			t.Errorf("%s: got %q, want %q", tt.name, got, tt.want)
		}
	}
}

func TestAssembleRiskInputs(t *testing.T) {
	cfgNow := testNow
	clients := []models.Client{
		{ClientID: 2, ClientType: "Pension Fund"},
		{ClientID: 1, ClientType: "Hedge Fund"},
	}
	trades := []models.TradeExecution{
		{ClientID: 1, TradeTimestamp: cfgNow.AddDate(0, -1, 0)},
		{ClientID: 1, TradeTimestamp: cfgNow.AddDate(0, -7, 0)},  // outside the 6-month window
		{ClientID: 1, TradeTimestamp: cfgNow.AddDate(0, 0, 10)},  // future-dated
	}
	reads := []facts.ReadershipRecord{
		{ClientID: 1, ReportSector: "Technology"},
		{ClientID: 1, ReportSector: "Utilities"},
	}
	momentum := []models.EngagementMomentum{{ClientID: 1, EngagementTrend: TrendStable}}

	inputs := AssembleRiskInputs(clients, nil, nil, momentum, nil, nil, trades, reads, DefaultVolatileSectors, cfgNow)
	if len(inputs) != 2 {
		t.Fatalf("expected inputs for both clients, got %d", len(inputs))
	}
	if inputs[0].Client.ClientID != 1 || inputs[1].Client.ClientID != 2 {
		t.Fatalf("inputs not sorted by client id")
	}

	in1 := inputs[0]
	if in1.TradeCount6M != 1 {
		t.Errorf("client 1 six-month trades = %d, want 1", in1.TradeCount6M)
	}
	if !in1.HasReads || !almostEqual(in1.VolatileSectorReadShare, 0.5) {
		t.Errorf("client 1 volatile read share = %v (hasReads=%v), want 0.5", in1.VolatileSectorReadShare, in1.HasReads)
	}
	if in1.Momentum == nil || in1.Momentum.EngagementTrend != TrendStable {
		t.Errorf("client 1 momentum not joined: %+v", in1.Momentum)
	}
	if in1.TradeSummary != nil || in1.PortfolioRisk != nil {
		t.Errorf("absent aggregates must stay nil")
	}

	in2 := inputs[1]
	if in2.HasReads || in2.TradeCount6M != 0 || in2.Momentum != nil {
		t.Errorf("client 2 must have no joined data: %+v", in2)
	}
}

func TestBuildRiskComposites(t *testing.T) {
	cfg := testAnalyticsConfig()
	inputs := []RiskInputs{
		{
			Client:     models.Client{ClientID: 1, ClientType: "Hedge Fund"},
			Momentum:   &models.EngagementMomentum{ClientID: 1, EngagementTrend: TrendCoolingOff},
			Conviction: &models.Conviction{ClientID: 1, ConvictionLevel: "High"},
		},
		{
			Client: models.Client{ClientID: 2, ClientType: "Pension Fund"},
		},
	}

	rows := BuildRiskComposites(DefaultRiskStrategies(), inputs, cfg, testNow)
	if len(rows) != 4 {
		t.Fatalf("expected 2 clients x 2 strategies = 4 rows, got %d", len(rows))
	}

	if rows[0].Strategy != "multi_factor" || rows[1].Strategy != "enhanced" {
		t.Errorf("strategy order = %q, %q", rows[0].Strategy, rows[1].Strategy)
	}
	if rows[0].ClientID != 1 || rows[2].ClientID != 2 {
		t.Errorf("client order = %d, %d", rows[0].ClientID, rows[2].ClientID)
	}
	if rows[0].EngagementTrend != TrendCoolingOff || rows[0].ActionSignal != "Re-engage - Activity Declining" {
		t.Errorf("client 1 trend/signal = %q / %q", rows[0].EngagementTrend, rows[0].ActionSignal)
	}
	if rows[0].ConvictionLevel != "High" {
		t.Errorf("client 1 conviction level = %q", rows[0].ConvictionLevel)
	}
	// a client missing from momentum reads as dormant
	if rows[2].EngagementTrend != TrendDormant || rows[2].ActionSignal != "Wake Up Call Needed" {
		t.Errorf("client 2 trend/signal = %q / %q", rows[2].EngagementTrend, rows[2].ActionSignal)
	}
	if rows[2].ConvictionLevel != "" {
		t.Errorf("client 2 conviction level = %q, want empty", rows[2].ConvictionLevel)
	}
	for _, r := range rows {
		if !r.UpdatedAt.Equal(testNow) {
			t.Errorf("row %d/%s missing refresh timestamp", r.ClientID, r.Strategy)
		}
	}
}
