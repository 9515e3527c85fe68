package app

import (
	"sort"
	"strings"
	"time"

	"sales-intel/config"
	"sales-intel/database/facts"
	models "sales-intel/database/models_pkg"
)

// ============================================================================
// Composite risk scoring
// ============================================================================

// RiskStrategy scores one client's assembled inputs into a composite row.
// The two shipped strategies use deliberately different formulas and are
// written side by side, selected by name, never blended.
type RiskStrategy interface {
	Name() string
	Score(in RiskInputs, cfg config.AnalyticsConfig) models.RiskComposite
}

// RiskInputs is everything known about one client at scoring time. Pointer
// fields are nil when the client is absent from that upstream aggregate;
// strategies apply their documented defaults at combination only.
type RiskInputs struct {
	Client        models.Client
	TradeSummary  *models.TradeSummary
	TradeCount6M  int
	PortfolioRisk *models.PortfolioRisk
	Momentum      *models.EngagementMomentum
	Conviction    *models.Conviction
	Readership    *models.ReadershipIntel

	// Share of the client's report reads in volatile sectors, valid only
	// when HasReads is true.
	VolatileSectorReadShare float64
	HasReads                bool
}

// DefaultVolatileSectors marks report sectors whose heavy readers score
// higher on reading-behavior risk.
var DefaultVolatileSectors = map[string]bool{
	"Technology":             true,
	"Energy":                 true,
	"Biotechnology":          true,
	"Consumer Discretionary": true,
	"Communication Services": true,
}

// AssembleRiskInputs joins the aggregate families into per-client scoring
// inputs for every known client, sorted by client id.
func AssembleRiskInputs(
	clients []models.Client,
	summaries []models.TradeSummary,
	portfolioRisks []models.PortfolioRisk,
	momentum []models.EngagementMomentum,
	convictions []models.Conviction,
	readership []models.ReadershipIntel,
	trades []models.TradeExecution,
	readRecords []facts.ReadershipRecord,
	volatileSectors map[string]bool,
	now time.Time,
) []RiskInputs {
	summaryBy := make(map[int64]models.TradeSummary, len(summaries))
	for _, s := range summaries {
		summaryBy[s.ClientID] = s
	}
	riskBy := make(map[int64]models.PortfolioRisk, len(portfolioRisks))
	for _, r := range portfolioRisks {
		riskBy[r.ClientID] = r
	}
	momentumBy := make(map[int64]models.EngagementMomentum, len(momentum))
	for _, m := range momentum {
		momentumBy[m.ClientID] = m
	}
	convictionBy := make(map[int64]models.Conviction, len(convictions))
	for _, c := range convictions {
		convictionBy[c.ClientID] = c
	}
	readershipBy := make(map[int64]models.ReadershipIntel, len(readership))
	for _, r := range readership {
		readershipBy[r.ClientID] = r
	}

	sixMonthsAgo := now.AddDate(0, -6, 0)
	trades6M := make(map[int64]int)
	for _, t := range trades {
		if t.TradeTimestamp.After(sixMonthsAgo) && !t.TradeTimestamp.After(now) {
			trades6M[t.ClientID]++
		}
	}

	volatileReads := make(map[int64]int)
	totalReads := make(map[int64]int)
	for _, r := range readRecords {
		totalReads[r.ClientID]++
		if volatileSectors[r.ReportSector] {
			volatileReads[r.ClientID]++
		}
	}

	sorted := make([]models.Client, len(clients))
	copy(sorted, clients)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].ClientID < sorted[j].ClientID })

	inputs := make([]RiskInputs, 0, len(sorted))
	for _, c := range sorted {
		in := RiskInputs{Client: c, TradeCount6M: trades6M[c.ClientID]}
		if s, ok := summaryBy[c.ClientID]; ok {
			in.TradeSummary = &s
		}
		if r, ok := riskBy[c.ClientID]; ok {
			in.PortfolioRisk = &r
		}
		if m, ok := momentumBy[c.ClientID]; ok {
			in.Momentum = &m
		}
		if cv, ok := convictionBy[c.ClientID]; ok {
			in.Conviction = &cv
		}
		if ri, ok := readershipBy[c.ClientID]; ok {
			in.Readership = &ri
		}
		if total := totalReads[c.ClientID]; total > 0 {
			in.HasReads = true
			in.VolatileSectorReadShare = float64(volatileReads[c.ClientID]) / float64(total)
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// BuildRiskComposites runs every strategy over every client.
func BuildRiskComposites(strategies []RiskStrategy, inputs []RiskInputs, cfg config.AnalyticsConfig, now time.Time) []models.RiskComposite {
	rows := make([]models.RiskComposite, 0, len(inputs)*len(strategies))
	for _, in := range inputs {
		for _, s := range strategies {
			row := s.Score(in, cfg)
			row.ClientID = in.Client.ClientID
			row.Strategy = s.Name()
			row.EngagementTrend = engagementTrendOf(in)
			row.ConvictionLevel = convictionLevelOf(in)
			row.ActionSignal = actionSignalFor(row.EngagementTrend)
			row.ProfileConfidence = dataConfidence(in)
			row.UpdatedAt = now
			rows = append(rows, row)
		}
	}
	return rows
}

// DefaultRiskStrategies returns the shipped strategies in output order.
func DefaultRiskStrategies() []RiskStrategy {
	return []RiskStrategy{MultiFactorStrategy{}, EnhancedStrategy{}}
}

func engagementTrendOf(in RiskInputs) string {
	if in.Momentum == nil {
		return TrendDormant
	}
	return in.Momentum.EngagementTrend
}

func convictionLevelOf(in RiskInputs) string {
	if in.Conviction == nil {
		return ""
	}
	return in.Conviction.ConvictionLevel
}

func actionSignalFor(trend string) string {
	switch trend {
	case TrendAccelerating:
		return "Hot Lead - High Activity"
	case TrendCoolingOff:
		return "Re-engage - Activity Declining"
	case TrendDormant:
		return "Wake Up Call Needed"
	default:
		return "Normal Engagement"
	}
}

// dataConfidence labels how much data backed the score, independent of the
// score's value.
func dataConfidence(in RiskInputs) string {
	tradeCount := 0
	if in.TradeSummary != nil {
		tradeCount = in.TradeSummary.TradeCount
	}
	switch {
	case tradeCount >= 20 && in.PortfolioRisk != nil:
		return "High"
	case tradeCount >= 5 || in.PortfolioRisk != nil:
		return "Medium"
	default:
		return "Low"
	}
}

func classifyRiskCategory(score float64, cfg config.AnalyticsConfig) string {
	switch {
	case score >= cfg.AggressiveCutoff:
		return "Aggressive"
	case score >= cfg.ModerateCutoff:
		return "Moderate"
	default:
		return "Conservative"
	}
}

// ============================================================================
// multi_factor strategy
// ============================================================================

// MultiFactorStrategy blends six factors: an investor-type prior, trading
// turnover, sector concentration, position size, call sentiment and reading
// behavior. Sector concentration and position size share one weight; the
// other four carry their own.
type MultiFactorStrategy struct{}

func (MultiFactorStrategy) Name() string { return "multi_factor" }

// investorTypePriors is checked in order; the first substring match wins.
var investorTypePriors = []struct {
	Substring string
	Score     float64
}{
	{"hedge", 0.90},
	{"quant", 0.80},
	{"asset manager", 0.50},
	{"private bank", 0.45},
	{"insurance", 0.25},
	{"pension", 0.20},
}

func investorTypeScore(clientType string) float64 {
	lowered := strings.ToLower(clientType)
	for _, p := range investorTypePriors {
		if strings.Contains(lowered, p.Substring) {
			return p.Score
		}
	}
	return 0.5
}

// turnoverScore buckets the 6-month trade count. Zero trades is no signal,
// not minimal risk.
func turnoverScore(trades6M int) *float64 {
	switch {
	case trades6M >= 60:
		return floatPtr(0.9)
	case trades6M >= 30:
		return floatPtr(0.7)
	case trades6M >= 12:
		return floatPtr(0.5)
	case trades6M >= 1:
		return floatPtr(0.3)
	default:
		return nil
	}
}

func (MultiFactorStrategy) Score(in RiskInputs, cfg config.AnalyticsConfig) models.RiskComposite {
	row := models.RiskComposite{}

	typeScore := investorTypeScore(in.Client.ClientType)
	row.InvestorTypeScore = floatPtr(typeScore)

	row.TurnoverScore = turnoverScore(in.TradeCount6M)

	if in.TradeSummary != nil {
		row.ConcentrationScore = floatPtr(clamp01(in.TradeSummary.HerfindahlConcentration))
	}
	if in.PortfolioRisk != nil {
		row.PositionSizeScore = floatPtr(clamp01(in.PortfolioRisk.MaxPositionWeight * 2.5))
		row.PortfolioVolatility = floatPtr(in.PortfolioRisk.PortfolioVolatility)
	}

	if in.Conviction != nil {
		total := in.Conviction.BullishMentions + in.Conviction.BearishMentions
		if total > 0 {
			row.SentimentScore = floatPtr(float64(in.Conviction.BullishMentions) / float64(total))
		}
	}

	if in.Readership != nil && in.HasReads {
		row.ReadingScore = floatPtr(clamp01(in.Readership.ReadVelocityScore*0.6 + in.VolatileSectorReadShare*0.4))
	}

	// documented combination-point defaults for absent factors
	concentration := combineConcentration(row.ConcentrationScore, row.PositionSizeScore, cfg.DefaultConcentration)
	composite := cfg.InvestorTypeWeight*typeScore +
		cfg.TurnoverWeight*orDefault(row.TurnoverScore, cfg.NeutralFactorScore) +
		cfg.ConcentrationWeight*concentration +
		cfg.SentimentWeight*orDefault(row.SentimentScore, cfg.NeutralFactorScore) +
		cfg.ReadingWeight*orDefault(row.ReadingScore, cfg.NeutralFactorScore)

	row.CompositeRiskScore = composite
	row.RiskCategory = classifyRiskCategory(composite, cfg)
	return row
}

// combineConcentration averages whichever of the sector-concentration and
// position-size scores exist; with neither it falls back to the default.
func combineConcentration(sector, position *float64, def float64) float64 {
	switch {
	case sector != nil && position != nil:
		return (*sector + *position) / 2
	case sector != nil:
		return *sector
	case position != nil:
		return *position
	default:
		return def
	}
}

func orDefault(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// ============================================================================
// enhanced strategy
// ============================================================================

// EnhancedStrategy weights portfolio volatility 40%, position concentration
// 30%, engagement trend 20% and conviction level 10%. Its formula diverges
// from multi_factor on purpose; the two are never reconciled.
type EnhancedStrategy struct{}

func (EnhancedStrategy) Name() string { return "enhanced" }

var trendRiskScores = map[string]float64{
	TrendAccelerating: 0.9,
	TrendStable:       0.5,
	TrendCoolingOff:   0.3,
	TrendDormant:      0.1,
}

var convictionRiskScores = map[string]float64{
	"Very High":   0.9,
	"High":        0.7,
	"Moderate":    0.5,
	"Diversified": 0.3,
}

func (EnhancedStrategy) Score(in RiskInputs, cfg config.AnalyticsConfig) models.RiskComposite {
	row := models.RiskComposite{}

	vol := cfg.DefaultPortfolioVol
	posScore := 0.5
	if in.PortfolioRisk != nil {
		vol = in.PortfolioRisk.PortfolioVolatility
		posScore = clamp01(in.PortfolioRisk.MaxPositionWeight * 2.5)
		row.PortfolioVolatility = floatPtr(vol)
	}
	volScore := clamp01(vol / 0.40)

	trendScore := 0.5
	if in.Momentum != nil {
		if s, ok := trendRiskScores[in.Momentum.EngagementTrend]; ok {
			trendScore = s
		}
	}

	convScore := 0.5
	if in.Conviction != nil {
		if s, ok := convictionRiskScores[in.Conviction.ConvictionLevel]; ok {
			convScore = s
		}
	}

	row.ConcentrationScore = floatPtr(posScore)
	composite := 0.40*volScore + 0.30*posScore + 0.20*trendScore + 0.10*convScore
	row.CompositeRiskScore = composite
	row.RiskCategory = classifyRiskCategory(composite, cfg)
	return row
}
