package app

import (
	"sort"
	"strings"
	"time"

	models "sales-intel/database/models_pkg"
)

// styleByTopic maps a client's dominant call topic to an investment style
// label. Clients with no tagged calls fall back to a prior from their
// investor type.
var styleByTopic = map[string]string{
	"Valuation": "Value",
	"Growth":    "Growth",
	"Dividend":  "Income",
	"Macro":     "Macro",
	"Risk":      "Risk-Aware",
	"ESG":       "ESG",
	"Earnings":  "Event-Driven",
}

// BuildClientProfiles composes the integration-layer profile rows from the
// per-client aggregate families. A client appears when it has at least one
// of a trade summary, a call pattern or a topic signal.
//
// Percentile ranks are relative to the trade-summary population of this
// refresh and are recomputed from scratch every cycle. The size rank only
// ranks clients that have a size proxy; clients trading exclusively in
// unclassified notional buckets keep a nil size rank and a nil risk score
// rather than a defaulted one.
func BuildClientProfiles(
	clients []models.Client,
	summaries []models.TradeSummary,
	patterns []models.CallPattern,
	topics []models.TopicSignal,
	now time.Time,
) []models.ClientProfile {
	clientTypes := make(map[int64]string, len(clients))
	for _, c := range clients {
		clientTypes[c.ClientID] = c.ClientType
	}

	summaryByClient := make(map[int64]models.TradeSummary, len(summaries))
	for _, s := range summaries {
		summaryByClient[s.ClientID] = s
	}
	patternByClient := make(map[int64]models.CallPattern, len(patterns))
	for _, p := range patterns {
		patternByClient[p.ClientID] = p
	}
	topicByClient := make(map[int64]models.TopicSignal, len(topics))
	for _, t := range topics {
		topicByClient[t.ClientID] = t
	}

	// rank the trade-summary population on activity, concentration and size
	rankedIDs := make([]int64, 0, len(summaries))
	for _, s := range summaries {
		rankedIDs = append(rankedIDs, s.ClientID)
	}
	sort.Slice(rankedIDs, func(i, j int) bool { return rankedIDs[i] < rankedIDs[j] })

	activityVals := make([]float64, len(rankedIDs))
	concVals := make([]float64, len(rankedIDs))
	sizeIDs := make([]int64, 0, len(rankedIDs))
	sizeVals := make([]float64, 0, len(rankedIDs))
	for i, id := range rankedIDs {
		s := summaryByClient[id]
		activityVals[i] = float64(s.TradeCount)
		concVals[i] = s.HerfindahlConcentration
		if s.SizeProxy != nil {
			sizeIDs = append(sizeIDs, id)
			sizeVals = append(sizeVals, *s.SizeProxy)
		}
	}

	activityRanks := make(map[int64]float64, len(rankedIDs))
	concRanks := make(map[int64]float64, len(rankedIDs))
	for i, r := range percentileRanks(activityVals) {
		activityRanks[rankedIDs[i]] = r
	}
	for i, r := range percentileRanks(concVals) {
		concRanks[rankedIDs[i]] = r
	}
	sizeRanks := make(map[int64]float64, len(sizeIDs))
	for i, r := range percentileRanks(sizeVals) {
		sizeRanks[sizeIDs[i]] = r
	}

	profiled := make(map[int64]bool)
	for id := range summaryByClient {
		profiled[id] = true
	}
	for id := range patternByClient {
		profiled[id] = true
	}
	for id := range topicByClient {
		profiled[id] = true
	}
	clientIDs := make([]int64, 0, len(profiled))
	for id := range profiled {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	rows := make([]models.ClientProfile, 0, len(clientIDs))
	for _, clientID := range clientIDs {
		row := models.ClientProfile{ClientID: clientID, UpdatedAt: now}
		clientType := clientTypes[clientID]

		summary, hasSummary := summaryByClient[clientID]
		pattern, hasPattern := patternByClient[clientID]
		topic, hasTopic := topicByClient[clientID]

		tradeCount := 0
		callCount := 0

		if hasSummary {
			tradeCount = summary.TradeCount
			if r, ok := activityRanks[clientID]; ok {
				row.ActivityRank = floatPtr(r)
			}
			if r, ok := concRanks[clientID]; ok {
				row.ConcentrationRank = floatPtr(r)
			}
			if r, ok := sizeRanks[clientID]; ok {
				row.SizeRank = floatPtr(r)
			}
			if row.ConcentrationRank != nil && row.SizeRank != nil && row.ActivityRank != nil {
				score := 0.4**row.ConcentrationRank + 0.4**row.SizeRank + 0.2**row.ActivityRank
				row.RiskScore = floatPtr(score)
			}
			if summary.SizeProxy != nil {
				row.SizeAggressivenessScore = floatPtr(*summary.SizeProxy / notionalSizeProxy["Large"])
			}
			if summary.TopTheme != "" {
				theme := summary.TopTheme
				row.DominantTheme = &theme
			}
			row.ConcentrationFlag = classifyConcentrationFlag(summary.HerfindahlConcentration)
			row.DirectionFlag = classifyDirectionFlag(summary.SideBias)
			row.ActivityFlag = classifyActivityFlag(summary.TradeCount)
		}

		if hasPattern {
			callCount = pattern.CallCount
			day := time.Weekday(pattern.BestWeekdayNum).String()
			hour := pattern.BestHour
			window := pattern.BestTimeWindow
			row.BestDay = &day
			row.BestHour = &hour
			row.BestTimeWindow = &window
			row.AvailabilityScore = floatPtr(pattern.TimingConfidence)
		}

		if hasTopic {
			t := topic.TopTopic
			row.DominantTopic = &t
			row.DominantTopicShare = floatPtr(topic.TopTopicShare)
		}

		row.EngagementLevel = classifyEngagementLevel(tradeCount, callCount)
		row.InvestmentStyle = deriveInvestmentStyle(row.DominantTopic, clientType)
		row.RiskAppetite = riskAppetitePrior(clientType)
		row.ProfileConfidenceScore = profileConfidence(row.AvailabilityScore, row.ActivityRank)
		row.ProfileConfidenceLevel = classifyConfidenceLevel(row.ProfileConfidenceScore)

		rows = append(rows, row)
	}
	return rows
}

func classifyConcentrationFlag(herfindahl float64) string {
	switch {
	case herfindahl >= 0.40:
		return "Concentrated"
	case herfindahl >= 0.20:
		return "Balanced"
	default:
		return "Diversified"
	}
}

func classifyDirectionFlag(sideBias float64) string {
	switch {
	case sideBias >= 0.2:
		return "Net Buyer"
	case sideBias <= -0.2:
		return "Net Seller"
	default:
		return "Two-Way"
	}
}

func classifyActivityFlag(tradeCount int) string {
	switch {
	case tradeCount >= 20:
		return "Active"
	case tradeCount >= 5:
		return "Regular"
	default:
		return "Occasional"
	}
}

func classifyEngagementLevel(tradeCount, callCount int) string {
	switch {
	case tradeCount >= 20 || callCount >= 10:
		return "High"
	case tradeCount >= 5 || callCount >= 3:
		return "Medium"
	default:
		return "Low"
	}
}

func deriveInvestmentStyle(dominantTopic *string, clientType string) string {
	if dominantTopic != nil {
		if style, ok := styleByTopic[*dominantTopic]; ok {
			return style
		}
	}
	lowered := strings.ToLower(clientType)
	switch {
	case strings.Contains(lowered, "hedge"):
		return "Active Trading"
	case strings.Contains(lowered, "quant"):
		return "Quantitative"
	default:
		return "Fundamental"
	}
}

func riskAppetitePrior(clientType string) string {
	lowered := strings.ToLower(clientType)
	switch {
	case strings.Contains(lowered, "hedge"):
		return "Aggressive"
	case strings.Contains(lowered, "pension"), strings.Contains(lowered, "insurance"):
		return "Conservative"
	default:
		return "Moderate"
	}
}

// profileConfidence averages whichever of the timing-confidence and
// activity-rank components are present. With neither available it is 0.
func profileConfidence(availability, activityRank *float64) float64 {
	sum := 0.0
	n := 0
	if availability != nil {
		sum += *availability
		n++
	}
	if activityRank != nil {
		sum += *activityRank
		n++
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func classifyConfidenceLevel(score float64) string {
	switch {
	case score >= 0.7:
		return "High"
	case score >= 0.4:
		return "Medium"
	default:
		return "Low"
	}
}
