package app

import (
	"sort"
	"time"

	models "sales-intel/database/models_pkg"
)

// notionalSizeProxy maps coarse notional buckets to a numeric size proxy.
// Unmapped buckets are excluded from the average rather than counted as zero.
var notionalSizeProxy = map[string]float64{
	"Small":  1,
	"Medium": 3,
	"Large":  7,
}

// BuildTradeSummaries computes one trade summary row per client with at least
// one trade execution. Clients with zero trades produce no row: absence of a
// summary means "no data", not "zero activity".
func BuildTradeSummaries(trades []models.TradeExecution, now time.Time) []models.TradeSummary {
	type clientAcc struct {
		tradeCount   int
		buys         int
		sectorCounts map[string]int
		themeCounts  map[string]int
		sizeSum      float64
		sizeN        int
		lastTradeTs  time.Time
	}

	accs := make(map[int64]*clientAcc)
	for _, t := range trades {
		acc, ok := accs[t.ClientID]
		if !ok {
			acc = &clientAcc{
				sectorCounts: make(map[string]int),
				themeCounts:  make(map[string]int),
			}
			accs[t.ClientID] = acc
		}

		acc.tradeCount++
		if t.Side == "Buy" {
			acc.buys++
		}
		// unclassified trades carry no sector/theme signal
		if t.Sector != "" {
			acc.sectorCounts[t.Sector]++
		}
		if t.ThemeTag != "" {
			acc.themeCounts[t.ThemeTag]++
		}
		if proxy, ok := notionalSizeProxy[t.NotionalBucket]; ok {
			acc.sizeSum += proxy
			acc.sizeN++
		}
		if t.TradeTimestamp.After(acc.lastTradeTs) {
			acc.lastTradeTs = t.TradeTimestamp
		}
	}

	clientIDs := make([]int64, 0, len(accs))
	for id := range accs {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	summaries := make([]models.TradeSummary, 0, len(accs))
	for _, clientID := range clientIDs {
		acc := accs[clientID]

		buyRate := float64(acc.buys) / float64(acc.tradeCount)

		topSector, sectorCount := topCategory(acc.sectorCounts)
		sectorTotal := 0
		for _, c := range acc.sectorCounts {
			sectorTotal += c
		}
		topSectorShare := 0.0
		if sectorTotal > 0 {
			topSectorShare = float64(sectorCount) / float64(sectorTotal)
		}

		topTheme, themeCount := topCategory(acc.themeCounts)
		themeTotal := 0
		for _, c := range acc.themeCounts {
			themeTotal += c
		}
		topThemeShare := 0.0
		if themeTotal > 0 {
			topThemeShare = float64(themeCount) / float64(themeTotal)
		}

		var sizeProxy *float64
		if acc.sizeN > 0 {
			sizeProxy = floatPtr(acc.sizeSum / float64(acc.sizeN))
		}

		summaries = append(summaries, models.TradeSummary{
			ClientID:                clientID,
			TradeCount:              acc.tradeCount,
			TopSector:               topSector,
			TopSectorShare:          topSectorShare,
			TopTheme:                topTheme,
			TopThemeShare:           topThemeShare,
			BuyRate:                 buyRate,
			SideBias:                2*buyRate - 1,
			SizeProxy:               sizeProxy,
			HerfindahlConcentration: herfindahl(acc.sectorCounts),
			LastTradeTs:             acc.lastTradeTs,
			UpdatedAt:               now,
		})
	}
	return summaries
}
