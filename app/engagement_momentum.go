package app

import (
	"sort"
	"time"

	"sales-intel/config"
	models "sales-intel/database/models_pkg"
)

// Engagement trend labels, evaluated strictly in this priority order.
const (
	TrendAccelerating = "Accelerating"
	TrendCoolingOff   = "Cooling Off"
	TrendDormant      = "Dormant"
	TrendStable       = "Stable"
)

// BuildEngagementMomentum compares the recent window (last 30 days) against
// the prior window (31-60 days) relative to the injected reference time, and
// emits one row per known client. Inactive clients still get a row so the
// Dormant classification exists; momentum ratios inside the row stay nil when
// the prior-period count is zero.
//
// The reference time must be pinned by the caller; reading the clock here
// would make refreshes non-reproducible.
func BuildEngagementMomentum(
	clients []models.Client,
	calls []models.CallLog,
	trades []models.TradeExecution,
	cfg config.AnalyticsConfig,
	now time.Time,
) []models.EngagementMomentum {
	recentCutoff := now.AddDate(0, 0, -cfg.RecentWindowDays)
	priorCutoff := now.AddDate(0, 0, -cfg.PriorWindowDays)

	type windowAcc struct {
		callsRecent    int
		callsPrior     int
		durRecentSum   float64
		tradesRecent   int
		tradesPrior    int
		buysRecent     int
		largeRecent    int
	}

	accs := make(map[int64]*windowAcc, len(clients))
	for _, c := range clients {
		accs[c.ClientID] = &windowAcc{}
	}

	for _, c := range calls {
		acc, ok := accs[c.ClientID]
		if !ok {
			continue // call for an unknown client carries no profile signal
		}
		switch windowOf(c.CallTimestamp, recentCutoff, priorCutoff, now) {
		case windowRecent:
			acc.callsRecent++
			acc.durRecentSum += c.DurationMinutes
		case windowPrior:
			acc.callsPrior++
		}
	}

	for _, t := range trades {
		acc, ok := accs[t.ClientID]
		if !ok {
			continue
		}
		switch windowOf(t.TradeTimestamp, recentCutoff, priorCutoff, now) {
		case windowRecent:
			acc.tradesRecent++
			if t.Side == "Buy" {
				acc.buysRecent++
			}
			if t.NotionalBucket == "Large" {
				acc.largeRecent++
			}
		case windowPrior:
			acc.tradesPrior++
		}
	}

	clientIDs := make([]int64, 0, len(accs))
	for id := range accs {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	rows := make([]models.EngagementMomentum, 0, len(clientIDs))
	for _, clientID := range clientIDs {
		acc := accs[clientID]

		avgCallDur := 0.0
		if acc.callsRecent > 0 {
			avgCallDur = acc.durRecentSum / float64(acc.callsRecent)
		}

		var recentBuyRatio *float64
		if acc.tradesRecent > 0 {
			recentBuyRatio = floatPtr(float64(acc.buysRecent) / float64(acc.tradesRecent))
		}

		score := acc.durRecentSum*cfg.CallDurationWeight +
			float64(acc.tradesRecent)*cfg.TradeCountWeight +
			float64(acc.largeRecent)*cfg.LargeTradeWeight

		rows = append(rows, models.EngagementMomentum{
			ClientID:           clientID,
			CallsLast30D:       acc.callsRecent,
			CallsPrior30D:      acc.callsPrior,
			AvgCallDuration30D: avgCallDur,
			CallMomentum:       ratioOrNil(acc.callsRecent, acc.callsPrior),
			TradesLast30D:      acc.tradesRecent,
			TradesPrior30D:     acc.tradesPrior,
			TradeMomentum:      ratioOrNil(acc.tradesRecent, acc.tradesPrior),
			RecentBuyRatio:     recentBuyRatio,
			LargeTrades30D:     acc.largeRecent,
			EngagementScore30D: score,
			EngagementTrend: ClassifyEngagementTrend(
				acc.callsRecent, acc.callsPrior,
				acc.tradesRecent, acc.tradesPrior,
				cfg,
			),
			ReferenceTime: now,
			UpdatedAt:     now,
		})
	}
	return rows
}

type activityWindow int

const (
	windowNone activityWindow = iota
	windowRecent
	windowPrior
)

// windowOf places a timestamp into the recent or prior window. Future-dated
// events relative to the reference time fall outside both windows.
func windowOf(ts, recentCutoff, priorCutoff, now time.Time) activityWindow {
	if ts.After(now) {
		return windowNone
	}
	if ts.After(recentCutoff) {
		return windowRecent
	}
	if ts.After(priorCutoff) {
		return windowPrior
	}
	return windowNone
}

// ClassifyEngagementTrend applies the four-way trend rules in fixed priority
// order: Accelerating, then Cooling Off, then Dormant, then Stable. The order
// matters at boundary values; an all-zero client must land on Dormant, not
// Cooling Off.
func ClassifyEngagementTrend(callsRecent, callsPrior, tradesRecent, tradesPrior int, cfg config.AnalyticsConfig) string {
	if streamAccelerating(callsRecent, callsPrior, cfg.AcceleratingMultiplier) ||
		streamAccelerating(tradesRecent, tradesPrior, cfg.AcceleratingMultiplier) {
		return TrendAccelerating
	}
	if streamCooling(callsRecent, callsPrior, cfg.CoolingMultiplier) &&
		streamCooling(tradesRecent, tradesPrior, cfg.CoolingMultiplier) {
		return TrendCoolingOff
	}
	if callsRecent == 0 && tradesRecent == 0 {
		return TrendDormant
	}
	return TrendStable
}

// streamAccelerating: at or above the multiplier of the prior count, or any
// fresh activity when the prior window was empty.
func streamAccelerating(recent, prior int, mult float64) bool {
	if prior == 0 {
		return recent > 0
	}
	return float64(recent) >= mult*float64(prior)
}

// streamCooling: at or below the multiplier of a nonzero prior count.
func streamCooling(recent, prior int, mult float64) bool {
	return prior > 0 && float64(recent) <= mult*float64(prior)
}
