package app

import (
	"sort"
	"time"

	"sales-intel/config"
	models "sales-intel/database/models_pkg"
)

// BuildSectorMomentum aggregates market-wide flow per sector over the same
// recent and prior windows used for client momentum. Sectors with no trades
// in either window produce no row; trades with an empty sector are ignored.
func BuildSectorMomentum(trades []models.TradeExecution, cfg config.AnalyticsConfig, now time.Time) []models.SectorMomentum {
	type acc struct {
		recent  int
		prior   int
		buys    int
		clients map[int64]bool
	}

	recentCutoff := now.AddDate(0, 0, -cfg.RecentWindowDays)
	priorCutoff := now.AddDate(0, 0, -cfg.PriorWindowDays)

	perSector := make(map[string]*acc)
	for _, t := range trades {
		if t.Sector == "" {
			continue
		}
		window := windowOf(t.TradeTimestamp, recentCutoff, priorCutoff, now)
		if window == windowNone {
			continue
		}
		a, ok := perSector[t.Sector]
		if !ok {
			a = &acc{clients: make(map[int64]bool)}
			perSector[t.Sector] = a
		}
		if window == windowRecent {
			a.recent++
			if t.Side == "Buy" {
				a.buys++
			}
			a.clients[t.ClientID] = true
		} else {
			a.prior++
		}
	}

	sectors := make([]string, 0, len(perSector))
	for s := range perSector {
		sectors = append(sectors, s)
	}
	sort.Strings(sectors)

	rows := make([]models.SectorMomentum, 0, len(sectors))
	for _, sector := range sectors {
		a := perSector[sector]
		buyRatio := 0.0
		if a.recent > 0 {
			buyRatio = float64(a.buys) / float64(a.recent)
		}
		rows = append(rows, models.SectorMomentum{
			Sector:         sector,
			Trades30D:      a.recent,
			TradesPrior30D: a.prior,
			BuyRatio:       buyRatio,
			Momentum:       ratioOrNil(a.recent, a.prior),
			FlowSignal:     classifyFlowSignal(a.recent, buyRatio),
			UniqueClients:  len(a.clients),
			UpdatedAt:      now,
		})
	}
	return rows
}

// classifyFlowSignal labels recent directional flow. A sector with no recent
// trades is Neutral regardless of its prior window.
func classifyFlowSignal(recentTrades int, buyRatio float64) string {
	switch {
	case recentTrades == 0:
		return "Neutral"
	case buyRatio >= 0.60:
		return "Inflow"
	case buyRatio <= 0.40:
		return "Outflow"
	default:
		return "Neutral"
	}
}
