package app

import (
	"sort"
	"time"

	"sales-intel/config"
	models "sales-intel/database/models_pkg"
)

// BuildPortfolioRisks computes one portfolio risk row per client with a
// snapshot. The calculation uses exactly the single latest snapshot per
// client; older snapshots are ignored entirely, never blended.
//
// Portfolio volatility is a linear proxy: the position-weight-weighted sum of
// 60-day stock vols, ignoring covariance. Stocks with no vol record default
// to cfg.DefaultStockVol60D per position.
func BuildPortfolioRisks(
	latestSnapshots map[int64]models.PortfolioSnapshot,
	positionsBySnapshot map[int64][]models.Position,
	latestVols map[int64]models.StockVolatility,
	cfg config.AnalyticsConfig,
	now time.Time,
) []models.PortfolioRisk {
	clientIDs := make([]int64, 0, len(latestSnapshots))
	for id := range latestSnapshots {
		clientIDs = append(clientIDs, id)
	}
	sort.Slice(clientIDs, func(i, j int) bool { return clientIDs[i] < clientIDs[j] })

	risks := make([]models.PortfolioRisk, 0, len(clientIDs))
	for _, clientID := range clientIDs {
		snap := latestSnapshots[clientID]
		positions := positionsBySnapshot[snap.SnapshotID]
		if len(positions) == 0 {
			// a snapshot with no positions carries no risk signal
			continue
		}

		var (
			portfolioVol    float64
			maxWeight       float64
			largePositions  int
			mediumPositions int
			volSum          float64
			highVolExposure float64
		)
		for _, p := range positions {
			vol := cfg.DefaultStockVol60D
			if v, ok := latestVols[p.StockID]; ok {
				vol = v.Vol60D
			}
			portfolioVol += p.Weight * vol
			volSum += vol
			if vol >= cfg.HighVolThreshold {
				highVolExposure += p.Weight
			}
			if p.Weight > maxWeight {
				maxWeight = p.Weight
			}
			if p.Weight > 0.10 {
				largePositions++
			}
			if p.Weight > 0.05 {
				mediumPositions++
			}
		}

		risks = append(risks, models.PortfolioRisk{
			ClientID:               clientID,
			SnapshotID:             snap.SnapshotID,
			PortfolioVolatility:    portfolioVol,
			MaxPositionWeight:      maxWeight,
			TotalPositions:         len(positions),
			LargePositions:         largePositions,
			MediumPositions:        mediumPositions,
			AvgStockVolatility:     volSum / float64(len(positions)),
			HighVolExposure:        highVolExposure,
			VolatilityRiskLevel:    classifyVolatilityRisk(portfolioVol),
			ConcentrationRiskLevel: classifyConcentrationRisk(maxWeight),
			UpdatedAt:              now,
		})
	}
	return risks
}

// classifyVolatilityRisk buckets the linear portfolio vol proxy
func classifyVolatilityRisk(portfolioVol float64) string {
	switch {
	case portfolioVol >= 0.25:
		return "High"
	case portfolioVol >= 0.15:
		return "Medium"
	default:
		return "Low"
	}
}

// classifyConcentrationRisk buckets the max single-position weight
func classifyConcentrationRisk(maxWeight float64) string {
	switch {
	case maxWeight >= 0.20:
		return "Concentrated"
	case maxWeight >= 0.10:
		return "Moderate"
	default:
		return "Diversified"
	}
}
