package app

import (
	"testing"

	models "sales-intel/database/models_pkg"
)

func TestBuildPortfolioRisks(t *testing.T) {
	cfg := testAnalyticsConfig()
	snaps := map[int64]models.PortfolioSnapshot{
		1: {SnapshotID: 100, ClientID: 1},
	}
	positions := map[int64][]models.Position{
		100: {
			{SnapshotID: 100, StockID: 10, Weight: 0.50},
			{SnapshotID: 100, StockID: 11, Weight: 0.30},
			{SnapshotID: 100, StockID: 12, Weight: 0.20},
		},
	}
	vols := map[int64]models.StockVolatility{
		10: {StockID: 10, Vol60D: 0.40},
		11: {StockID: 11, Vol60D: 0.10},
		// stock 12 has no vol record, falls back to the 0.25 default
	}

	risks := BuildPortfolioRisks(snaps, positions, vols, cfg, testNow)
	if len(risks) != 1 {
		t.Fatalf("expected 1 risk row, got %d", len(risks))
	}
	r := risks[0]

	wantVol := 0.50*0.40 + 0.30*0.10 + 0.20*0.25
	if !almostEqual(r.PortfolioVolatility, wantVol) {
		t.Errorf("portfolio vol = %v, want %v", r.PortfolioVolatility, wantVol)
	}
	if !almostEqual(r.MaxPositionWeight, 0.50) {
		t.Errorf("max weight = %v, want 0.50", r.MaxPositionWeight)
	}
	if r.TotalPositions != 3 || r.LargePositions != 3 || r.MediumPositions != 3 {
		t.Errorf("position counts total=%d large=%d medium=%d", r.TotalPositions, r.LargePositions, r.MediumPositions)
	}
	if !almostEqual(r.AvgStockVolatility, (0.40+0.10+0.25)/3) {
		t.Errorf("avg stock vol = %v", r.AvgStockVolatility)
	}
	// only stock 10 clears the 0.35 high-vol threshold
	if !almostEqual(r.HighVolExposure, 0.50) {
		t.Errorf("high vol exposure = %v, want 0.50", r.HighVolExposure)
	}
	if r.VolatilityRiskLevel != "High" {
		t.Errorf("volatility risk level = %q, want High", r.VolatilityRiskLevel)
	}
	if r.ConcentrationRiskLevel != "Concentrated" {
		t.Errorf("concentration risk level = %q, want Concentrated", r.ConcentrationRiskLevel)
	}
}

func TestBuildPortfolioRisksPositionCountBoundaries(t *testing.T) {
	cfg := testAnalyticsConfig()
	snaps := map[int64]models.PortfolioSnapshot{
		1: {SnapshotID: 200, ClientID: 1},
	}
	// boundary weights are exclusive: exactly 0.10 is not large, exactly 0.05 is not medium
	positions := map[int64][]models.Position{
		200: {
			{SnapshotID: 200, StockID: 10, Weight: 0.10},
			{SnapshotID: 200, StockID: 11, Weight: 0.05},
			{SnapshotID: 200, StockID: 12, Weight: 0.06},
		},
	}

	risks := BuildPortfolioRisks(snaps, positions, map[int64]models.StockVolatility{}, cfg, testNow)
	if len(risks) != 1 {
		t.Fatalf("expected 1 risk row, got %d", len(risks))
	}
	r := risks[0]
	if r.LargePositions != 0 {
		t.Errorf("large positions = %d, want 0", r.LargePositions)
	}
	if r.MediumPositions != 1 {
		t.Errorf("medium positions = %d, want 1", r.MediumPositions)
	}
	if r.ConcentrationRiskLevel != "Moderate" {
		t.Errorf("concentration risk level = %q, want Moderate", r.ConcentrationRiskLevel)
	}
}

func TestBuildPortfolioRisksEmptySnapshot(t *testing.T) {
	cfg := testAnalyticsConfig()
	snaps := map[int64]models.PortfolioSnapshot{
		1: {SnapshotID: 300, ClientID: 1},
	}
	if got := BuildPortfolioRisks(snaps, map[int64][]models.Position{}, nil, cfg, testNow); len(got) != 0 {
		t.Errorf("snapshot without positions must produce no row, got %d", len(got))
	}
}

func TestClassifyVolatilityRisk(t *testing.T) {
	tests := []struct {
		vol  float64
		want string
	}{
		{0.30, "High"},
		{0.25, "High"},
		{0.249, "Medium"},
		{0.15, "Medium"},
		{0.149, "Low"},
		{0.0, "Low"},
	}
	for _, tt := range tests {
		if got := classifyVolatilityRisk(tt.vol); got != tt.want {
			t.Errorf("classifyVolatilityRisk(%v) = %q, want %q", tt.vol, got, tt.want)
		}
	}
}
