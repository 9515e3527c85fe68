// Package facts provides read-only access to the source fact tables.
// The pipeline never writes through this repository; facts are append-only
// and owned by upstream ingestion systems.
package facts

import (
	"fmt"
	"time"

	models "sales-intel/database/models_pkg"

	"gorm.io/gorm"
)

// Repository handles read-only database operations for source facts
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new facts repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReadershipRecord is a readership event joined to its report, with the
// publish-to-read delay attached. This is the only fact join the pipeline
// materializes in Go; everything else consumes raw rows.
type ReadershipRecord struct {
	EventID          int64
	ClientID         int64
	ReportID         int64
	ReportType       string
	ReportSector     string
	ReportTicker     *string
	PublishTimestamp time.Time
	ReadTimestamp    time.Time
	DaysDiff         int // read - publish, floored to whole days
}

// GetAllClients returns every client row
func (r *Repository) GetAllClients() ([]models.Client, error) {
	var clients []models.Client
	if err := r.db.Order("client_id").Find(&clients).Error; err != nil {
		return nil, fmt.Errorf("GetAllClients: %w", err)
	}
	return clients, nil
}

// GetAllStocks returns the stock reference universe
func (r *Repository) GetAllStocks() ([]models.Stock, error) {
	var stocks []models.Stock
	if err := r.db.Order("stock_id").Find(&stocks).Error; err != nil {
		return nil, fmt.Errorf("GetAllStocks: %w", err)
	}
	return stocks, nil
}

// GetAllTrades returns all trade executions in deterministic order.
// Ordering by timestamp then trade_id keeps tie-breaks stable across refreshes.
func (r *Repository) GetAllTrades() ([]models.TradeExecution, error) {
	var trades []models.TradeExecution
	if err := r.db.Order("trade_timestamp, trade_id").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("GetAllTrades: %w", err)
	}
	return trades, nil
}

// GetAllCalls returns all call logs in deterministic order
func (r *Repository) GetAllCalls() ([]models.CallLog, error) {
	var calls []models.CallLog
	if err := r.db.Order("call_timestamp, call_id").Find(&calls).Error; err != nil {
		return nil, fmt.Errorf("GetAllCalls: %w", err)
	}
	return calls, nil
}

// GetAllReports returns all published reports keyed for joining
func (r *Repository) GetAllReports() ([]models.Report, error) {
	var reports []models.Report
	if err := r.db.Order("report_id").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("GetAllReports: %w", err)
	}
	return reports, nil
}

// GetReadershipRecords returns readership events joined to reports with the
// publish-to-read delay in floored whole days. Events referencing a missing
// report are skipped; they carry no usable delay signal.
func (r *Repository) GetReadershipRecords() ([]ReadershipRecord, error) {
	var events []models.ReadershipEvent
	if err := r.db.Order("read_timestamp, event_id").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("GetReadershipRecords: events: %w", err)
	}

	reports, err := r.GetAllReports()
	if err != nil {
		return nil, fmt.Errorf("GetReadershipRecords: %w", err)
	}
	byID := make(map[int64]models.Report, len(reports))
	for _, rp := range reports {
		byID[rp.ReportID] = rp
	}

	records := make([]ReadershipRecord, 0, len(events))
	for _, e := range events {
		rp, ok := byID[e.ReportID]
		if !ok {
			continue
		}
		records = append(records, ReadershipRecord{
			EventID:          e.EventID,
			ClientID:         e.ClientID,
			ReportID:         e.ReportID,
			ReportType:       rp.ReportType,
			ReportSector:     rp.Sector,
			ReportTicker:     rp.Ticker,
			PublishTimestamp: rp.PublishTimestamp,
			ReadTimestamp:    e.ReadTimestamp,
			DaysDiff:         DaysBetween(rp.PublishTimestamp, e.ReadTimestamp),
		})
	}
	return records, nil
}

// DaysBetween returns the elapsed whole days from publish to read, floored.
// A read 47 hours after publication is 1 day.
func DaysBetween(publish, read time.Time) int {
	diff := read.Sub(publish)
	days := int(diff.Hours() / 24)
	if diff < 0 && diff.Hours()/24 != float64(days) {
		days-- // floor, not truncate, for the rare clock-skewed negative delay
	}
	return days
}

// GetLatestSnapshots returns the single latest portfolio snapshot per client.
func (r *Repository) GetLatestSnapshots() (map[int64]models.PortfolioSnapshot, error) {
	var snaps []models.PortfolioSnapshot
	if err := r.db.Order("snapshot_id").Find(&snaps).Error; err != nil {
		return nil, fmt.Errorf("GetLatestSnapshots: %w", err)
	}
	return LatestSnapshotPerClient(snaps), nil
}

// LatestSnapshotPerClient reduces snapshot rows to the single latest per
// client; older snapshots never feed risk calculations. Latest means greatest
// as_of_date, ties broken by created_at then snapshot_id so the result is
// deterministic regardless of input order.
func LatestSnapshotPerClient(snaps []models.PortfolioSnapshot) map[int64]models.PortfolioSnapshot {
	latest := make(map[int64]models.PortfolioSnapshot)
	for _, s := range snaps {
		cur, ok := latest[s.ClientID]
		if !ok || snapshotNewer(s, cur) {
			latest[s.ClientID] = s
		}
	}
	return latest
}

func snapshotNewer(a, b models.PortfolioSnapshot) bool {
	if !a.AsOfDate.Equal(b.AsOfDate) {
		return a.AsOfDate.After(b.AsOfDate)
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.After(b.CreatedAt)
	}
	return a.SnapshotID > b.SnapshotID
}

// GetPositionsBySnapshot returns positions for a set of snapshot IDs,
// grouped by snapshot.
func (r *Repository) GetPositionsBySnapshot(snapshotIDs []int64) (map[int64][]models.Position, error) {
	if len(snapshotIDs) == 0 {
		return map[int64][]models.Position{}, nil
	}

	var positions []models.Position
	err := r.db.Where("snapshot_id IN ?", snapshotIDs).
		Order("snapshot_id, position_id").
		Find(&positions).Error
	if err != nil {
		return nil, fmt.Errorf("GetPositionsBySnapshot: %w", err)
	}

	grouped := make(map[int64][]models.Position)
	for _, p := range positions {
		grouped[p.SnapshotID] = append(grouped[p.SnapshotID], p)
	}
	return grouped, nil
}

// GetLatestVolatility returns the latest known vol row per stock.
// Only the most recent vol_date per stock matters for current risk.
func (r *Repository) GetLatestVolatility() (map[int64]models.StockVolatility, error) {
	var vols []models.StockVolatility
	if err := r.db.Order("stock_id, vol_date, vol_id").Find(&vols).Error; err != nil {
		return nil, fmt.Errorf("GetLatestVolatility: %w", err)
	}

	latest := make(map[int64]models.StockVolatility)
	for _, v := range vols {
		latest[v.StockID] = v
	}
	return latest, nil
}
