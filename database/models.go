// Package database provides database connection management for the sales-intel
// client analytics pipeline.
//
// This package includes:
//   - Database connection management using GORM and PostgreSQL
//   - Source fact tables (src_*) treated as read-only by the pipeline
//   - Derived aggregate tables (ana_*, int_*) replaced wholesale on refresh
//
// Key Concepts:
//   - Facts are append-only; the pipeline never mutates them
//   - Every derived row is a pure function of the facts at refresh time
//   - Replace-on-refresh writes run inside a single transaction so readers
//     never observe a half-updated aggregate family
//
// Data Models:
//
//	All data models (Client, TradeExecution, TradeSummary, etc.) are defined in
//	the models_pkg package to avoid circular import dependencies.
package database

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	models "sales-intel/database/models_pkg"
)

// Database holds the GORM database connection and provides access to the underlying DB instance.
// It serves as the central connection point for all database operations in the application.
type Database struct {
	db *gorm.DB
}

// DB returns the underlying GORM database instance for direct access when needed.
func (d *Database) DB() *gorm.DB {
	return d.db
}

// Connect establishes database connection using GORM
func Connect(host string, port int, dbname, user, password string) (*Database, error) {
	dsn := fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=disable",
		host, port, dbname, user, password)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent), // Silent logging for production
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return &Database{db: db}, nil
}

// Close closes the database connection
func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ============================================================================
// Backward Compatibility Type Aliases
// ============================================================================

// These type aliases let callers refer to models through the database package
// without importing models_pkg directly.

// Source fact models
type Client = models.Client
type Stock = models.Stock
type TradeExecution = models.TradeExecution
type CallLog = models.CallLog
type PortfolioSnapshot = models.PortfolioSnapshot
type Position = models.Position
type Report = models.Report
type ReadershipEvent = models.ReadershipEvent
type StockPrice = models.StockPrice
type StockReturn = models.StockReturn
type StockVolatility = models.StockVolatility

// Derived aggregate models
type TradeSummary = models.TradeSummary
type CallPattern = models.CallPattern
type TopicSignal = models.TopicSignal
type PositionHint = models.PositionHint
type PortfolioRisk = models.PortfolioRisk
type EngagementMomentum = models.EngagementMomentum
type Conviction = models.Conviction
type ReadershipIntel = models.ReadershipIntel
type ClientProfile = models.ClientProfile
type RiskComposite = models.RiskComposite
type SectorMomentum = models.SectorMomentum

// Operational models
type Webhook = models.Webhook
type WebhookDelivery = models.WebhookDelivery
