// Package aggregates persists the derived analytics rows. Every family is a
// pure function of the facts at refresh time, so writes always replace the
// whole family: delete plus re-insert inside one transaction. Readers see
// either the previous refresh or the new one, never a mix.
package aggregates

import (
	"fmt"

	"sales-intel/database"
	models "sales-intel/database/models_pkg"

	"gorm.io/gorm"
)

const insertBatchSize = 200

// Repository handles database operations for derived analytics data
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new aggregates repository
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// InitSchema performs auto-migration of all derived aggregate tables.
// Source fact tables are owned by upstream ingestion and are not migrated here.
func (r *Repository) InitSchema() error {
	fmt.Println("🔄 Starting aggregate schema initialization...")

	err := r.db.AutoMigrate(
		&models.TradeSummary{},
		&models.CallPattern{},
		&models.TopicSignal{},
		&models.PositionHint{},
		&models.PortfolioRisk{},
		&models.EngagementMomentum{},
		&models.Conviction{},
		&models.ReadershipIntel{},
		&models.ClientProfile{},
		&models.RiskComposite{},
		&models.SectorMomentum{},
		&models.Webhook{},
		&models.WebhookDelivery{},
	)
	if err != nil {
		return fmt.Errorf("auto-migration failed: %w", err)
	}

	fmt.Println("✅ Aggregate schema ready")
	return nil
}

// replaceAll deletes every row of a family and re-inserts the new rows in one
// transaction.
func replaceAll[T any](db *gorm.DB, name string, rows []T) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var model T
		if err := tx.Where("1 = 1").Delete(&model).Error; err != nil {
			return fmt.Errorf("replace %s: delete: %w", name, err)
		}
		if len(rows) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(rows, insertBatchSize).Error; err != nil {
			return fmt.Errorf("replace %s: insert: %w", name, err)
		}
		return nil
	})
}

// ============================================================================
// Replace-on-refresh writers
// ============================================================================

// ReplaceTradeSummaries replaces all trade summary rows
func (r *Repository) ReplaceTradeSummaries(rows []models.TradeSummary) error {
	return replaceAll(r.db, "trade summaries", rows)
}

// ReplaceCallPatterns replaces all call pattern rows
func (r *Repository) ReplaceCallPatterns(rows []models.CallPattern) error {
	return replaceAll(r.db, "call patterns", rows)
}

// ReplaceTopicSignals replaces all topic signal rows
func (r *Repository) ReplaceTopicSignals(rows []models.TopicSignal) error {
	return replaceAll(r.db, "topic signals", rows)
}

// ReplacePositionHints replaces all position hint rows
func (r *Repository) ReplacePositionHints(rows []models.PositionHint) error {
	return replaceAll(r.db, "position hints", rows)
}

// ReplacePortfolioRisks replaces all portfolio risk rows
func (r *Repository) ReplacePortfolioRisks(rows []models.PortfolioRisk) error {
	return replaceAll(r.db, "portfolio risks", rows)
}

// ReplaceEngagementMomentum replaces all engagement momentum rows
func (r *Repository) ReplaceEngagementMomentum(rows []models.EngagementMomentum) error {
	return replaceAll(r.db, "engagement momentum", rows)
}

// ReplaceConvictions replaces all conviction rows
func (r *Repository) ReplaceConvictions(rows []models.Conviction) error {
	return replaceAll(r.db, "convictions", rows)
}

// ReplaceReadershipIntel replaces all readership intelligence rows
func (r *Repository) ReplaceReadershipIntel(rows []models.ReadershipIntel) error {
	return replaceAll(r.db, "readership intelligence", rows)
}

// ReplaceClientProfiles replaces all client profile rows
func (r *Repository) ReplaceClientProfiles(rows []models.ClientProfile) error {
	return replaceAll(r.db, "client profiles", rows)
}

// ReplaceRiskComposites replaces all risk composite rows (both strategies)
func (r *Repository) ReplaceRiskComposites(rows []models.RiskComposite) error {
	return replaceAll(r.db, "risk composites", rows)
}

// ReplaceSectorMomentum replaces all sector momentum rows
func (r *Repository) ReplaceSectorMomentum(rows []models.SectorMomentum) error {
	return replaceAll(r.db, "sector momentum", rows)
}

// ============================================================================
// Readers (consumed by the API layer and the integration stages)
// ============================================================================

func getByClient[T any](db *gorm.DB, op string, clientID int64) (*T, error) {
	var row T
	err := db.Where("client_id = ?", clientID).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil // no signal for this client
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &row, nil
}

// GetTradeSummary returns the trade summary row for a client, nil when absent
func (r *Repository) GetTradeSummary(clientID int64) (*models.TradeSummary, error) {
	return getByClient[models.TradeSummary](r.db, "GetTradeSummary", clientID)
}

// GetCallPattern returns the call pattern row for a client, nil when absent
func (r *Repository) GetCallPattern(clientID int64) (*models.CallPattern, error) {
	return getByClient[models.CallPattern](r.db, "GetCallPattern", clientID)
}

// GetTopicSignal returns the topic signal row for a client, nil when absent
func (r *Repository) GetTopicSignal(clientID int64) (*models.TopicSignal, error) {
	return getByClient[models.TopicSignal](r.db, "GetTopicSignal", clientID)
}

// GetPositionHints returns position hints for a client ordered by mention count
func (r *Repository) GetPositionHints(clientID int64, limit int) ([]models.PositionHint, error) {
	var hints []models.PositionHint
	err := r.db.Where("client_id = ?", clientID).
		Order("mention_count DESC, last_mention_ts DESC, stock_id").
		Limit(limit).
		Find(&hints).Error
	if err != nil {
		return nil, fmt.Errorf("GetPositionHints: %w", err)
	}
	return hints, nil
}

// GetPortfolioRisk returns the portfolio risk row for a client, nil when absent
func (r *Repository) GetPortfolioRisk(clientID int64) (*models.PortfolioRisk, error) {
	return getByClient[models.PortfolioRisk](r.db, "GetPortfolioRisk", clientID)
}

// GetEngagementMomentum returns the momentum row for a client, nil when absent
func (r *Repository) GetEngagementMomentum(clientID int64) (*models.EngagementMomentum, error) {
	return getByClient[models.EngagementMomentum](r.db, "GetEngagementMomentum", clientID)
}

// GetConviction returns the conviction row for a client, nil when absent
func (r *Repository) GetConviction(clientID int64) (*models.Conviction, error) {
	return getByClient[models.Conviction](r.db, "GetConviction", clientID)
}

// GetReadershipIntel returns the readership row for a client, nil when absent
func (r *Repository) GetReadershipIntel(clientID int64) (*models.ReadershipIntel, error) {
	return getByClient[models.ReadershipIntel](r.db, "GetReadershipIntel", clientID)
}

// GetClientProfile returns the composed profile for a client, nil when absent
func (r *Repository) GetClientProfile(clientID int64) (*models.ClientProfile, error) {
	return getByClient[models.ClientProfile](r.db, "GetClientProfile", clientID)
}

// GetRiskComposite returns one scoring variant for a client, nil when absent
func (r *Repository) GetRiskComposite(clientID int64, strategy string) (*models.RiskComposite, error) {
	var row models.RiskComposite
	err := r.db.Where("client_id = ? AND strategy = ?", clientID, strategy).First(&row).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("GetRiskComposite: %w", err)
	}
	return &row, nil
}

// GetRiskComposites returns both scoring variants for a client
func (r *Repository) GetRiskComposites(clientID int64) ([]models.RiskComposite, error) {
	var rows []models.RiskComposite
	err := r.db.Where("client_id = ?", clientID).Order("strategy").Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("GetRiskComposites: %w", err)
	}
	return rows, nil
}

// GetSectorMomentum returns all sector momentum rows ordered by activity
func (r *Repository) GetSectorMomentum(limit int) ([]models.SectorMomentum, error) {
	var rows []models.SectorMomentum
	err := r.db.Order("trades_30d DESC, sector").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("GetSectorMomentum: %w", err)
	}
	return rows, nil
}

// ============================================================================
// Webhook operations
// ============================================================================

// GetActiveWebhooks returns every active webhook registration.
func (r *Repository) GetActiveWebhooks() ([]models.Webhook, error) {
	var hooks []models.Webhook
	if err := r.db.Where("is_active = ?", true).Order("id ASC").Find(&hooks).Error; err != nil {
		return nil, fmt.Errorf("GetActiveWebhooks: %w", err)
	}
	return hooks, nil
}

// SaveWebhook creates or updates a webhook registration.
func (r *Repository) SaveWebhook(hook *models.Webhook) error {
	if err := r.db.Save(hook).Error; err != nil {
		return fmt.Errorf("SaveWebhook: %w", err)
	}
	return nil
}

// DeactivateWebhook marks a registration inactive without losing its
// delivery history.
func (r *Repository) DeactivateWebhook(id int) error {
	res := r.db.Model(&models.Webhook{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("DeactivateWebhook: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return database.NewNotFoundErrorWithID("webhook", id)
	}
	return nil
}

// SaveWebhookDelivery appends one delivery outcome to the audit trail.
func (r *Repository) SaveWebhookDelivery(entry *models.WebhookDelivery) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("SaveWebhookDelivery: %w", err)
	}
	return nil
}
