package app

import (
	"fmt"
	"log"
	"time"

	"sales-intel/cache"
	"sales-intel/config"
	"sales-intel/database/aggregates"
	"sales-intel/database/facts"
	models "sales-intel/database/models_pkg"
	"sales-intel/notifications"
	"sales-intel/realtime"
)

// Pipeline periodically recomputes every derived aggregate family from the
// source facts. Each cycle is a full replace in dependency order: per-client
// aggregates first, then the integration layer, then composite scoring.
type Pipeline struct {
	facts      *facts.Repository
	aggregates *aggregates.Repository
	redis      *cache.RedisClient
	webhooks   *notifications.WebhookManager
	broker     *realtime.Broker
	cfg        *config.Config
	strategies []RiskStrategy
	done       chan bool
}

// NewPipeline creates the refresh pipeline. Redis, webhooks and the broker
// are optional; a nil value disables that side effect.
func NewPipeline(
	factsRepo *facts.Repository,
	aggRepo *aggregates.Repository,
	redis *cache.RedisClient,
	webhooks *notifications.WebhookManager,
	broker *realtime.Broker,
	cfg *config.Config,
) *Pipeline {
	return &Pipeline{
		facts:      factsRepo,
		aggregates: aggRepo,
		redis:      redis,
		webhooks:   webhooks,
		broker:     broker,
		cfg:        cfg,
		strategies: DefaultRiskStrategies(),
		done:       make(chan bool),
	}
}

// Start begins the refresh loop
func (p *Pipeline) Start() {
	log.Println("📊 Analytics refresh pipeline started")

	interval := time.Duration(p.cfg.Analytics.RefreshIntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	// Initial run
	if err := p.RunOnce(time.Now()); err != nil {
		log.Printf("⚠️  Initial refresh failed: %v", err)
	}

	for {
		select {
		case <-ticker.C:
			if err := p.RunOnce(time.Now()); err != nil {
				log.Printf("⚠️  Refresh failed: %v", err)
			}
		case <-p.done:
			log.Println("📊 Analytics refresh pipeline stopped")
			return
		}
	}
}

// Stop stops the refresh loop
func (p *Pipeline) Stop() {
	p.done <- true
}

// RunOnce executes one full recomputation relative to the given reference
// time. Safe to invoke repeatedly; with unchanged facts the outputs are
// identical. Source facts are never mutated.
func (p *Pipeline) RunOnce(now time.Time) error {
	started := time.Now()
	log.Printf("🔄 Refreshing analytics (reference time %s)...", now.Format(time.RFC3339))

	// Stage 0: load a consistent snapshot of the facts
	clients, err := p.facts.GetAllClients()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	stocks, err := p.facts.GetAllStocks()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	trades, err := p.facts.GetAllTrades()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	calls, err := p.facts.GetAllCalls()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	reports, err := p.facts.GetAllReports()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	readRecords, err := p.facts.GetReadershipRecords()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	snapshots, err := p.facts.GetLatestSnapshots()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	snapshotIDs := make([]int64, 0, len(snapshots))
	for _, s := range snapshots {
		snapshotIDs = append(snapshotIDs, s.SnapshotID)
	}
	positions, err := p.facts.GetPositionsBySnapshot(snapshotIDs)
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}
	vols, err := p.facts.GetLatestVolatility()
	if err != nil {
		return fmt.Errorf("RunOnce: %w", err)
	}

	stocksByID := make(map[int64]models.Stock, len(stocks))
	for _, s := range stocks {
		stocksByID[s.StockID] = s
	}
	reportsByID := make(map[int64]models.Report, len(reports))
	for _, r := range reports {
		reportsByID[r.ReportID] = r
	}

	// Stage 1: per-client aggregates
	summaries := BuildTradeSummaries(trades, now)
	patterns := BuildCallPatterns(calls, now)
	topicSignals := BuildTopicSignals(calls, reportsByID, DefaultTopicRules, now)
	positionHints := BuildPositionHints(calls, stocksByID, DefaultHintFamilies, now)
	portfolioRisks := BuildPortfolioRisks(snapshots, positions, vols, p.cfg.Analytics, now)
	momentum := BuildEngagementMomentum(clients, calls, trades, p.cfg.Analytics, now)
	convictions := BuildConvictions(trades, calls, stocksByID, now)
	readership := BuildReadershipIntel(readRecords, now)
	sectorMomentum := BuildSectorMomentum(trades, p.cfg.Analytics, now)

	// Stage 2: integration layer
	profiles := BuildClientProfiles(clients, summaries, patterns, topicSignals, now)

	// Stage 3: composite scoring
	riskInputs := AssembleRiskInputs(
		clients, summaries, portfolioRisks, momentum, convictions, readership,
		trades, readRecords, DefaultVolatileSectors, now,
	)
	composites := BuildRiskComposites(p.strategies, riskInputs, p.cfg.Analytics, now)

	// Stage 4: commit, each family replaced atomically
	commits := []struct {
		name    string
		rows    int
		replace func() error
	}{
		{"trade summaries", len(summaries), func() error { return p.aggregates.ReplaceTradeSummaries(summaries) }},
		{"call patterns", len(patterns), func() error { return p.aggregates.ReplaceCallPatterns(patterns) }},
		{"topic signals", len(topicSignals), func() error { return p.aggregates.ReplaceTopicSignals(topicSignals) }},
		{"position hints", len(positionHints), func() error { return p.aggregates.ReplacePositionHints(positionHints) }},
		{"portfolio risks", len(portfolioRisks), func() error { return p.aggregates.ReplacePortfolioRisks(portfolioRisks) }},
		{"engagement momentum", len(momentum), func() error { return p.aggregates.ReplaceEngagementMomentum(momentum) }},
		{"convictions", len(convictions), func() error { return p.aggregates.ReplaceConvictions(convictions) }},
		{"readership intelligence", len(readership), func() error { return p.aggregates.ReplaceReadershipIntel(readership) }},
		{"sector momentum", len(sectorMomentum), func() error { return p.aggregates.ReplaceSectorMomentum(sectorMomentum) }},
		{"client profiles", len(profiles), func() error { return p.aggregates.ReplaceClientProfiles(profiles) }},
		{"risk composites", len(composites), func() error { return p.aggregates.ReplaceRiskComposites(composites) }},
	}
	for _, c := range commits {
		if err := c.replace(); err != nil {
			return fmt.Errorf("RunOnce: replacing %s: %w", c.name, err)
		}
		log.Printf("✅ Replaced %s (%d rows)", c.name, c.rows)
	}

	p.afterRefresh(composites, now)

	log.Printf("✅ Analytics refresh complete in %v (%d clients)", time.Since(started).Round(time.Millisecond), len(clients))
	return nil
}

// afterRefresh runs the non-critical side effects of a completed cycle.
// Failures here are logged, never propagated; the committed aggregates are
// already valid.
func (p *Pipeline) afterRefresh(composites []models.RiskComposite, now time.Time) {
	if p.redis != nil {
		if err := p.redis.InvalidateProfiles(); err != nil {
			log.Printf("⚠️  Profile cache invalidation failed: %v", err)
		}
		if err := p.redis.PublishRefresh(now); err != nil {
			log.Printf("⚠️  Refresh event publish failed: %v", err)
		}
	}

	if p.broker != nil {
		p.broker.Publish(realtime.Event{
			Type: "refresh_complete",
			Data: map[string]interface{}{"reference_time": now.Format(time.RFC3339)},
		})
		for _, row := range composites {
			if row.Strategy != "multi_factor" || row.ActionSignal == "Normal Engagement" {
				continue
			}
			p.broker.Publish(realtime.Event{
				Type: "action_signal",
				Data: map[string]interface{}{
					"client_id":        row.ClientID,
					"action_signal":    row.ActionSignal,
					"engagement_trend": row.EngagementTrend,
					"risk_category":    row.RiskCategory,
				},
			})
		}
	}

	if p.webhooks != nil {
		p.webhooks.NotifyActionSignals(composites)
	}
}
