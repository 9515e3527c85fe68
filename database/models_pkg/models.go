package models

import "time"

// ============================================================================
// Source Facts (read-only from the pipeline's perspective)
// ============================================================================

// Client represents a counterparty of the sales desk.
// One row per client; identity and classification are immutable, contact
// metadata may be updated by upstream CRM syncs.
//
// Key Fields:
//   - ClientType: classification used for risk priors (Hedge Fund, Pension
//     Fund, Insurance, Asset Manager, Private Bank, Quant Fund, ...)
//   - Region: coverage region, informational only for this pipeline
type Client struct {
	ClientID           int64      `gorm:"primaryKey;autoIncrement" json:"client_id"`
	ClientName         string     `gorm:"size:200;not null" json:"client_name"`
	FirmName           string     `gorm:"size:200" json:"firm_name"`
	ClientType         string     `gorm:"size:100;index" json:"client_type"`
	Region             string     `gorm:"size:100" json:"region"`
	PrimaryContactName string     `gorm:"size:200" json:"primary_contact_name"`
	PrimaryContactRole string     `gorm:"size:100" json:"primary_contact_role"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          *time.Time `json:"updated_at,omitempty"`
}

// TableName specifies the table name for Client
func (Client) TableName() string {
	return "src_clients"
}

// Stock represents a tradable security. Immutable reference data.
type Stock struct {
	StockID         int64     `gorm:"primaryKey;autoIncrement" json:"stock_id"`
	CompanyName     string    `gorm:"size:200;not null" json:"company_name"`
	Ticker          string    `gorm:"size:20;uniqueIndex;not null" json:"ticker"`
	Sector          string    `gorm:"size:100;index" json:"sector"`
	Region          string    `gorm:"size:100" json:"region"`
	MarketCapBucket string    `gorm:"size:20" json:"market_cap_bucket"` // Small, Mid, Large, Mega
	ThemeTag        string    `gorm:"size:100" json:"theme_tag"`
	CreatedAt       time.Time `json:"created_at"`
}

// TableName specifies the table name for Stock
func (Stock) TableName() string {
	return "src_stocks"
}

// TradeExecution represents a single fill for a client. Append-only fact.
//
// Key Fields:
//   - Side: Buy or Sell
//   - NotionalBucket: coarse size proxy (Small, Medium, Large)
//   - Sector/ThemeTag: inherited from the stock at trade time, kept on the
//     row so summaries survive later reference-data changes
//   - StockID/Ticker: nullable, OTC and basket fills carry no single stock
type TradeExecution struct {
	TradeID        int64     `gorm:"primaryKey;autoIncrement" json:"trade_id"`
	ClientID       int64     `gorm:"index;not null" json:"client_id"`
	TradeTimestamp time.Time `gorm:"index;not null" json:"trade_timestamp"`
	InstrumentName string    `gorm:"size:200" json:"instrument_name"`
	Ticker         *string   `gorm:"size:20;index" json:"ticker,omitempty"`
	Sector         string    `gorm:"size:100;index" json:"sector"`
	ThemeTag       string    `gorm:"size:100" json:"theme_tag"`
	Side           string    `gorm:"size:10;not null" json:"side"` // Buy, Sell
	NotionalBucket string    `gorm:"size:20" json:"notional_bucket"`
	StockID        *int64    `gorm:"index" json:"stock_id,omitempty"`
}

// TableName specifies the table name for TradeExecution
func (TradeExecution) TableName() string {
	return "src_trade_executions"
}

// CallLog represents a client interaction. Append-only fact.
// NotesRaw is free text and is the input for keyword signal extraction.
type CallLog struct {
	CallID           int64     `gorm:"primaryKey;autoIncrement" json:"call_id"`
	ClientID         int64     `gorm:"index;not null" json:"client_id"`
	CallTimestamp    time.Time `gorm:"index;not null" json:"call_timestamp"`
	Direction        string    `gorm:"size:20" json:"direction"` // Inbound, Outbound
	DurationMinutes  float64   `gorm:"type:decimal(8,2)" json:"duration_minutes"`
	DiscussedCompany string    `gorm:"size:200" json:"discussed_company"`
	DiscussedSector  string    `gorm:"size:100" json:"discussed_sector"`
	RelatedReportID  *int64    `gorm:"index" json:"related_report_id,omitempty"`
	NotesRaw         string    `gorm:"type:text" json:"notes_raw"`
	StockID          *int64    `gorm:"index" json:"stock_id,omitempty"`
}

// TableName specifies the table name for CallLog
func (CallLog) TableName() string {
	return "src_call_logs"
}

// PortfolioSnapshot is a point-in-time AUM record, unique per client+date.
// Only the latest snapshot per client feeds current risk calculations.
type PortfolioSnapshot struct {
	SnapshotID   int64     `gorm:"primaryKey;autoIncrement" json:"snapshot_id"`
	ClientID     int64     `gorm:"index;not null;uniqueIndex:idx_snapshot_client_date" json:"client_id"`
	AsOfDate     time.Time `gorm:"not null;uniqueIndex:idx_snapshot_client_date" json:"as_of_date"`
	SourceSystem string    `gorm:"size:100" json:"source_system"`
	CreatedAt    time.Time `json:"created_at"`
}

// TableName specifies the table name for PortfolioSnapshot
func (PortfolioSnapshot) TableName() string {
	return "src_portfolio_snapshots"
}

// Position is one holding within a snapshot. Weight is in [0,1]; weights in a
// snapshot need not sum to 1 (cash and unclassified assets), but no single
// weight exceeds 1.
type Position struct {
	PositionID  int64   `gorm:"primaryKey;autoIncrement" json:"position_id"`
	SnapshotID  int64   `gorm:"index;not null" json:"snapshot_id"`
	StockID     int64   `gorm:"index;not null" json:"stock_id"`
	Quantity    float64 `gorm:"type:decimal(20,4)" json:"quantity"`
	AvgCost     float64 `gorm:"type:decimal(15,4)" json:"avg_cost"`
	MarketValue float64 `gorm:"type:decimal(20,2)" json:"market_value"`
	Weight      float64 `gorm:"type:decimal(8,6);not null" json:"weight"`
	Currency    string  `gorm:"size:10" json:"currency"`
}

// TableName specifies the table name for Position
func (Position) TableName() string {
	return "src_positions"
}

// Report is a published research artifact.
type Report struct {
	ReportID         int64     `gorm:"primaryKey;autoIncrement" json:"report_id"`
	ReportCode       string    `gorm:"size:50;uniqueIndex" json:"report_code"`
	PublishTimestamp time.Time `gorm:"index;not null" json:"publish_timestamp"`
	ReportType       string    `gorm:"size:50" json:"report_type"` // Initiation, Update, Sector Note, ...
	Sector           string    `gorm:"size:100;index" json:"sector"`
	CompanyName      string    `gorm:"size:200" json:"company_name"`
	Ticker           *string   `gorm:"size:20" json:"ticker,omitempty"`
	Title            string    `gorm:"size:500" json:"title"`
	Summary3Bullets  string    `gorm:"type:text" json:"summary_3bullets"`
	StockID          *int64    `gorm:"index" json:"stock_id,omitempty"`
}

// TableName specifies the table name for Report
func (Report) TableName() string {
	return "src_reports"
}

// ReadershipEvent is one read action on a report by a client. Multiple reads
// per client-report pair are allowed; each is a separate event.
type ReadershipEvent struct {
	EventID       int64     `gorm:"primaryKey;autoIncrement" json:"event_id"`
	ClientID      int64     `gorm:"index;not null" json:"client_id"`
	ReportID      int64     `gorm:"index;not null" json:"report_id"`
	ReadTimestamp time.Time `gorm:"index;not null" json:"read_timestamp"`
}

// TableName specifies the table name for ReadershipEvent
func (ReadershipEvent) TableName() string {
	return "src_readership_events"
}

// StockPrice is one close per (stock, date). Used via latest-known lookups only.
type StockPrice struct {
	PriceID   int64     `gorm:"primaryKey;autoIncrement" json:"price_id"`
	StockID   int64     `gorm:"index:idx_price_stock_date;not null" json:"stock_id"`
	PriceDate time.Time `gorm:"index:idx_price_stock_date;not null" json:"price_date"`
	Close     float64   `gorm:"type:decimal(15,4)" json:"close"`
	Currency  string    `gorm:"size:10" json:"currency"`
}

// TableName specifies the table name for StockPrice
func (StockPrice) TableName() string {
	return "src_stock_prices"
}

// StockReturn is one daily return per (stock, date).
type StockReturn struct {
	ReturnID    int64     `gorm:"primaryKey;autoIncrement" json:"return_id"`
	StockID     int64     `gorm:"index:idx_return_stock_date;not null" json:"stock_id"`
	ReturnDate  time.Time `gorm:"index:idx_return_stock_date;not null" json:"return_date"`
	DailyReturn float64   `gorm:"type:decimal(10,6)" json:"daily_return"`
}

// TableName specifies the table name for StockReturn
func (StockReturn) TableName() string {
	return "src_stock_returns"
}

// StockVolatility is one vol observation per (stock, date). The pipeline only
// reads the latest row per stock.
type StockVolatility struct {
	VolID   int64     `gorm:"primaryKey;autoIncrement" json:"vol_id"`
	StockID int64     `gorm:"index:idx_vol_stock_date;not null" json:"stock_id"`
	VolDate time.Time `gorm:"index:idx_vol_stock_date;not null" json:"vol_date"`
	Vol20D  float64   `gorm:"type:decimal(8,4)" json:"vol_20d"`
	Vol60D  float64   `gorm:"type:decimal(8,4)" json:"vol_60d"`
}

// TableName specifies the table name for StockVolatility
func (StockVolatility) TableName() string {
	return "src_stock_volatility"
}

// ============================================================================
// Derived Aggregates (fully replaced on every refresh)
// ============================================================================
//
// Each derived row is a pure function of the fact tables at refresh time.
// Nullable analytics fields use pointers so "no signal" stays distinct from
// zero; consumers must not coalesce them except where a component documents
// an explicit combination-point default.

// TradeSummary is one row per client with at least one qualifying trade.
// Clients with zero trades produce no row.
type TradeSummary struct {
	ClientID                int64      `gorm:"primaryKey" json:"client_id"`
	TradeCount              int        `gorm:"not null" json:"trade_count"`
	TopSector               string     `gorm:"size:100" json:"top_sector"`
	TopSectorShare          float64    `gorm:"type:decimal(6,4)" json:"top_sector_share"`
	TopTheme                string     `gorm:"size:100" json:"top_theme"`
	TopThemeShare           float64    `gorm:"type:decimal(6,4)" json:"top_theme_share"`
	BuyRate                 float64    `gorm:"type:decimal(6,4)" json:"buy_rate"`
	SideBias                float64    `gorm:"type:decimal(6,4)" json:"side_bias"` // 2*buy_rate - 1
	SizeProxy               *float64   `gorm:"type:decimal(6,3)" json:"size_proxy,omitempty"`
	HerfindahlConcentration float64    `gorm:"type:decimal(6,4)" json:"herfindahl_concentration"`
	LastTradeTs             time.Time  `json:"last_trade_ts"`
	UpdatedAt               time.Time  `json:"updated_at"`
}

// TableName specifies the table name for TradeSummary
func (TradeSummary) TableName() string {
	return "ana_client_trade_summary"
}

// CallPattern is one row per client with at least one logged call.
type CallPattern struct {
	ClientID           int64     `gorm:"primaryKey" json:"client_id"`
	CallCount          int       `gorm:"not null" json:"call_count"`
	AvgCallDurationMin float64   `gorm:"type:decimal(8,2)" json:"avg_call_duration_min"`
	BestWeekdayNum     int       `json:"best_weekday_num"` // time.Weekday numbering, Sunday=0
	BestHour           int       `json:"best_hour"`
	BestTimeWindow     string    `gorm:"size:30" json:"best_time_window"`
	TimingConfidence   float64   `gorm:"type:decimal(6,4)" json:"timing_confidence"`
	LastCallTs         time.Time `json:"last_call_ts"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// TableName specifies the table name for CallPattern
func (CallPattern) TableName() string {
	return "ana_client_call_patterns"
}

// TopicSignal is one row per client with at least one tagged call.
type TopicSignal struct {
	ClientID      int64     `gorm:"primaryKey" json:"client_id"`
	TopTopic      string    `gorm:"size:50" json:"top_topic"`
	TopTopicShare float64   `gorm:"type:decimal(6,4)" json:"top_topic_share"`
	TopTopicCount int       `json:"top_topic_count"`
	LastSignalTs  time.Time `json:"last_signal_ts"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for TopicSignal
func (TopicSignal) TableName() string {
	return "ana_client_topic_signals"
}

// PositionHint is one row per (client, stock) mentioned in call notes.
// Hit counts per keyword family are non-exclusive; a single note may add to
// several families at once.
type PositionHint struct {
	ClientID             int64     `gorm:"primaryKey" json:"client_id"`
	StockID              int64     `gorm:"primaryKey" json:"stock_id"`
	Ticker               string    `gorm:"size:20" json:"ticker"`
	MentionCount         int       `gorm:"not null" json:"mention_count"`
	HoldingHints         int       `json:"holding_hints"`
	AddHints             int       `json:"add_hints"`
	ReduceHints          int       `json:"reduce_hints"`
	DiversificationHints int       `json:"diversification_hints"`
	RiskMgmtHints        int       `json:"risk_mgmt_hints"`
	LastMentionTs        time.Time `json:"last_mention_ts"`
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName specifies the table name for PositionHint
func (PositionHint) TableName() string {
	return "ana_call_position_hints"
}

// PortfolioRisk is one row per client with a portfolio snapshot.
// Built strictly from the single latest snapshot per client.
type PortfolioRisk struct {
	ClientID               int64     `gorm:"primaryKey" json:"client_id"`
	SnapshotID             int64     `gorm:"not null" json:"snapshot_id"`
	PortfolioVolatility    float64   `gorm:"type:decimal(8,4)" json:"portfolio_volatility"`
	MaxPositionWeight      float64   `gorm:"type:decimal(6,4)" json:"max_position_weight"`
	TotalPositions         int       `json:"total_positions"`
	LargePositions         int       `json:"large_positions"`  // weight > 0.10
	MediumPositions        int       `json:"medium_positions"` // weight > 0.05
	AvgStockVolatility     float64   `gorm:"type:decimal(8,4)" json:"avg_stock_volatility"`
	HighVolExposure        float64   `gorm:"type:decimal(6,4)" json:"high_vol_exposure"`
	VolatilityRiskLevel    string    `gorm:"size:20" json:"volatility_risk_level"`    // High, Medium, Low
	ConcentrationRiskLevel string    `gorm:"size:20" json:"concentration_risk_level"` // Concentrated, Moderate, Diversified
	UpdatedAt              time.Time `json:"updated_at"`
}

// TableName specifies the table name for PortfolioRisk
func (PortfolioRisk) TableName() string {
	return "ana_client_portfolio_risk"
}

// EngagementMomentum is one row per client, comparing the last 30 days against
// the 31-60 day window relative to the pinned reference time of the refresh.
//
// CallMomentum / TradeMomentum are nil when the prior-period count is zero;
// a zero denominator is "no signal", never infinity.
type EngagementMomentum struct {
	ClientID           int64      `gorm:"primaryKey" json:"client_id"`
	CallsLast30D       int        `json:"calls_last_30d"`
	CallsPrior30D      int        `json:"calls_prior_30d"`
	AvgCallDuration30D float64    `gorm:"type:decimal(8,2)" json:"avg_call_duration_30d"`
	CallMomentum       *float64   `gorm:"type:decimal(8,2)" json:"call_momentum,omitempty"`
	TradesLast30D      int        `json:"trades_last_30d"`
	TradesPrior30D     int        `json:"trades_prior_30d"`
	TradeMomentum      *float64   `gorm:"type:decimal(8,2)" json:"trade_momentum,omitempty"`
	RecentBuyRatio     *float64   `gorm:"type:decimal(6,4)" json:"recent_buy_ratio,omitempty"`
	LargeTrades30D     int        `json:"large_trades_30d"`
	EngagementScore30D float64    `gorm:"type:decimal(10,1)" json:"engagement_score_30d"`
	EngagementTrend    string     `gorm:"size:20" json:"engagement_trend"` // Accelerating, Cooling Off, Dormant, Stable
	ReferenceTime      time.Time  `json:"reference_time"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

// TableName specifies the table name for EngagementMomentum
func (EngagementMomentum) TableName() string {
	return "ana_client_engagement_momentum"
}

// Conviction is one row per client holding that client's single
// highest-scoring stock across trades and call mentions.
type Conviction struct {
	ClientID             int64     `gorm:"primaryKey" json:"client_id"`
	TopConvictionStock   string    `gorm:"size:20" json:"top_conviction_stock"`
	TopConvictionStockID *int64    `json:"top_conviction_stock_id,omitempty"`
	TradeCount           int       `json:"trade_count"`
	CallMentions         int       `json:"call_mentions"`
	NetDirection         int       `json:"net_direction"` // buys minus sells on the top stock
	TradeConcentration   float64   `gorm:"type:decimal(6,4)" json:"trade_concentration"`
	ConvictionScore      float64   `gorm:"type:decimal(10,2)" json:"conviction_score"`
	BullishMentions      int       `json:"bullish_mentions"`
	BearishMentions      int       `json:"bearish_mentions"`
	ConvictionLevel      string    `gorm:"size:20" json:"conviction_level"` // Very High, High, Moderate, Diversified
	SentimentSignal      string    `gorm:"size:20" json:"sentiment_signal"` // Bullish, Bearish, Accumulating, Reducing, Neutral
	UpdatedAt            time.Time `json:"updated_at"`
}

// TableName specifies the table name for Conviction
func (Conviction) TableName() string {
	return "ana_client_conviction"
}

// ReadershipIntel is one row per client with at least one readership event.
type ReadershipIntel struct {
	ClientID               int64     `gorm:"primaryKey" json:"client_id"`
	TotalReads             int       `json:"total_reads"`
	SectorBreadth          int       `json:"sector_breadth"`
	PreferredReportType    string    `gorm:"size:50" json:"preferred_report_type"`
	PreferredSector        string    `gorm:"size:100" json:"preferred_sector"`
	AvgReadDelayDays       float64   `gorm:"type:decimal(8,1)" json:"avg_read_delay_days"`
	ReadVelocityScore      float64   `gorm:"type:decimal(6,3)" json:"read_velocity_score"` // 1/(1+avg_delay)
	SameDayReadRatio       float64   `gorm:"type:decimal(6,4)" json:"same_day_read_ratio"`
	LateReadRatio          float64   `gorm:"type:decimal(6,4)" json:"late_read_ratio"`
	ReaderSpeedType        string    `gorm:"size:20" json:"reader_speed_type"`   // Immediate, Fast, Normal, Slow
	ReaderBreadthType      string    `gorm:"size:20" json:"reader_breadth_type"` // Generalist, Multi-Sector, Specialist
	ReadershipQualityScore float64   `gorm:"type:decimal(10,1)" json:"readership_quality_score"`
	LastReadTs             time.Time `json:"last_read_ts"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// TableName specifies the table name for ReadershipIntel
func (ReadershipIntel) TableName() string {
	return "ana_client_readership_intelligence"
}

// ClientProfile is the integration-layer row combining trade, call and topic
// aggregates with population-relative percentile scores. One row per client
// that appears in ANY upstream aggregate; fields for missing families stay
// nil.
type ClientProfile struct {
	ClientID               int64      `gorm:"primaryKey" json:"client_id"`
	RiskScore              *float64   `gorm:"type:decimal(6,4)" json:"risk_score,omitempty"`
	RiskAppetite           string     `gorm:"size:20" json:"risk_appetite"` // Aggressive, Moderate, Conservative (type prior)
	EngagementLevel        string     `gorm:"size:20" json:"engagement_level"`
	InvestmentStyle        string     `gorm:"size:30" json:"investment_style"`
	DominantTopic          *string    `gorm:"size:50" json:"dominant_topic,omitempty"`
	DominantTopicShare     *float64   `gorm:"type:decimal(6,4)" json:"dominant_topic_share,omitempty"`
	DominantTheme          *string    `gorm:"size:100" json:"dominant_theme,omitempty"`
	SizeRank               *float64   `gorm:"type:decimal(6,4)" json:"size_rank,omitempty"`
	ActivityRank           *float64   `gorm:"type:decimal(6,4)" json:"activity_rank,omitempty"`
	ConcentrationRank      *float64   `gorm:"type:decimal(6,4)" json:"concentration_rank,omitempty"`
	ConcentrationFlag      string     `gorm:"size:20" json:"concentration_flag"`
	DirectionFlag          string     `gorm:"size:20" json:"direction_flag"`
	ActivityFlag           string     `gorm:"size:20" json:"activity_flag"`
	SizeAggressivenessScore *float64  `gorm:"type:decimal(6,4)" json:"size_aggressiveness_score,omitempty"`
	BestDay                *string    `gorm:"size:12" json:"best_day,omitempty"`
	BestHour               *int       `json:"best_hour,omitempty"`
	BestTimeWindow         *string    `gorm:"size:30" json:"best_time_window,omitempty"`
	AvailabilityScore      *float64   `gorm:"type:decimal(6,4)" json:"availability_score,omitempty"`
	ProfileConfidenceScore float64    `gorm:"type:decimal(6,4)" json:"profile_confidence_score"`
	ProfileConfidenceLevel string     `gorm:"size:20" json:"profile_confidence_level"`
	UpdatedAt              time.Time  `json:"updated_at"`
}

// TableName specifies the table name for ClientProfile
func (ClientProfile) TableName() string {
	return "int_client_profile"
}

// RiskComposite is the top-level scored row per client. Two scoring variants
// are kept side by side on the same row: the multi-factor blend and the
// enhanced blend. The formulas are divergent on purpose and not reconciled.
type RiskComposite struct {
	ClientID               int64     `gorm:"primaryKey" json:"client_id"`
	Strategy               string    `gorm:"primaryKey;size:20" json:"strategy"` // multi_factor, enhanced
	CompositeRiskScore     float64   `gorm:"type:decimal(6,4)" json:"composite_risk_score"`
	RiskCategory           string    `gorm:"size:20" json:"risk_category"` // Aggressive, Moderate, Conservative
	InvestorTypeScore      *float64  `gorm:"type:decimal(6,4)" json:"investor_type_score,omitempty"`
	TurnoverScore          *float64  `gorm:"type:decimal(6,4)" json:"turnover_score,omitempty"`
	ConcentrationScore     *float64  `gorm:"type:decimal(6,4)" json:"concentration_score,omitempty"`
	PositionSizeScore      *float64  `gorm:"type:decimal(6,4)" json:"position_size_score,omitempty"`
	SentimentScore         *float64  `gorm:"type:decimal(6,4)" json:"sentiment_score,omitempty"`
	ReadingScore           *float64  `gorm:"type:decimal(6,4)" json:"reading_score,omitempty"`
	PortfolioVolatility    *float64  `gorm:"type:decimal(8,4)" json:"portfolio_volatility,omitempty"`
	EngagementTrend        string    `gorm:"size:20" json:"engagement_trend"`
	ConvictionLevel        string    `gorm:"size:20" json:"conviction_level"`
	ActionSignal           string    `gorm:"size:50" json:"action_signal"`
	ProfileConfidence      string    `gorm:"size:20" json:"profile_confidence"` // High, Medium, Low (data sufficiency)
	UpdatedAt              time.Time `json:"updated_at"`
}

// TableName specifies the table name for RiskComposite
func (RiskComposite) TableName() string {
	return "int_client_risk_composite"
}

// SectorMomentum is one row per sector with market-wide 30d flow signals.
type SectorMomentum struct {
	Sector        string    `gorm:"primaryKey;size:100" json:"sector"`
	Trades30D     int       `json:"trades_30d"`
	TradesPrior30D int      `json:"trades_prior_30d"`
	BuyRatio      float64   `gorm:"type:decimal(6,4)" json:"buy_ratio"`
	Momentum      *float64  `gorm:"type:decimal(8,2)" json:"momentum,omitempty"`
	FlowSignal    string    `gorm:"size:20" json:"flow_signal"` // Inflow, Outflow, Neutral
	UniqueClients int       `json:"unique_clients"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// TableName specifies the table name for SectorMomentum
func (SectorMomentum) TableName() string {
	return "ana_sector_momentum"
}

// ============================================================================
// Operational tables (not replaced on refresh)
// ============================================================================

// Webhook is a registered delivery target for action-signal notifications.
type Webhook struct {
	ID                int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name              string    `gorm:"size:100;not null" json:"name"`
	URL               string    `gorm:"size:500;not null" json:"url"`
	Method            string    `gorm:"size:10;default:POST" json:"method"`
	AuthType          string    `gorm:"size:20" json:"auth_type"` // BEARER, HEADER, empty
	AuthHeader        string    `gorm:"size:100" json:"auth_header"`
	AuthValue         string    `gorm:"size:500" json:"-"`
	SignalFilter      string    `gorm:"size:200" json:"signal_filter"` // CSV of action signals, empty matches all
	MinCompositeScore *float64  `gorm:"type:decimal(6,4)" json:"min_composite_score,omitempty"`
	RetryCount        int       `gorm:"default:3" json:"retry_count"`
	RetryDelaySeconds int       `gorm:"default:5" json:"retry_delay_seconds"`
	IsActive          bool      `gorm:"default:true;index" json:"is_active"`
	CreatedAt         time.Time `json:"created_at"`
}

// TableName specifies the table name for Webhook
func (Webhook) TableName() string {
	return "ops_webhooks"
}

// WebhookDelivery is one delivery attempt outcome for the audit trail.
type WebhookDelivery struct {
	ID             int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	WebhookID      int       `gorm:"index;not null" json:"webhook_id"`
	ClientID       int64     `gorm:"index" json:"client_id"`
	ActionSignal   string    `gorm:"size:50" json:"action_signal"`
	TriggeredAt    time.Time `json:"triggered_at"`
	Status         string    `gorm:"size:20" json:"status"` // SUCCESS, FAILED
	HTTPStatusCode *int      `json:"http_status_code,omitempty"`
	ErrorMessage   string    `gorm:"size:500" json:"error_message,omitempty"`
	RetryAttempt   int       `json:"retry_attempt"`
}

// TableName specifies the table name for WebhookDelivery
func (WebhookDelivery) TableName() string {
	return "ops_webhook_deliveries"
}
