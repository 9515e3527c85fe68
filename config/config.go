package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// HTTP API configuration
	APIPort int

	// Analytics configuration
	Analytics AnalyticsConfig
}

// AnalyticsConfig holds pipeline thresholds and scoring weights.
// Defaults match the documented formulas; env overrides exist for
// experimentation, the weights are heuristic, not fitted.
type AnalyticsConfig struct {
	// Refresh scheduling
	RefreshIntervalMinutes int

	// Engagement momentum (30d vs 31-60d windows)
	RecentWindowDays       int
	PriorWindowDays        int
	AcceleratingMultiplier float64 // either stream at or above this multiple of prior
	CoolingMultiplier      float64 // both streams at or below this multiple of prior

	// Engagement score weights
	CallDurationWeight float64
	TradeCountWeight   float64
	LargeTradeWeight   float64

	// Portfolio risk
	DefaultStockVol60D float64 // applied per position when no vol record exists
	HighVolThreshold   float64 // stock vol_60d at or above this counts as high-vol exposure

	// Multi-factor composite weights
	InvestorTypeWeight  float64
	TurnoverWeight      float64
	ConcentrationWeight float64
	SentimentWeight     float64
	ReadingWeight       float64

	// Combination-point defaults for missing factors
	DefaultConcentration float64
	DefaultPortfolioVol  float64
	NeutralFactorScore   float64

	// Risk category cutoffs
	AggressiveCutoff float64
	ModerateCutoff   float64

	// Cache
	ProfileCacheTTLMinutes int
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "sales_intel"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "sales_intel"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "sales_intel123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		APIPort: getEnvInt("API_PORT", 8085),

		Analytics: AnalyticsConfig{
			RefreshIntervalMinutes: getEnvInt("ANALYTICS_REFRESH_INTERVAL", 60),

			RecentWindowDays:       getEnvInt("ANALYTICS_RECENT_WINDOW_DAYS", 30),
			PriorWindowDays:        getEnvInt("ANALYTICS_PRIOR_WINDOW_DAYS", 60),
			AcceleratingMultiplier: getEnvFloat("ANALYTICS_ACCELERATING_MULT", 1.5),
			CoolingMultiplier:      getEnvFloat("ANALYTICS_COOLING_MULT", 0.5),

			CallDurationWeight: getEnvFloat("ANALYTICS_CALL_DURATION_WEIGHT", 0.1),
			TradeCountWeight:   getEnvFloat("ANALYTICS_TRADE_COUNT_WEIGHT", 2.0),
			LargeTradeWeight:   getEnvFloat("ANALYTICS_LARGE_TRADE_WEIGHT", 5.0),

			DefaultStockVol60D: getEnvFloat("ANALYTICS_DEFAULT_STOCK_VOL", 0.25),
			HighVolThreshold:   getEnvFloat("ANALYTICS_HIGH_VOL_THRESHOLD", 0.35),

			InvestorTypeWeight:  getEnvFloat("ANALYTICS_INVESTOR_TYPE_WEIGHT", 0.30),
			TurnoverWeight:      getEnvFloat("ANALYTICS_TURNOVER_WEIGHT", 0.25),
			ConcentrationWeight: getEnvFloat("ANALYTICS_CONCENTRATION_WEIGHT", 0.15),
			SentimentWeight:     getEnvFloat("ANALYTICS_SENTIMENT_WEIGHT", 0.15),
			ReadingWeight:       getEnvFloat("ANALYTICS_READING_WEIGHT", 0.15),

			DefaultConcentration: getEnvFloat("ANALYTICS_DEFAULT_CONCENTRATION", 0.25),
			DefaultPortfolioVol:  getEnvFloat("ANALYTICS_DEFAULT_PORTFOLIO_VOL", 0.20),
			NeutralFactorScore:   getEnvFloat("ANALYTICS_NEUTRAL_FACTOR_SCORE", 0.5),

			AggressiveCutoff: getEnvFloat("ANALYTICS_AGGRESSIVE_CUTOFF", 0.65),
			ModerateCutoff:   getEnvFloat("ANALYTICS_MODERATE_CUTOFF", 0.45),

			ProfileCacheTTLMinutes: getEnvInt("ANALYTICS_PROFILE_CACHE_TTL", 120),
		},
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
