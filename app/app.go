package app

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"sales-intel/api"
	"sales-intel/cache"
	"sales-intel/config"
	"sales-intel/database"
	"sales-intel/database/aggregates"
	"sales-intel/database/facts"
	"sales-intel/notifications"
	"sales-intel/realtime"
)

// App represents the main application
type App struct {
	config         *config.Config
	db             *database.Database
	redis          *cache.RedisClient
	factsRepo      *facts.Repository
	aggRepo        *aggregates.Repository
	webhookManager *notifications.WebhookManager
	broker         *realtime.Broker
	pipeline       *Pipeline
}

// New creates a new application instance
func New(cfg *config.Config) *App {
	return &App{
		config: cfg,
	}
}

// Start starts the application
func (a *App) Start() error {
	// 1. Database Connection
	fmt.Println("🗄️  Connecting to database...")

	dbPort, err := strconv.Atoi(a.config.DatabasePort)
	if err != nil {
		return fmt.Errorf("invalid database port: %w", err)
	}

	db, err := database.Connect(
		a.config.DatabaseHost,
		dbPort,
		a.config.DatabaseName,
		a.config.DatabaseUser,
		a.config.DatabasePassword,
	)
	if err != nil {
		return fmt.Errorf("database connection failed: %w", err)
	}
	a.db = db

	// 2. Redis Connection
	fmt.Println("🧠 Connecting to Redis...")
	redisClient := cache.NewRedisClient(
		a.config.RedisHost,
		a.config.RedisPort,
		a.config.RedisPassword,
	)
	if redisClient == nil {
		fmt.Println("⚠️  Redis connection failed. Profile caching disabled.")
	} else {
		a.redis = redisClient
	}

	// 3. Repositories and schema (derived tables only; facts are owned by
	// upstream ingestion)
	a.factsRepo = facts.NewRepository(db.DB())
	a.aggRepo = aggregates.NewRepository(db.DB())
	if err := a.aggRepo.InitSchema(); err != nil {
		return fmt.Errorf("schema initialization failed: %w", err)
	}

	// 4. Webhook manager and realtime broker
	a.webhookManager = notifications.NewWebhookManager(a.aggRepo, a.redis)
	a.broker = realtime.NewBroker()
	go a.broker.Run()

	// 5. Refresh pipeline
	a.pipeline = NewPipeline(a.factsRepo, a.aggRepo, a.redis, a.webhookManager, a.broker, a.config)
	go a.pipeline.Start()

	// 6. API server
	apiServer := api.NewServer(a.aggRepo, a.redis, a.broker, a.webhookManager, a.config)
	apiServer.SetRefresher(a.pipeline)
	go func() {
		if err := apiServer.Start(a.config.APIPort); err != nil {
			log.Printf("⚠️  API Server failed: %v", err)
		}
	}()

	// 7. Wait for interrupt and perform graceful shutdown
	return a.gracefulShutdown()
}

// gracefulShutdown handles graceful shutdown with timeout
func (a *App) gracefulShutdown() error {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)

	<-interrupt
	fmt.Println("\n🛑 Shutdown signal received, initiating graceful shutdown...")

	shutdownComplete := make(chan struct{})
	go func() {
		if a.pipeline != nil {
			fmt.Println("📊 Stopping refresh pipeline...")
			a.pipeline.Stop()
		}

		if a.db != nil {
			if err := a.db.Close(); err != nil {
				log.Printf("Error closing database: %v", err)
			} else {
				fmt.Println("✅ Database connection closed")
			}
		}

		if a.redis != nil {
			if err := a.redis.Close(); err != nil {
				log.Printf("Error closing redis: %v", err)
			} else {
				fmt.Println("✅ Redis connection closed")
			}
		}

		close(shutdownComplete)
	}()

	select {
	case <-shutdownComplete:
		fmt.Println("✅ Graceful shutdown completed")
		return nil
	case <-time.After(10 * time.Second):
		fmt.Println("⚠️  Shutdown timeout exceeded, forcing exit")
		return fmt.Errorf("shutdown timeout")
	}
}
