// cmd/api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/config"
	"github.com/your-org/storefront/internal/domain/analytics"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/store"
	"github.com/your-org/storefront/internal/infrastructure/events"
	"github.com/your-org/storefront/internal/infrastructure/storage"
	"github.com/your-org/storefront/internal/interfaces/http"
	"github.com/your-org/storefront/internal/interfaces/http/routes"
	"github.com/your-org/storefront/internal/pkg/email"
	"github.com/your-org/storefront/internal/pkg/logger"
	"github.com/your-org/storefront/internal/pkg/pdf"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("Failed to load configuration: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}

	log := logger.New(cfg)
	log.WithFields(logrus.Fields{
		"version":     cfg.App.Version,
		"environment": cfg.App.Environment,
		"storage":     cfg.Storage.Driver,
	}).Infof("Starting %s", cfg.App.Name)

	// Connect to Redis. The interface stays nil when Redis is disabled.
	var redisClient redis.UniversalClient
	if cfg.Redis.Enabled {
		client, err := storage.NewRedisClient(cfg, log)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		redisClient = client
	}

	backend, err := storage.Open(cfg, redisClient, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to open session storage")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := backend.Health(ctx); err != nil {
		log.WithError(err).Warn("Session storage is unhealthy, changes may be kept in memory only")
	}
	cancel()

	// Order notifications
	notifier := email.NewNotifier(email.NewEmailService(cfg, log), log)
	listeners := []store.Listener{notifier}

	var publisher *events.Publisher
	if cfg.Kafka.Enabled {
		publisher = events.NewPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, log)
		listeners = append(listeners, publisher)
	}

	cat := catalog.Default()
	manager := store.NewManager(store.ManagerConfig{
		KeyPrefix: cfg.Storage.KeyPrefix,
		Catalog:   cat,
		Persister: backend,
		Listeners: listeners,
		Logger:    log,

		IdleTimeout: cfg.Storage.SessionIdleTimeout,
		MaxSessions: cfg.Storage.MaxSessions,
	})

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go manager.Run(sweepCtx, cfg.Storage.SessionSweepInterval)

	log.WithField("products", cat.Len()).Info("All systems operational")

	// Create and start HTTP server
	server := http.NewServer(cfg, log, routes.Dependencies{
		Catalog:   cat,
		Stores:    manager,
		Receipts:  pdf.NewService(cfg),
		Analytics: analytics.NewService(nil),
	}, backend, redisClient)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start HTTP server")
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down gracefully")
	stopSweep()

	// Give server 30 seconds to shutdown gracefully
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shutdown HTTP server gracefully")
	}

	notifier.Wait()

	if publisher != nil {
		if err := publisher.Close(); err != nil {
			log.WithError(err).Warn("Failed to close event publisher")
		}
	}

	if err := backend.Close(); err != nil {
		log.WithError(err).Warn("Failed to close session storage")
	}

	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			log.WithError(err).Warn("Failed to close Redis connection")
		}
	}

	log.WithField("sessions", manager.Len()).Info("Server shutdown completed")
}
