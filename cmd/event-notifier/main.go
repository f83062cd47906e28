package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/feral-file/ff-ip-registry/internal/adapter"
	"github.com/feral-file/ff-ip-registry/internal/config"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/notifier"
	"github.com/feral-file/ff-ip-registry/internal/store"
)

var (
	configFile = flag.String("config", "", "Path to configuration file")
	envPath    = flag.String("env", "config/", "Path to environment files")
)

func main() {
	flag.Parse()

	// Load configuration
	config.ChdirRepoRoot()
	cfg, err := config.LoadEventNotifierConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "ip-registry-event-notifier",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ip-registry-event-notifier",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.Info("Starting Event Notifier")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.Fatal("Failed to configure connection pool", zap.Error(err))
	}
	logger.Info("Connected to database")

	// Initialize store
	dataStore := store.NewPGStore(db)

	// The notifier runs its own per-client retry loop, so the HTTP client must not retry
	httpClient := adapter.NewHTTPClient(cfg.Webhook.DeliveryTimeout, adapter.RetryPolicy{MaxRetries: 0})

	// Create notifier
	eventNotifier, err := notifier.NewNotifier(
		notifier.Config{
			URL:             cfg.NATS.URL,
			StreamName:      cfg.NATS.StreamName,
			ConsumerName:    cfg.NATS.ConsumerName,
			MaxReconnects:   cfg.NATS.MaxReconnects,
			ReconnectWait:   cfg.NATS.ReconnectWait,
			ConnectionName:  cfg.NATS.ConnectionName,
			AckWaitTimeout:  cfg.NATS.AckWait,
			MaxDeliver:      cfg.NATS.MaxDeliver,
			WorkerPoolSize:  cfg.Webhook.WorkerPoolSize,
			DeliveryTimeout: cfg.Webhook.DeliveryTimeout,
			InitialInterval: cfg.Webhook.InitialInterval,
			MaxInterval:     cfg.Webhook.MaxInterval,
		},
		adapter.NewNatsJetStream(),
		dataStore,
		httpClient,
		adapter.NewClock(),
		adapter.NewJSON(),
	)
	if err != nil {
		logger.Fatal("Failed to create event notifier", zap.Error(err))
	}
	defer eventNotifier.Close()
	logger.Info("Event notifier created", zap.String("stream", cfg.NATS.StreamName), zap.String("consumer", cfg.NATS.ConsumerName))

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Channel for notifier errors
	errCh := make(chan error, 1)

	// Start the notifier
	go func() {
		if err := eventNotifier.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			errCh <- err
		}
	}()

	// Wait for shutdown signal or error
	select {
	case sig := <-sigCh:
		logger.Info("Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.Error(err, zap.String("component", "notifier"))
		cancel()
	}

	// Give in-flight deliveries time to finish
	time.Sleep(time.Second)

	logger.Info("Event Notifier stopped")
}
