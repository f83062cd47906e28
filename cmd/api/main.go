package main

import (
	"context"
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

	"github.com/feral-file/ff-ip-registry/internal/access"
	"github.com/feral-file/ff-ip-registry/internal/adapter"
	"github.com/feral-file/ff-ip-registry/internal/api/middleware"
	"github.com/feral-file/ff-ip-registry/internal/api/server"
	"github.com/feral-file/ff-ip-registry/internal/config"
	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
	"github.com/feral-file/ff-ip-registry/internal/payment"
	"github.com/feral-file/ff-ip-registry/internal/providers/jetstream"
	"github.com/feral-file/ff-ip-registry/internal/registry"
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
	cfg, err := config.LoadAPIConfig(*configFile, *envPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize logger with sentry integration
	err = logger.Initialize(logger.Config{
		Service:         "ip-registry-api",
		Debug:           cfg.Debug,
		SentryDSN:       cfg.SentryDSN,
		BreadcrumbLevel: zapcore.InfoLevel,
		Tags: map[string]string{
			"service": "ip-registry-api",
		},
	})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer logger.Flush(2 * time.Second)
	logger.InfoCtx(ctx, "Starting IP Registry API")

	// Connect to database
	db, err := gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to connect to database", zap.Error(err), zap.String("host", cfg.Database.Host))
	}

	// Configure connection pool
	if err := store.ConfigureConnectionPool(db, cfg.Database.MaxOpenConns, cfg.Database.MaxIdleConns, cfg.Database.ConnMaxLifetime, cfg.Database.ConnMaxIdleTime); err != nil {
		logger.FatalCtx(ctx, "Failed to configure connection pool", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Connected to database",
		zap.Int("max_open_conns", cfg.Database.MaxOpenConns),
		zap.Int("max_idle_conns", cfg.Database.MaxIdleConns),
	)

	// Initialize store
	dataStore := store.NewPGStore(db)

	// Initialize adapters
	fs := adapter.NewFileSystem()
	jsonAdapter := adapter.NewJSON()
	clock := adapter.NewClock()

	// Connect the event publisher
	publisher, err := jetstream.NewPublisher(
		jetstream.Config{
			URL:            cfg.NATS.URL,
			StreamName:     cfg.NATS.StreamName,
			MaxReconnects:  cfg.NATS.MaxReconnects,
			ReconnectWait:  cfg.NATS.ReconnectWait,
			ConnectionName: cfg.NATS.ConnectionName,
		},
		adapter.NewNatsJetStream(),
		jsonAdapter,
	)
	if err != nil {
		logger.FatalCtx(ctx, "Failed to create event publisher", zap.Error(err))
	}
	defer publisher.Close()
	logger.InfoCtx(ctx, "Connected to NATS", zap.String("stream", cfg.NATS.StreamName))

	// Payment collaborator: settle through the gateway when configured, otherwise keep balance credits only
	var gateway payment.Gateway
	if cfg.Payment.GatewayURL != "" {
		gateway = payment.NewHTTPGateway(
			cfg.Payment.GatewayURL,
			cfg.Payment.Secret,
			adapter.NewHTTPClient(cfg.Payment.Timeout, adapter.RetryPolicy{MaxRetries: cfg.Payment.MaxRetries}),
			jsonAdapter,
			adapter.NewJCS(),
		)
		logger.InfoCtx(ctx, "Using payment gateway", zap.String("url", cfg.Payment.GatewayURL))
	} else {
		gateway = payment.NewLedgerGateway()
		logger.WarnCtx(ctx, "Payment gateway not configured, royalties are kept as balance credits")
	}

	// Load denylist
	var denylist access.Denylist
	if cfg.Registry.DenylistPath != "" {
		denylist, err = access.NewDenylistLoader(fs, jsonAdapter).Load(cfg.Registry.DenylistPath)
		if err != nil {
			logger.FatalCtx(ctx, "Failed to load denylist",
				zap.Error(err),
				zap.String("path", cfg.Registry.DenylistPath))
		}
		logger.InfoCtx(ctx, "Loaded denylist", zap.String("path", cfg.Registry.DenylistPath))
	} else {
		logger.WarnCtx(ctx, "Denylist path not configured, all accounts will be allowed")
	}

	// Create the registry and write the roles on first start
	reg := registry.NewRegistry(dataStore, publisher, gateway, clock, denylist)

	administrator, err := domain.ParseAddress(cfg.Registry.Administrator)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid administrator address", zap.Error(err))
	}
	disputeResolver, err := domain.ParseAddress(cfg.Registry.DisputeResolver)
	if err != nil {
		logger.FatalCtx(ctx, "Invalid dispute resolver address", zap.Error(err))
	}
	roles, err := reg.Initialize(ctx, domain.Roles{
		Administrator:   administrator,
		DisputeResolver: disputeResolver,
	})
	if err != nil {
		logger.FatalCtx(ctx, "Failed to initialize registry roles", zap.Error(err))
	}
	logger.InfoCtx(ctx, "Registry roles ready",
		zap.String("administrator", roles.Administrator.String()),
		zap.String("dispute_resolver", roles.DisputeResolver.String()))

	// Rate limiting is backed by Redis
	var limiter adapter.RedisRateLimiter
	if cfg.RateLimit.Enabled {
		redisClient := adapter.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer func() {
			if err := redisClient.Close(); err != nil {
				logger.Error(err, zap.String("component", "redis"))
			}
		}()
		if err := redisClient.Ping(ctx).Err(); err != nil {
			logger.FatalCtx(ctx, "Failed to connect to Redis", zap.Error(err), zap.String("addr", cfg.Redis.Addr))
		}
		limiter = redisClient.NewRateLimiter()
		logger.InfoCtx(ctx, "Rate limiting enabled",
			zap.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute),
			zap.Int("burst", cfg.RateLimit.Burst))
	}

	// Create server config
	serverConfig := server.Config{
		Debug:        cfg.Debug,
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
		Auth: middleware.AuthConfig{
			JWTPublicKey:   cfg.Auth.JWTPublicKey,
			APIKeys:        cfg.Auth.APIKeys,
			APIKeyAccounts: cfg.Auth.AccountsByKey(),
		},
		RateLimit: middleware.RateLimitConfig{
			RequestsPerMinute: cfg.RateLimit.RequestsPerMinute,
			Burst:             cfg.RateLimit.Burst,
		},
	}

	// Create and start server
	srv := server.New(serverConfig, reg, dataStore, denylist, limiter)

	// Start server in a goroutine
	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errCh <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-sigCh:
		logger.InfoCtx(ctx, "Received shutdown signal", zap.String("signal", sig.String()))
		cancel()
	case err := <-errCh:
		logger.ErrorCtx(ctx, err, zap.String("component", "server"))
		cancel()
	}

	// Create shutdown context with timeout (don't use canceled ctx)
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	logger.InfoCtx(shutdownCtx, "Shutting down server...")

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.FatalCtx(shutdownCtx, "Server forced to shutdown", zap.Error(err))
	}

	// Use non-context logger for final message since original ctx is canceled
	logger.Info("API server stopped")
}
