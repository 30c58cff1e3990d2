package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/config"
	"github.com/kailas-cloud/fedsearch/internal/db"
	dbMemory "github.com/kailas-cloud/fedsearch/internal/db/memory"
	dbRedis "github.com/kailas-cloud/fedsearch/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/fedsearch/internal/db/sqlite"
	logpkg "github.com/kailas-cloud/fedsearch/internal/logger"
	"github.com/kailas-cloud/fedsearch/internal/metrics"
	recentrepo "github.com/kailas-cloud/fedsearch/internal/repository/recent"
	"github.com/kailas-cloud/fedsearch/internal/repository/records"
	chiTransport "github.com/kailas-cloud/fedsearch/internal/transport/chi"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
	recentuc "github.com/kailas-cloud/fedsearch/internal/usecase/recent"
	searchuc "github.com/kailas-cloud/fedsearch/internal/usecase/search"
	"github.com/kailas-cloud/fedsearch/internal/version"
)

func main() {
	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.New(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting fedsearch API server",
		zap.String("build", version.String()),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("records_path", cfg.Records.Path),
		zap.String("recent_driver", cfg.Recent.Driver),
	)

	ctx := context.Background()

	openCtx, cancelOpen := context.WithTimeout(ctx, time.Duration(cfg.Records.ReadinessTimeout)*time.Second)
	recordStore, err := dbSQLite.NewStore(openCtx, dbSQLite.Config{
		Path:         cfg.Records.Path,
		MaxOpenConns: cfg.Records.MaxOpenConns,
	})
	cancelOpen()
	if err != nil {
		logger.Fatal("Failed to open record store", zap.Error(err))
	}
	defer func() { _ = recordStore.Close() }()
	logger.Info("Record store ready", zap.String("path", cfg.Records.Path))

	kv, err := newKVStore(ctx, cfg.Recent, time.Duration(cfg.Records.ReadinessTimeout)*time.Second)
	if err != nil {
		logger.Fatal("Failed to create recent store", zap.Error(err))
	}
	defer kv.Close()
	logger.Info("Recent store ready", zap.String("driver", cfg.Recent.Driver))

	// Register metrics explicitly (no init())
	metrics.RegisterHTTPMetrics()
	metrics.RegisterSearchMetrics()

	adapters := []searchuc.Adapter{
		records.NewReports(recordStore),
		records.NewDataEntries(recordStore),
		records.NewDocuments(recordStore),
		records.NewComments(recordStore),
	}
	recentLog := recentuc.New(recentrepo.New(kv, cfg.Recent.KeyPrefix), cfg.Recent.Capacity)

	searchSvc := searchuc.New(adapters, recentLog,
		searchuc.WithAdapterTimeout(cfg.Search.AdapterTimeout()),
		searchuc.WithCandidateLimit(cfg.Search.CandidateLimit),
		searchuc.WithLogger(logger.Named("search")),
		searchuc.WithMetrics(true),
	)

	healthSvc := healthuc.New().
		Register("records", recordStore).
		Register("recent", kv)

	router := chiTransport.NewServer(searchSvc, healthSvc, logger).
		WithAPIKeys(cfg.Auth.APIKeys).
		WithMetrics(metrics.Middleware()).
		Router()

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(ctx, time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// newKVStore builds the recent-query backing store for the configured driver.
// redis and valkey share the RESP client.
func newKVStore(ctx context.Context, cfg config.RecentConfig, readiness time.Duration) (db.KVStore, error) {
	switch cfg.Driver {
	case config.DriverRedis, config.DriverValkey:
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, err
		}
		if err := s.WaitForReady(ctx, readiness); err != nil {
			s.Close()
			return nil, err
		}
		return s, nil
	case config.DriverMemory:
		return dbMemory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown recent driver %q", cfg.Driver)
	}
}
