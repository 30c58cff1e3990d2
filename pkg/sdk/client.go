package fedsearch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/db"
	dbMemory "github.com/kailas-cloud/fedsearch/internal/db/memory"
	dbRedis "github.com/kailas-cloud/fedsearch/internal/db/redis"
	dbSQLite "github.com/kailas-cloud/fedsearch/internal/db/sqlite"
	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	recentrepo "github.com/kailas-cloud/fedsearch/internal/repository/recent"
	"github.com/kailas-cloud/fedsearch/internal/repository/records"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
	recentuc "github.com/kailas-cloud/fedsearch/internal/usecase/recent"
	searchuc "github.com/kailas-cloud/fedsearch/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "fedsearch:"
)

// searchUseCase is the internal interface for federated search.
type searchUseCase interface {
	SearchTerm(ctx context.Context, term, typeFilter, tenant string) ([]result.Result, error)
	Recent(ctx context.Context, tenant string) ([]string, error)
}

// Client is the embedded fedsearch entry point.
type Client struct {
	records   db.RecordStore
	kv        db.KVStore
	searchSvc searchUseCase
	healthSvc healthUseCase
	obs       *observer
}

// New opens the record store, connects the recent-history store and wires
// the search engine. The provided context bounds the initial connection.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	cfg := &clientConfig{recentDriver: "memory", keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.recordsPath == "" {
		return nil, errors.New("fedsearch: record store path required (use WithSQLite)")
	}

	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}

	store, err := dbSQLite.NewStore(ctx, dbSQLite.Config{Path: cfg.recordsPath})
	if err != nil {
		return nil, fmt.Errorf("fedsearch: open record store: %w", err)
	}

	kv, err := createKVStore(ctx, cfg)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return wireClient(store, kv, cfg, obs), nil
}

func createKVStore(ctx context.Context, cfg *clientConfig) (db.KVStore, error) {
	switch cfg.recentDriver {
	case "memory":
		return dbMemory.NewStore(), nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.recentAddrs,
			Password: cfg.recentPassword,
		})
		if err != nil {
			return nil, fmt.Errorf("fedsearch: create %s store: %w", cfg.recentDriver, err)
		}
		if err := s.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
			s.Close()
			return nil, fmt.Errorf("fedsearch: %s not ready: %w", cfg.recentDriver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("fedsearch: unknown recent driver %q", cfg.recentDriver)
	}
}

func wireClient(store db.RecordStore, kv db.KVStore, cfg *clientConfig, obs *observer) *Client {
	adapters := []searchuc.Adapter{
		records.NewReports(store),
		records.NewDataEntries(store),
		records.NewDocuments(store),
		records.NewComments(store),
	}
	recentLog := recentuc.New(recentrepo.New(kv, cfg.keyPrefix), cfg.recentCapacity)

	searchOpts := []searchuc.Option{
		searchuc.WithAdapterTimeout(cfg.adapterTimeout),
		searchuc.WithCandidateLimit(cfg.candidateLimit),
	}
	if cfg.logger != nil {
		searchOpts = append(searchOpts, searchuc.WithFailureHook(adapterFailureLogger(cfg.logger)))
	}
	searchSvc := searchuc.New(adapters, recentLog, searchOpts...)
	healthSvc := healthuc.New().Register("records", store).Register("recent", kv)

	return &Client{
		records:   store,
		kv:        kv,
		searchSvc: searchSvc,
		healthSvc: healthSvc,
		obs:       obs,
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.kv != nil {
		c.kv.Close()
	}
	if c.records != nil {
		_ = c.records.Close()
	}
}

// Ping checks record store connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	start := time.Now()
	defer func() { c.obs.observe("ping", "", start, err) }()

	if err = c.records.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Search runs a federated search ranked by relevance. An empty term returns
// no results. If every selected kind fails the error matches
// ErrSearchUnavailable.
func (c *Client) Search(ctx context.Context, q Query) (_ []Result, err error) {
	start := time.Now()
	defer func() { c.obs.observe("search", q.Tenant, start, err) }()

	if q.Tenant == "" {
		return nil, fmt.Errorf("%w: tenant is required", ErrInvalidTenant)
	}

	rs, err := c.searchSvc.SearchTerm(callerContext(ctx, q.Caller), q.Term, string(q.Type), q.Tenant)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	out := make([]Result, len(rs))
	for i := range rs {
		out[i] = resultFromDomain(&rs[i])
	}
	c.obs.observeResults(len(out))
	return out, nil
}

// Recent returns the caller's recent search terms within tenant, most
// recent first.
func (c *Client) Recent(ctx context.Context, tenant, caller string) (_ []string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("recent", tenant, start, err) }()

	terms, err := c.searchSvc.Recent(callerContext(ctx, caller), tenant)
	if err != nil {
		return nil, fmt.Errorf("recent: %w", err)
	}
	return terms, nil
}

// adapterFailureLogger reports per-kind failures that do not fail the search.
func adapterFailureLogger(l *slog.Logger) searchuc.FailureHook {
	return func(k kind.Kind, tenant string, elapsed time.Duration, err error) {
		l.Warn("adapter failed",
			"kind", k.String(),
			"tenant", tenant,
			"elapsed", elapsed,
			"error", err,
		)
	}
}

func callerContext(ctx context.Context, caller string) context.Context {
	if caller == "" {
		return ctx
	}
	return domain.ContextWithCaller(ctx, caller)
}
