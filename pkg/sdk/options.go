package fedsearch

import (
	"log/slog"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	recordsPath string

	recentDriver   string // "memory", "valkey" or "redis"
	recentAddrs    []string
	recentPassword string
	keyPrefix      string
	recentCapacity int

	adapterTimeout time.Duration
	candidateLimit int

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithSQLite sets the path of the SQLite record store. Required.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.recordsPath = path
	})
}

// WithValkey keeps recent-query history in a Valkey instance.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.recentDriver = "valkey"
		c.recentAddrs = []string{addr}
		c.recentPassword = password
	})
}

// WithRedis keeps recent-query history in a Redis instance.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.recentDriver = "redis"
		c.recentAddrs = []string{addr}
		c.recentPassword = password
	})
}

// WithMemoryRecent keeps recent-query history in process memory (default).
func WithMemoryRecent() Option {
	return optionFunc(func(c *clientConfig) {
		c.recentDriver = "memory"
		c.recentAddrs = nil
	})
}

// WithKeyPrefix sets the key prefix for recent history in Redis/Valkey.
// Default: "fedsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithRecentCapacity sets how many terms are kept per caller. Default: 5.
func WithRecentCapacity(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.recentCapacity = n
	})
}

// WithAdapterTimeout bounds each per-kind query. Default: 5s.
func WithAdapterTimeout(d time.Duration) Option {
	return optionFunc(func(c *clientConfig) {
		c.adapterTimeout = d
	})
}

// WithCandidateLimit caps matches fetched per kind. Default: 10.
func WithCandidateLimit(n int) Option {
	return optionFunc(func(c *clientConfig) {
		c.candidateLimit = n
	})
}

// WithLogger enables structured logging for client operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers client metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}
