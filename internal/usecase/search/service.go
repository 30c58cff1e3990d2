package search

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/request"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	"github.com/kailas-cloud/fedsearch/internal/metrics"
)

// Defaults for adapter fan-out.
const (
	DefaultAdapterTimeout = 5 * time.Second
	DefaultCandidateLimit = 10
)

// Service fans a query out to the collection adapters, scores and merges
// their candidates and keeps the caller's recent-query history.
type Service struct {
	adapters []Adapter
	recent   RecentRecorder

	timeout   time.Duration
	limit     int
	logger    *zap.Logger
	metrics   bool
	onFailure FailureHook
}

// FailureHook observes each adapter failure after it is logged.
type FailureHook func(k kind.Kind, tenant string, elapsed time.Duration, err error)

// Option configures a Service.
type Option func(*Service)

// WithAdapterTimeout sets the per-adapter deadline. Non-positive values are ignored.
func WithAdapterTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithCandidateLimit caps candidates per adapter. Non-positive values are ignored.
func WithCandidateLimit(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.limit = n
		}
	}
}

// WithLogger sets the logger for adapter and history failures.
func WithLogger(l *zap.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithMetrics toggles Prometheus instrumentation.
func WithMetrics(enabled bool) Option {
	return func(s *Service) { s.metrics = enabled }
}

// WithFailureHook calls h for every adapter failure, including timeouts and
// panics. h runs on the fan-out goroutine and must not block.
func WithFailureHook(h FailureHook) Option {
	return func(s *Service) { s.onFailure = h }
}

// New creates a search service.
func New(adapters []Adapter, recent RecentRecorder, opts ...Option) *Service {
	s := &Service{
		adapters: append([]Adapter(nil), adapters...),
		recent:   recent,
		timeout:  DefaultAdapterTimeout,
		limit:    DefaultCandidateLimit,
		logger:   zap.NewNop(),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// SearchTerm parses the raw inputs and runs Search.
func (s *Service) SearchTerm(ctx context.Context, term, typeFilter, tenant string) ([]result.Result, error) {
	req, err := request.Parse(term, typeFilter, tenant)
	if err != nil {
		return nil, err
	}
	return s.Search(ctx, req)
}

// Search runs a federated search. An empty term returns no results and
// leaves the recent history untouched. Individual adapter failures count as
// zero results; if every selected adapter fails an *AggregateSearchError is
// returned.
func (s *Service) Search(ctx context.Context, req request.Request) ([]result.Result, error) {
	if req.IsEmpty() {
		s.observe("empty_term", 0)
		return []result.Result{}, nil
	}

	selected := s.selectAdapters(req.Filter())
	outcomes := s.fanOut(ctx, selected, req.Term(), req.Tenant())

	var failures []AdapterError
	var merged []result.Result
	for i, o := range outcomes {
		if o.err != nil {
			failures = append(failures, AdapterError{Kind: selected[i].Kind(), Err: o.err})
			continue
		}
		merged = append(merged, o.results...)
	}

	if len(selected) > 0 && len(failures) == len(selected) {
		s.observe("unavailable", 0)
		aggErr := &AggregateSearchError{Failures: failures}
		s.logger.Error("all adapters failed",
			zap.String("tenant", req.Tenant()),
			zap.Stringer("type", req.Filter()),
			zap.Int("adapters", len(selected)),
			zap.Error(aggErr),
		)
		return nil, aggErr
	}

	SortResults(merged)
	if merged == nil {
		merged = []result.Result{}
	}

	if len(failures) > 0 {
		s.observe("partial", len(merged))
	} else {
		s.observe("ok", len(merged))
	}

	if len(selected) > 0 {
		s.remember(ctx, req)
	}
	return merged, nil
}

// Recent lists the caller's recent terms for tenant, most recent first.
func (s *Service) Recent(ctx context.Context, tenant string) ([]string, error) {
	if tenant == "" {
		return nil, fmt.Errorf("%w: tenant is required", domain.ErrInvalidRequest)
	}
	terms, err := s.recent.List(ctx, domain.RecentScope(tenant, domain.CallerFromContext(ctx)))
	if err != nil {
		return nil, fmt.Errorf("list recent: %w", err)
	}
	return terms, nil
}

// selectAdapters returns the adapters serving f, grouped by kind order.
func (s *Service) selectAdapters(f kind.Filter) []Adapter {
	out := make([]Adapter, 0, len(s.adapters))
	for _, k := range f.Kinds() {
		for _, a := range s.adapters {
			if a.Kind() == k {
				out = append(out, a)
			}
		}
	}
	return out
}

type outcome struct {
	results []result.Result
	err     error
}

// fanOut runs every adapter concurrently. Each goroutine writes only its own
// slot, so completion order does not affect the merged output.
func (s *Service) fanOut(ctx context.Context, adapters []Adapter, term, tenant string) []outcome {
	outcomes := make([]outcome, len(adapters))

	// Failures are captured per slot, never returned, so Wait only joins.
	var g errgroup.Group
	for i, a := range adapters {
		g.Go(func() error {
			outcomes[i] = s.runAdapter(ctx, a, term, tenant)
			return nil
		})
	}
	_ = g.Wait()

	return outcomes
}

// runAdapter calls one adapter under its own deadline and scores its
// candidates. A panic or a call still running at the deadline becomes an error.
func (s *Service) runAdapter(ctx context.Context, a Adapter, term, tenant string) outcome {
	k := a.Kind()
	start := time.Now()

	actx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	done := make(chan outcome, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{err: fmt.Errorf("%w: %v", ErrAdapterPanic, r)}
			}
		}()
		cands, err := a.Find(actx, term, tenant, s.limit)
		if err != nil {
			done <- outcome{err: err}
			return
		}
		out := make([]result.Result, 0, len(cands))
		for _, c := range cands {
			out = append(out, result.New(
				c.ID, k, c.Title, c.Description, c.Metadata, c.CreatedAt, Score(term, c.Fields),
			))
		}
		done <- outcome{results: out}
	}()

	var o outcome
	select {
	case o = <-done:
	case <-actx.Done():
		o = outcome{err: actx.Err()}
	}

	elapsed := time.Since(start)
	status := "ok"
	if o.err != nil {
		status = "error"
		if errors.Is(o.err, context.DeadlineExceeded) {
			status = "timeout"
		}
		s.logger.Warn("adapter failed",
			zap.String("kind", k.String()),
			zap.String("tenant", tenant),
			zap.Duration("elapsed", elapsed),
			zap.Error(o.err),
		)
		if s.onFailure != nil {
			s.onFailure(k, tenant, elapsed, o.err)
		}
	}
	if s.metrics {
		metrics.AdapterRequestsTotal.WithLabelValues(k.String(), status).Inc()
		metrics.AdapterRequestDuration.WithLabelValues(k.String()).Observe(elapsed.Seconds())
	}
	return o
}

func (s *Service) remember(ctx context.Context, req request.Request) {
	scope := domain.RecentScope(req.Tenant(), domain.CallerFromContext(ctx))
	if err := s.recent.Record(ctx, scope, req.Term()); err != nil {
		s.logger.Warn("record recent query failed",
			zap.String("scope", scope),
			zap.Error(err),
		)
	}
}

func (s *Service) observe(outcome string, n int) {
	if !s.metrics {
		return
	}
	metrics.SearchRequestsTotal.WithLabelValues(outcome).Inc()
	if outcome != "empty_term" && outcome != "unavailable" {
		metrics.SearchResults.Observe(float64(n))
	}
}

// SortResults orders results by relevance descending, then creation time
// descending, then kind rank, then id ascending.
func SortResults(rs []result.Result) {
	sort.SliceStable(rs, func(i, j int) bool {
		a, b := &rs[i], &rs[j]
		if a.Relevance() != b.Relevance() {
			return a.Relevance() > b.Relevance()
		}
		if !a.CreatedAt().Equal(b.CreatedAt()) {
			return a.CreatedAt().After(b.CreatedAt())
		}
		if a.Kind() != b.Kind() {
			return a.Kind().Rank() < b.Kind().Rank()
		}
		return a.ID() < b.ID()
	})
}
