package chi

import (
	"context"
	"net/http"
	"time"

	chirouter "github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
	"github.com/kailas-cloud/fedsearch/internal/version"
)

// Searcher runs federated searches and reads recent-query history.
type Searcher interface {
	SearchTerm(ctx context.Context, term, typeFilter, tenant string) ([]result.Result, error)
	Recent(ctx context.Context, tenant string) ([]string, error)
}

// HealthChecker reports component health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// Server serves the federated search HTTP API.
type Server struct {
	search  Searcher
	health  HealthChecker
	logger  *zap.Logger
	apiKeys []string
	metrics func(http.Handler) http.Handler
}

// NewServer creates an HTTP API server.
func NewServer(search Searcher, health HealthChecker, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{search: search, health: health, logger: logger}
}

// WithAPIKeys enables Bearer authentication for non-exempt routes.
func (s *Server) WithAPIKeys(keys []string) *Server {
	s.apiKeys = keys
	return s
}

// WithMetrics installs an HTTP metrics middleware.
func (s *Server) WithMetrics(mw func(http.Handler) http.Handler) *Server {
	s.metrics = mw
	return s
}

// Router builds the chi router with the full middleware chain.
func (s *Server) Router() http.Handler {
	r := chirouter.NewRouter()
	r.Use(JSONRecoverer(s.logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEvent(s.logger))
	r.Use(BearerAuthMiddleware(s.apiKeys))
	if s.metrics != nil {
		r.Use(s.metrics)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Handle("/metrics", promhttp.Handler())
	r.Route("/search", func(r chirouter.Router) {
		r.Use(RequireTenant)
		r.Get("/", s.Search)
		r.Get("/recent", s.Recent)
	})
	return r
}

// MetadataEntry is one label/value pair in a search item.
type MetadataEntry struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// SearchItem is one ranked result.
type SearchItem struct {
	ID          string          `json:"id"`
	Kind        string          `json:"kind"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Metadata    []MetadataEntry `json:"metadata"`
	CreatedAt   time.Time       `json:"created_at"`
	Relevance   int             `json:"relevance"`
}

// SearchResponse is the body of GET /search.
type SearchResponse struct {
	Items []SearchItem `json:"items"`
	Count int          `json:"count"`
}

// RecentResponse is the body of GET /search/recent.
type RecentResponse struct {
	Items []string `json:"items"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks"`
}

// Search handles GET /search?q=&type=.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	results, err := s.search.SearchTerm(r.Context(), q.Get("q"), q.Get("type"), r.Header.Get(HeaderOrganizationID))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	items := make([]SearchItem, len(results))
	for i := range results {
		items[i] = resultToItem(&results[i])
	}
	writeJSON(w, http.StatusOK, SearchResponse{Items: items, Count: len(items)})
}

// Recent handles GET /search/recent.
func (s *Server) Recent(w http.ResponseWriter, r *http.Request) {
	terms, err := s.search.Recent(r.Context(), r.Header.Get(HeaderOrganizationID))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	if terms == nil {
		terms = []string{}
	}
	writeJSON(w, http.StatusOK, RecentResponse{Items: terms})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	status := http.StatusOK
	if report.Status != healthuc.Healthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{
		Status:  string(report.Status),
		Version: version.Version,
		Checks:  checks,
	})
}

func resultToItem(r *result.Result) SearchItem {
	md := make([]MetadataEntry, len(r.Metadata()))
	for i, e := range r.Metadata() {
		md[i] = MetadataEntry{Label: e.Label, Value: e.Value}
	}
	return SearchItem{
		ID:          r.ID(),
		Kind:        r.Kind().String(),
		Title:       r.Title(),
		Description: r.Description(),
		Metadata:    md,
		CreatedAt:   r.CreatedAt().UTC(),
		Relevance:   r.Relevance(),
	}
}
