package search

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/candidate"
)

// Adapter queries one record collection for candidates matching a term.
type Adapter interface {
	Kind() kind.Kind
	Find(ctx context.Context, term, tenant string, limit int) ([]candidate.Candidate, error)
}

// RecentRecorder is the recent-query history consumed by the service.
type RecentRecorder interface {
	Record(ctx context.Context, scope, term string) error
	List(ctx context.Context, scope string) ([]string, error)
}
