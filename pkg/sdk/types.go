package fedsearch

import (
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// Kind is a searchable entity kind.
type Kind string

// Kind constants. KindAll searches every kind.
const (
	KindAll       Kind = kind.All
	KindReport    Kind = Kind(kind.Report)
	KindDataEntry Kind = Kind(kind.DataEntry)
	KindDocument  Kind = Kind(kind.Document)
	KindComment   Kind = Kind(kind.Comment)
)

// Query is one federated search.
type Query struct {
	Tenant string // organization scope, required
	Caller string // user or session for recent history; empty means anonymous
	Term   string
	Type   Kind // empty means KindAll
}

// MetadataEntry is one kind-specific display attribute.
type MetadataEntry struct {
	Label string
	Value string
}

// Result is one ranked match.
type Result struct {
	ID          string
	Kind        Kind
	Title       string
	Description string
	Metadata    []MetadataEntry
	CreatedAt   time.Time
	Relevance   int
}

func resultFromDomain(r *result.Result) Result {
	md := make([]MetadataEntry, len(r.Metadata()))
	for i, e := range r.Metadata() {
		md[i] = MetadataEntry{Label: e.Label, Value: e.Value}
	}
	return Result{
		ID:          r.ID(),
		Kind:        Kind(r.Kind()),
		Title:       r.Title(),
		Description: r.Description(),
		Metadata:    md,
		CreatedAt:   r.CreatedAt(),
		Relevance:   r.Relevance(),
	}
}
