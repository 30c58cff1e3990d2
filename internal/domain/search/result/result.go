package result

import (
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
)

// Entry is a single label/value pair of result metadata.
type Entry struct {
	Label string
	Value string
}

// Metadata is an ordered list of kind-specific display attributes.
type Metadata []Entry

// Result is a read-only projection of one matching record.
type Result struct {
	id          string
	kind        kind.Kind
	title       string
	description string
	metadata    Metadata
	createdAt   time.Time
	relevance   int
}

// New creates a search result. The metadata slice is copied.
func New(
	id string, k kind.Kind, title, description string,
	metadata Metadata, createdAt time.Time, relevance int,
) Result {
	var md Metadata
	if len(metadata) > 0 {
		md = make(Metadata, len(metadata))
		copy(md, metadata)
	}
	return Result{
		id: id, kind: k, title: title, description: description,
		metadata: md, createdAt: createdAt, relevance: relevance,
	}
}

// ID returns the underlying record identifier.
func (r *Result) ID() string { return r.id }

// Kind returns the originating entity kind.
func (r *Result) Kind() kind.Kind { return r.kind }

// Title returns the primary display string.
func (r *Result) Title() string { return r.title }

// Description returns the secondary display string.
func (r *Result) Description() string { return r.description }

// Metadata returns the ordered kind-specific attributes.
func (r *Result) Metadata() Metadata { return r.metadata }

// CreatedAt returns the creation time of the underlying record.
func (r *Result) CreatedAt() time.Time { return r.createdAt }

// Relevance returns the score. Comparable only within one search call.
func (r *Result) Relevance() int { return r.relevance }
