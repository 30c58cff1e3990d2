// Package candidate holds the raw per-collection match produced by a
// collection query adapter before scoring.
package candidate

import (
	"time"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// Field is one scorable text value with its positional weight.
type Field struct {
	Value  string
	Weight int
}

// Positional assigns weights by position: the first of n values gets n,
// the last gets 1. Empty strings act as placeholders that keep positions.
func Positional(values ...string) []Field {
	fields := make([]Field, len(values))
	for i, v := range values {
		fields[i] = Field{Value: v, Weight: len(values) - i}
	}
	return fields
}

// Candidate is a record returned by an adapter with the fields needed to
// score and display it.
type Candidate struct {
	ID          string
	CreatedAt   time.Time
	Title       string
	Description string
	Fields      []Field
	Metadata    result.Metadata
}
