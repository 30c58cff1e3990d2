package search

import (
	"errors"
	"fmt"
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
)

// ErrAdapterPanic marks an adapter that panicked instead of returning.
var ErrAdapterPanic = errors.New("adapter panicked")

// AdapterError is a single adapter failure.
type AdapterError struct {
	Kind kind.Kind
	Err  error
}

func (e *AdapterError) Error() string {
	return fmt.Sprintf("%s adapter: %v", e.Kind, e.Err)
}

func (e *AdapterError) Unwrap() error { return e.Err }

// AggregateSearchError is returned when every selected adapter failed.
type AggregateSearchError struct {
	Failures []AdapterError
}

func (e *AggregateSearchError) Error() string {
	parts := make([]string, 0, len(e.Failures))
	for i := range e.Failures {
		parts = append(parts, e.Failures[i].Error())
	}
	return "all adapters failed: " + strings.Join(parts, "; ")
}

// Unwrap exposes the individual adapter failures to errors.Is / errors.As.
func (e *AggregateSearchError) Unwrap() []error {
	out := make([]error, 0, len(e.Failures))
	for i := range e.Failures {
		out = append(out, &e.Failures[i])
	}
	return out
}

// Is reports domain.ErrSearchUnavailable as a match.
func (e *AggregateSearchError) Is(target error) bool {
	return target == domain.ErrSearchUnavailable
}
