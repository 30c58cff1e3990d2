package fedsearch

import (
	"github.com/kailas-cloud/fedsearch/internal/domain"
	searchuc "github.com/kailas-cloud/fedsearch/internal/usecase/search"
)

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidRequest    = domain.ErrInvalidRequest
	ErrInvalidKind       = domain.ErrInvalidKind
	ErrInvalidTenant     = domain.ErrInvalidTenant
	ErrSearchUnavailable = domain.ErrSearchUnavailable
)

// AggregateSearchError is returned by Search when every selected kind failed.
// It matches ErrSearchUnavailable.
type AggregateSearchError = searchuc.AggregateSearchError

// AdapterError is one per-kind failure inside an AggregateSearchError.
type AdapterError = searchuc.AdapterError
