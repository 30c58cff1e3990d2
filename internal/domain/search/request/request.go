package request

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/domain"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
)

// MaxTermLength is the maximum allowed search term length in bytes.
const MaxTermLength = 512

// Request is a validated federated search query.
type Request struct {
	term   string
	filter kind.Filter
	tenant string
}

// New validates and normalizes search parameters. The term is trimmed;
// an empty term is allowed and makes the search a no-op.
func New(term string, filter kind.Filter, tenant string) (Request, error) {
	term = strings.TrimSpace(term)
	if len(term) > MaxTermLength {
		return Request{}, fmt.Errorf("%w: term too long (max %d bytes)", domain.ErrInvalidRequest, MaxTermLength)
	}
	tenant = strings.TrimSpace(tenant)
	if tenant == "" {
		return Request{}, fmt.Errorf("%w: tenant scope is required", domain.ErrInvalidRequest)
	}
	return Request{term: term, filter: filter, tenant: tenant}, nil
}

// Parse builds a request from raw caller input, parsing the type filter.
func Parse(term, typeFilter, tenant string) (Request, error) {
	f, err := kind.ParseFilter(typeFilter)
	if err != nil {
		return Request{}, err
	}
	return New(term, f, tenant)
}

// Term returns the trimmed search term.
func (r *Request) Term() string { return r.term }

// IsEmpty reports whether the term is empty after trimming.
func (r *Request) IsEmpty() bool { return r.term == "" }

// Filter returns the entity type filter.
func (r *Request) Filter() kind.Filter { return r.filter }

// Tenant returns the organization scope.
func (r *Request) Tenant() string { return r.tenant }
