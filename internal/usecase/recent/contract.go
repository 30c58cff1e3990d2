package recent

import "context"

// Store persists one ordered term list per scope.
type Store interface {
	// Get returns the list for scope; an unknown scope yields an empty list.
	Get(ctx context.Context, scope string) ([]string, error)
	Set(ctx context.Context, scope string, terms []string) error
}
