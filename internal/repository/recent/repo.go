package recent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kailas-cloud/fedsearch/internal/db"
)

// store is the consumer interface for recent query persistence (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repo persists per-scope recent query lists as JSON arrays.
// Implements usecase/recent.Store.
type Repo struct {
	store     store
	keyPrefix string
}

// New creates a recent query repository. Keys are <keyPrefix>recent:<scope>.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, keyPrefix: keyPrefix}
}

func (r *Repo) key(scope string) string {
	return r.keyPrefix + "recent:" + scope
}

// Get returns the stored list for scope, or an empty list if none exists.
func (r *Repo) Get(ctx context.Context, scope string) ([]string, error) {
	data, err := r.store.Get(ctx, r.key(scope))
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("get recent %s: %w", scope, err)
	}

	var terms []string
	if err := json.Unmarshal(data, &terms); err != nil {
		return nil, fmt.Errorf("decode recent %s: %w", scope, err)
	}
	if terms == nil {
		terms = []string{}
	}
	return terms, nil
}

// Set replaces the stored list for scope.
func (r *Repo) Set(ctx context.Context, scope string, terms []string) error {
	if terms == nil {
		terms = []string{}
	}
	data, err := json.Marshal(terms)
	if err != nil {
		return fmt.Errorf("encode recent %s: %w", scope, err)
	}
	if err := r.store.Set(ctx, r.key(scope), data); err != nil {
		return fmt.Errorf("set recent %s: %w", scope, err)
	}
	return nil
}
