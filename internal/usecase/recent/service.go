package recent

import (
	"context"
	"fmt"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// DefaultCapacity is the number of terms kept per scope.
const DefaultCapacity = 5

// lockStripes bounds the number of scope mutexes regardless of how many
// scopes are seen.
const lockStripes = 64

// Log is a bounded, deduplicated, most-recent-first list of query terms
// per scope.
type Log struct {
	store    Store
	capacity int

	locks [lockStripes]sync.Mutex
}

// New creates a Log. capacity <= 0 uses DefaultCapacity.
func New(store Store, capacity int) *Log {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Log{store: store, capacity: capacity}
}

// lock returns the mutex serializing read-modify-write for scope. Scopes
// sharing a stripe also serialize against each other.
func (l *Log) lock(scope string) *sync.Mutex {
	return &l.locks[xxhash.Sum64String(scope)%lockStripes]
}

// Record moves term to the front of scope's list, inserting it if absent and
// evicting the oldest entries beyond capacity.
func (l *Log) Record(ctx context.Context, scope, term string) error {
	if term == "" {
		return nil
	}

	m := l.lock(scope)
	m.Lock()
	defer m.Unlock()

	current, err := l.store.Get(ctx, scope)
	if err != nil {
		return fmt.Errorf("load recent: %w", err)
	}

	if err := l.store.Set(ctx, scope, push(current, term, l.capacity)); err != nil {
		return fmt.Errorf("save recent: %w", err)
	}
	return nil
}

// List returns scope's terms, most recent first.
func (l *Log) List(ctx context.Context, scope string) ([]string, error) {
	m := l.lock(scope)
	m.Lock()
	defer m.Unlock()

	terms, err := l.store.Get(ctx, scope)
	if err != nil {
		return nil, fmt.Errorf("load recent: %w", err)
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out, nil
}

// push returns a new list with term at the front, without duplicates,
// truncated to capacity.
func push(terms []string, term string, capacity int) []string {
	out := make([]string, 0, capacity)
	out = append(out, term)
	for _, t := range terms {
		if len(out) == capacity {
			break
		}
		if t == term {
			continue
		}
		out = append(out, t)
	}
	return out
}
