package records

import (
	"context"
	"testing"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	queryTextFn  func(ctx context.Context, q *db.TextQuery) ([]db.Row, error)
	fetchByIDsFn func(ctx context.Context, table db.Table, tenant string, ids []string) (map[string]db.Row, error)
	fetchCalls   int
}

func (m *mockStore) QueryText(ctx context.Context, q *db.TextQuery) ([]db.Row, error) {
	if m.queryTextFn != nil {
		return m.queryTextFn(ctx, q)
	}
	return nil, nil
}

func (m *mockStore) FetchByIDs(
	ctx context.Context, table db.Table, tenant string, ids []string,
) (map[string]db.Row, error) {
	m.fetchCalls++
	if m.fetchByIDsFn != nil {
		return m.fetchByIDsFn(ctx, table, tenant, ids)
	}
	return map[string]db.Row{}, nil
}

func newMockStore(t *testing.T) *mockStore {
	t.Helper()
	return &mockStore{}
}

func reportsByID(rows ...db.Row) func(context.Context, db.Table, string, []string) (map[string]db.Row, error) {
	return func(_ context.Context, _ db.Table, _ string, ids []string) (map[string]db.Row, error) {
		out := make(map[string]db.Row)
		for _, id := range ids {
			for _, r := range rows {
				if r.ID == id {
					out[id] = r
				}
			}
		}
		return out, nil
	}
}

func metaValue(md result.Metadata, label string) string {
	for _, e := range md {
		if e.Label == label {
			return e.Value
		}
	}
	return ""
}
