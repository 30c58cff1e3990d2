package fedsearch

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
	healthuc "github.com/kailas-cloud/fedsearch/internal/usecase/health"
)

// --- searchUseCase mock ---

type mockSearchUC struct {
	searchFn func(ctx context.Context, term, typeFilter, tenant string) ([]result.Result, error)
	recentFn func(ctx context.Context, tenant string) ([]string, error)
}

func (m *mockSearchUC) SearchTerm(ctx context.Context, term, typeFilter, tenant string) ([]result.Result, error) {
	return m.searchFn(ctx, term, typeFilter, tenant)
}

func (m *mockSearchUC) Recent(ctx context.Context, tenant string) ([]string, error) {
	return m.recentFn(ctx, tenant)
}

// --- healthUseCase mock ---

type mockHealthUC struct {
	report healthuc.Report
}

func (m *mockHealthUC) Check(_ context.Context) healthuc.Report { return m.report }

// --- db.RecordStore mock ---

type mockRecordStore struct {
	queryTextFn func(ctx context.Context, q *db.TextQuery) ([]db.Row, error)
}

func (m *mockRecordStore) Ping(_ context.Context) error { return nil }

func (m *mockRecordStore) QueryText(ctx context.Context, q *db.TextQuery) ([]db.Row, error) {
	if m.queryTextFn != nil {
		return m.queryTextFn(ctx, q)
	}
	return nil, nil
}

func (m *mockRecordStore) FetchByIDs(_ context.Context, _ db.Table, _ string, _ []string) (map[string]db.Row, error) {
	return map[string]db.Row{}, nil
}

func (m *mockRecordStore) Insert(_ context.Context, _ db.Table, _ string, _ db.Row) error {
	return nil
}

func (m *mockRecordStore) Close() error { return nil }

// --- helpers ---

func testClient(searchSvc searchUseCase, healthSvc healthUseCase, obs *observer) *Client {
	return &Client{searchSvc: searchSvc, healthSvc: healthSvc, obs: obs}
}
