package records

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
)

var created = time.Date(2024, 2, 1, 9, 0, 0, 0, time.UTC)

// --- Reports ---

func TestReports_Find(t *testing.T) {
	ms := newMockStore(t)
	ms.queryTextFn = func(_ context.Context, q *db.TextQuery) ([]db.Row, error) {
		if q.Table != db.TableReports {
			t.Errorf("unexpected table %s", q.Table)
		}
		if q.Tenant != "org-1" || q.Substring != "annual" || q.Limit != 10 {
			t.Errorf("unexpected query %+v", q)
		}
		if len(q.Fields) != 2 || q.Fields[0] != "title" || q.Fields[1] != "description" {
			t.Errorf("unexpected fields %v", q.Fields)
		}
		return []db.Row{{
			ID: "r-1", CreatedAt: created,
			Fields: map[string]string{
				"title": "2024 Annual Sustainability Report", "description": "FY24",
				"status": "published", "period": "",
			},
		}}, nil
	}

	a := NewReports(ms)
	if a.Kind() != kind.Report {
		t.Errorf("Kind() = %q", a.Kind())
	}
	got, err := a.Find(context.Background(), "annual", "org-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}
	c := got[0]
	if c.ID != "r-1" || c.Title != "2024 Annual Sustainability Report" || c.Description != "FY24" {
		t.Errorf("unexpected candidate %+v", c)
	}
	if len(c.Fields) != 2 || c.Fields[0].Weight != 2 || c.Fields[1].Value != "FY24" {
		t.Errorf("unexpected fields %+v", c.Fields)
	}
	// empty period is dropped
	if len(c.Metadata) != 1 || c.Metadata[0].Label != "status" {
		t.Errorf("unexpected metadata %+v", c.Metadata)
	}
	if ms.fetchCalls != 0 {
		t.Error("reports adapter should not join")
	}
}

func TestReports_StoreError(t *testing.T) {
	ms := newMockStore(t)
	ms.queryTextFn = func(_ context.Context, _ *db.TextQuery) ([]db.Row, error) {
		return nil, &db.Error{Op: db.OpQueryText, Err: context.DeadlineExceeded}
	}

	_, err := NewReports(ms).Find(context.Background(), "x", "org-1", 10)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected wrapped deadline error, got %v", err)
	}
}

// --- DataEntries ---

func TestDataEntries_FindJoinsReport(t *testing.T) {
	ms := newMockStore(t)
	ms.queryTextFn = func(_ context.Context, q *db.TextQuery) ([]db.Row, error) {
		if q.Table != db.TableDataEntries {
			t.Errorf("unexpected table %s", q.Table)
		}
		if len(q.Fields) != 2 || q.Fields[0] != "metric_name" || q.Fields[1] != "notes" {
			t.Errorf("unexpected fields %v", q.Fields)
		}
		return []db.Row{
			{ID: "de-1", CreatedAt: created, Fields: map[string]string{
				"report_id": "r-1", "metric_name": "Water Usage",
				"notes": "Annual total for 2024", "value": "1200", "unit": "m3",
			}},
			{ID: "de-2", CreatedAt: created, Fields: map[string]string{
				"report_id": "r-1", "metric_name": "Annual energy", "value": "5",
			}},
		}, nil
	}
	ms.fetchByIDsFn = func(ctx context.Context, table db.Table, tenant string, ids []string) (map[string]db.Row, error) {
		if table != db.TableReports || tenant != "org-1" {
			t.Errorf("unexpected join %s/%s", table, tenant)
		}
		if len(ids) != 1 || ids[0] != "r-1" {
			t.Errorf("expected deduplicated ids [r-1], got %v", ids)
		}
		return reportsByID(db.Row{ID: "r-1", Fields: map[string]string{"title": "2024 Annual Report"}})(ctx, table, tenant, ids)
	}

	got, err := NewDataEntries(ms).Find(context.Background(), "annual", "org-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 candidates, got %d", len(got))
	}
	md := got[0].Metadata
	if len(md) != 3 {
		t.Fatalf("expected 3 metadata entries, got %+v", md)
	}
	want := []string{"report", "value", "unit"}
	for i, l := range want {
		if md[i].Label != l {
			t.Errorf("metadata[%d].Label = %q, want %q", i, md[i].Label, l)
		}
	}
	if md[0].Value != "2024 Annual Report" {
		t.Errorf("joined report title = %q", md[0].Value)
	}
	if got[0].Title != "Water Usage" || got[0].Fields[1].Value != "Annual total for 2024" {
		t.Errorf("unexpected candidate %+v", got[0])
	}
	if ms.fetchCalls != 1 {
		t.Errorf("expected one join lookup, got %d", ms.fetchCalls)
	}
}

func TestDataEntries_JoinError(t *testing.T) {
	ms := newMockStore(t)
	ms.queryTextFn = func(_ context.Context, _ *db.TextQuery) ([]db.Row, error) {
		return []db.Row{{ID: "de-1", Fields: map[string]string{"report_id": "r-1"}}}, nil
	}
	joinErr := errors.New("reports unavailable")
	ms.fetchByIDsFn = func(_ context.Context, _ db.Table, _ string, _ []string) (map[string]db.Row, error) {
		return nil, joinErr
	}

	_, err := NewDataEntries(ms).Find(context.Background(), "x", "org-1", 10)
	if !errors.Is(err, joinErr) {
		t.Fatalf("expected join error, got %v", err)
	}
}

func TestDataEntries_NoReportSkipsJoin(t *testing.T) {
	ms := newMockStore(t)
	ms.queryTextFn = func(_ context.Context, _ *db.TextQuery) ([]db.Row, error) {
		return []db.Row{{ID: "de-1", Fields: map[string]string{"metric_name": "Waste"}}}, nil
	}

	got, err := NewDataEntries(ms).Find(context.Background(), "waste", "org-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ms.fetchCalls != 0 {
		t.Errorf("expected no join lookup, got %d", ms.fetchCalls)
	}
	if len(got[0].Metadata) != 0 {
		t.Errorf("expected empty metadata, got %+v", got[0].Metadata)
	}
}

// --- Documents ---

func TestDocuments_Find(t *testing.T) {
	ms := newMockStore(t)
	ms.queryTextFn = func(_ context.Context, q *db.TextQuery) ([]db.Row, error) {
		if q.Table != db.TableDocuments {
			t.Errorf("unexpected table %s", q.Table)
		}
		return []db.Row{{ID: "d-1", CreatedAt: created, Fields: map[string]string{
			"report_id": "r-9", "name": "Water policy.pdf", "description": "Board approved", "file_type": "pdf",
		}}}, nil
	}
	ms.fetchByIDsFn = reportsByID(db.Row{ID: "r-9", Fields: map[string]string{"title": "Policies"}})

	got, err := NewDocuments(ms).Find(context.Background(), "water", "org-1", 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	c := got[0]
	if c.Title != "Water policy.pdf" || c.Fields[0].Value != "Water policy.pdf" || c.Fields[0].Weight != 2 {
		t.Errorf("unexpected candidate %+v", c)
	}
	if v := metaValue(c.Metadata, "report"); v != "Policies" {
		t.Errorf("report metadata = %q", v)
	}
	if v := metaValue(c.Metadata, "file_type"); v != "pdf" {
		t.Errorf("file_type metadata = %q", v)
	}
}

// --- Comments ---

func TestComments_Find(t *testing.T) {
	ms := newMockStore(t)
	ms.queryTextFn = func(_ context.Context, q *db.TextQuery) ([]db.Row, error) {
		if q.Table != db.TableComments {
			t.Errorf("unexpected table %s", q.Table)
		}
		if len(q.Fields) != 1 || q.Fields[0] != "content" {
			t.Errorf("unexpected fields %v", q.Fields)
		}
		return []db.Row{
			{ID: "c-1", CreatedAt: created, Fields: map[string]string{
				"report_id": "r-1", "author": "kim", "content": "Check the water figures",
			}},
			{ID: "c-2", CreatedAt: created, Fields: map[string]string{
				"report_id": "gone", "content": "water?",
			}},
		}, nil
	}
	ms.fetchByIDsFn = reportsByID(db.Row{ID: "r-1", Fields: map[string]string{"title": "Annual"}})

	got, err := NewComments(ms).Find(context.Background(), "water", "org-1", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got[0].Title != "Comment on Annual" {
		t.Errorf("Title = %q", got[0].Title)
	}
	if got[1].Title != "Comment on report" {
		t.Errorf("unresolved Title = %q", got[1].Title)
	}
	f := got[0].Fields
	if len(f) != 2 || f[0].Value != "" || f[1].Value != "Check the water figures" || f[1].Weight != 1 {
		t.Errorf("unexpected fields %+v", f)
	}
	if v := metaValue(got[0].Metadata, "author"); v != "kim" {
		t.Errorf("author metadata = %q", v)
	}
	if got[0].Description != "Check the water figures" {
		t.Errorf("Description = %q", got[0].Description)
	}
}

func TestMetadata_DropsEmpty(t *testing.T) {
	md := metadata("a", "1", "b", "", "c", "3")
	if len(md) != 2 || md[0].Label != "a" || md[1].Label != "c" {
		t.Errorf("unexpected metadata %+v", md)
	}
}
