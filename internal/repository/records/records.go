// Package records implements the per-kind collection query adapters over
// the organization-scoped record store.
package records

import (
	"context"
	"fmt"
	"sort"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/result"
)

// store is the consumer interface for record lookups (ISP).
type store interface {
	QueryText(ctx context.Context, q *db.TextQuery) ([]db.Row, error)
	FetchByIDs(ctx context.Context, table db.Table, tenant string, ids []string) (map[string]db.Row, error)
}

// reportTitles resolves the titles of the reports referenced by rows'
// report_id column. Rows without a report_id are skipped.
func reportTitles(ctx context.Context, s store, tenant string, rows []db.Row) (map[string]string, error) {
	seen := make(map[string]struct{})
	for _, r := range rows {
		if id := r.Fields["report_id"]; id != "" {
			seen[id] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return map[string]string{}, nil
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	reports, err := s.FetchByIDs(ctx, db.TableReports, tenant, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve reports: %w", err)
	}

	titles := make(map[string]string, len(reports))
	for id, r := range reports {
		titles[id] = r.Fields["title"]
	}
	return titles, nil
}

// metadata builds ordered metadata, dropping entries with empty values.
func metadata(pairs ...string) result.Metadata {
	var md result.Metadata
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		md = append(md, result.Entry{Label: pairs[i], Value: pairs[i+1]})
	}
	return md
}

func query(ctx context.Context, s store, table db.Table, tenant, term string, limit int, fields ...string) ([]db.Row, error) {
	rows, err := s.QueryText(ctx, &db.TextQuery{
		Table:     table,
		Tenant:    tenant,
		Fields:    fields,
		Substring: term,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	return rows, nil
}
