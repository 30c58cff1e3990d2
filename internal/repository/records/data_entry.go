package records

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/candidate"
)

// DataEntries finds measurement entries by metric name or notes and joins
// the owning report's title.
type DataEntries struct {
	store store
}

// NewDataEntries creates the data entry adapter.
func NewDataEntries(s store) *DataEntries {
	return &DataEntries{store: s}
}

// Kind returns kind.DataEntry.
func (a *DataEntries) Kind() kind.Kind { return kind.DataEntry }

// Find returns up to limit data entries of tenant matching term.
func (a *DataEntries) Find(ctx context.Context, term, tenant string, limit int) ([]candidate.Candidate, error) {
	rows, err := query(ctx, a.store, db.TableDataEntries, tenant, term, limit, "metric_name", "notes")
	if err != nil {
		return nil, err
	}
	titles, err := reportTitles(ctx, a.store, tenant, rows)
	if err != nil {
		return nil, err
	}

	out := make([]candidate.Candidate, 0, len(rows))
	for _, r := range rows {
		name, notes := r.Fields["metric_name"], r.Fields["notes"]
		out = append(out, candidate.Candidate{
			ID:          r.ID,
			CreatedAt:   r.CreatedAt,
			Title:       name,
			Description: notes,
			Fields:      candidate.Positional(name, notes),
			Metadata: metadata(
				"report", titles[r.Fields["report_id"]],
				"value", r.Fields["value"],
				"unit", r.Fields["unit"],
			),
		})
	}
	return out, nil
}
