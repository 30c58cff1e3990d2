package records

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/candidate"
)

// Reports finds reports by title or description.
type Reports struct {
	store store
}

// NewReports creates the report adapter.
func NewReports(s store) *Reports {
	return &Reports{store: s}
}

// Kind returns kind.Report.
func (a *Reports) Kind() kind.Kind { return kind.Report }

// Find returns up to limit reports of tenant matching term.
func (a *Reports) Find(ctx context.Context, term, tenant string, limit int) ([]candidate.Candidate, error) {
	rows, err := query(ctx, a.store, db.TableReports, tenant, term, limit, "title", "description")
	if err != nil {
		return nil, err
	}

	out := make([]candidate.Candidate, 0, len(rows))
	for _, r := range rows {
		title, desc := r.Fields["title"], r.Fields["description"]
		out = append(out, candidate.Candidate{
			ID:          r.ID,
			CreatedAt:   r.CreatedAt,
			Title:       title,
			Description: desc,
			Fields:      candidate.Positional(title, desc),
			Metadata:    metadata("status", r.Fields["status"], "period", r.Fields["period"]),
		})
	}
	return out, nil
}
