package records

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/candidate"
)

// Documents finds uploaded documents by name or description.
type Documents struct {
	store store
}

// NewDocuments creates the document adapter.
func NewDocuments(s store) *Documents {
	return &Documents{store: s}
}

// Kind returns kind.Document.
func (a *Documents) Kind() kind.Kind { return kind.Document }

// Find returns up to limit documents of tenant matching term.
func (a *Documents) Find(ctx context.Context, term, tenant string, limit int) ([]candidate.Candidate, error) {
	rows, err := query(ctx, a.store, db.TableDocuments, tenant, term, limit, "name", "description")
	if err != nil {
		return nil, err
	}
	titles, err := reportTitles(ctx, a.store, tenant, rows)
	if err != nil {
		return nil, err
	}

	out := make([]candidate.Candidate, 0, len(rows))
	for _, r := range rows {
		name, desc := r.Fields["name"], r.Fields["description"]
		out = append(out, candidate.Candidate{
			ID:          r.ID,
			CreatedAt:   r.CreatedAt,
			Title:       name,
			Description: desc,
			Fields:      candidate.Positional(name, desc),
			Metadata: metadata(
				"report", titles[r.Fields["report_id"]],
				"file_type", r.Fields["file_type"],
			),
		})
	}
	return out, nil
}
