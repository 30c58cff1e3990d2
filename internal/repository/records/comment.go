package records

import (
	"context"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain/kind"
	"github.com/kailas-cloud/fedsearch/internal/domain/search/candidate"
)

// Comments finds discussion comments by content.
type Comments struct {
	store store
}

// NewComments creates the comment adapter.
func NewComments(s store) *Comments {
	return &Comments{store: s}
}

// Kind returns kind.Comment.
func (a *Comments) Kind() kind.Kind { return kind.Comment }

// Find returns up to limit comments of tenant matching term. The title is
// synthesized from the commented report and is not scored.
func (a *Comments) Find(ctx context.Context, term, tenant string, limit int) ([]candidate.Candidate, error) {
	rows, err := query(ctx, a.store, db.TableComments, tenant, term, limit, "content")
	if err != nil {
		return nil, err
	}
	titles, err := reportTitles(ctx, a.store, tenant, rows)
	if err != nil {
		return nil, err
	}

	out := make([]candidate.Candidate, 0, len(rows))
	for _, r := range rows {
		content := r.Fields["content"]
		report := titles[r.Fields["report_id"]]
		title := "Comment on report"
		if report != "" {
			title = "Comment on " + report
		}
		out = append(out, candidate.Candidate{
			ID:          r.ID,
			CreatedAt:   r.CreatedAt,
			Title:       title,
			Description: content,
			Fields:      candidate.Positional("", content),
			Metadata:    metadata("report", report, "author", r.Fields["author"]),
		})
	}
	return out, nil
}
