package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/fedsearch/internal/db"
)

// Fixtures is the seed file layout. Child records hang off their report so
// report ids can be generated before the children reference them.
type Fixtures struct {
	Organizations []Organization `yaml:"organizations"`
}

// Organization is one tenant and its reports.
type Organization struct {
	ID      string   `yaml:"id"`
	Reports []Report `yaml:"reports"`
}

// Report is a report fixture with its child records.
type Report struct {
	ID          string      `yaml:"id"`
	Title       string      `yaml:"title"`
	Description string      `yaml:"description"`
	Status      string      `yaml:"status"`
	Period      string      `yaml:"period"`
	CreatedAt   time.Time   `yaml:"created_at"`
	DataEntries []DataEntry `yaml:"data_entries"`
	Documents   []Document  `yaml:"documents"`
	Comments    []Comment   `yaml:"comments"`
}

// DataEntry is a measurement fixture.
type DataEntry struct {
	ID         string    `yaml:"id"`
	MetricName string    `yaml:"metric_name"`
	Notes      string    `yaml:"notes"`
	Value      string    `yaml:"value"`
	Unit       string    `yaml:"unit"`
	CreatedAt  time.Time `yaml:"created_at"`
}

// Document is an uploaded file fixture.
type Document struct {
	ID          string    `yaml:"id"`
	Name        string    `yaml:"name"`
	Description string    `yaml:"description"`
	FileType    string    `yaml:"file_type"`
	CreatedAt   time.Time `yaml:"created_at"`
}

// Comment is a discussion comment fixture.
type Comment struct {
	ID        string    `yaml:"id"`
	Author    string    `yaml:"author"`
	Content   string    `yaml:"content"`
	CreatedAt time.Time `yaml:"created_at"`
}

// loadFixtures reads and validates a fixtures file.
func loadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	var f Fixtures
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	for i, o := range f.Organizations {
		if o.ID == "" {
			return nil, fmt.Errorf("organizations[%d]: id is required", i)
		}
	}
	return &f, nil
}

type inserter interface {
	Insert(ctx context.Context, table db.Table, tenant string, row db.Row) error
}

// seedCounts tallies inserted rows per table.
type seedCounts map[db.Table]int

// seed inserts every fixture, generating ids where missing.
func seed(ctx context.Context, s inserter, f *Fixtures) (seedCounts, error) {
	counts := seedCounts{}
	insert := func(t db.Table, tenant, id string, at time.Time, fields map[string]string) error {
		if err := s.Insert(ctx, t, tenant, db.Row{ID: id, CreatedAt: at, Fields: fields}); err != nil {
			return fmt.Errorf("insert %s %s: %w", t, id, err)
		}
		counts[t]++
		return nil
	}

	for _, org := range f.Organizations {
		for _, r := range org.Reports {
			if r.ID == "" {
				r.ID = uuid.NewString()
			}
			if err := insert(db.TableReports, org.ID, r.ID, r.CreatedAt, map[string]string{
				"title": r.Title, "description": r.Description, "status": r.Status, "period": r.Period,
			}); err != nil {
				return counts, err
			}

			for _, e := range r.DataEntries {
				if err := insert(db.TableDataEntries, org.ID, idOrNew(e.ID), e.CreatedAt, map[string]string{
					"report_id": r.ID, "metric_name": e.MetricName, "notes": e.Notes, "value": e.Value, "unit": e.Unit,
				}); err != nil {
					return counts, err
				}
			}
			for _, d := range r.Documents {
				if err := insert(db.TableDocuments, org.ID, idOrNew(d.ID), d.CreatedAt, map[string]string{
					"report_id": r.ID, "name": d.Name, "description": d.Description, "file_type": d.FileType,
				}); err != nil {
					return counts, err
				}
			}
			for _, c := range r.Comments {
				if err := insert(db.TableComments, org.ID, idOrNew(c.ID), c.CreatedAt, map[string]string{
					"report_id": r.ID, "author": c.Author, "content": c.Content,
				}); err != nil {
					return counts, err
				}
			}
		}
	}
	return counts, nil
}

func idOrNew(id string) string {
	if id == "" {
		return uuid.NewString()
	}
	return id
}
