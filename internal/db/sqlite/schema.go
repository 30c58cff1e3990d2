package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kailas-cloud/fedsearch/internal/db"
)

// columns lists the text columns of each record table, beyond id,
// organization_id and created_at_unix_ms.
var columns = map[db.Table][]string{
	db.TableReports:     {"title", "description", "status", "period"},
	db.TableDataEntries: {"report_id", "metric_name", "notes", "value", "unit"},
	db.TableDocuments:   {"report_id", "name", "description", "file_type"},
	db.TableComments:    {"report_id", "author", "content"},
}

// Columns returns the text columns of a table.
func Columns(t db.Table) ([]string, error) {
	cols, ok := columns[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", db.ErrUnknownTable, t)
	}
	out := make([]string, len(cols))
	copy(out, cols)
	return out, nil
}

func hasColumn(t db.Table, col string) bool {
	for _, c := range columns[t] {
		if c == col {
			return true
		}
	}
	return false
}

const migrationV1 = `
CREATE TABLE IF NOT EXISTS schema_meta (
  version INTEGER PRIMARY KEY,
  applied_at_unix_ms INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS reports (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  title TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  status TEXT NOT NULL DEFAULT '',
  period TEXT NOT NULL DEFAULT '',
  created_at_unix_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reports_org ON reports(organization_id, created_at_unix_ms DESC);

CREATE TABLE IF NOT EXISTS data_entries (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  report_id TEXT NOT NULL DEFAULT '',
  metric_name TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT '',
  value TEXT NOT NULL DEFAULT '',
  unit TEXT NOT NULL DEFAULT '',
  created_at_unix_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_data_entries_org ON data_entries(organization_id, created_at_unix_ms DESC);

CREATE TABLE IF NOT EXISTS documents (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  report_id TEXT NOT NULL DEFAULT '',
  name TEXT NOT NULL DEFAULT '',
  description TEXT NOT NULL DEFAULT '',
  file_type TEXT NOT NULL DEFAULT '',
  created_at_unix_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_documents_org ON documents(organization_id, created_at_unix_ms DESC);

CREATE TABLE IF NOT EXISTS comments (
  id TEXT PRIMARY KEY,
  organization_id TEXT NOT NULL,
  report_id TEXT NOT NULL DEFAULT '',
  author TEXT NOT NULL DEFAULT '',
  content TEXT NOT NULL DEFAULT '',
  created_at_unix_ms INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_comments_org ON comments(organization_id, created_at_unix_ms DESC);
`

// migrate brings the schema up to the latest version.
func (s *Store) migrate(ctx context.Context) error {
	currentVersion := 0
	row := s.db.QueryRowContext(ctx, `SELECT version FROM schema_meta ORDER BY version DESC LIMIT 1`)
	if err := row.Scan(&currentVersion); err != nil {
		if !errors.Is(err, sql.ErrNoRows) && !isTableNotFound(err) {
			return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("read schema version: %w", err)}
		}
		currentVersion = 0
	}

	migrations := []struct {
		version int
		sql     string
	}{
		{version: 1, sql: migrationV1},
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.ExecContext(ctx, m.sql); err != nil {
			return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("v%d: %w", m.version, err)}
		}
		_, err := s.db.ExecContext(ctx,
			`INSERT OR REPLACE INTO schema_meta (version, applied_at_unix_ms) VALUES (?, ?)`,
			m.version, time.Now().UnixMilli())
		if err != nil {
			return &db.Error{Op: db.OpMigrate, Err: fmt.Errorf("record v%d: %w", m.version, err)}
		}
	}
	return nil
}

func isTableNotFound(err error) bool {
	return err != nil && strings.Contains(err.Error(), "no such table")
}
