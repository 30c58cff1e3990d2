// Package sqlite implements db.RecordStore on SQLite via modernc.org/sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	msqlite "modernc.org/sqlite"

	"github.com/kailas-cloud/fedsearch/internal/db"
	"github.com/kailas-cloud/fedsearch/internal/domain"
)

var _ db.RecordStore = (*Store)(nil)

// foldFunc lowers text with Go's Unicode rules; SQLite's lower() only
// folds ASCII. Patterns are folded with the same function.
const foldFunc = "fedsearch_fold"

var (
	registerFoldOnce sync.Once
	registerFoldErr  error
)

// registerFold installs foldFunc for every connection opened afterwards.
func registerFold() error {
	registerFoldOnce.Do(func() {
		registerFoldErr = msqlite.RegisterDeterministicScalarFunction(foldFunc, 1,
			func(_ *msqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				switch v := args[0].(type) {
				case string:
					return fold(v), nil
				case []byte:
					return fold(string(v)), nil
				default:
					return v, nil
				}
			})
	})
	return registerFoldErr
}

func fold(s string) string { return strings.ToLower(s) }

// Config holds SQLite connection settings.
type Config struct {
	Path         string
	MaxOpenConns int // default 4; WAL allows concurrent readers
}

// Store implements db.RecordStore over a single SQLite file.
type Store struct {
	db        *sql.DB
	closeOnce sync.Once
	closeErr  error
}

// NewStore opens (creating if needed) the database at cfg.Path and migrates it.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 4
	}

	if err := registerFold(); err != nil {
		return nil, fmt.Errorf("register %s: %w", foldFunc, err)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// modernc.org/sqlite uses _pragma=name(value) syntax
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)", cfg.Path)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxOpenConns)
	conn.SetConnMaxLifetime(0)

	if err := conn.PingContext(ctx); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connect database: %w", err)
	}

	s := &Store{db: conn}
	if err := s.migrate(ctx); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return s, nil
}

// Ping checks connectivity.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.db.PingContext(ctx); err != nil {
		return &db.Error{Op: db.OpPing, Err: err}
	}
	return nil
}

// Close closes the database. Safe to call more than once.
func (s *Store) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.db.Close()
	})
	return s.closeErr
}

// QueryText runs a case-insensitive substring filter over q.Fields.
func (s *Store) QueryText(ctx context.Context, q *db.TextQuery) ([]db.Row, error) {
	cols, err := Columns(q.Table)
	if err != nil {
		return nil, err
	}
	if q.Tenant == "" {
		return nil, domain.ErrInvalidTenant
	}
	if len(q.Fields) == 0 {
		return nil, fmt.Errorf("at least one field is required")
	}
	if q.Limit <= 0 {
		return nil, fmt.Errorf("limit must be positive")
	}

	pattern := "%" + escapeLike(fold(q.Substring)) + "%"
	conds := make([]string, len(q.Fields))
	args := []any{q.Tenant}
	for i, f := range q.Fields {
		if !hasColumn(q.Table, f) {
			return nil, fmt.Errorf("%w: %s.%s", db.ErrUnknownColumn, q.Table, f)
		}
		conds[i] = fmt.Sprintf(`%s(%s) LIKE ? ESCAPE '\'`, foldFunc, f)
		args = append(args, pattern)
	}
	args = append(args, q.Limit)

	query := fmt.Sprintf(
		`SELECT id, created_at_unix_ms, %s FROM %s WHERE organization_id = ? AND (%s) `+
			`ORDER BY created_at_unix_ms DESC, id ASC LIMIT ?`,
		strings.Join(cols, ", "), q.Table, strings.Join(conds, " OR "),
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpQueryText, Err: err}
	}
	defer rows.Close()

	out, err := scanRows(rows, cols)
	if err != nil {
		return nil, &db.Error{Op: db.OpQueryText, Err: err}
	}
	return out, nil
}

// FetchByIDs returns the tenant's rows with the given ids.
func (s *Store) FetchByIDs(ctx context.Context, table db.Table, tenant string, ids []string) (map[string]db.Row, error) {
	cols, err := Columns(table)
	if err != nil {
		return nil, err
	}
	if tenant == "" {
		return nil, domain.ErrInvalidTenant
	}
	if len(ids) == 0 {
		return map[string]db.Row{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(ids)), ",")
	args := make([]any, 0, len(ids)+1)
	args = append(args, tenant)
	for _, id := range ids {
		args = append(args, id)
	}

	query := fmt.Sprintf(
		`SELECT id, created_at_unix_ms, %s FROM %s WHERE organization_id = ? AND id IN (%s)`,
		strings.Join(cols, ", "), table, placeholders,
	)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &db.Error{Op: db.OpFetchByIDs, Err: err}
	}
	defer rows.Close()

	list, err := scanRows(rows, cols)
	if err != nil {
		return nil, &db.Error{Op: db.OpFetchByIDs, Err: err}
	}
	out := make(map[string]db.Row, len(list))
	for _, r := range list {
		out[r.ID] = r
	}
	return out, nil
}

// Insert stores a row. A missing id gets a UUID, a zero CreatedAt gets now.
func (s *Store) Insert(ctx context.Context, table db.Table, tenant string, row db.Row) error {
	cols, err := Columns(table)
	if err != nil {
		return err
	}
	if tenant == "" {
		return domain.ErrInvalidTenant
	}
	for f := range row.Fields {
		if !hasColumn(table, f) {
			return fmt.Errorf("%w: %s.%s", db.ErrUnknownColumn, table, f)
		}
	}
	if row.ID == "" {
		row.ID = uuid.NewString()
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now()
	}

	args := []any{row.ID, tenant, row.CreatedAt.UnixMilli()}
	for _, c := range cols {
		args = append(args, row.Fields[c])
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(args)), ",")

	query := fmt.Sprintf(
		`INSERT INTO %s (id, organization_id, created_at_unix_ms, %s) VALUES (%s)`,
		table, strings.Join(cols, ", "), placeholders,
	)
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return &db.Error{Op: db.OpInsert, Err: err}
	}
	return nil
}

func scanRows(rows *sql.Rows, cols []string) ([]db.Row, error) {
	var out []db.Row
	for rows.Next() {
		var (
			id        string
			createdMs int64
		)
		values := make([]sql.NullString, len(cols))
		dest := make([]any, 0, len(cols)+2)
		dest = append(dest, &id, &createdMs)
		for i := range values {
			dest = append(dest, &values[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}

		fields := make(map[string]string, len(cols))
		for i, c := range cols {
			fields[c] = values[i].String
		}
		out = append(out, db.Row{
			ID:        id,
			CreatedAt: time.UnixMilli(createdMs).UTC(),
			Fields:    fields,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return out, nil
}

// escapeLike escapes LIKE metacharacters so the substring matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
