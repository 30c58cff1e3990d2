package db

import (
	"context"
	"time"
)

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Table names a record collection in the record store.
type Table string

// Record tables.
const (
	TableReports     Table = "reports"
	TableDataEntries Table = "data_entries"
	TableDocuments   Table = "documents"
	TableComments    Table = "comments"
)

// IsValid checks if t is one of the known tables.
func (t Table) IsValid() bool {
	switch t {
	case TableReports, TableDataEntries, TableDocuments, TableComments:
		return true
	}
	return false
}

// Row is a single record read from the record store. Fields holds the
// table's text columns by name; absent or NULL columns map to "".
type Row struct {
	ID        string
	CreatedAt time.Time
	Fields    map[string]string
}

// TextQuery is the input for a tenant-scoped substring filter.
type TextQuery struct {
	Table     Table
	Tenant    string
	Fields    []string // a row matches if any field contains Substring
	Substring string
	Limit     int
}

// RecordStore is the organization-scoped record store consumed by the
// collection query adapters.
type RecordStore interface {
	Pinger
	// QueryText returns up to q.Limit rows of q.Table owned by q.Tenant where
	// any of q.Fields contains q.Substring case-insensitively, newest first.
	QueryText(ctx context.Context, q *TextQuery) ([]Row, error)
	// FetchByIDs returns the tenant's rows with the given ids, keyed by id.
	// Unknown ids are absent from the map.
	FetchByIDs(ctx context.Context, table Table, tenant string, ids []string) (map[string]Row, error)
	// Insert stores a row owned by tenant.
	Insert(ctx context.Context, table Table, tenant string, row Row) error
	Close() error
}

// KVStore provides simple key-value operations.
type KVStore interface {
	Pinger
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close()
}
