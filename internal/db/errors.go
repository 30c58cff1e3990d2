package db

import "errors"

// Sentinel errors for database operations.
var (
	ErrKeyNotFound   = errors.New("db: key not found")
	ErrUnknownTable  = errors.New("db: unknown table")
	ErrUnknownColumn = errors.New("db: unknown column")
)

// Op constants name storage operations for error context.
const (
	OpPing       = "PING"
	OpGet        = "GET"
	OpSet        = "SET"
	OpQueryText  = "QUERY_TEXT"
	OpFetchByIDs = "FETCH_BY_IDS"
	OpInsert     = "INSERT"
	OpMigrate    = "MIGRATE"
)

// Error wraps an underlying error with the operation name for diagnostics.
type Error struct {
	Op  string
	Err error
}

func (e *Error) Error() string { return e.Op + ": " + e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }
