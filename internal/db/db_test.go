package db

import (
	"context"
	"errors"
	"testing"
)

func TestTable_IsValid(t *testing.T) {
	for _, tbl := range []Table{TableReports, TableDataEntries, TableDocuments, TableComments} {
		if !tbl.IsValid() {
			t.Errorf("%q should be valid", tbl)
		}
	}
	if Table("users").IsValid() {
		t.Error("users should be invalid")
	}
}

func TestError_WrapsCause(t *testing.T) {
	err := &Error{Op: OpQueryText, Err: context.DeadlineExceeded}
	if err.Error() != "QUERY_TEXT: context deadline exceeded" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Error("expected errors.Is to see the cause")
	}
}
