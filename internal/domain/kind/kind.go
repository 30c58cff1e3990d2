package kind

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/domain"
)

// Kind is the entity type a search result originates from.
type Kind string

// Kind constants, declared in their fixed tie-break order.
const (
	Report    Kind = "report"
	DataEntry Kind = "data_entry"
	Document  Kind = "document"
	Comment   Kind = "comment"
)

// All is the type filter that selects every kind.
const All = "all"

var ordered = []Kind{Report, DataEntry, Document, Comment}

// Ordered returns every kind in enumeration order.
func Ordered() []Kind {
	out := make([]Kind, len(ordered))
	copy(out, ordered)
	return out
}

// IsValid checks if the kind is one of the supported values.
func (k Kind) IsValid() bool {
	return k.Rank() >= 0
}

// Rank returns the enumeration position of k, or -1 for unknown kinds.
func (k Kind) Rank() int {
	for i, o := range ordered {
		if o == k {
			return i
		}
	}
	return -1
}

func (k Kind) String() string { return string(k) }

// Filter selects which kinds a search covers.
type Filter struct {
	kind Kind // empty means all
}

// ParseFilter parses a type filter: "all" (or empty) or a single kind name.
func ParseFilter(s string) (Filter, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == All {
		return Filter{}, nil
	}
	k := Kind(s)
	if !k.IsValid() {
		return Filter{}, fmt.Errorf("%w: unknown type filter %q", domain.ErrInvalidKind, s)
	}
	return Filter{kind: k}, nil
}

// IsAll reports whether the filter selects every kind.
func (f Filter) IsAll() bool { return f.kind == "" }

// Kinds returns the selected kinds in enumeration order.
func (f Filter) Kinds() []Kind {
	if f.IsAll() {
		return Ordered()
	}
	return []Kind{f.kind}
}

func (f Filter) String() string {
	if f.IsAll() {
		return All
	}
	return string(f.kind)
}
