package kind

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/fedsearch/internal/domain"
)

func TestKind_IsValid(t *testing.T) {
	for _, k := range []Kind{Report, DataEntry, Document, Comment} {
		if !k.IsValid() {
			t.Errorf("%q should be valid", k)
		}
	}
	for _, k := range []Kind{"", "all", "Report", "note"} {
		if Kind(k).IsValid() {
			t.Errorf("%q should be invalid", k)
		}
	}
}

func TestKind_RankOrder(t *testing.T) {
	if !(Report.Rank() < DataEntry.Rank() &&
		DataEntry.Rank() < Document.Rank() &&
		Document.Rank() < Comment.Rank()) {
		t.Fatalf("unexpected ranks: %d %d %d %d",
			Report.Rank(), DataEntry.Rank(), Document.Rank(), Comment.Rank())
	}
	if Kind("bogus").Rank() != -1 {
		t.Errorf("unknown kind rank = %d, want -1", Kind("bogus").Rank())
	}
}

func TestOrdered_ReturnsCopy(t *testing.T) {
	o := Ordered()
	o[0] = Comment
	if Ordered()[0] != Report {
		t.Fatal("Ordered() must not expose internal slice")
	}
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in    string
		all   bool
		kinds []Kind
	}{
		{"", true, []Kind{Report, DataEntry, Document, Comment}},
		{"all", true, []Kind{Report, DataEntry, Document, Comment}},
		{" ALL ", true, []Kind{Report, DataEntry, Document, Comment}},
		{"document", false, []Kind{Document}},
		{"data_entry", false, []Kind{DataEntry}},
	}
	for _, tc := range tests {
		t.Run(tc.in, func(t *testing.T) {
			f, err := ParseFilter(tc.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if f.IsAll() != tc.all {
				t.Errorf("IsAll() = %v, want %v", f.IsAll(), tc.all)
			}
			got := f.Kinds()
			if len(got) != len(tc.kinds) {
				t.Fatalf("Kinds() = %v, want %v", got, tc.kinds)
			}
			for i := range got {
				if got[i] != tc.kinds[i] {
					t.Errorf("Kinds()[%d] = %q, want %q", i, got[i], tc.kinds[i])
				}
			}
		})
	}
}

func TestParseFilter_Unknown(t *testing.T) {
	_, err := ParseFilter("spreadsheet")
	if !errors.Is(err, domain.ErrInvalidKind) {
		t.Fatalf("expected ErrInvalidKind, got %v", err)
	}
}

func TestFilter_String(t *testing.T) {
	f, err := ParseFilter("comment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if f.String() != "comment" {
		t.Errorf("String() = %q", f.String())
	}
	var all Filter
	if !all.IsAll() || all.String() != All || len(all.Kinds()) != 4 {
		t.Errorf("zero Filter should select all")
	}
}
