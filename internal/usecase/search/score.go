package search

import (
	"strings"

	"github.com/kailas-cloud/fedsearch/internal/domain/search/candidate"
)

// Match weights per field, multiplied by the field's positional weight.
const (
	ExactWeight     = 100
	PrefixWeight    = 50
	SubstringWeight = 25
)

// Score returns the relevance of fields for term. Each field contributes at
// most one of exact, prefix or substring. Empty and whitespace-only fields
// contribute nothing. An empty term scores 0.
func Score(term string, fields []candidate.Field) int {
	t := strings.ToLower(strings.TrimSpace(term))
	if t == "" {
		return 0
	}

	total := 0
	for _, f := range fields {
		v := strings.TrimSpace(f.Value)
		if v == "" {
			continue
		}
		v = strings.ToLower(v)
		switch {
		case v == t:
			total += ExactWeight * f.Weight
		case strings.HasPrefix(v, t):
			total += PrefixWeight * f.Weight
		case strings.Contains(v, t):
			total += SubstringWeight * f.Weight
		}
	}
	return total
}
