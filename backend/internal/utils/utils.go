package utils

import (
	"sort"
	"strings"

	"github.com/JustUsingaWebsite/carrier-relations/backend/internal/types"
)

// WhitespaceTrimmer removes leading/trailing whitespace. Internal whitespace is kept as-is,
// so "Acme  Corp" and "Acme Corp" remain distinct values.
func WhitespaceTrimmer(s string) string {
	return strings.TrimSpace(s)
}

// HeaderIndex maps each trimmed header name to its first column index.
// Matching is exact (case-sensitive) on the trimmed name.
func HeaderIndex(tbl types.TableData) map[string]int {
	idx := make(map[string]int, len(tbl.Header))
	for i, h := range tbl.Header {
		key := WhitespaceTrimmer(h)
		if _, dup := idx[key]; dup {
			continue
		}
		idx[key] = i
	}
	return idx
}

// Cell returns row[i], or "" when the row is shorter than i.
func Cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return row[i]
}

// SplitTokens splits a delimited cell, trims each token and drops empty ones.
func SplitTokens(cell string, sep string) []string {
	cell = WhitespaceTrimmer(cell)
	if cell == "" {
		return nil
	}
	parts := strings.Split(cell, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = WhitespaceTrimmer(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// StringSet is an unordered set of strings.
type StringSet map[string]struct{}

func (s StringSet) Add(vals ...string) {
	for _, v := range vals {
		s[v] = struct{}{}
	}
}

func (s StringSet) Has(v string) bool {
	_, ok := s[v]
	return ok
}

// Sorted returns the members in ascending order. Never nil.
func (s StringSet) Sorted() []string {
	out := make([]string, 0, len(s))
	for v := range s {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// NewStringSet builds a set from vals.
func NewStringSet(vals ...string) StringSet {
	s := make(StringSet, len(vals))
	s.Add(vals...)
	return s
}

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
