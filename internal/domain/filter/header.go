package filter

import (
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

var _ Filter = (*HeaderFilter)(nil)

// HeaderFilter trims request and response headers by name. It never excludes.
//
// Include patterns narrow the list first; exclude patterns then drop from what
// is left, so a name present in both lists is removed.
type HeaderFilter struct {
	narrow nameNarrower
}

// NewHeaderFilter creates a header filter matching on case-insensitive name substrings.
func NewHeaderFilter(include, exclude []string) *HeaderFilter {
	return &HeaderFilter{narrow: newNameNarrower(include, exclude)}
}

func (f *HeaderFilter) Name() string { return NameHeader }

func (f *HeaderFilter) Evaluate(e *har.Entry) bool {
	if f.narrow.noop() {
		return true
	}
	e.Request.Headers = narrowByName(e.Request.Headers, f.narrow, headerName)
	e.Response.Headers = narrowByName(e.Response.Headers, f.narrow, headerName)
	return true
}

func headerName(h har.NameValue) string { return h.Name }

// nameNarrower holds the two-stage include-then-exclude name reduction.
type nameNarrower struct {
	keep   match.Predicate
	active bool
}

func newNameNarrower(include, exclude []string) nameNarrower {
	included := match.Always()
	if len(include) > 0 {
		included = match.ContainsAnyFold(include...)
	}
	return nameNarrower{
		keep:   match.And(included, match.Not(match.ContainsAnyFold(exclude...))),
		active: len(include) > 0 || len(exclude) > 0,
	}
}

func (n nameNarrower) noop() bool { return !n.active }

func narrowByName[T any](items []T, n nameNarrower, name func(T) string) []T {
	if items == nil {
		return nil
	}
	kept := make([]T, 0, len(items))
	for _, it := range items {
		if n.keep(name(it)) {
			kept = append(kept, it)
		}
	}
	return kept
}
