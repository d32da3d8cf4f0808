package filter

import (
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

var _ Filter = (*URLFilter)(nil)

// URLFilter keeps entries by case-insensitive substring patterns on the request URL.
// Exclude patterns take precedence over include patterns.
type URLFilter struct {
	include    []string
	exclude    []string
	isIncluded match.Predicate
	isExcluded match.Predicate
}

// NewURLFilter creates a URL filter. Empty lists disable the respective check.
func NewURLFilter(include, exclude []string) *URLFilter {
	return &URLFilter{
		include:    include,
		exclude:    exclude,
		isIncluded: match.ContainsAnyFold(include...),
		isExcluded: match.ContainsAnyFold(exclude...),
	}
}

func (f *URLFilter) Name() string { return NameURL }

func (f *URLFilter) Evaluate(e *har.Entry) bool {
	u := e.Request.URL
	if len(f.exclude) > 0 && f.isExcluded(u) {
		return false
	}
	if len(f.include) > 0 {
		return f.isIncluded(u)
	}
	return true
}
