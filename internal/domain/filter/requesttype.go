package filter

import (
	"strings"

	"github.com/sophialabs/harcleaner/internal/domain/har"
)

var _ Filter = (*RequestTypeFilter)(nil)

// RequestTypeFilter keeps entries by URL extension or response MIME type.
type RequestTypeFilter struct {
	include []string
	exclude []string
}

// NewRequestTypeFilter creates a type filter from names such as "js", "png" or "json".
func NewRequestTypeFilter(include, exclude []string) *RequestTypeFilter {
	return &RequestTypeFilter{
		include: lowerAll(include),
		exclude: lowerAll(exclude),
	}
}

func (f *RequestTypeFilter) Name() string { return NameRequestType }

func (f *RequestTypeFilter) Evaluate(e *har.Entry) bool {
	if len(f.include) == 0 && len(f.exclude) == 0 {
		return true
	}

	ext := FileExtension(e.Request.URL)
	mimeType := strings.ToLower(e.Response.Content.MimeType)

	if matchesAnyType(f.exclude, ext, mimeType) {
		return false
	}
	if len(f.include) > 0 {
		return matchesAnyType(f.include, ext, mimeType)
	}
	return true
}

func matchesAnyType(types []string, ext, mimeType string) bool {
	for _, t := range types {
		if MatchesType(t, ext, mimeType) {
			return true
		}
	}
	return false
}

func lowerAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.ToLower(v))
	}
	return out
}
