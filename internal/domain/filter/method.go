package filter

import (
	"strings"

	"github.com/sophialabs/harcleaner/internal/domain/har"
)

var _ Filter = (*RequestMethodFilter)(nil)

// RequestMethodFilter keeps entries by HTTP method and, optionally, only XHR calls.
type RequestMethodFilter struct {
	xhrOnly bool
	include map[string]bool
	exclude map[string]bool
}

// NewRequestMethodFilter creates a method filter. Methods compare case-insensitively.
func NewRequestMethodFilter(xhrOnly bool, include, exclude []string) *RequestMethodFilter {
	return &RequestMethodFilter{
		xhrOnly: xhrOnly,
		include: methodSet(include),
		exclude: methodSet(exclude),
	}
}

func (f *RequestMethodFilter) Name() string { return NameRequestMethod }

func (f *RequestMethodFilter) Evaluate(e *har.Entry) bool {
	if f.xhrOnly && !IsXHR(e) {
		return false
	}
	method := strings.ToUpper(e.Request.Method)
	if f.exclude[method] {
		return false
	}
	if len(f.include) > 0 && !f.include[method] {
		return false
	}
	return true
}

func methodSet(methods []string) map[string]bool {
	set := make(map[string]bool, len(methods))
	for _, m := range methods {
		set[strings.ToUpper(m)] = true
	}
	return set
}
