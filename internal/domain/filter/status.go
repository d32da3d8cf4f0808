package filter

import "github.com/sophialabs/harcleaner/internal/domain/har"

var _ Filter = (*StatusCodeFilter)(nil)

// StatusCodeFilter keeps entries by response status. Exclusion wins over inclusion.
type StatusCodeFilter struct {
	include map[int]bool
	exclude map[int]bool
}

// NewStatusCodeFilter creates a status filter.
func NewStatusCodeFilter(include, exclude []int) *StatusCodeFilter {
	return &StatusCodeFilter{
		include: intSet(include),
		exclude: intSet(exclude),
	}
}

func (f *StatusCodeFilter) Name() string { return NameStatusCode }

func (f *StatusCodeFilter) Evaluate(e *har.Entry) bool {
	status := e.Response.Status
	if f.exclude[status] {
		return false
	}
	if len(f.include) > 0 && !f.include[status] {
		return false
	}
	return true
}

func intSet(values []int) map[int]bool {
	set := make(map[int]bool, len(values))
	for _, v := range values {
		set[v] = true
	}
	return set
}
