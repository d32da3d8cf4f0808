package filter

import "github.com/sophialabs/harcleaner/internal/domain/har"

var _ Filter = (*SizeFilter)(nil)

// SizeFilter keeps entries whose response content size lies within [min, max].
// A nil bound is not checked.
type SizeFilter struct {
	min *int64
	max *int64
}

// NewSizeFilter creates a size filter with inclusive bounds.
func NewSizeFilter(min, max *int64) *SizeFilter {
	return &SizeFilter{min: min, max: max}
}

func (f *SizeFilter) Name() string { return NameSize }

func (f *SizeFilter) Evaluate(e *har.Entry) bool {
	size := e.Response.Content.Size
	if f.min != nil && size < *f.min {
		return false
	}
	if f.max != nil && size > *f.max {
		return false
	}
	return true
}
