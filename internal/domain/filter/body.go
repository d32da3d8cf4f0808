package filter

import (
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

// Body targets.
const (
	TargetRequest  = "request"
	TargetResponse = "response"
)

var _ Filter = (*BodyFilter)(nil)

// BodyCondition is a compiled predicate over a request or response body.
// Field names the extractor for diagnostics.
type BodyCondition struct {
	Target string
	match.FieldPredicate
}

// BodyFilter keeps entries whose bodies satisfy every condition. It never mutates.
type BodyFilter struct {
	conditions []BodyCondition
}

// NewBodyFilter creates a body filter. With no conditions it keeps everything.
func NewBodyFilter(conditions ...BodyCondition) *BodyFilter {
	return &BodyFilter{conditions: conditions}
}

func (f *BodyFilter) Name() string { return NameBody }

func (f *BodyFilter) Evaluate(e *har.Entry) bool {
	for _, c := range f.conditions {
		if !c.Predicate(bodyText(e, c.Target)) {
			return false
		}
	}
	return true
}

func bodyText(e *har.Entry, target string) string {
	if target == TargetRequest {
		if e.Request.PostData == nil || e.Request.PostData.Text == nil {
			return ""
		}
		return *e.Request.PostData.Text
	}
	if e.Response.Content.Text == nil {
		return ""
	}
	return *e.Response.Content.Text
}
