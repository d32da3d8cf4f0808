package filter

import "github.com/sophialabs/harcleaner/internal/domain/har"

// Condition is a compiled boolean condition over an entry.
type Condition interface {
	Eval(e *har.Entry) (bool, error)
}

var _ Filter = (*ExpressionFilter)(nil)

// ExpressionFilter keeps entries for which the condition holds.
// A condition that fails at runtime excludes the entry.
type ExpressionFilter struct {
	cond Condition
}

// NewExpressionFilter wraps a compiled condition.
func NewExpressionFilter(cond Condition) *ExpressionFilter {
	return &ExpressionFilter{cond: cond}
}

func (f *ExpressionFilter) Name() string { return NameExpression }

func (f *ExpressionFilter) Evaluate(e *har.Entry) bool {
	if f.cond == nil {
		return true
	}
	ok, err := f.cond.Eval(e)
	return err == nil && ok
}
