package template

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/sophialabs/harcleaner/internal/domain/filter"
	"github.com/sophialabs/harcleaner/internal/domain/har"
)

// ExprCompiler compiles boolean Expr programs evaluated against an entry.
type ExprCompiler struct{}

var _ filter.Condition = (*exprCondition)(nil)

// Compile type-checks source against the entry environment. The program must
// yield a bool.
func (c *ExprCompiler) Compile(source string) (filter.Condition, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, fmt.Errorf("empty expression")
	}
	program, err := expr.Compile(source, expr.Env(exprEnv{}), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("failed to compile expression %q: %w", source, err)
	}
	return &exprCondition{source: source, program: program}, nil
}

// exprEnv defines the environment available to Expr expressions.
type exprEnv struct {
	Method         string              `expr:"method"`
	URL            string              `expr:"url"`
	Host           string              `expr:"host"`
	Path           string              `expr:"path"`
	Status         int                 `expr:"status"`
	MimeType       string              `expr:"mimeType"`
	Size           int64               `expr:"size"`
	Time           float64             `expr:"time"`
	ResourceType   string              `expr:"resourceType"`
	IsXHR          bool                `expr:"isXHR"`
	RequestHeader  func(string) string `expr:"requestHeader"`
	ResponseHeader func(string) string `expr:"responseHeader"`
	RequestJSON    func(string) string `expr:"requestJSON"`
	ResponseJSON   func(string) string `expr:"responseJSON"`
}

type exprCondition struct {
	source  string
	program *vm.Program
}

func (c *exprCondition) Eval(e *har.Entry) (bool, error) {
	result, err := expr.Run(c.program, buildExprEnv(e))
	if err != nil {
		return false, fmt.Errorf("expression evaluation failed: %w", err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("expression %q returned %T, want bool", c.source, result)
	}
	return ok, nil
}

func (c *exprCondition) String() string { return c.source }
