package template

import (
	"fmt"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"

	"github.com/sophialabs/harcleaner/internal/domain/cleaning"
)

// MaxListedExclusions caps the excluded entries shown in a report.
const MaxListedExclusions = 10

// ReportView is the data a report template renders.
type ReportView struct {
	RunID      string
	Input      string
	Output     string
	OutputType string
	DryRun     bool
	Verbose    bool
	Filters    []string
	Report     cleaning.Report
	Duration   time.Duration
}

// Jinja2Compiler compiles report templates using Pongo2 (Django/Jinja2-style).
// Output is plain text, so HTML autoescaping is off.
type Jinja2Compiler struct{}

// Compile parses the source as a Pongo2 template.
func (c *Jinja2Compiler) Compile(name, source string) (*ReportRenderer, error) {
	tpl, err := pongo2.FromString("{% autoescape off %}" + source + "{% endautoescape %}")
	if err != nil {
		return nil, fmt.Errorf("failed to compile jinja2 template %q: %w", name, err)
	}
	return &ReportRenderer{name: name, tpl: tpl}, nil
}

// ReportRenderer renders cleaning summaries.
type ReportRenderer struct {
	name string
	tpl  *pongo2.Template
}

// Render executes the template for v.
func (r *ReportRenderer) Render(v ReportView) (string, error) {
	excluded := v.Report.ExcludedEntries
	more := 0
	if len(excluded) > MaxListedExclusions {
		more = len(excluded) - MaxListedExclusions
		excluded = excluded[:MaxListedExclusions]
	}

	listed := make([]pongo2.Context, 0, len(excluded))
	for _, ex := range excluded {
		listed = append(listed, pongo2.Context{
			"method":  ex.Method,
			"status":  ex.Status,
			"url":     ex.URL,
			"reasons": strings.Join(ex.Reasons, ", "),
		})
	}

	pongoCtx := pongo2.Context{
		"run_id":      v.RunID,
		"input":       v.Input,
		"output":      v.Output,
		"output_type": v.OutputType,
		"dry_run":     v.DryRun,
		"verbose":     v.Verbose,
		"filters":     v.Filters,
		"original":    v.Report.OriginalCount,
		"retained":    v.Report.RetainedCount,
		"removed":     v.Report.RemovedCount(),
		"percentage":  fmt.Sprintf("%.1f", v.Report.RemovalPercentage()),
		"excluded":    listed,
		"more":        more,
		"duration":    v.Duration.Round(time.Millisecond).String(),

		"toJSON": func(v any) string {
			return toJSONString(v)
		},
	}

	result, err := r.tpl.Execute(pongoCtx)
	if err != nil {
		return "", fmt.Errorf("jinja2 template %q render failed: %w", r.name, err)
	}
	return result, nil
}
