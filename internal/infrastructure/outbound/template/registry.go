package template

import (
	"fmt"
	"sort"
	"strings"
)

const textReport = `HAR Cleaner run {{ run_id }}
Input file: {{ input }}
Output file: {{ output }}
Output type: {{ output_type }}
{% if filters %}
Applied filters:
{% for f in filters %}  - {{ f }}
{% endfor %}{% else %}
Warning: No filters specified. Output will be identical to input.
{% endif %}
Original entries: {{ original }}
Filtered entries: {{ retained }}
Removed entries: {{ removed }} ({{ percentage }}%)
{% if verbose and excluded %}
Excluded entries:
{% for e in excluded %}  {{ e.method }} {{ e.status }} {{ e.url }}
    Reasons: {{ e.reasons }}
{% endfor %}{% if more %}  ... and {{ more }} more
{% endif %}{% endif %}{% if dry_run %}
Dry run: no output written.
{% else %}
Cleaned file saved to: {{ output }}
{% endif %}`

const markdownReport = `## HAR Cleaner run ` + "`{{ run_id }}`" + `

| | |
|---|---|
| Input | {{ input }} |
| Output | {% if dry_run %}_dry run_{% else %}{{ output }}{% endif %} |
| Format | {{ output_type }} |
| Original | {{ original }} |
| Retained | {{ retained }} |
| Removed | {{ removed }} ({{ percentage }}%) |
| Duration | {{ duration }} |
{% if filters %}
### Filters
{% for f in filters %}- {{ f }}
{% endfor %}{% endif %}{% if verbose and excluded %}
### Excluded
{% for e in excluded %}- ` + "`{{ e.method }} {{ e.status }}`" + ` {{ e.url }} ({{ e.reasons }})
{% endfor %}{% if more %}- ... and {{ more }} more
{% endif %}{% endif %}`

// Registry maps built-in report names to their template sources.
type Registry struct {
	compiler *Jinja2Compiler
	builtins map[string]string
}

// NewRegistry creates a registry with the built-in reports (text, markdown).
func NewRegistry() *Registry {
	return &Registry{
		compiler: &Jinja2Compiler{},
		builtins: map[string]string{
			"text":     textReport,
			"markdown": markdownReport,
		},
	}
}

// Builtin compiles a built-in report by name.
func (r *Registry) Builtin(name string) (*ReportRenderer, error) {
	source, ok := r.builtins[strings.ToLower(name)]
	if !ok {
		return nil, fmt.Errorf("unknown report template: %q (supported: %s)", name, strings.Join(r.Names(), ", "))
	}
	return r.compiler.Compile(name, source)
}

// Compile compiles a user-supplied report template.
func (r *Registry) Compile(name, source string) (*ReportRenderer, error) {
	return r.compiler.Compile(name, source)
}

// Names returns the built-in report names, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.builtins))
	for n := range r.builtins {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
