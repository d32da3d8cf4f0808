package app

import (
	"fmt"
	"os"

	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/template"
)

// loadReport resolves a built-in report name or compiles a template file.
func loadReport(reports *template.Registry, nameOrPath string) (*template.ReportRenderer, error) {
	if nameOrPath == "" {
		nameOrPath = "text"
	}
	if r, err := reports.Builtin(nameOrPath); err == nil {
		return r, nil
	}

	source, err := os.ReadFile(nameOrPath)
	if err != nil {
		return nil, fmt.Errorf("report template %q is neither built in (%v) nor a readable file: %w", nameOrPath, reports.Names(), err)
	}
	return reports.Compile(nameOrPath, string(source))
}
