// Package history keeps summaries of recent cleaning runs.
package history

import "time"

// Run sources.
const (
	SourceCLI   = "cli"
	SourceHTTP  = "http"
	SourceWatch = "watch"
)

// Run summarizes one load, clean and export cycle.
type Run struct {
	ID            string        `json:"run_id"`
	Timestamp     time.Time     `json:"timestamp"`
	Source        string        `json:"source"`
	Input         string        `json:"input,omitempty"`
	Output        string        `json:"output,omitempty"`
	Format        string        `json:"format"`
	DryRun        bool          `json:"dry_run,omitempty"`
	Filters       []string      `json:"filters"`
	OriginalCount int           `json:"original_count"`
	RetainedCount int           `json:"retained_count"`
	RemovedCount  int           `json:"removed_count"`
	Duration      time.Duration `json:"duration_ns"`
	Error         string        `json:"error,omitempty"`
}

// Failed reports whether the run ended with an error.
func (r Run) Failed() bool {
	return r.Error != ""
}
