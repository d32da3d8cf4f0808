// Package cleaning runs an ordered filter chain over capture entries.
package cleaning

import (
	"github.com/sophialabs/harcleaner/internal/domain/filter"
	"github.com/sophialabs/harcleaner/internal/domain/har"
)

// Result holds the retained entries, in input order, and the run report.
type Result struct {
	Entries []*har.Entry
	Report  Report
}

// Cleaner applies a fixed filter chain. It holds no per-run state and is safe
// for concurrent use when its filters are.
type Cleaner struct {
	filters []filter.Filter
}

// NewCleaner creates a cleaner running filters in the given order.
func NewCleaner(filters ...filter.Filter) *Cleaner {
	return &Cleaner{filters: filters}
}

// Filters returns the chain in evaluation order.
func (c *Cleaner) Filters() []filter.Filter {
	return c.filters
}

// Clean runs every filter on every entry. An entry is retained when all filters
// keep it; every filter runs even after one has excluded the entry, and
// mutations are never rolled back. Excluded entries are listed in the report
// only when verbose is set.
func (c *Cleaner) Clean(entries []*har.Entry, verbose bool) Result {
	retained := make([]*har.Entry, 0, len(entries))
	var excluded []ExcludedEntry

	for _, e := range entries {
		keep := true
		var reasons []string
		for _, f := range c.filters {
			if !f.Evaluate(e) {
				keep = false
				if verbose {
					reasons = append(reasons, f.Name())
				}
			}
		}

		if keep {
			retained = append(retained, e)
			continue
		}
		if verbose {
			excluded = append(excluded, ExcludedEntry{
				URL:     e.Request.URL,
				Method:  e.Request.Method,
				Status:  e.Response.Status,
				Reasons: reasons,
			})
		}
	}

	return Result{
		Entries: retained,
		Report: Report{
			OriginalCount:   len(entries),
			RetainedCount:   len(retained),
			ExcludedEntries: excluded,
		},
	}
}

// CleanFile cleans the entries of f and returns a new document that shares
// f's top-level metadata and holds only the retained entries.
func (c *Cleaner) CleanFile(f *har.File, verbose bool) (*har.File, Report) {
	res := c.Clean(f.Log.Entries, verbose)

	out := &har.File{Log: f.Log}
	out.Log.Entries = res.Entries
	return out, res.Report
}

// Clean is a convenience for a one-off run of filters over entries.
func Clean(entries []*har.Entry, filters []filter.Filter, verbose bool) Result {
	return NewCleaner(filters...).Clean(entries, verbose)
}
