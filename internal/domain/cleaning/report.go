package cleaning

// Report summarizes one cleaning run.
type Report struct {
	OriginalCount   int             `json:"original_count"`
	RetainedCount   int             `json:"retained_count"`
	ExcludedEntries []ExcludedEntry `json:"excluded_entries,omitempty"`
}

// ExcludedEntry identifies a dropped entry by its values at exclusion time.
type ExcludedEntry struct {
	URL     string   `json:"url"`
	Method  string   `json:"method"`
	Status  int      `json:"status"`
	Reasons []string `json:"reasons"`
}

// RemovedCount returns the number of entries that did not survive.
func (r Report) RemovedCount() int {
	return r.OriginalCount - r.RetainedCount
}

// RemovalPercentage returns the removed share in percent, or 0 for an empty input.
func (r Report) RemovalPercentage() float64 {
	if r.OriginalCount == 0 {
		return 0
	}
	return float64(r.RemovedCount()) / float64(r.OriginalCount) * 100
}
