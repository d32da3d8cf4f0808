package history

import "sync"

// RingBuffer is a concurrent-safe fixed-size ring buffer of runs.
type RingBuffer struct {
	mu    sync.RWMutex
	runs  []Run
	size  int
	head  int
	count int
}

// NewRingBuffer creates a ring buffer that holds up to size runs.
func NewRingBuffer(size int) *RingBuffer {
	if size <= 0 {
		size = 100
	}
	return &RingBuffer{
		runs: make([]Run, size),
		size: size,
	}
}

// Add records a run, overwriting the oldest when full.
func (rb *RingBuffer) Add(r Run) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.runs[rb.head] = r
	rb.head = (rb.head + 1) % rb.size
	if rb.count < rb.size {
		rb.count++
	}
}

// Recent returns up to n runs, newest first. n <= 0 returns every stored run.
func (rb *RingBuffer) Recent(n int) []Run {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if n <= 0 || n > rb.count {
		n = rb.count
	}
	result := make([]Run, n)
	for i := 0; i < n; i++ {
		result[i] = rb.runs[(rb.head-1-i+rb.size)%rb.size]
	}
	return result
}

// Find returns the stored run with the given ID.
func (rb *RingBuffer) Find(id string) (Run, bool) {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	for i := 0; i < rb.count; i++ {
		r := rb.runs[(rb.head-1-i+rb.size)%rb.size]
		if r.ID == id {
			return r, true
		}
	}
	return Run{}, false
}

// Count returns the number of runs currently stored.
func (rb *RingBuffer) Count() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()
	return rb.count
}
