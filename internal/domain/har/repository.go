package har

import (
	"context"
	"errors"
)

var (
	// ErrNotFound indicates the capture file does not exist.
	ErrNotFound = errors.New("capture not found")

	// ErrMalformed indicates the capture is not valid JSON or lacks the log section.
	ErrMalformed = errors.New("malformed capture")
)

// Loader is the port for reading captures.
type Loader interface {
	// Load reads and decodes the capture at path.
	// Returns an error wrapping ErrNotFound or ErrMalformed on input problems.
	Load(ctx context.Context, path string) (*File, error)
}

// Exporter is the port for writing cleaned captures in some output format.
type Exporter interface {
	// Export serializes f to path, creating intermediate directories.
	Export(ctx context.Context, f *File, path string) error
}
