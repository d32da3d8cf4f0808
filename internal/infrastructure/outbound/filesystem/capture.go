package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/infrastructure/ports"
)

var (
	_ har.Loader       = (*CaptureRepository)(nil)
	_ ports.FileWriter = (*CaptureRepository)(nil)
)

// CaptureRepository reads captures from disk and writes cleaned output.
type CaptureRepository struct{}

// NewCaptureRepository creates a capture repository.
func NewCaptureRepository() *CaptureRepository {
	return &CaptureRepository{}
}

// Load reads and decodes the capture at path.
func (r *CaptureRepository) Load(_ context.Context, path string) (*har.File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", har.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to read capture %s: %w", path, err)
	}
	f, err := har.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// WriteFile writes data to path atomically, creating parent directories.
func (r *CaptureRepository) WriteFile(_ context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	return atomicWriteFile(path, data)
}

// atomicWriteFile writes content to a temp file in the target directory then renames it.
func atomicWriteFile(target string, content []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(target), ".harcleaner-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to set file mode: %w", err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}
