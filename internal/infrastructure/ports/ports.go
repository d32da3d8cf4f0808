package ports

import (
	"context"
	"time"
)

// Clock provides the current time (for testing).
type Clock interface {
	Now() time.Time
}

// Logger provides structured logging.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
}

// RateLimiter checks whether a caller is within its request budget.
type RateLimiter interface {
	// Allow reports whether one more request identified by key may proceed.
	Allow(ctx context.Context, key string) bool
}

// FileWriter persists encoded output.
type FileWriter interface {
	// WriteFile writes data to path, creating parent directories as needed.
	WriteFile(ctx context.Context, path string, data []byte) error
}
