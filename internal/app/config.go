package app

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/sophialabs/harcleaner/internal/domain/profile"
	"github.com/sophialabs/harcleaner/internal/infrastructure/services"
)

// Config holds all configurable parameters for the application.
type Config struct {
	Input       string
	Output      string
	OutputType  string
	ProfileFile string

	// Profile holds filter settings given on the command line. They are
	// merged over the profile file, if any.
	Profile profile.Profile

	Verbose        bool
	DryRun         bool
	Watch          bool
	ReportTemplate string // built-in report name or template file path

	LogLevel  string
	LogFormat string

	WatcherDebounce time.Duration

	Port            int
	HistorySize     int
	ChainCacheSize  int
	RateLimit       float64
	RateBurst       int
	RateLimiterTTL  time.Duration
	MaxBodySize     int64
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

// DefaultConfig returns a Config with sensible production defaults.
func DefaultConfig() Config {
	return Config{
		OutputType:     services.FormatHAR,
		ReportTemplate: "text",
		LogLevel:       "info",
		LogFormat:      "text",

		WatcherDebounce: 500 * time.Millisecond,

		Port:            8080,
		HistorySize:     200,
		ChainCacheSize:  64,
		RateLimit:       5,
		RateBurst:       10,
		RateLimiterTTL:  10 * time.Minute,
		MaxBodySize:     32 << 20,
		ReadTimeout:     30 * time.Second,
		WriteTimeout:    60 * time.Second,
		IdleTimeout:     60 * time.Second,
		ShutdownTimeout: 10 * time.Second,
	}
}

// ValidateClean checks the settings a cleaning run needs.
func (c Config) ValidateClean() error {
	if c.Input == "" {
		return errors.New("input file is required")
	}
	if c.Output == "" && !c.DryRun {
		return errors.New("output file is required unless -dry-run is set")
	}
	if _, err := services.NormalizeFormat(c.OutputType); err != nil {
		return err
	}
	if c.Watch && c.Output != "" && samePath(c.Input, c.Output) {
		return errors.New("watch mode needs an output path different from the input")
	}
	if err := c.Profile.Validate(); err != nil {
		return fmt.Errorf("invalid filter options: %w", err)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return a == b
	}
	return absA == absB
}
