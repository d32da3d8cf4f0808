package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/sophialabs/harcleaner/internal/app"
)

func main() {
	cfg := app.DefaultConfig()
	flag.IntVar(&cfg.Port, "port", cfg.Port, "HTTP server port")
	flag.IntVar(&cfg.HistorySize, "history-size", cfg.HistorySize, "number of run summaries to keep")
	flag.IntVar(&cfg.ChainCacheSize, "chain-cache-size", cfg.ChainCacheSize, "number of compiled filter chains to cache")
	flag.Float64Var(&cfg.RateLimit, "rate-limit", cfg.RateLimit, "clean requests per second allowed per client")
	flag.IntVar(&cfg.RateBurst, "rate-burst", cfg.RateBurst, "burst of clean requests allowed per client")
	flag.Int64Var(&cfg.MaxBodySize, "max-body-size", cfg.MaxBodySize, "maximum request body size in bytes")
	flag.DurationVar(&cfg.ShutdownTimeout, "shutdown-timeout", cfg.ShutdownTimeout, "graceful shutdown timeout")
	flag.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format (text, json)")
	flag.Parse()

	a, err := app.New(cfg, app.WithServer())
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := a.Serve(context.Background()); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
