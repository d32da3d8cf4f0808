package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sophialabs/harcleaner/internal/app"
)

func main() {
	cfg, err := parseFlags(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fail(err)
	}

	a, err := app.New(cfg)
	if err != nil {
		fail(fmt.Errorf("failed to initialize: %w", err))
	}

	if err := a.Run(context.Background()); err != nil {
		fail(err)
	}
}

func fail(err error) {
	_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
