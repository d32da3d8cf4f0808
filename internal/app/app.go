package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/sophialabs/harcleaner/internal/domain/history"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/filesystem"
	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/logging"
	"github.com/sophialabs/harcleaner/internal/infrastructure/outbound/template"
	"github.com/sophialabs/harcleaner/internal/infrastructure/usecases"
	"github.com/sophialabs/harcleaner/internal/infrastructure/wiring"
)

// App is the thin lifecycle manager that delegates dependency construction to wiring.Container.
type App struct {
	cfg       Config
	container *wiring.Container
	report    *template.ReportRenderer
	out       io.Writer
}

// Option customizes an App.
type Option func(*options)

type options struct {
	out       io.Writer
	logOutput io.Writer
	server    bool
}

// WithOutput sets where reports are printed. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(o *options) { o.out = w }
}

// WithLogOutput sets where logs are written. Defaults to stderr.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) { o.logOutput = w }
}

// WithServer enables the HTTP service components.
func WithServer() Option {
	return func(o *options) { o.server = true }
}

// New constructs the application: it creates the logger, wires the
// infrastructure through the container and compiles the report template.
func New(cfg Config, opts ...Option) (*App, error) {
	o := options{out: os.Stdout, logOutput: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	logger, err := logging.NewFromConfig(o.logOutput, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to configure logging: %w", err)
	}

	var registry *prometheus.Registry
	if o.server {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	container, err := wiring.New(wiring.Params{
		Logger:         logger,
		HistorySize:    cfg.HistorySize,
		ChainCacheSize: cfg.ChainCacheSize,
		Server:         o.server,
		RateLimit:      cfg.RateLimit,
		RateBurst:      cfg.RateBurst,
		RateLimiterTTL: cfg.RateLimiterTTL,
		MaxBodySize:    cfg.MaxBodySize,
		Registry:       registry,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to wire infrastructure: %w", err)
	}

	report, err := loadReport(container.Reports(), cfg.ReportTemplate)
	if err != nil {
		container.Close()
		return nil, err
	}

	return &App{
		cfg:       cfg,
		container: container,
		report:    report,
		out:       o.out,
	}, nil
}

// Close releases the container resources.
func (a *App) Close() {
	a.container.Close()
}

// Clean performs a single load, clean and export cycle and prints the report.
func (a *App) Clean(ctx context.Context) error {
	return a.clean(ctx, history.SourceCLI)
}

func (a *App) clean(ctx context.Context, source string) error {
	p, err := a.resolveProfile(ctx)
	if err != nil {
		return err
	}

	res, err := a.container.CleanUseCase().Execute(ctx, usecases.CleanRequest{
		Input:   a.cfg.Input,
		Output:  a.cfg.Output,
		Format:  a.cfg.OutputType,
		Profile: p,
		Verbose: a.cfg.Verbose,
		DryRun:  a.cfg.DryRun,
		Source:  source,
	})
	if err != nil {
		return err
	}

	text, err := a.report.Render(template.ReportView{
		RunID:      res.RunID,
		Input:      a.cfg.Input,
		Output:     a.cfg.Output,
		OutputType: res.Format,
		DryRun:     a.cfg.DryRun,
		Verbose:    a.cfg.Verbose,
		Filters:    res.Filters,
		Report:     res.Report,
		Duration:   res.Duration,
	})
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err = io.WriteString(a.out, text)
	return err
}

// resolveProfile loads the profile file, if configured, and merges the
// command-line settings over it.
func (a *App) resolveProfile(ctx context.Context) (*profile.Profile, error) {
	if a.cfg.ProfileFile == "" {
		p := a.cfg.Profile
		return &p, nil
	}
	base, err := a.container.Profiles().Load(ctx, a.cfg.ProfileFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	merged := profile.Merge(*base, a.cfg.Profile)
	return &merged, nil
}

// Run cleans once and, in watch mode, keeps re-cleaning whenever the input or
// profile file changes until SIGINT/SIGTERM or context cancellation.
func (a *App) Run(ctx context.Context) error {
	defer a.container.Close()

	if err := a.cfg.ValidateClean(); err != nil {
		return err
	}
	if err := a.Clean(ctx); err != nil {
		return err
	}
	if !a.cfg.Watch {
		return nil
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := a.container.Logger()
	paths := []string{a.cfg.Input}
	if a.cfg.ProfileFile != "" {
		paths = append(paths, a.cfg.ProfileFile)
	}

	watcher, err := filesystem.NewWatcher(paths, a.cfg.WatcherDebounce, logger, func() {
		if err := a.clean(ctx, history.SourceWatch); err != nil {
			logger.Error("re-clean failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	watcher.Start()
	defer watcher.Stop()

	logger.Info("watching for changes", "files", paths)
	<-ctx.Done()
	logger.Info("watch stopped")
	return nil
}

// Serve runs the HTTP cleaning service and handles graceful shutdown on
// SIGINT/SIGTERM or context cancellation.
func (a *App) Serve(ctx context.Context) error {
	defer a.container.Close()

	handler := a.container.Server()
	if handler == nil {
		return errors.New("server components are not enabled")
	}

	logger := a.container.Logger()
	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.Port),
		Handler:      handler,
		ReadTimeout:  a.cfg.ReadTimeout,
		WriteTimeout: a.cfg.WriteTimeout,
		IdleTimeout:  a.cfg.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("starting harcleaner service", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		logger.Info("shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("server stopped")
	return nil
}
