package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sophialabs/harcleaner/internal/domain/cleaning"
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/history"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
	"github.com/sophialabs/harcleaner/internal/infrastructure/ports"
	"github.com/sophialabs/harcleaner/internal/infrastructure/services"
)

// ErrMissingOutput indicates a run that would write output but has no output path.
var ErrMissingOutput = errors.New("output path is required unless dry run is set")

// CleanRequest describes one cleaning run.
type CleanRequest struct {
	Input   string
	Output  string
	Format  string
	Profile *profile.Profile
	Verbose bool
	DryRun  bool
	Source  string
}

// CleanResult is the outcome of a cleaning run.
type CleanResult struct {
	RunID    string
	Format   string
	Filters  []string
	Report   cleaning.Report
	Duration time.Duration

	// Data holds the encoded output for in-memory runs.
	Data []byte
}

// CleanCaptureUseCase loads a capture, runs the compiled filter chain over it,
// exports the result and records the run.
type CleanCaptureUseCase struct {
	loader har.Loader
	writer ports.FileWriter
	chains *services.ChainCache
	runs   *history.RingBuffer
	clock  ports.Clock
	logger ports.Logger
	newID  func() string
}

// NewCleanCaptureUseCase creates a new use case.
func NewCleanCaptureUseCase(
	loader har.Loader,
	writer ports.FileWriter,
	chains *services.ChainCache,
	runs *history.RingBuffer,
	clock ports.Clock,
	logger ports.Logger,
) *CleanCaptureUseCase {
	return &CleanCaptureUseCase{
		loader: loader,
		writer: writer,
		chains: chains,
		runs:   runs,
		clock:  clock,
		logger: logger,
		newID:  uuid.NewString,
	}
}

// SetIDGenerator replaces the run ID generator.
func (uc *CleanCaptureUseCase) SetIDGenerator(fn func() string) {
	uc.newID = fn
}

// Execute cleans the capture at req.Input and writes it to req.Output
// unless req.DryRun is set.
func (uc *CleanCaptureUseCase) Execute(ctx context.Context, req CleanRequest) (*CleanResult, error) {
	start := uc.clock.Now()
	run := uc.newRun(req, start)

	res, err := uc.execute(ctx, req, run.ID)
	uc.finish(&run, res, err, start)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *CleanCaptureUseCase) execute(ctx context.Context, req CleanRequest, runID string) (*CleanResult, error) {
	if !req.DryRun && req.Output == "" {
		return nil, ErrMissingOutput
	}
	encoder, format, err := uc.encoder(req.Format)
	if err != nil {
		return nil, err
	}

	f, err := uc.loader.Load(ctx, req.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to load capture: %w", err)
	}
	uc.logger.Info("loaded capture", "run_id", runID, "input", req.Input, "entries", len(f.Log.Entries))

	cleaned, res, err := uc.clean(f, req, runID)
	if err != nil {
		return nil, err
	}
	res.Format = format

	if req.DryRun {
		uc.logger.Info("dry run, output not written", "run_id", runID)
		return res, nil
	}

	if err := services.NewExporter(encoder, uc.writer).Export(ctx, cleaned, req.Output); err != nil {
		return nil, fmt.Errorf("failed to export capture: %w", err)
	}
	uc.logger.Info("cleaned capture saved", "run_id", runID, "output", req.Output, "format", format)
	return res, nil
}

// ExecuteDocument cleans an already decoded capture and returns the encoded
// output in CleanResult.Data. Nothing is written to disk.
func (uc *CleanCaptureUseCase) ExecuteDocument(_ context.Context, f *har.File, req CleanRequest) (*CleanResult, error) {
	start := uc.clock.Now()
	run := uc.newRun(req, start)

	res, err := func() (*CleanResult, error) {
		encoder, format, err := uc.encoder(req.Format)
		if err != nil {
			return nil, err
		}
		cleaned, res, err := uc.clean(f, req, run.ID)
		if err != nil {
			return nil, err
		}
		res.Format = format
		if req.DryRun {
			return res, nil
		}
		data, err := encoder.Encode(cleaned)
		if err != nil {
			return nil, err
		}
		res.Data = data
		return res, nil
	}()

	uc.finish(&run, res, err, start)
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (uc *CleanCaptureUseCase) encoder(format string) (services.Encoder, string, error) {
	normalized, err := services.NormalizeFormat(format)
	if err != nil {
		return nil, "", err
	}
	enc, err := services.NewEncoder(normalized, uc.logger)
	if err != nil {
		return nil, "", err
	}
	return enc, normalized, nil
}

func (uc *CleanCaptureUseCase) clean(f *har.File, req CleanRequest, runID string) (*har.File, *CleanResult, error) {
	p := req.Profile
	if p == nil {
		p = &profile.Profile{}
	}

	cleaner, err := uc.chains.Get(p)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile filters: %w", err)
	}
	if len(cleaner.Filters()) == 0 {
		uc.logger.Warn("no filters specified, output will be identical to input", "run_id", runID)
	}

	cleaned, report := cleaner.CleanFile(f, req.Verbose)
	uc.logger.Info("capture cleaned",
		"run_id", runID,
		"original", report.OriginalCount,
		"retained", report.RetainedCount,
		"removed", report.RemovedCount(),
		"percentage", fmt.Sprintf("%.1f", report.RemovalPercentage()),
	)

	return cleaned, &CleanResult{
		RunID:   runID,
		Filters: services.Describe(p),
		Report:  report,
	}, nil
}

func (uc *CleanCaptureUseCase) newRun(req CleanRequest, start time.Time) history.Run {
	source := req.Source
	if source == "" {
		source = history.SourceCLI
	}
	return history.Run{
		ID:        uc.newID(),
		Timestamp: start,
		Source:    source,
		Input:     req.Input,
		Output:    req.Output,
		Format:    req.Format,
		DryRun:    req.DryRun,
	}
}

func (uc *CleanCaptureUseCase) finish(run *history.Run, res *CleanResult, err error, start time.Time) {
	duration := uc.clock.Now().Sub(start)
	run.Duration = duration
	if err != nil {
		run.Error = err.Error()
	} else {
		res.Duration = duration
		run.Format = res.Format
		run.Filters = res.Filters
		run.OriginalCount = res.Report.OriginalCount
		run.RetainedCount = res.Report.RetainedCount
		run.RemovedCount = res.Report.RemovedCount()
	}
	if uc.runs != nil {
		uc.runs.Add(*run)
	}
}
