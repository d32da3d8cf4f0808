package usecases_test

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/sophialabs/harcleaner/internal/domain/filter"
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/history"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
	"github.com/sophialabs/harcleaner/internal/infrastructure/services"
	"github.com/sophialabs/harcleaner/internal/infrastructure/usecases"
	"github.com/sophialabs/harcleaner/internal/testutil"
)

type mockLoader struct {
	files map[string]*har.File
}

func (l *mockLoader) Load(_ context.Context, path string) (*har.File, error) {
	f, ok := l.files[path]
	if !ok {
		return nil, fmt.Errorf("%w: %s", har.ErrNotFound, path)
	}
	return f, nil
}

type mockWriter struct {
	files map[string][]byte
	err   error
}

func (w *mockWriter) WriteFile(_ context.Context, path string, data []byte) error {
	if w.err != nil {
		return w.err
	}
	w.files[path] = data
	return nil
}

type fixture struct {
	uc     *usecases.CleanCaptureUseCase
	writer *mockWriter
	runs   *history.RingBuffer
	logger *testutil.RecordingLogger
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	capture := testutil.NewFile(
		testutil.NewEntry("GET", "https://example.com/api/users"),
		testutil.NewEntry("GET", "https://example.com/static/app.css"),
		testutil.NewEntry("POST", "https://example.com/api/login"),
	)
	loader := &mockLoader{files: map[string]*har.File{"in.har": capture}}
	writer := &mockWriter{files: map[string][]byte{}}
	runs := history.NewRingBuffer(10)
	logger := &testutil.RecordingLogger{}
	chains := services.NewChainCache(services.NewCompiler(nil), 8)
	clk := &testutil.FixedClock{T: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)}

	uc := usecases.NewCleanCaptureUseCase(loader, writer, chains, runs, clk, logger)
	n := 0
	uc.SetIDGenerator(func() string {
		n++
		return fmt.Sprintf("run-%d", n)
	})
	return &fixture{uc: uc, writer: writer, runs: runs, logger: logger}
}

func apiProfile() *profile.Profile {
	return &profile.Profile{URLs: profile.IncludeExclude{Include: []string{"api"}}}
}

func TestCleanCapture_WritesHAR(t *testing.T) {
	fx := newFixture(t)

	res, err := fx.uc.Execute(context.Background(), usecases.CleanRequest{
		Input: "in.har", Output: "out.har", Format: "HAR", Profile: apiProfile(),
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if res.RunID != "run-1" || res.Format != services.FormatHAR {
		t.Errorf("unexpected result: %+v", res)
	}
	if res.Report.OriginalCount != 3 || res.Report.RetainedCount != 2 {
		t.Errorf("report = %+v", res.Report)
	}

	var out har.File
	if err := json.Unmarshal(fx.writer.files["out.har"], &out); err != nil {
		t.Fatalf("output is not a capture: %v", err)
	}
	if len(out.Log.Entries) != 2 {
		t.Errorf("expected 2 written entries, got %d", len(out.Log.Entries))
	}

	runs := fx.runs.Recent(0)
	if len(runs) != 1 || runs[0].RetainedCount != 2 || runs[0].RemovedCount != 1 || runs[0].Failed() {
		t.Errorf("unexpected history: %+v", runs)
	}
}

func TestCleanCapture_MLIngest(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.uc.Execute(context.Background(), usecases.CleanRequest{
		Input: "in.har", Output: "out.json", Format: "ml-ingest",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	var records []map[string]any
	if err := json.Unmarshal(fx.writer.files["out.json"], &records); err != nil {
		t.Fatalf("output is not a record array: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("expected 3 records, got %d", len(records))
	}
}

func TestCleanCapture_DryRun(t *testing.T) {
	fx := newFixture(t)

	res, err := fx.uc.Execute(context.Background(), usecases.CleanRequest{
		Input: "in.har", DryRun: true, Profile: apiProfile(), Verbose: true,
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if len(fx.writer.files) != 0 {
		t.Error("dry run must not write output")
	}
	if len(res.Report.ExcludedEntries) != 1 {
		t.Fatalf("expected one excluded entry, got %+v", res.Report.ExcludedEntries)
	}
	if reasons := res.Report.ExcludedEntries[0].Reasons; len(reasons) != 1 || reasons[0] != filter.NameURL {
		t.Errorf("reasons = %v", reasons)
	}
}

func TestCleanCapture_NoFiltersWarns(t *testing.T) {
	fx := newFixture(t)

	res, err := fx.uc.Execute(context.Background(), usecases.CleanRequest{Input: "in.har", Output: "out.har"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Report.RetainedCount != 3 {
		t.Errorf("expected identity, got %+v", res.Report)
	}
	if len(fx.logger.Warns) != 1 {
		t.Errorf("expected a no-filter warning, got %v", fx.logger.Warns)
	}
}

func TestCleanCapture_Errors(t *testing.T) {
	diskFull := errors.New("disk full")
	tests := []struct {
		name    string
		req     usecases.CleanRequest
		prepare func(fx *fixture)
		wantErr error
	}{
		{
			name:    "missing input",
			req:     usecases.CleanRequest{Input: "nope.har", Output: "out.har"},
			wantErr: har.ErrNotFound,
		},
		{
			name:    "bad format",
			req:     usecases.CleanRequest{Input: "in.har", Output: "out.csv", Format: "csv"},
			wantErr: services.ErrUnsupportedFormat,
		},
		{
			name:    "missing output",
			req:     usecases.CleanRequest{Input: "in.har"},
			wantErr: usecases.ErrMissingOutput,
		},
		{
			name: "invalid profile",
			req: usecases.CleanRequest{Input: "in.har", Output: "out.har", Profile: &profile.Profile{
				URLs:    profile.IncludeExclude{Include: []string{"api"}},
				Content: profile.Content{MaxSize: int64Ptr(-1)},
			}},
			wantErr: profile.ErrInvalid,
		},
		{
			name:    "write failure",
			req:     usecases.CleanRequest{Input: "in.har", Output: "out.har"},
			prepare: func(fx *fixture) { fx.writer.err = diskFull },
			wantErr: diskFull,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			if tt.prepare != nil {
				tt.prepare(fx)
			}

			_, err := fx.uc.Execute(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			runs := fx.runs.Recent(0)
			if len(runs) != 1 || !runs[0].Failed() {
				t.Errorf("expected one failed run in history, got %+v", runs)
			}
		})
	}
}

func TestCleanCapture_ExecuteDocument(t *testing.T) {
	fx := newFixture(t)
	f := testutil.NewFile(
		testutil.NewEntry("GET", "https://example.com/api/a"),
		testutil.NewEntry("GET", "https://example.com/b"),
	)

	res, err := fx.uc.ExecuteDocument(context.Background(), f, usecases.CleanRequest{
		Profile: apiProfile(), Source: history.SourceHTTP,
	})
	if err != nil {
		t.Fatalf("ExecuteDocument failed: %v", err)
	}

	var out har.File
	if err := json.Unmarshal(res.Data, &out); err != nil {
		t.Fatalf("output is not a capture: %v", err)
	}
	if len(out.Log.Entries) != 1 {
		t.Errorf("expected 1 entry, got %d", len(out.Log.Entries))
	}
	if len(fx.writer.files) != 0 {
		t.Error("in-memory run must not write files")
	}
	if runs := fx.runs.Recent(1); len(runs) != 1 || runs[0].Source != history.SourceHTTP {
		t.Errorf("unexpected history: %+v", runs)
	}
}

func int64Ptr(v int64) *int64 { return &v }
