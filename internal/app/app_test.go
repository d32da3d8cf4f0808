package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sophialabs/harcleaner/internal/app"
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
)

func newApp(t *testing.T, cfg app.Config, opts ...app.Option) (*app.App, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	opts = append([]app.Option{app.WithOutput(&out), app.WithLogOutput(io.Discard)}, opts...)
	a, err := app.New(cfg, opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	t.Cleanup(a.Close)
	return a, &out
}

func TestNew_InvalidLogLevel(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.LogLevel = "chatty"
	if _, err := app.New(cfg, app.WithLogOutput(io.Discard)); err == nil {
		t.Error("expected error for unknown log level")
	}
}

func TestNew_UnknownReportTemplate(t *testing.T) {
	cfg := app.DefaultConfig()
	cfg.ReportTemplate = filepath.Join(t.TempDir(), "missing.j2")
	if _, err := app.New(cfg, app.WithLogOutput(io.Discard)); err == nil {
		t.Error("expected error for missing report template")
	}
}

func TestRun_CleansAndReports(t *testing.T) {
	dir := t.TempDir()
	cfg := app.DefaultConfig()
	cfg.Input = writeCapture(t, dir)
	cfg.Output = filepath.Join(dir, "out", "clean.har")
	cfg.Verbose = true
	cfg.Profile.URLs.Include = []string{"api"}
	cfg.Profile.Privacy.RemoveAuthTokens = true

	a, out := newApp(t, cfg)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, err := os.ReadFile(cfg.Output)
	if err != nil {
		t.Fatalf("output not written: %v", err)
	}
	f, err := har.Decode(data)
	if err != nil {
		t.Fatalf("output is not a capture: %v", err)
	}
	if len(f.Log.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(f.Log.Entries))
	}
	if _, ok := har.Header(f.Log.Entries[0].Request.Headers, "Authorization"); ok {
		t.Error("authorization header should be removed")
	}

	report := out.String()
	for _, want := range []string{
		"Original entries: 3",
		"Filtered entries: 2",
		"Removed entries: 1 (33.3%)",
		"Reasons: URL",
		"Cleaned file saved to: " + cfg.Output,
	} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}
}

func TestRun_DryRunWritesNothing(t *testing.T) {
	dir := t.TempDir()
	cfg := app.DefaultConfig()
	cfg.Input = writeCapture(t, dir)
	cfg.DryRun = true

	a, out := newApp(t, cfg)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	entries, _ := os.ReadDir(dir)
	if len(entries) != 1 {
		t.Errorf("dry run wrote files: %v", entries)
	}
	if !strings.Contains(out.String(), "Warning: No filters specified") {
		t.Errorf("expected no-filter warning, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "Dry run: no output written.") {
		t.Errorf("expected dry-run notice, got:\n%s", out.String())
	}
}

func TestRun_MLIngest(t *testing.T) {
	dir := t.TempDir()
	cfg := app.DefaultConfig()
	cfg.Input = writeCapture(t, dir)
	cfg.Output = filepath.Join(dir, "records.json")
	cfg.OutputType = "ML-Ingest"
	cfg.Profile.Status.Include = []int{200}

	a, _ := newApp(t, cfg)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	data, _ := os.ReadFile(cfg.Output)
	var records []map[string]any
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("output is not a record array: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("expected 2 records, got %d", len(records))
	}
}

func TestRun_ProfileFileMergedWithFlags(t *testing.T) {
	dir := t.TempDir()
	profilePath := filepath.Join(dir, "profile.yaml")
	if err := os.WriteFile(profilePath, []byte("types:\n  exclude: [js]\nstatus:\n  include: [200, 404]\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := app.DefaultConfig()
	cfg.Input = writeCapture(t, dir)
	cfg.Output = filepath.Join(dir, "out.har")
	cfg.ProfileFile = profilePath
	cfg.Profile.Status = profile.StatusCodes{Include: []int{200}}

	a, out := newApp(t, cfg)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if !strings.Contains(out.String(), "Filtered entries: 1") {
		t.Errorf("expected js excluded by the file and 404 by the flag, got:\n%s", out.String())
	}
}

func TestRun_CustomReportTemplate(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "report.j2")
	if err := os.WriteFile(tmpl, []byte("kept {{ retained }} of {{ original }} as {{ output_type }}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg := app.DefaultConfig()
	cfg.Input = writeCapture(t, dir)
	cfg.DryRun = true
	cfg.ReportTemplate = tmpl
	cfg.Profile.Methods.Include = []string{"GET"}

	a, out := newApp(t, cfg)
	if err := a.Run(context.Background()); err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if got := out.String(); got != "kept 2 of 3 as har\n" {
		t.Errorf("report = %q", got)
	}
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	badProfile := filepath.Join(dir, "bad.yaml")
	_ = os.WriteFile(badProfile, []byte("bogus: true\n"), 0o644)
	malformed := filepath.Join(dir, "malformed.har")
	_ = os.WriteFile(malformed, []byte(`{"entries": []}`), 0o644)

	tests := []struct {
		name    string
		mutate  func(c *app.Config)
		wantErr error
	}{
		{name: "missing input", mutate: func(c *app.Config) { c.Input = filepath.Join(dir, "nope.har") }, wantErr: har.ErrNotFound},
		{name: "malformed input", mutate: func(c *app.Config) { c.Input = malformed }, wantErr: har.ErrMalformed},
		{name: "bad profile", mutate: func(c *app.Config) { c.ProfileFile = badProfile }, wantErr: profile.ErrInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := app.DefaultConfig()
			cfg.Input = writeCapture(t, t.TempDir())
			cfg.Output = filepath.Join(t.TempDir(), "out.har")
			tt.mutate(&cfg)

			a, _ := newApp(t, cfg)
			if err := a.Run(context.Background()); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestRun_WatchReCleans(t *testing.T) {
	dir := t.TempDir()
	cfg := app.DefaultConfig()
	cfg.Input = writeCapture(t, dir)
	cfg.Output = filepath.Join(dir, "out", "clean.har")
	cfg.Watch = true
	cfg.WatcherDebounce = 50 * time.Millisecond
	cfg.Profile.URLs.Include = []string{"api"}

	a, _ := newApp(t, cfg)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Run(ctx) }()

	waitFor(t, 3*time.Second, func() bool {
		_, err := os.Stat(cfg.Output)
		return err == nil
	})

	single := `{"log": {"version": "1.2", "creator": {"name": "t", "version": "1"}, "entries": []}}`
	if err := os.WriteFile(cfg.Input, []byte(single), 0o644); err != nil {
		t.Fatal(err)
	}

	waitFor(t, 3*time.Second, func() bool {
		data, err := os.ReadFile(cfg.Output)
		if err != nil {
			return false
		}
		f, err := har.Decode(data)
		return err == nil && len(f.Log.Entries) == 0
	})

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Run returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after context cancellation")
	}
}

func TestServe_StartsAndShutdownsGracefully(t *testing.T) {
	port := freePort(t)
	cfg := app.DefaultConfig()
	cfg.Port = port

	a, _ := newApp(t, cfg, app.WithServer())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- a.Serve(ctx) }()

	addr := fmt.Sprintf("http://localhost:%d/healthz", port)
	waitForServer(t, addr, 3*time.Second)

	resp, err := http.Get(fmt.Sprintf("http://localhost:%d/metrics", port))
	if err != nil {
		t.Fatalf("GET /metrics failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("metrics returned %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-errCh:
		if err != nil {
			t.Fatalf("Serve returned error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after context cancellation")
	}
}

func TestServe_WithoutServerOption(t *testing.T) {
	a, _ := newApp(t, app.DefaultConfig())
	if err := a.Serve(context.Background()); err == nil {
		t.Error("expected error when server components are disabled")
	}
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("condition not met after %v", timeout)
}

func freePort(t *testing.T) int {
	t.Helper()
	l, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatalf("failed to get free port: %v", err)
	}
	port := l.Addr().(*net.TCPAddr).Port
	l.Close()
	return port
}

func waitForServer(t *testing.T, url string, timeout time.Duration) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("server not ready at %s after %v", url, timeout)
}
