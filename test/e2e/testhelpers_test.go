//go:build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/sophialabs/harcleaner/internal/infrastructure/wiring"
	"github.com/sophialabs/harcleaner/internal/testutil"
)

func projectRoot() string {
	_, file, _, _ := runtime.Caller(0)
	// file = <root>/test/e2e/testhelpers_test.go, go up 2 levels
	return filepath.Join(filepath.Dir(file), "..", "..")
}

func loadSession(t *testing.T) json.RawMessage {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(projectRoot(), "test", "e2e", "testdata", "session.har"))
	if err != nil {
		t.Fatalf("failed to read session capture: %v", err)
	}
	return data
}

func setupE2EServer(t *testing.T) *httptest.Server {
	t.Helper()

	c, err := wiring.New(wiring.Params{
		Logger:         &testutil.NoopLogger{},
		HistorySize:    50,
		ChainCacheSize: 8,
		Server:         true,
		RateLimit:      100,
		RateBurst:      100,
		RateLimiterTTL: time.Minute,
	})
	if err != nil {
		t.Fatalf("failed to wire container: %v", err)
	}
	t.Cleanup(c.Close)

	ts := httptest.NewServer(c.Server())
	t.Cleanup(ts.Close)
	return ts
}

func postClean(t *testing.T, ts *httptest.Server, body map[string]any) (*http.Response, map[string]any) {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("failed to encode request: %v", err)
	}
	resp, err := http.Post(ts.URL+"/v1/clean", "application/json", bytes.NewReader(payload))
	if err != nil {
		t.Fatalf("POST /v1/clean failed: %v", err)
	}
	defer resp.Body.Close()

	raw, _ := io.ReadAll(resp.Body)
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("response is not JSON: %v\n%s", err, raw)
	}
	return resp, out
}

func outputEntries(t *testing.T, out map[string]any) []any {
	t.Helper()
	doc, ok := out["output"].(map[string]any)
	if !ok {
		t.Fatalf("output is not a capture document: %v", out["output"])
	}
	log, _ := doc["log"].(map[string]any)
	entries, _ := log["entries"].([]any)
	return entries
}
