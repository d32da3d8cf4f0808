package app_test

import (
	"os"
	"path/filepath"
	"testing"
)

const testCapture = `{"log": {"version": "1.2", "creator": {"name": "t", "version": "1"}, "entries": [
  {"startedDateTime": "2024-03-01T10:00:00Z", "time": 5,
   "request": {"method": "GET", "url": "https://example.com/api/users", "httpVersion": "HTTP/1.1",
     "headers": [{"name": "Authorization", "value": "Bearer secret"}], "queryString": [], "cookies": [], "headersSize": -1, "bodySize": 0},
   "response": {"status": 200, "statusText": "OK", "httpVersion": "HTTP/1.1", "headers": [], "cookies": [],
     "content": {"size": 2, "mimeType": "application/json", "text": "{}"}, "redirectURL": "", "headersSize": -1, "bodySize": 2},
   "cache": {}, "timings": {"send": 1, "wait": 3, "receive": 1}},
  {"startedDateTime": "2024-03-01T10:00:01Z", "time": 5,
   "request": {"method": "GET", "url": "https://example.com/app.js", "httpVersion": "HTTP/1.1",
     "headers": [], "queryString": [], "cookies": [], "headersSize": -1, "bodySize": 0},
   "response": {"status": 200, "statusText": "OK", "httpVersion": "HTTP/1.1", "headers": [], "cookies": [],
     "content": {"size": 10, "mimeType": "application/javascript"}, "redirectURL": "", "headersSize": -1, "bodySize": 10},
   "cache": {}, "timings": {"send": 1, "wait": 3, "receive": 1}},
  {"startedDateTime": "2024-03-01T10:00:02Z", "time": 5,
   "request": {"method": "POST", "url": "https://example.com/api/login", "httpVersion": "HTTP/1.1",
     "headers": [], "queryString": [], "cookies": [], "headersSize": -1, "bodySize": 0},
   "response": {"status": 404, "statusText": "Not Found", "httpVersion": "HTTP/1.1", "headers": [], "cookies": [],
     "content": {"size": 0, "mimeType": "text/html"}, "redirectURL": "", "headersSize": -1, "bodySize": 0},
   "cache": {}, "timings": {"send": 1, "wait": 3, "receive": 1}}
]}}`

func writeCapture(t *testing.T, dir string) string {
	t.Helper()
	path := filepath.Join(dir, "capture.har")
	if err := os.WriteFile(path, []byte(testCapture), 0o644); err != nil {
		t.Fatalf("failed to write capture: %v", err)
	}
	return path
}
