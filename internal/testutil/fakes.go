package testutil

import (
	"context"
	"time"

	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/infrastructure/ports"
)

var _ ports.Logger = (*NoopLogger)(nil)

// NoopLogger discards all log output.
type NoopLogger struct{}

func (l *NoopLogger) Info(string, ...any)  {}
func (l *NoopLogger) Warn(string, ...any)  {}
func (l *NoopLogger) Error(string, ...any) {}
func (l *NoopLogger) Debug(string, ...any) {}

var _ ports.Logger = (*RecordingLogger)(nil)

// RecordingLogger keeps the messages logged at each level.
type RecordingLogger struct {
	Infos  []string
	Warns  []string
	Errors []string
}

func (l *RecordingLogger) Info(msg string, _ ...any)  { l.Infos = append(l.Infos, msg) }
func (l *RecordingLogger) Warn(msg string, _ ...any)  { l.Warns = append(l.Warns, msg) }
func (l *RecordingLogger) Error(msg string, _ ...any) { l.Errors = append(l.Errors, msg) }
func (l *RecordingLogger) Debug(string, ...any)       {}

var _ ports.Clock = (*FixedClock)(nil)

// FixedClock always returns T.
type FixedClock struct {
	T time.Time
}

func (c *FixedClock) Now() time.Time { return c.T }

var _ ports.RateLimiter = (*StubRateLimiter)(nil)

// StubRateLimiter returns a configurable Allow result.
type StubRateLimiter struct {
	AllowAll bool
}

func (r *StubRateLimiter) Allow(context.Context, string) bool {
	return r.AllowAll
}

// NewEntry builds a minimal entry with a 200 response.
func NewEntry(method, url string) *har.Entry {
	return &har.Entry{
		StartedDateTime: time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC),
		Time:            42,
		Request: har.Request{
			Method:      method,
			URL:         url,
			HTTPVersion: "HTTP/1.1",
			Headers:     []har.NameValue{},
			QueryString: []har.NameValue{},
			Cookies:     []har.Cookie{},
			HeadersSize: -1,
			BodySize:    0,
		},
		Response: har.Response{
			Status:      200,
			StatusText:  "OK",
			HTTPVersion: "HTTP/1.1",
			Headers:     []har.NameValue{},
			Cookies:     []har.Cookie{},
			Content:     har.Content{MimeType: "text/html"},
		},
		Timings: har.Timings{Send: 1, Wait: 30, Receive: 11},
	}
}

// NewFile wraps entries in a HAR 1.2 document.
func NewFile(entries ...*har.Entry) *har.File {
	return &har.File{
		Log: har.Log{
			Version: "1.2",
			Creator: har.Creator{Name: "test", Version: "1.0"},
			Entries: entries,
		},
	}
}
