// Package classify derives flat ML records and request-type labels from entries.
package classify

import (
	"errors"
	"net/url"
	"strings"
	"unicode/utf8"

	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

// MaxBodyLength is the number of characters kept from a body before truncation.
const MaxBodyLength = 10000

// TruncationMarker is appended to truncated bodies.
const TruncationMarker = "... [truncated]"

// ErrNilEntry is returned when asked to classify a missing entry.
var ErrNilEntry = errors.New("nil entry")

var (
	isCookieOrAuth = match.EqualsAnyFold("cookie", "authorization")
	isAuthHeader   = match.EqualsAnyFold("authorization", "x-api-key", "x-auth-token")
	hasAuthValue   = match.ContainsAnyFold("bearer", "token")
)

// Classify flattens e into a Record. Unparsable URLs leave Domain and Path empty.
func Classify(e *har.Entry) (Record, error) {
	if e == nil {
		return Record{}, ErrNilEntry
	}

	req, resp := &e.Request, &e.Response
	rec := Record{
		Timestamp:         e.StartedDateTime,
		Method:            req.Method,
		FullURL:           req.URL,
		StatusCode:        resp.Status,
		ResponseTimeMs:    e.Time,
		RequestSize:       req.HeadersSize + req.BodySize,
		ResponseSize:      resp.HeadersSize + resp.BodySize + resp.Content.Size,
		ContentType:       contentType(e),
		Cookies:           cookies(e),
		Headers:           headers(req.Headers),
		QueryParams:       queryParams(e),
		ResponseBody:      truncate(resp.Content.Text),
		RequestType:       RequestType(e),
		HasAuth:           hasAuth(req.Headers),
		UserAgentCategory: UserAgentCategory(req.Headers),
		MimeType:          resp.Content.MimeType,
		CacheStatus:       cacheStatus(e),
		ResourceType:      e.ResourceTypeHint(),
	}
	if req.PostData != nil {
		rec.RequestBody = truncate(req.PostData.Text)
	}

	if u, err := url.Parse(req.URL); err == nil && u.IsAbs() {
		rec.Domain = u.Hostname()
		rec.Path = u.EscapedPath()
		if rec.Path == "" {
			rec.Path = "/"
		}
	}
	return rec, nil
}

// MainType returns the lower-cased media type of a Content-Type value,
// without parameters.
func MainType(v string) string {
	if i := strings.IndexByte(v, ';'); i >= 0 {
		v = v[:i]
	}
	return strings.ToLower(strings.TrimSpace(v))
}

func contentType(e *har.Entry) string {
	if v, ok := har.Header(e.Response.Headers, "Content-Type"); ok {
		return MainType(v)
	}
	return MainType(e.Response.Content.MimeType)
}

func cookies(e *har.Entry) string {
	parts := make([]string, 0, len(e.Request.Cookies))
	for _, c := range e.Request.Cookies {
		parts = append(parts, c.Name+"="+c.Value)
	}
	for _, h := range e.Response.Headers {
		if strings.EqualFold(h.Name, "Set-Cookie") {
			parts = append(parts, h.Value)
		}
	}
	return strings.Join(parts, "; ")
}

func headers(hs []har.NameValue) string {
	parts := make([]string, 0, len(hs))
	for _, h := range hs {
		if isCookieOrAuth(h.Name) {
			continue
		}
		parts = append(parts, h.Name+"="+h.Value)
	}
	return strings.Join(parts, "; ")
}

// queryParams joins the raw URL query and the recorded query list,
// dropping repeats while keeping first-seen order.
func queryParams(e *har.Entry) string {
	var parts []string
	seen := make(map[string]bool)
	add := func(p string) {
		if p == "" || seen[p] {
			return
		}
		seen[p] = true
		parts = append(parts, p)
	}

	if u, err := url.Parse(e.Request.URL); err == nil && u.IsAbs() {
		add(u.RawQuery)
	}
	for _, q := range e.Request.QueryString {
		add(q.Name + "=" + q.Value)
	}
	return strings.Join(parts, "&")
}

func truncate(text *string) *string {
	if text == nil {
		return nil
	}
	s := *text
	if utf8.RuneCountInString(s) <= MaxBodyLength {
		return &s
	}
	cut := []rune(s)[:MaxBodyLength]
	out := string(cut) + TruncationMarker
	return &out
}

func hasAuth(hs []har.NameValue) bool {
	for _, h := range hs {
		if isAuthHeader(h.Name) || hasAuthValue(h.Value) {
			return true
		}
	}
	return false
}

func cacheStatus(e *har.Entry) string {
	if v, ok := har.Header(e.Response.Headers, "Cache-Control"); ok {
		return v
	}
	return e.Cache.Comment
}

// UserAgentCategory buckets the User-Agent header. Without the header it
// returns "unknown".
func UserAgentCategory(hs []har.NameValue) string {
	ua, ok := har.Header(hs, "User-Agent")
	if !ok {
		return "unknown"
	}
	ua = strings.ToLower(ua)
	switch {
	case strings.Contains(ua, "chrome"):
		return "chrome"
	case strings.Contains(ua, "firefox"):
		return "firefox"
	case strings.Contains(ua, "safari"):
		return "safari"
	case strings.Contains(ua, "edge"):
		return "edge"
	case strings.Contains(ua, "mobile"):
		return "mobile"
	case strings.Contains(ua, "bot"), strings.Contains(ua, "crawler"):
		return "bot"
	default:
		return "other"
	}
}
