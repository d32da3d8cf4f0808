package filter

import (
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

// RedactedValue replaces sensitive query parameter values.
const RedactedValue = "[REDACTED]"

// DefaultSensitiveHeaders lists header name substrings inspected for auth and identity data.
var DefaultSensitiveHeaders = []string{
	"authorization", "cookie", "set-cookie", "x-auth-token", "x-api-key",
	"x-session-id", "x-csrf-token", "x-requested-with",
}

// DefaultSensitiveParams lists query parameter name substrings inspected for secrets.
var DefaultSensitiveParams = []string{
	"token", "key", "session", "auth", "password", "secret", "api_key", "csrf",
}

// TrackingHeaders are dropped when RemoveTrackingHeaders is set.
var TrackingHeaders = []string{"x-forwarded-for", "x-real-ip", "user-agent", "accept-language", "dnt"}

var _ Filter = (*PrivacyFilter)(nil)

// PrivacyOptions configures PrivacyFilter. Nil sensitive lists fall back to the defaults.
type PrivacyOptions struct {
	RemoveCookies             bool
	RemoveAuthTokens          bool
	RemovePersonalIdentifiers bool
	RemoveTrackingHeaders     bool
	SensitiveHeaders          []string
	SensitiveParams           []string
}

// PrivacyFilter strips cookies, credentials, identifiers and tracking headers.
// It never excludes.
type PrivacyFilter struct {
	opts            PrivacyOptions
	isSensitiveParm match.Predicate
	isCredential    match.Predicate
	isCookieHeader  match.Predicate
	isTracking      match.Predicate
}

// NewPrivacyFilter creates a privacy filter.
func NewPrivacyFilter(opts PrivacyOptions) *PrivacyFilter {
	if opts.SensitiveHeaders == nil {
		opts.SensitiveHeaders = DefaultSensitiveHeaders
	}
	if opts.SensitiveParams == nil {
		opts.SensitiveParams = DefaultSensitiveParams
	}
	isSensitiveHdr := match.ContainsAnyFold(opts.SensitiveHeaders...)
	isAuthName, isPersonalName := match.Never(), match.Never()
	if opts.RemoveAuthTokens {
		isAuthName = match.ContainsAnyFold("auth", "token")
	}
	if opts.RemovePersonalIdentifiers {
		isPersonalName = match.ContainsAnyFold("session", "user")
	}
	return &PrivacyFilter{
		opts:            opts,
		isSensitiveParm: match.ContainsAnyFold(opts.SensitiveParams...),
		isCredential:    match.And(isSensitiveHdr, match.Or(isAuthName, isPersonalName)),
		isCookieHeader:  match.EqualsAnyFold("cookie", "set-cookie"),
		isTracking:      match.EqualsAnyFold(TrackingHeaders...),
	}
}

func (f *PrivacyFilter) Name() string { return NamePrivacy }

func (f *PrivacyFilter) Evaluate(e *har.Entry) bool {
	req, resp := &e.Request, &e.Response

	if f.opts.RemoveCookies {
		req.Cookies = clearList(req.Cookies)
		resp.Cookies = clearList(resp.Cookies)
		req.Headers = dropHeaders(req.Headers, f.isCookieHeader)
		resp.Headers = dropHeaders(resp.Headers, f.isCookieHeader)
	}

	if f.opts.RemoveAuthTokens || f.opts.RemovePersonalIdentifiers {
		req.Headers = dropHeaders(req.Headers, f.isCredential)
		resp.Headers = dropHeaders(resp.Headers, f.isCredential)
		if f.opts.RemovePersonalIdentifiers {
			f.redactParams(req.QueryString)
		}
	}

	if f.opts.RemoveTrackingHeaders {
		req.Headers = dropHeaders(req.Headers, f.isTracking)
		resp.Headers = dropHeaders(resp.Headers, f.isTracking)
	}

	return true
}

func (f *PrivacyFilter) redactParams(params []har.NameValue) {
	for i := range params {
		if f.isSensitiveParm(params[i].Name) {
			params[i].Value = RedactedValue
		}
	}
}

func dropHeaders(headers []har.NameValue, drop match.Predicate) []har.NameValue {
	if headers == nil {
		return nil
	}
	kept := make([]har.NameValue, 0, len(headers))
	for _, h := range headers {
		if !drop(h.Name) {
			kept = append(kept, h)
		}
	}
	return kept
}

func clearList[T any](items []T) []T {
	if items == nil {
		return nil
	}
	return []T{}
}
