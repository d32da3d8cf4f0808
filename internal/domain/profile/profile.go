// Package profile describes a complete filter configuration.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid indicates a profile that cannot be compiled into a filter chain.
var ErrInvalid = errors.New("invalid profile")

// Profile carries every filter option. The zero value configures no filters.
type Profile struct {
	Types      IncludeExclude  `json:"types"`
	Methods    Methods         `json:"methods"`
	URLs       IncludeExclude  `json:"urls"`
	Headers    IncludeExclude  `json:"headers"`
	Cookies    IncludeExclude  `json:"cookies"`
	Status     StatusCodes     `json:"status"`
	Size       SizeRange       `json:"size"`
	Body       []BodyCondition `json:"body,omitempty"`
	Expression string          `json:"expression,omitempty"`
	Privacy    Privacy         `json:"privacy"`
	Content    Content         `json:"content"`
	Vendor     Vendor          `json:"vendor"`
}

// IncludeExclude is a pair of case-insensitive pattern lists.
type IncludeExclude struct {
	Include []string `json:"include,omitempty"`
	Exclude []string `json:"exclude,omitempty"`
}

// IsZero reports whether both lists are empty.
func (ie IncludeExclude) IsZero() bool {
	return len(ie.Include) == 0 && len(ie.Exclude) == 0
}

// Methods selects entries by HTTP method and XHR heuristic.
type Methods struct {
	XHROnly bool `json:"xhr_only,omitempty"`
	IncludeExclude
}

// IsZero reports whether no method rule is configured.
func (m Methods) IsZero() bool {
	return !m.XHROnly && m.IncludeExclude.IsZero()
}

// StatusCodes selects entries by response status.
type StatusCodes struct {
	Include []int `json:"include,omitempty"`
	Exclude []int `json:"exclude,omitempty"`
}

// IsZero reports whether both lists are empty.
func (s StatusCodes) IsZero() bool {
	return len(s.Include) == 0 && len(s.Exclude) == 0
}

// SizeRange bounds the response content size, inclusive. Nil bounds are open.
type SizeRange struct {
	Min *int64 `json:"min,omitempty"`
	Max *int64 `json:"max,omitempty"`
}

// IsZero reports whether neither bound is set.
func (s SizeRange) IsZero() bool {
	return s.Min == nil && s.Max == nil
}

// Privacy toggles credential and tracking data removal.
// Nil sensitive lists use the built-in defaults.
type Privacy struct {
	RemoveCookies             bool     `json:"remove_cookies,omitempty"`
	RemoveAuthTokens          bool     `json:"remove_auth_tokens,omitempty"`
	RemovePersonalIdentifiers bool     `json:"remove_personal_identifiers,omitempty"`
	RemoveTrackingHeaders     bool     `json:"remove_tracking_headers,omitempty"`
	SensitiveHeaders          []string `json:"sensitive_headers"`
	SensitiveParams           []string `json:"sensitive_params"`
}

// IsZero reports whether no privacy cleanup is enabled.
func (p Privacy) IsZero() bool {
	return !p.RemoveCookies && !p.RemoveAuthTokens && !p.RemovePersonalIdentifiers && !p.RemoveTrackingHeaders
}

// Content toggles body removal and replacement.
type Content struct {
	RemoveResponse bool     `json:"remove_response,omitempty"`
	RemoveRequest  bool     `json:"remove_request,omitempty"`
	RemoveBase64   bool     `json:"remove_base64,omitempty"`
	MaxSize        *int64   `json:"max_size,omitempty"`
	ExcludeTypes   []string `json:"exclude_types,omitempty"`
}

// IsZero reports whether no content rule is configured.
func (c Content) IsZero() bool {
	return !c.RemoveResponse && !c.RemoveRequest && !c.RemoveBase64 && c.MaxSize == nil && len(c.ExcludeTypes) == 0
}

// Vendor toggles capture-tool metadata removal. All enables every cleanup.
type Vendor struct {
	All                   bool `json:"all,omitempty"`
	RemoveConnectionIDs   bool `json:"remove_connection_ids,omitempty"`
	RemoveInitiator       bool `json:"remove_initiator,omitempty"`
	RemovePriority        bool `json:"remove_priority,omitempty"`
	RemoveResourceType    bool `json:"remove_resource_type,omitempty"`
	RemoveInternalTimings bool `json:"remove_internal_timings,omitempty"`
	RemoveTransferSizes   bool `json:"remove_transfer_sizes,omitempty"`
}

// IsZero reports whether no vendor cleanup is enabled.
func (v Vendor) IsZero() bool {
	return v == Vendor{}
}

// Body condition targets and content types.
const (
	TargetRequest  = "request"
	TargetResponse = "response"

	ContentTypeJSON = "json"
	ContentTypeXML  = "xml"
	ContentTypeAuto = "auto"
)

// BodyCondition extracts a value from a body and matches it.
//
// With ContentType "json" the Extractor is a JSONPath, with "xml" an XPath,
// with "auto" the format is sniffed from the body. With no ContentType the raw
// body is matched.
type BodyCondition struct {
	Target      string `json:"target"`
	ContentType string `json:"content_type,omitempty"`
	Extractor   string `json:"extractor,omitempty"`
	Matcher     string `json:"matcher"`
}

// StringMatcher parses the Matcher field.
func (c BodyCondition) StringMatcher() StringMatcher {
	return ParseMatcher(c.Matcher)
}

// StringMatcher represents a string matching rule.
// If Exact is non-empty, it's an exact match (prefixed with "=" in profiles).
// Otherwise, Pattern is treated as a regex.
type StringMatcher struct {
	Exact   string
	Pattern string
}

// ParseMatcher turns "=value" into an exact matcher and anything else into a pattern.
func ParseMatcher(s string) StringMatcher {
	if rest, ok := strings.CutPrefix(s, "="); ok {
		return StringMatcher{Exact: rest}
	}
	return StringMatcher{Pattern: s}
}

// IsExact returns true if this matcher uses exact comparison.
func (m StringMatcher) IsExact() bool {
	return m.Exact != ""
}

// Value returns the raw string value to match against.
func (m StringMatcher) Value() string {
	if m.Exact != "" {
		return m.Exact
	}
	return m.Pattern
}

// IsEmpty reports whether the profile configures no filter at all.
func (p *Profile) IsEmpty() bool {
	return p.Types.IsZero() && p.Methods.IsZero() && p.URLs.IsZero() &&
		p.Headers.IsZero() && p.Cookies.IsZero() && p.Status.IsZero() &&
		p.Size.IsZero() && len(p.Body) == 0 && strings.TrimSpace(p.Expression) == "" &&
		p.Privacy.IsZero() && p.Content.IsZero() && p.Vendor.IsZero()
}

// Validate checks the structural rules that do not need compilation.
func (p *Profile) Validate() error {
	if p.Content.MaxSize != nil && *p.Content.MaxSize < 0 {
		return fmt.Errorf("%w: negative content max size", ErrInvalid)
	}
	for i, c := range p.Body {
		if c.Target != TargetRequest && c.Target != TargetResponse {
			return fmt.Errorf("%w: body[%d]: target must be %q or %q, got %q", ErrInvalid, i, TargetRequest, TargetResponse, c.Target)
		}
		switch strings.ToLower(c.ContentType) {
		case "":
		case ContentTypeJSON, ContentTypeXML, ContentTypeAuto:
			if c.Extractor == "" {
				return fmt.Errorf("%w: body[%d]: extractor required for content type %q", ErrInvalid, i, c.ContentType)
			}
		default:
			return fmt.Errorf("%w: body[%d]: unsupported content type %q", ErrInvalid, i, c.ContentType)
		}
	}
	return nil
}
