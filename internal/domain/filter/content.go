package filter

import (
	"fmt"

	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

// Base64Placeholder replaces response bodies that look like base64 data.
const Base64Placeholder = "[BASE64 CONTENT REMOVED]"

var _ Filter = (*ContentFilter)(nil)

// ContentOptions configures ContentFilter. The zero value is a no-op.
type ContentOptions struct {
	RemoveResponseContent bool
	RemoveRequestContent  bool
	RemoveBase64Content   bool
	MaxContentSize        *int64
	ExcludeContentTypes   []string
}

// ContentFilter clears or replaces request and response bodies. It never excludes.
type ContentFilter struct {
	opts           ContentOptions
	isExcludedMIME match.Predicate
}

// NewContentFilter creates a content filter.
func NewContentFilter(opts ContentOptions) *ContentFilter {
	return &ContentFilter{
		opts:           opts,
		isExcludedMIME: match.ContainsAnyFold(opts.ExcludeContentTypes...),
	}
}

func (f *ContentFilter) Name() string { return NameContent }

func (f *ContentFilter) Evaluate(e *har.Entry) bool {
	content := &e.Response.Content

	if f.opts.RemoveResponseContent {
		content.Text = nil
	}

	if f.opts.RemoveRequestContent && e.Request.PostData != nil {
		e.Request.PostData.Text = nil
		e.Request.PostData.Params = nil
	}

	if f.opts.MaxContentSize != nil && content.Size > *f.opts.MaxContentSize {
		content.Text = har.String(fmt.Sprintf("[CONTENT REMOVED - Size: %d bytes]", content.Size))
	}

	// Runs after the size check and may overwrite its placeholder.
	if len(f.opts.ExcludeContentTypes) > 0 && f.isExcludedMIME(content.MimeType) {
		content.Text = har.String(fmt.Sprintf("[CONTENT REMOVED - Type: %s]", content.MimeType))
	}

	if f.opts.RemoveBase64Content && content.Text != nil && *content.Text != "" && LooksLikeBase64(*content.Text) {
		content.Text = har.String(Base64Placeholder)
	}

	return true
}
