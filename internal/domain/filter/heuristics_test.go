package filter_test

import (
	"strings"
	"testing"

	"github.com/sophialabs/harcleaner/internal/domain/filter"
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/testutil"
)

func TestLooksLikeBase64(t *testing.T) {
	tests := []struct {
		name string
		text string
		want bool
	}{
		{"64 alphanumeric chars", strings.Repeat("aB3d", 16), true},
		{"500 repeated letters", strings.Repeat("a", 500), true},
		{"padded", strings.Repeat("QUJD", 12) + "QQ==", true},
		{"too short", strings.Repeat("abcd", 12), false},
		{"not a multiple of four", strings.Repeat("a", 51), false},
		{"contains a space", strings.Repeat("abcd", 12) + "ab d", false},
		{"contains a dash", strings.Repeat("abcd", 12) + "ab-d", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.LooksLikeBase64(tt.text); got != tt.want {
				t.Errorf("LooksLikeBase64() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIsXHR(t *testing.T) {
	tests := []struct {
		name    string
		headers []har.NameValue
		mime    string
		want    bool
	}{
		{"x-requested-with", []har.NameValue{{Name: "X-Requested-With", Value: "XMLHttpRequest"}}, "text/html", true},
		{"accept json", []har.NameValue{{Name: "accept", Value: "application/json, text/plain"}}, "text/html", true},
		{"accept text/xml", []har.NameValue{{Name: "Accept", Value: "text/xml"}}, "", true},
		{"request content type json", []har.NameValue{{Name: "Content-Type", Value: "application/json"}}, "text/html", true},
		{"request content type text/xml is not enough", []har.NameValue{{Name: "Content-Type", Value: "text/xml"}}, "text/html", false},
		{"response json", nil, "application/json", true},
		{"response xml", nil, "text/xml; charset=utf-8", true},
		{"plain document", []har.NameValue{{Name: "Accept", Value: "text/html"}}, "text/html", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := testutil.NewEntry("GET", "https://example.com/")
			e.Request.Headers = tt.headers
			e.Response.Content.MimeType = tt.mime
			if got := filter.IsXHR(e); got != tt.want {
				t.Errorf("IsXHR() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileExtension(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://example.com/app.min.JS", "js"},
		{"https://example.com/logo.png?v=1#top", "png"},
		{"https://example.com/v1.2/users", ""},
		{"https://example.com/", ""},
		{"https://example.com/trailing.", ""},
		{"://bad url", ""},
	}

	for _, tt := range tests {
		if got := filter.FileExtension(tt.url); got != tt.want {
			t.Errorf("FileExtension(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestMatchesType(t *testing.T) {
	tests := []struct {
		typ, ext, mime string
		want           bool
	}{
		{"js", "", "application/javascript", true},
		{"jpeg", "", "image/jpeg", true},
		{"jpg", "jpg", "", true},
		{"html", "", "application/xhtml+xml", true},
		{"xml", "", "application/xhtml+xml", true},
		{"png", "", "image/gif", false},
		{"webp", "", "image/webp", true},
		{"css", "", "", false},
	}

	for _, tt := range tests {
		if got := filter.MatchesType(tt.typ, tt.ext, tt.mime); got != tt.want {
			t.Errorf("MatchesType(%q, %q, %q) = %v, want %v", tt.typ, tt.ext, tt.mime, got, tt.want)
		}
	}
}
