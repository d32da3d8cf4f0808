package filter

import (
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

var (
	xhrAccept       = match.ContainsAnyFold("application/json", "application/xml", "text/xml")
	xhrContentType  = match.ContainsAnyFold("application/json", "application/xml")
	xhrResponseMIME = match.ContainsAnyFold("application/json", "application/xml", "text/xml")
)

// IsXHR reports whether the entry looks like an XHR/fetch call.
// It is a header and content-type heuristic, not a protocol fact.
func IsXHR(e *har.Entry) bool {
	headers := e.Request.Headers

	if v, ok := har.Header(headers, "X-Requested-With"); ok && strings.Contains(strings.ToLower(v), "xmlhttprequest") {
		return true
	}
	if v, ok := har.Header(headers, "Accept"); ok && xhrAccept(v) {
		return true
	}
	if v, ok := har.Header(headers, "Content-Type"); ok && xhrContentType(v) {
		return true
	}
	return xhrResponseMIME(e.Response.Content.MimeType)
}

const minBase64Length = 50

// LooksLikeBase64 reports whether text resembles base64 data: at least 50
// characters, a multiple of 4 long, made only of letters, digits, '+', '/' and '='.
// Long hex digests and repeated letters also qualify.
func LooksLikeBase64(text string) bool {
	n := utf8.RuneCountInString(text)
	if n < minBase64Length || n%4 != 0 {
		return false
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '+' || r == '/' || r == '=' {
			continue
		}
		return false
	}
	return true
}

// FileExtension returns the lower-cased extension of the URL path: the text
// after the last '.' that follows the last '/'. Unparsable URLs yield "".
func FileExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	path := u.Path
	lastDot := strings.LastIndex(path, ".")
	lastSlash := strings.LastIndex(path, "/")
	if lastDot > lastSlash && lastDot < len(path)-1 {
		return strings.ToLower(path[lastDot+1:])
	}
	return ""
}

// mimeTokens maps well-known type names to the token their MIME type contains.
var mimeTokens = map[string]string{
	"js":   "javascript",
	"css":  "css",
	"html": "html",
	"json": "json",
	"xml":  "xml",
	"png":  "png",
	"gif":  "gif",
	"svg":  "svg",
	"pdf":  "pdf",
	"jpg":  "jpeg",
	"jpeg": "jpeg",
}

// MatchesType reports whether a lower-cased type name matches the extension or MIME type.
func MatchesType(typ, ext, mimeType string) bool {
	if ext != "" && ext == typ {
		return true
	}
	if mimeType == "" {
		return false
	}
	token, ok := mimeTokens[typ]
	if !ok {
		token = typ
	}
	return strings.Contains(mimeType, token)
}
