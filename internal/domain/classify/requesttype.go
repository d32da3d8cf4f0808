package classify

import (
	"net/url"
	"strings"

	"github.com/sophialabs/harcleaner/internal/domain/filter"
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

// Request type labels.
const (
	TypeXHR        = "xhr"
	TypeFetch      = "fetch"
	TypeDocument   = "document"
	TypeScript     = "script"
	TypeStylesheet = "stylesheet"
	TypeImage      = "image"
	TypeMedia      = "media"
	TypeFont       = "font"
	TypeWebSocket  = "websocket"
	TypeManifest   = "manifest"
	TypeAPI        = "api"
	TypeStatic     = "static"
	TypeOther      = "other"
)

var hasAPIIndicator = match.ContainsAnyFold("/api/", "/v1/", "/v2/", "/v3/", "/rest/", "/graphql")

// staticTypes maps static asset extensions to their request type.
var staticTypes = map[string]string{
	"js":    TypeScript,
	"css":   TypeStylesheet,
	"png":   TypeImage,
	"jpg":   TypeImage,
	"jpeg":  TypeImage,
	"gif":   TypeImage,
	"svg":   TypeImage,
	"ico":   TypeImage,
	"woff":  TypeFont,
	"woff2": TypeFont,
	"ttf":   TypeFont,
	"eot":   TypeFont,
	"mp4":   TypeMedia,
	"mp3":   TypeMedia,
	"wav":   TypeMedia,
	"avi":   TypeMedia,
	"map":   TypeStatic,
	"wasm":  TypeStatic,
}

// RequestType labels the entry. Vendor resource type metadata wins, then the
// XHR heuristic, then API URL indicators, then static asset extensions.
func RequestType(e *har.Entry) string {
	// Tool categories share our label names; anything else passes through.
	if rt := e.ResourceTypeHint(); rt != "" {
		return strings.ToLower(rt)
	}

	if filter.IsXHR(e) {
		return TypeXHR
	}
	if isAPI(e.Request.URL) {
		return TypeAPI
	}
	if t, ok := staticTypes[filter.FileExtension(e.Request.URL)]; ok {
		return t
	}
	return TypeOther
}

func isAPI(rawURL string) bool {
	if hasAPIIndicator(rawURL) {
		return true
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	return strings.HasPrefix(host, "api.") || strings.Contains(host, ".api.")
}
