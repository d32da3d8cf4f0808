package services

import (
	"net/http"
	"strings"

	"github.com/sophialabs/harcleaner/internal/domain/profile"
)

// InferBodyFormat classifies a body as JSON, XML or neither by sniffing its content.
func InferBodyFormat(body string) string {
	trimmed := strings.TrimSpace(body)
	if trimmed == "" {
		return ""
	}

	switch trimmed[0] {
	case '{', '[':
		return profile.ContentTypeJSON
	}

	sniffed := http.DetectContentType([]byte(trimmed))
	if strings.Contains(sniffed, "xml") || (trimmed[0] == '<' && !strings.Contains(sniffed, "html")) {
		return profile.ContentTypeXML
	}
	return ""
}
