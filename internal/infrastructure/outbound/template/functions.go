package template

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/PaesslerAG/jsonpath"

	"github.com/sophialabs/harcleaner/internal/domain/filter"
	"github.com/sophialabs/harcleaner/internal/domain/har"
)

func buildExprEnv(e *har.Entry) exprEnv {
	env := exprEnv{
		Method:       e.Request.Method,
		URL:          e.Request.URL,
		Status:       e.Response.Status,
		MimeType:     e.Response.Content.MimeType,
		Size:         e.Response.Content.Size,
		Time:         e.Time,
		ResourceType: e.ResourceTypeHint(),
		IsXHR:        filter.IsXHR(e),
		RequestHeader: func(name string) string {
			v, _ := har.Header(e.Request.Headers, name)
			return v
		},
		ResponseHeader: func(name string) string {
			v, _ := har.Header(e.Response.Headers, name)
			return v
		},
		RequestJSON: func(expression string) string {
			if e.Request.PostData == nil || e.Request.PostData.Text == nil {
				return ""
			}
			return extractJSONPath(*e.Request.PostData.Text, expression)
		},
		ResponseJSON: func(expression string) string {
			if e.Response.Content.Text == nil {
				return ""
			}
			return extractJSONPath(*e.Response.Content.Text, expression)
		},
	}
	if u, err := url.Parse(e.Request.URL); err == nil {
		env.Host = u.Hostname()
		env.Path = u.Path
	}
	return env
}

func toJSONString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(b)
}

func extractJSONPath(body string, expression string) string {
	var data any
	if err := json.Unmarshal([]byte(body), &data); err != nil {
		return ""
	}
	result, err := jsonpath.Get(expression, data)
	if err != nil {
		return ""
	}
	switch v := result.(type) {
	case string:
		return v
	default:
		return toJSONString(v)
	}
}
