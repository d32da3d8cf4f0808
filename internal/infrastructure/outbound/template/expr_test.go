package template

import (
	"testing"

	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/testutil"
)

func exprEntry() *har.Entry {
	e := testutil.NewEntry("POST", "https://api.example.com/v1/orders?id=7")
	e.Request.Headers = []har.NameValue{{Name: "X-Tenant", Value: "acme"}}
	e.Request.PostData = &har.PostData{MimeType: "application/json", Text: har.String(`{"order":{"total":42}}`)}
	e.Response.Status = 201
	e.Response.Headers = []har.NameValue{{Name: "Content-Type", Value: "application/json"}}
	e.Response.Content = har.Content{Size: 2048, MimeType: "application/json", Text: har.String(`{"status":"created"}`)}
	e.VendorMetadata = &har.VendorMetadata{ResourceType: "fetch"}
	return e
}

func TestExprCompiler_Conditions(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   bool
	}{
		{"method", `method == "POST"`, true},
		{"status range", `status >= 200 && status < 300`, true},
		{"host and path", `host == "api.example.com" && path startsWith "/v1/"`, true},
		{"size", `size > 1024`, true},
		{"time", `time < 10`, false},
		{"mime", `mimeType contains "json"`, true},
		{"resource type", `resourceType == "fetch"`, true},
		{"xhr", `isXHR`, true},
		{"request header case-insensitive", `requestHeader("x-tenant") == "acme"`, true},
		{"missing header", `responseHeader("X-Missing") == ""`, true},
		{"request json", `requestJSON("$.order.total") == "42"`, true},
		{"response json", `responseJSON("$.status") == "created"`, true},
		{"url", `url matches "id=[0-9]+"`, true},
	}

	c := &ExprCompiler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cond, err := c.Compile(tt.source)
			if err != nil {
				t.Fatalf("Compile failed: %v", err)
			}
			got, err := cond.Eval(exprEntry())
			if err != nil {
				t.Fatalf("Eval failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("Eval() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExprCompiler_CompileErrors(t *testing.T) {
	tests := []struct {
		name   string
		source string
	}{
		{"empty", "   "},
		{"syntax", `status ==`},
		{"unknown variable", `nope == 1`},
		{"not a bool", `status + 1`},
	}

	c := &ExprCompiler{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := c.Compile(tt.source); err == nil {
				t.Error("expected compile error")
			}
		})
	}
}

func TestExprCompiler_MissingBodies(t *testing.T) {
	cond, err := (&ExprCompiler{}).Compile(`requestJSON("$.a") == "" && responseJSON("$.a") == ""`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	e := testutil.NewEntry("GET", "https://example.com/")
	got, err := cond.Eval(e)
	if err != nil {
		t.Fatalf("Eval failed: %v", err)
	}
	if !got {
		t.Error("missing bodies should read as empty")
	}
}

func TestExtractJSONPath(t *testing.T) {
	tests := []struct {
		name string
		body string
		path string
		want string
	}{
		{"string", `{"a":"x"}`, "$.a", "x"},
		{"number", `{"a":1.5}`, "$.a", "1.5"},
		{"object", `{"a":{"b":true}}`, "$.a", `{"b":true}`},
		{"missing", `{"a":1}`, "$.b", ""},
		{"invalid json", `{`, "$.a", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := extractJSONPath(tt.body, tt.path); got != tt.want {
				t.Errorf("extractJSONPath() = %q, want %q", got, tt.want)
			}
		})
	}
}
