package har

import (
	"encoding/json"
	"strings"
	"time"
)

// File is the top-level HAR document.
type File struct {
	Log Log `json:"log"`
}

// Log holds capture metadata and the recorded entries.
type Log struct {
	Version string   `json:"version"`
	Creator Creator  `json:"creator"`
	Browser *Browser `json:"browser,omitempty"`
	Pages   []Page   `json:"pages,omitempty"`
	Entries []*Entry `json:"entries"`
	Comment string   `json:"comment,omitempty"`
}

// Creator identifies the tool that produced the capture.
type Creator struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Comment string `json:"comment,omitempty"`
}

// Browser identifies the browser that produced the capture.
type Browser struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Comment string `json:"comment,omitempty"`
}

// Page groups entries recorded for a single page load.
type Page struct {
	StartedDateTime time.Time   `json:"startedDateTime"`
	ID              string      `json:"id"`
	Title           string      `json:"title"`
	PageTimings     PageTimings `json:"pageTimings"`
	Comment         string      `json:"comment,omitempty"`
}

// PageTimings holds page load milestones in milliseconds.
type PageTimings struct {
	OnContentLoad *float64 `json:"onContentLoad,omitempty"`
	OnLoad        *float64 `json:"onLoad,omitempty"`
	Comment       string   `json:"comment,omitempty"`
}

// Entry is one captured request/response exchange.
//
// Request and Response are values, so a decoded entry always carries both.
// VendorMetadata is nil unless the capture tool injected its private fields.
type Entry struct {
	PageRef         string    `json:"pageref,omitempty"`
	StartedDateTime time.Time `json:"startedDateTime"`
	Time            float64   `json:"time"`
	Request         Request   `json:"request"`
	Response        Response  `json:"response"`
	Cache           Cache     `json:"cache"`
	Timings         Timings   `json:"timings"`
	ServerIPAddress string    `json:"serverIPAddress,omitempty"`
	Connection      string    `json:"connection,omitempty"`
	Comment         string    `json:"comment,omitempty"`

	*VendorMetadata
}

// VendorMetadata holds capture-tool specific fields (Chrome DevTools style).
type VendorMetadata struct {
	ResourceType string          `json:"_resourceType,omitempty"`
	Initiator    json.RawMessage `json:"_initiator,omitempty"`
	Priority     string          `json:"_priority,omitempty"`
	ConnectionID string          `json:"_connectionId,omitempty"`
}

// Vendor returns the vendor metadata, or nil when none is attached.
func (e *Entry) Vendor() *VendorMetadata {
	return e.VendorMetadata
}

// ResourceTypeHint returns the vendor resource type or "" when absent.
func (e *Entry) ResourceTypeHint() string {
	if e.VendorMetadata == nil {
		return ""
	}
	return e.VendorMetadata.ResourceType
}

// Request describes the outgoing HTTP request.
type Request struct {
	Method      string      `json:"method"`
	URL         string      `json:"url"`
	HTTPVersion string      `json:"httpVersion"`
	Headers     []NameValue `json:"headers"`
	QueryString []NameValue `json:"queryString"`
	Cookies     []Cookie    `json:"cookies"`
	HeadersSize int64       `json:"headersSize"`
	BodySize    int64       `json:"bodySize"`
	PostData    *PostData   `json:"postData,omitempty"`
	Comment     string      `json:"comment,omitempty"`
}

// Response describes the received HTTP response.
type Response struct {
	Status      int         `json:"status"`
	StatusText  string      `json:"statusText"`
	HTTPVersion string      `json:"httpVersion"`
	Headers     []NameValue `json:"headers"`
	Cookies     []Cookie    `json:"cookies"`
	Content     Content     `json:"content"`
	RedirectURL string      `json:"redirectURL"`
	HeadersSize int64       `json:"headersSize"`
	BodySize    int64       `json:"bodySize"`
	Comment     string      `json:"comment,omitempty"`
}

// NameValue is a header or query-string pair.
type NameValue struct {
	Name    string `json:"name"`
	Value   string `json:"value"`
	Comment string `json:"comment,omitempty"`
}

// Cookie is a request or response cookie.
type Cookie struct {
	Name     string     `json:"name"`
	Value    string     `json:"value"`
	Path     string     `json:"path,omitempty"`
	Domain   string     `json:"domain,omitempty"`
	Expires  *time.Time `json:"expires,omitempty"`
	HTTPOnly *bool      `json:"httpOnly,omitempty"`
	Secure   *bool      `json:"secure,omitempty"`
	Comment  string     `json:"comment,omitempty"`
}

// PostData is the request body.
type PostData struct {
	MimeType string  `json:"mimeType"`
	Text     *string `json:"text,omitempty"`
	Params   []Param `json:"params,omitempty"`
	Comment  string  `json:"comment,omitempty"`
}

// Param is a posted form parameter.
type Param struct {
	Name        string  `json:"name"`
	Value       *string `json:"value,omitempty"`
	FileName    string  `json:"fileName,omitempty"`
	ContentType string  `json:"contentType,omitempty"`
	Comment     string  `json:"comment,omitempty"`
}

// Content is the response body.
type Content struct {
	Size        int64   `json:"size"`
	Compression *int64  `json:"compression,omitempty"`
	MimeType    string  `json:"mimeType"`
	Text        *string `json:"text,omitempty"`
	Encoding    string  `json:"encoding,omitempty"`
	Comment     string  `json:"comment,omitempty"`
}

// Cache is passed through untouched; only Comment is ever read.
type Cache struct {
	BeforeRequest json.RawMessage `json:"beforeRequest,omitempty"`
	AfterRequest  json.RawMessage `json:"afterRequest,omitempty"`
	Comment       string          `json:"comment,omitempty"`
}

// Timings breaks the round trip down into phases, in milliseconds.
type Timings struct {
	Blocked *float64 `json:"blocked,omitempty"`
	DNS     *float64 `json:"dns,omitempty"`
	Connect *float64 `json:"connect,omitempty"`
	Send    float64  `json:"send"`
	Wait    float64  `json:"wait"`
	Receive float64  `json:"receive"`
	SSL     *float64 `json:"ssl,omitempty"`
	Comment string   `json:"comment,omitempty"`
}

// Header returns the value of the first header named name (case-insensitive).
func Header(headers []NameValue, name string) (string, bool) {
	for _, h := range headers {
		if strings.EqualFold(h.Name, name) {
			return h.Value, true
		}
	}
	return "", false
}

// String returns a pointer to s. Handy for optional body fields.
func String(s string) *string {
	return &s
}
