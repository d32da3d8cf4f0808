package classify

import "time"

// Record is the flattened, ML-friendly view of one entry.
type Record struct {
	Timestamp         time.Time `json:"timestamp"`
	Method            string    `json:"method"`
	Domain            string    `json:"domain"`
	Path              string    `json:"path"`
	FullURL           string    `json:"full_url"`
	StatusCode        int       `json:"status_code"`
	ResponseTimeMs    float64   `json:"response_time_ms"`
	RequestSize       int64     `json:"request_size"`
	ResponseSize      int64     `json:"response_size"`
	ContentType       string    `json:"content_type"`
	Cookies           string    `json:"cookies"`
	Headers           string    `json:"headers"`
	QueryParams       string    `json:"query_params"`
	RequestBody       *string   `json:"request_body"`
	ResponseBody      *string   `json:"response_body"`
	RequestType       string    `json:"request_type"`
	HasAuth           bool      `json:"has_auth"`
	UserAgentCategory string    `json:"user_agent_category"`
	MimeType          string    `json:"mime_type"`
	CacheStatus       string    `json:"cache_status"`
	ResourceType      string    `json:"resource_type"`
}
