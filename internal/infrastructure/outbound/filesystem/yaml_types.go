package filesystem

// yamlProfile is the YAML deserialization target for filter profiles.
type yamlProfile struct {
	Types      yamlIncludeExclude `yaml:"types"`
	Methods    yamlMethods        `yaml:"methods"`
	URLs       yamlIncludeExclude `yaml:"urls"`
	Headers    yamlIncludeExclude `yaml:"headers"`
	Cookies    yamlIncludeExclude `yaml:"cookies"`
	Status     yamlStatus         `yaml:"status"`
	Size       yamlSize           `yaml:"size"`
	Body       []yamlCondition    `yaml:"body,omitempty"`
	Expression string             `yaml:"expression,omitempty"`
	Privacy    yamlPrivacy        `yaml:"privacy"`
	Content    yamlContent        `yaml:"content"`
	Vendor     yamlVendor         `yaml:"vendor"`
}

type yamlIncludeExclude struct {
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

type yamlMethods struct {
	XHROnly bool     `yaml:"xhr_only,omitempty"`
	Include []string `yaml:"include,omitempty"`
	Exclude []string `yaml:"exclude,omitempty"`
}

type yamlStatus struct {
	Include []int `yaml:"include,omitempty"`
	Exclude []int `yaml:"exclude,omitempty"`
}

type yamlSize struct {
	Min *int64 `yaml:"min,omitempty"`
	Max *int64 `yaml:"max,omitempty"`
}

type yamlCondition struct {
	Target      string `yaml:"target"`
	ContentType string `yaml:"content_type,omitempty"`
	Extractor   string `yaml:"extractor,omitempty"`
	Matcher     string `yaml:"matcher"`
}

type yamlPrivacy struct {
	RemoveCookies             bool     `yaml:"remove_cookies,omitempty"`
	RemoveAuthTokens          bool     `yaml:"remove_auth_tokens,omitempty"`
	RemovePersonalIdentifiers bool     `yaml:"remove_personal_identifiers,omitempty"`
	RemoveTrackingHeaders     bool     `yaml:"remove_tracking_headers,omitempty"`
	SensitiveHeaders          []string `yaml:"sensitive_headers,omitempty"`
	SensitiveParams           []string `yaml:"sensitive_params,omitempty"`
}

type yamlContent struct {
	RemoveResponse bool     `yaml:"remove_response,omitempty"`
	RemoveRequest  bool     `yaml:"remove_request,omitempty"`
	RemoveBase64   bool     `yaml:"remove_base64,omitempty"`
	MaxSize        *int64   `yaml:"max_size,omitempty"`
	ExcludeTypes   []string `yaml:"exclude_types,omitempty"`
}

type yamlVendor struct {
	All                   bool `yaml:"all,omitempty"`
	RemoveConnectionIDs   bool `yaml:"remove_connection_ids,omitempty"`
	RemoveInitiator       bool `yaml:"remove_initiator,omitempty"`
	RemovePriority        bool `yaml:"remove_priority,omitempty"`
	RemoveResourceType    bool `yaml:"remove_resource_type,omitempty"`
	RemoveInternalTimings bool `yaml:"remove_internal_timings,omitempty"`
	RemoveTransferSizes   bool `yaml:"remove_transfer_sizes,omitempty"`
}
