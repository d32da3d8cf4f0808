// Package filter implements the decide-and-mutate units applied to capture entries.
package filter

import "github.com/sophialabs/harcleaner/internal/domain/har"

// Filter decides whether an entry stays in the output and may mutate it in place.
//
// Evaluate returns true to keep the entry. Mutations happen regardless of the
// returned value and are never rolled back.
type Filter interface {
	Name() string
	Evaluate(e *har.Entry) bool
}

// Filter names reported as exclusion reasons.
const (
	NameURL            = "URL"
	NameHeader         = "Header"
	NameCookie         = "Cookie"
	NameRequestMethod  = "RequestMethod"
	NameRequestType    = "RequestType"
	NameStatusCode     = "StatusCode"
	NameSize           = "Size"
	NameContent        = "Content"
	NamePrivacy        = "Privacy"
	NameVendorMetadata = "VendorMetadata"
	NameBody           = "Body"
	NameExpression     = "Expression"
)
