package filter

import (
	"github.com/sophialabs/harcleaner/internal/domain/har"
	"github.com/sophialabs/harcleaner/internal/domain/match"
)

// VendorHeaderPrefixes are header name prefixes injected by capture tools.
var VendorHeaderPrefixes = []string{"x-devtools-", "x-chrome-", "x-transfer-size"}

var _ Filter = (*VendorMetadataFilter)(nil)

// VendorOptions toggles the individual vendor cleanups.
type VendorOptions struct {
	RemoveConnectionIDs   bool
	RemoveInitiator       bool
	RemovePriority        bool
	RemoveResourceType    bool
	RemoveInternalTimings bool
	RemoveTransferSizes   bool
}

// AllVendorOptions enables every vendor cleanup.
func AllVendorOptions() VendorOptions {
	return VendorOptions{
		RemoveConnectionIDs:   true,
		RemoveInitiator:       true,
		RemovePriority:        true,
		RemoveResourceType:    true,
		RemoveInternalTimings: true,
		RemoveTransferSizes:   true,
	}
}

// VendorMetadataFilter strips capture-tool specific data. It never excludes.
type VendorMetadataFilter struct {
	opts            VendorOptions
	isVendorHeader  match.Predicate
	isQueueingNote  match.Predicate
	isToolEntryNote match.Predicate
}

// NewVendorMetadataFilter creates a vendor metadata filter.
func NewVendorMetadataFilter(opts VendorOptions) *VendorMetadataFilter {
	return &VendorMetadataFilter{
		opts:            opts,
		isVendorHeader:  match.HasPrefixAnyFold(VendorHeaderPrefixes...),
		isQueueingNote:  match.ContainsAnyFold("queueing"),
		isToolEntryNote: match.ContainsAnyFold("devtools", "chrome"),
	}
}

func (f *VendorMetadataFilter) Name() string { return NameVendorMetadata }

func (f *VendorMetadataFilter) Evaluate(e *har.Entry) bool {
	if v := e.Vendor(); v != nil {
		if f.opts.RemoveConnectionIDs {
			v.ConnectionID = ""
		}
		if f.opts.RemoveInitiator {
			v.Initiator = nil
		}
		if f.opts.RemovePriority {
			v.Priority = ""
		}
		if f.opts.RemoveResourceType {
			v.ResourceType = ""
		}
	}

	if f.opts.RemoveInternalTimings {
		if f.isQueueingNote(e.Timings.Comment) {
			e.Timings.Comment = ""
		}
		if f.isToolEntryNote(e.Comment) {
			e.Comment = ""
		}
	}

	if f.opts.RemoveTransferSizes {
		e.Response.Headers = dropHeaders(e.Response.Headers, f.isVendorHeader)
		e.Request.Headers = dropHeaders(e.Request.Headers, f.isVendorHeader)
	}

	return true
}
