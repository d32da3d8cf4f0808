package profile

import (
	"strconv"
	"strings"
)

// ParseList splits a comma-separated value, trimming items and dropping empties.
func ParseList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// ParseIntList splits a comma-separated value into integers. Items that are
// not integers are skipped.
func ParseIntList(s string) []int {
	var out []int
	for _, part := range ParseList(s) {
		if n, err := strconv.Atoi(part); err == nil {
			out = append(out, n)
		}
	}
	return out
}

// Merge layers override on top of base. Non-empty lists, set bounds and
// non-empty strings in override replace base values; toggles combine with OR.
func Merge(base, override Profile) Profile {
	out := base

	out.Types = mergeIncludeExclude(base.Types, override.Types)
	out.Methods.IncludeExclude = mergeIncludeExclude(base.Methods.IncludeExclude, override.Methods.IncludeExclude)
	out.Methods.XHROnly = base.Methods.XHROnly || override.Methods.XHROnly
	out.URLs = mergeIncludeExclude(base.URLs, override.URLs)
	out.Headers = mergeIncludeExclude(base.Headers, override.Headers)
	out.Cookies = mergeIncludeExclude(base.Cookies, override.Cookies)

	out.Status.Include = pick(base.Status.Include, override.Status.Include)
	out.Status.Exclude = pick(base.Status.Exclude, override.Status.Exclude)

	if override.Size.Min != nil {
		out.Size.Min = override.Size.Min
	}
	if override.Size.Max != nil {
		out.Size.Max = override.Size.Max
	}

	out.Body = pick(base.Body, override.Body)
	if override.Expression != "" {
		out.Expression = override.Expression
	}

	out.Privacy = Privacy{
		RemoveCookies:             base.Privacy.RemoveCookies || override.Privacy.RemoveCookies,
		RemoveAuthTokens:          base.Privacy.RemoveAuthTokens || override.Privacy.RemoveAuthTokens,
		RemovePersonalIdentifiers: base.Privacy.RemovePersonalIdentifiers || override.Privacy.RemovePersonalIdentifiers,
		RemoveTrackingHeaders:     base.Privacy.RemoveTrackingHeaders || override.Privacy.RemoveTrackingHeaders,
		SensitiveHeaders:          pick(base.Privacy.SensitiveHeaders, override.Privacy.SensitiveHeaders),
		SensitiveParams:           pick(base.Privacy.SensitiveParams, override.Privacy.SensitiveParams),
	}

	out.Content = Content{
		RemoveResponse: base.Content.RemoveResponse || override.Content.RemoveResponse,
		RemoveRequest:  base.Content.RemoveRequest || override.Content.RemoveRequest,
		RemoveBase64:   base.Content.RemoveBase64 || override.Content.RemoveBase64,
		MaxSize:        base.Content.MaxSize,
		ExcludeTypes:   pick(base.Content.ExcludeTypes, override.Content.ExcludeTypes),
	}
	if override.Content.MaxSize != nil {
		out.Content.MaxSize = override.Content.MaxSize
	}

	out.Vendor = Vendor{
		All:                   base.Vendor.All || override.Vendor.All,
		RemoveConnectionIDs:   base.Vendor.RemoveConnectionIDs || override.Vendor.RemoveConnectionIDs,
		RemoveInitiator:       base.Vendor.RemoveInitiator || override.Vendor.RemoveInitiator,
		RemovePriority:        base.Vendor.RemovePriority || override.Vendor.RemovePriority,
		RemoveResourceType:    base.Vendor.RemoveResourceType || override.Vendor.RemoveResourceType,
		RemoveInternalTimings: base.Vendor.RemoveInternalTimings || override.Vendor.RemoveInternalTimings,
		RemoveTransferSizes:   base.Vendor.RemoveTransferSizes || override.Vendor.RemoveTransferSizes,
	}

	return out
}

func mergeIncludeExclude(base, override IncludeExclude) IncludeExclude {
	return IncludeExclude{
		Include: pick(base.Include, override.Include),
		Exclude: pick(base.Exclude, override.Exclude),
	}
}

func pick[T any](base, override []T) []T {
	if len(override) > 0 {
		return override
	}
	return base
}
