package services

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/antchfx/xmlquery"

	"github.com/sophialabs/harcleaner/internal/domain/filter"
	"github.com/sophialabs/harcleaner/internal/domain/match"
	"github.com/sophialabs/harcleaner/internal/domain/profile"
)

// ConditionCompiler compiles an expression source into an entry condition.
type ConditionCompiler interface {
	Compile(source string) (filter.Condition, error)
}

// Compiler transforms profiles into ordered filter chains.
type Compiler struct {
	conditions ConditionCompiler // nil means expressions are rejected
}

// NewCompiler creates a new Compiler. conditions may be nil, in which case
// profiles with an expression fail to compile.
func NewCompiler(conditions ConditionCompiler) *Compiler {
	return &Compiler{conditions: conditions}
}

// Compile builds the filter chain for p. Only configured filters are included,
// in the order RequestType, RequestMethod, URL, Header, Cookie, StatusCode,
// Size, Body, Expression, Privacy, Content, VendorMetadata.
func (c *Compiler) Compile(p *profile.Profile) ([]filter.Filter, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	var chain []filter.Filter

	if !p.Types.IsZero() {
		chain = append(chain, filter.NewRequestTypeFilter(p.Types.Include, p.Types.Exclude))
	}
	if !p.Methods.IsZero() {
		chain = append(chain, filter.NewRequestMethodFilter(p.Methods.XHROnly, p.Methods.Include, p.Methods.Exclude))
	}
	if !p.URLs.IsZero() {
		chain = append(chain, filter.NewURLFilter(p.URLs.Include, p.URLs.Exclude))
	}
	if !p.Headers.IsZero() {
		chain = append(chain, filter.NewHeaderFilter(p.Headers.Include, p.Headers.Exclude))
	}
	if !p.Cookies.IsZero() {
		chain = append(chain, filter.NewCookieFilter(p.Cookies.Include, p.Cookies.Exclude))
	}
	if !p.Status.IsZero() {
		chain = append(chain, filter.NewStatusCodeFilter(p.Status.Include, p.Status.Exclude))
	}
	if !p.Size.IsZero() {
		chain = append(chain, filter.NewSizeFilter(p.Size.Min, p.Size.Max))
	}

	if len(p.Body) > 0 {
		conds := make([]filter.BodyCondition, 0, len(p.Body))
		for i, bc := range p.Body {
			cond, err := compileBodyCondition(bc)
			if err != nil {
				return nil, fmt.Errorf("%w: body[%d]: %w", profile.ErrInvalid, i, err)
			}
			conds = append(conds, cond)
		}
		chain = append(chain, filter.NewBodyFilter(conds...))
	}

	if src := strings.TrimSpace(p.Expression); src != "" {
		if c.conditions == nil {
			return nil, fmt.Errorf("%w: expression given but no expression compiler configured", profile.ErrInvalid)
		}
		cond, err := c.conditions.Compile(src)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", profile.ErrInvalid, err)
		}
		chain = append(chain, filter.NewExpressionFilter(cond))
	}

	if !p.Privacy.IsZero() {
		chain = append(chain, filter.NewPrivacyFilter(filter.PrivacyOptions{
			RemoveCookies:             p.Privacy.RemoveCookies,
			RemoveAuthTokens:          p.Privacy.RemoveAuthTokens,
			RemovePersonalIdentifiers: p.Privacy.RemovePersonalIdentifiers,
			RemoveTrackingHeaders:     p.Privacy.RemoveTrackingHeaders,
			SensitiveHeaders:          p.Privacy.SensitiveHeaders,
			SensitiveParams:           p.Privacy.SensitiveParams,
		}))
	}
	if !p.Content.IsZero() {
		chain = append(chain, filter.NewContentFilter(filter.ContentOptions{
			RemoveResponseContent: p.Content.RemoveResponse,
			RemoveRequestContent:  p.Content.RemoveRequest,
			RemoveBase64Content:   p.Content.RemoveBase64,
			MaxContentSize:        p.Content.MaxSize,
			ExcludeContentTypes:   p.Content.ExcludeTypes,
		}))
	}
	if !p.Vendor.IsZero() {
		chain = append(chain, filter.NewVendorMetadataFilter(vendorOptions(p.Vendor)))
	}

	return chain, nil
}

func vendorOptions(v profile.Vendor) filter.VendorOptions {
	if v.All {
		return filter.AllVendorOptions()
	}
	return filter.VendorOptions{
		RemoveConnectionIDs:   v.RemoveConnectionIDs,
		RemoveInitiator:       v.RemoveInitiator,
		RemovePriority:        v.RemovePriority,
		RemoveResourceType:    v.RemoveResourceType,
		RemoveInternalTimings: v.RemoveInternalTimings,
		RemoveTransferSizes:   v.RemoveTransferSizes,
	}
}

// Describe lists the applied filter settings in human-readable form.
func Describe(p *profile.Profile) []string {
	var out []string
	list := func(label string, values []string) {
		if len(values) > 0 {
			out = append(out, label+": "+strings.Join(values, ", "))
		}
	}
	flag := func(label string, on bool) {
		if on {
			out = append(out, label)
		}
	}
	bound := func(label string, v *int64) {
		if v != nil {
			out = append(out, fmt.Sprintf("%s: %d bytes", label, *v))
		}
	}

	list("Exclude types", p.Types.Exclude)
	list("Include types", p.Types.Include)
	flag("XHR/AJAX only", p.Methods.XHROnly)
	list("Include methods", p.Methods.Include)
	list("Exclude methods", p.Methods.Exclude)
	list("Include URL patterns", p.URLs.Include)
	list("Exclude URL patterns", p.URLs.Exclude)
	list("Include headers", p.Headers.Include)
	list("Exclude headers", p.Headers.Exclude)
	list("Include cookies", p.Cookies.Include)
	list("Exclude cookies", p.Cookies.Exclude)
	list("Include status codes", intsToStrings(p.Status.Include))
	list("Exclude status codes", intsToStrings(p.Status.Exclude))
	bound("Min size", p.Size.Min)
	bound("Max size", p.Size.Max)
	for _, bc := range p.Body {
		out = append(out, fmt.Sprintf("Body %s %s %q", bc.Target, describeExtractor(bc), bc.Matcher))
	}
	if src := strings.TrimSpace(p.Expression); src != "" {
		out = append(out, "Expression: "+src)
	}
	flag("Remove cookies", p.Privacy.RemoveCookies)
	flag("Remove auth tokens", p.Privacy.RemoveAuthTokens)
	flag("Remove personal identifiers", p.Privacy.RemovePersonalIdentifiers)
	flag("Remove tracking headers", p.Privacy.RemoveTrackingHeaders)
	flag("Remove response content", p.Content.RemoveResponse)
	flag("Remove request content", p.Content.RemoveRequest)
	flag("Remove base64 content", p.Content.RemoveBase64)
	bound("Max content size", p.Content.MaxSize)
	list("Exclude content types", p.Content.ExcludeTypes)
	if p.Vendor.All {
		out = append(out, "Remove capture tool data")
	} else if !p.Vendor.IsZero() {
		out = append(out, "Remove selected capture tool data")
	}
	return out
}

func describeExtractor(bc profile.BodyCondition) string {
	if bc.ContentType == "" {
		return "body"
	}
	return bc.ContentType + ":" + bc.Extractor
}

func intsToStrings(values []int) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strconv.Itoa(v))
	}
	return out
}

func compileBodyCondition(bc profile.BodyCondition) (filter.BodyCondition, error) {
	matcher, err := compileStringMatcher(bc.StringMatcher())
	if err != nil {
		return filter.BodyCondition{}, fmt.Errorf("body condition %q: %w", bc.Extractor, err)
	}

	fp := match.FieldPredicate{Field: "body:" + bc.Extractor}

	switch strings.ToLower(bc.ContentType) {
	case profile.ContentTypeJSON:
		fp.Predicate = jsonPathPredicate(bc.Extractor, matcher)
	case profile.ContentTypeXML:
		fp.Predicate = xpathPredicate(bc.Extractor, matcher)
	case profile.ContentTypeAuto:
		fp.Predicate = sniffedPredicate(bc.Extractor, matcher)
	default:
		// No content type: match against the raw body.
		fp.Field = "body"
		fp.Predicate = matcher
	}

	return filter.BodyCondition{Target: bc.Target, FieldPredicate: fp}, nil
}

func compileStringMatcher(m profile.StringMatcher) (match.Predicate, error) {
	if m.IsExact() {
		return exactPredicate(m.Exact), nil
	}
	if m.Pattern == "" {
		return match.Always(), nil
	}
	return regexPredicate(m.Pattern)
}

func exactPredicate(expected string) match.Predicate {
	return func(s string) bool {
		return s == expected
	}
}

func regexPredicate(pattern string) (match.Predicate, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid regex pattern %q: %w", pattern, err)
	}
	return func(s string) bool {
		return re.MatchString(s)
	}, nil
}

// jsonPathPredicate creates a predicate that extracts a value via JSONPath and matches it.
func jsonPathPredicate(expr string, valueMatcher match.Predicate) match.Predicate {
	return func(body string) bool {
		var data any
		if err := parseJSON(body, &data); err != nil {
			return false
		}

		result, err := jsonpath.Get(expr, data)
		if err != nil {
			return false
		}

		return valueMatcher(fmt.Sprintf("%v", result))
	}
}

func parseJSON(s string, v any) error {
	dec := strings.NewReader(s)
	return decodeJSON(dec, v)
}

// xpathPredicate creates a predicate that extracts a value via XPath and matches it.
func xpathPredicate(expr string, valueMatcher match.Predicate) match.Predicate {
	return func(body string) bool {
		doc, err := xmlquery.Parse(strings.NewReader(body))
		if err != nil {
			return false
		}

		node := xmlquery.FindOne(doc, expr)
		if node == nil {
			return false
		}

		return valueMatcher(node.InnerText())
	}
}

// sniffedPredicate picks JSONPath or XPath per body from its detected format.
func sniffedPredicate(expr string, valueMatcher match.Predicate) match.Predicate {
	byJSON := jsonPathPredicate(expr, valueMatcher)
	byXML := xpathPredicate(expr, valueMatcher)
	return func(body string) bool {
		switch InferBodyFormat(body) {
		case profile.ContentTypeJSON:
			return byJSON(body)
		case profile.ContentTypeXML:
			return byXML(body)
		default:
			return false
		}
	}
}
