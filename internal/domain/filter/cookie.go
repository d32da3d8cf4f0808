package filter

import "github.com/sophialabs/harcleaner/internal/domain/har"

var _ Filter = (*CookieFilter)(nil)

// CookieFilter trims request and response cookies by name with the same
// include-then-exclude reduction as HeaderFilter. It never excludes.
type CookieFilter struct {
	narrow nameNarrower
}

// NewCookieFilter creates a cookie filter matching on case-insensitive name substrings.
func NewCookieFilter(include, exclude []string) *CookieFilter {
	return &CookieFilter{narrow: newNameNarrower(include, exclude)}
}

func (f *CookieFilter) Name() string { return NameCookie }

func (f *CookieFilter) Evaluate(e *har.Entry) bool {
	if f.narrow.noop() {
		return true
	}
	e.Request.Cookies = narrowByName(e.Request.Cookies, f.narrow, cookieName)
	e.Response.Cookies = narrowByName(e.Response.Cookies, f.narrow, cookieName)
	return true
}

func cookieName(c har.Cookie) string { return c.Name }
