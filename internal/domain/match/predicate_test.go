package match_test

import (
	"testing"

	"github.com/sophialabs/harcleaner/internal/domain/match"
)

func TestAnd(t *testing.T) {
	p := match.And(
		func(s string) bool { return len(s) > 2 },
		func(s string) bool { return s[0] == 'a' },
	)

	if !p("abc") {
		t.Error("expected match for 'abc'")
	}
	if p("ab") {
		t.Error("expected no match for 'ab'")
	}
	if p("xyz") {
		t.Error("expected no match for 'xyz'")
	}
}

func TestOr(t *testing.T) {
	p := match.Or(
		func(s string) bool { return s == "hello" },
		func(s string) bool { return s == "world" },
	)

	if !p("hello") {
		t.Error("expected match for 'hello'")
	}
	if !p("world") {
		t.Error("expected match for 'world'")
	}
	if p("other") {
		t.Error("expected no match for 'other'")
	}
}

func TestNot(t *testing.T) {
	p := match.Not(func(s string) bool { return s == "no" })

	if !p("yes") {
		t.Error("expected match for 'yes'")
	}
	if p("no") {
		t.Error("expected no match for 'no'")
	}
}

func TestAlways(t *testing.T) {
	p := match.Always()
	if !p("anything") {
		t.Error("Always should match everything")
	}
}

func TestNever(t *testing.T) {
	p := match.Never()
	if p("anything") {
		t.Error("Never should match nothing")
	}
}

func TestAndEmpty(t *testing.T) {
	p := match.And()
	if !p("anything") {
		t.Error("And with no predicates should match")
	}
}

func TestOrEmpty(t *testing.T) {
	p := match.Or()
	if p("anything") {
		t.Error("Or with no predicates should not match")
	}
}

func TestContainsAnyFold(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		value    string
		want     bool
	}{
		{"case-insensitive hit", []string{"API"}, "https://example.com/api/users", true},
		{"second pattern", []string{"nope", "users"}, "/Users/1", true},
		{"miss", []string{"admin"}, "/api/users", false},
		{"no patterns", nil, "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := match.ContainsAnyFold(tt.patterns...)(tt.value); got != tt.want {
				t.Errorf("ContainsAnyFold(%v)(%q) = %v, want %v", tt.patterns, tt.value, got, tt.want)
			}
		})
	}
}

func TestEqualsAnyFold(t *testing.T) {
	p := match.EqualsAnyFold("cookie", "set-cookie")

	if !p("Set-Cookie") {
		t.Error("expected match for Set-Cookie")
	}
	if p("X-Cookie-Id") {
		t.Error("expected no match for X-Cookie-Id")
	}
}

func TestHasPrefixAnyFold(t *testing.T) {
	p := match.HasPrefixAnyFold("x-devtools-", "x-chrome-")

	if !p("X-DevTools-Emulated") {
		t.Error("expected prefix match")
	}
	if p("X-Request-Chrome-Id") {
		t.Error("expected no match when prefix only appears mid-name")
	}
}
