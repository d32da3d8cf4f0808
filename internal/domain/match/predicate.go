package match

import "strings"

// Predicate tests a string value and returns true if it matches.
type Predicate func(string) bool

// And returns a predicate that requires all predicates to match.
func And(predicates ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range predicates {
			if !p(s) {
				return false
			}
		}
		return true
	}
}

// Or returns a predicate that requires at least one predicate to match.
func Or(predicates ...Predicate) Predicate {
	return func(s string) bool {
		for _, p := range predicates {
			if p(s) {
				return true
			}
		}
		return false
	}
}

// Not returns a predicate that inverts the given predicate.
func Not(p Predicate) Predicate {
	return func(s string) bool {
		return !p(s)
	}
}

// Always returns a predicate that always matches.
func Always() Predicate {
	return func(string) bool { return true }
}

// Never returns a predicate that never matches.
func Never() Predicate {
	return func(string) bool { return false }
}

// ContainsAnyFold matches values containing any of the patterns, ignoring case.
// With no patterns it never matches.
func ContainsAnyFold(patterns ...string) Predicate {
	lowered := lowerAll(patterns)
	return func(s string) bool {
		ls := strings.ToLower(s)
		for _, p := range lowered {
			if strings.Contains(ls, p) {
				return true
			}
		}
		return false
	}
}

// EqualsAnyFold matches values equal to any of the candidates, ignoring case.
func EqualsAnyFold(candidates ...string) Predicate {
	return func(s string) bool {
		for _, c := range candidates {
			if strings.EqualFold(s, c) {
				return true
			}
		}
		return false
	}
}

// HasPrefixAnyFold matches values starting with any of the prefixes, ignoring case.
func HasPrefixAnyFold(prefixes ...string) Predicate {
	lowered := lowerAll(prefixes)
	return func(s string) bool {
		ls := strings.ToLower(s)
		for _, p := range lowered {
			if strings.HasPrefix(ls, p) {
				return true
			}
		}
		return false
	}
}

// FieldPredicate binds a named field to its compiled predicate.
type FieldPredicate struct {
	Field     string
	Predicate Predicate
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}
