// Package names canonicalizes team names into stable comparison keys.
//
// Normalize is the only equality test for team names; no other package
// compares raw provider names directly.
package names

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Separator joins the alphanumeric runs of a normalized name.
const Separator = " "

// fold lowercases s and strips combining marks so "José" compares as "jose".
func fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// join keeps runs of [a-z0-9] and joins them with sep.
func join(s, sep string) string {
	var b strings.Builder
	b.Grow(len(s))
	pending := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			if pending && b.Len() > 0 {
				b.WriteString(sep)
			}
			pending = false
			b.WriteByte(c)
			continue
		}
		pending = true
	}
	return b.String()
}

// Normalize returns the canonical comparison form of name: lowercase,
// accent-folded, non-alphanumeric runs collapsed to a single space, trimmed.
// It is total and idempotent; the empty string maps to itself.
func Normalize(name string) string {
	if name == "" {
		return ""
	}
	return join(fold(name), Separator)
}

// Equal reports whether a and b normalize to the same key.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// Slug returns a URL/file-safe form of name, e.g. "Texas A&M Aggies" -> "texas-a-and-m-aggies".
func Slug(name string) string {
	if name == "" {
		return ""
	}
	s := strings.ReplaceAll(fold(name), "&", " and ")
	return join(s, "-")
}
