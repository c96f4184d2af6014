package slug

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Separator joins transliterated tokens and replaces disallowed runs.
const Separator = "-"

var (
	disallowedRun = regexp.MustCompile(`[^a-z0-9]+`)
	slugShape     = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)
)

// Normalize builds a slug candidate from tokens.
// Tokens are joined with Separator and lower-cased; every maximal run outside
// [a-z0-9] becomes one hyphen and the result is trimmed of hyphens. Letters
// outside ASCII are not folded, so "Café" yields "caf". The result is either
// empty or satisfies Valid.
func Normalize(tokens ...string) string {
	s := lower(strings.Join(tokens, Separator))
	s = disallowedRun.ReplaceAllString(s, Separator)
	return strings.Trim(s, Separator)
}

// Valid reports whether s is a non-empty lowercase hyphenated slug.
func Valid(s string) bool {
	return slugShape.MatchString(s)
}

// lower applies the full Unicode lower-case mapping.
// A Caser keeps state, so each call gets its own.
func lower(s string) string {
	return cases.Lower(language.Und).String(s)
}
