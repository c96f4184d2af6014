// Package slug turns product display names into URL-safe identifiers.
//
// Slug generation is split into two independent steps so the reading
// convention can be swapped without touching the character rules:
//
//   - A [Transliterator] converts an arbitrary Unicode string into Latin
//     tokens in reading order. [NewPinyin] maps each Han character to its
//     toneless pinyin reading and passes every other run through unchanged.
//   - [Normalize] joins tokens with a hyphen, lower-cases them and
//     collapses every run of characters outside [a-z0-9] into a single
//     hyphen. Accented letters count as outside that set.
//
// Basic usage:
//
//	import "github.com/dmitrymomot/softshop/pkg/slug"
//
//	tokens, err := slug.NewPinyin().Transliterate("微软365")
//	if err != nil {
//		tokens = []string{"微软365"}
//	}
//	s := slug.Normalize(tokens...)
//	// Output: "wei-ruan-365"
//
//	s = slug.Normalize("Café & Restaurant")
//	// Output: "caf-restaurant"
//
// Normalize may return an empty string for input made only of symbols.
// Choosing a fallback is left to the caller, which usually knows an id.
//
// [Valid] reports whether a string already has slug shape:
//
//	slug.Valid("office-365")   // true
//	slug.Valid("-office--365") // false
package slug
