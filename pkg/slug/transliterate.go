package slug

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

// Transliterator converts a display string into Latin tokens in reading order.
// Implementations must be deterministic and free of side effects.
type Transliterator interface {
	Transliterate(s string) ([]string, error)
}

// TransliteratorFunc adapts a plain function to the Transliterator interface.
type TransliteratorFunc func(s string) ([]string, error)

// Transliterate calls f(s).
func (f TransliteratorFunc) Transliterate(s string) ([]string, error) {
	return f(s)
}

// Pinyin transliterates Han characters to toneless pinyin.
type Pinyin struct {
	args pinyin.Args
}

// NewPinyin returns a Transliterator that yields one token per Han character
// (first reading, no tone marks) and one token per run of other characters.
func NewPinyin() *Pinyin {
	args := pinyin.NewArgs()
	args.Style = pinyin.Normal
	args.Heteronym = false
	return &Pinyin{args: args}
}

// Transliterate implements Transliterator.
// It returns ErrUnsupportedCharacter when a Han character has no reading.
func (p *Pinyin) Transliterate(s string) ([]string, error) {
	tokens := make([]string, 0, len(s))
	var run strings.Builder

	flush := func() {
		if run.Len() > 0 {
			tokens = append(tokens, run.String())
			run.Reset()
		}
	}

	for _, r := range s {
		if !unicode.Is(unicode.Han, r) {
			run.WriteRune(r)
			continue
		}
		flush()

		reading := pinyin.LazyPinyin(string(r), p.args)
		if len(reading) == 0 || reading[0] == "" {
			return nil, fmt.Errorf("%w: %q", ErrUnsupportedCharacter, r)
		}
		tokens = append(tokens, reading[0])
	}
	flush()

	return tokens, nil
}
