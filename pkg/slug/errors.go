package slug

import "errors"

// ErrUnsupportedCharacter is returned by a Transliterator that has no
// reading for a character it is responsible for.
var ErrUnsupportedCharacter = errors.New("slug: unsupported character")
