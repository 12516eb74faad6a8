// Package charset converts between a document's declared byte encoding and
// the UTF-8 handlers work in.
package charset

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
)

// Encoding is an ASCII compatible document encoding.
type Encoding struct {
	name string
	enc  encoding.Encoding
	utf8 bool
}

// UTF8 is the default document encoding.
var UTF8 = &Encoding{name: "utf-8", enc: unicode.UTF8, utf8: true}

// Lookup finds an encoding by one of its WHATWG labels, e.g. "latin1" or
// "windows-1251".
func Lookup(label string) (*Encoding, error) {
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, label)
	}
	switch name {
	case "utf-8":
		return UTF8, nil
	case "utf-16be", "utf-16le", "replacement":
		return nil, fmt.Errorf("%w: %q", ErrNotASCIICompatible, name)
	}
	return &Encoding{name: name, enc: enc}, nil
}

// Name returns the canonical WHATWG name.
func (e *Encoding) Name() string {
	return e.name
}

func (e *Encoding) String() string {
	return e.name
}

// Unencodable returns the first rune in s which has no representation in e.
// Invalid UTF-8 is reported as utf8.RuneError.
func (e *Encoding) Unencodable(s string) (rune, bool) {
	var enc *encoding.Encoder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			return r, true
		}
		if r >= utf8.RuneSelf && !e.utf8 {
			if enc == nil {
				enc = e.enc.NewEncoder()
			}
			if _, err := enc.String(s[i : i+size]); err != nil {
				return r, true
			}
		}
		i += size
	}
	return 0, false
}

// Decode converts source bytes in e to UTF-8. Bytes without a mapping
// become U+FFFD.
func (e *Encoding) Decode(p []byte) ([]byte, error) {
	if e.utf8 {
		return p, nil
	}
	return e.enc.NewDecoder().Bytes(p)
}

// Encode converts s to e. Runes e cannot represent are written as numeric
// character references.
func (e *Encoding) Encode(s string) (string, error) {
	if e.utf8 {
		return s, nil
	}
	return encoding.HTMLEscapeUnsupported(e.enc.NewEncoder()).String(s)
}

// IsUTF8 reports whether e is UTF-8, in which case source bytes need no
// conversion.
func (e *Encoding) IsUTF8() bool {
	return e.utf8
}
