package rewrite

import (
	"strings"
	"unicode/utf8"

	"github.com/signadot/rewrite/charset"
)

func isASCIIAlpha(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

func checkTagName(name string, enc *charset.Encoding) error {
	if name == "" {
		return &TagNameError{Kind: NameEmpty}
	}
	if !isASCIIAlpha(name[0]) {
		r, _ := utf8.DecodeRuneInString(name)
		return &TagNameError{Kind: InvalidFirstCharacter, Name: name, Char: r}
	}
	if i := strings.IndexAny(name, " \n\r\t\f/>"); i >= 0 {
		return &TagNameError{Kind: ForbiddenCharacter, Name: name, Char: rune(name[i])}
	}
	if r, bad := enc.Unencodable(name); bad {
		return &TagNameError{Kind: UnencodableCharacter, Name: name, Char: r}
	}
	return nil
}

func checkAttributeName(name string, enc *charset.Encoding) error {
	if name == "" {
		return &AttributeNameError{Kind: NameEmpty}
	}
	if i := strings.IndexAny(name, " \n\r\t\f/>=\"'\x00"); i >= 0 {
		return &AttributeNameError{Kind: ForbiddenCharacter, Name: name, Char: rune(name[i])}
	}
	if r, bad := enc.Unencodable(name); bad {
		return &AttributeNameError{Kind: UnencodableCharacter, Name: name, Char: r}
	}
	return nil
}

// lowerASCII lowercases ASCII letters only, as HTML does for names.
func lowerASCII(s string) string {
	for i := 0; i < len(s); i++ {
		if 'A' <= s[i] && s[i] <= 'Z' {
			b := []byte(s)
			for j := i; j < len(b); j++ {
				if 'A' <= b[j] && b[j] <= 'Z' {
					b[j] += 'a' - 'A'
				}
			}
			return string(b)
		}
	}
	return s
}
