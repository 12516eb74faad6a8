// Package token turns an HTML byte stream into the document ordered tokens
// the rewriter dispatches on. Tokenization itself is delegated to
// golang.org/x/net/html, which works on the source bytes of any ASCII
// compatible encoding.
package token

import (
	"fmt"

	"golang.org/x/net/html/atom"
)

type Kind int

const (
	Text Kind = iota
	StartTag
	EndTag
	Comment
	Doctype
)

func (k Kind) String() string {
	switch k {
	case Text:
		return "Text"
	case StartTag:
		return "StartTag"
	case EndTag:
		return "EndTag"
	case Comment:
		return "Comment"
	case Doctype:
		return "Doctype"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Attr is a start tag attribute. Name is ASCII lowercase, Value is unescaped.
// Both are UTF-8.
type Attr struct {
	Name  string
	Value string
	// RawName is the name in the document encoding, set only when that
	// encoding is not UTF-8.
	RawName []byte
}

type Token struct {
	Kind Kind
	// Name is the lowercased tag name of StartTag and EndTag tokens.
	Name string
	// RawName is Name in the document encoding, set only when that encoding
	// is not UTF-8.
	RawName []byte
	// Attrs and SelfClosing are only set on StartTag tokens.
	Attrs       []Attr
	SelfClosing bool
	// Raw holds the source bytes of the token, in the document encoding.
	Raw []byte
}

// CanHaveContent reports whether a start tag opens an element which may have
// children and an end tag.
func (t *Token) CanHaveContent() bool {
	return t.Kind == StartTag && !t.SelfClosing && !IsVoid(t.Name)
}

func (t *Token) String() string {
	return fmt.Sprintf("%s %q", t.Kind, t.Raw)
}

var voidElements = map[atom.Atom]bool{
	atom.Area:     true,
	atom.Base:     true,
	atom.Basefont: true,
	atom.Bgsound:  true,
	atom.Br:       true,
	atom.Col:      true,
	atom.Embed:    true,
	atom.Hr:       true,
	atom.Img:      true,
	atom.Input:    true,
	atom.Keygen:   true,
	atom.Link:     true,
	atom.Meta:     true,
	atom.Param:    true,
	atom.Source:   true,
	atom.Track:    true,
	atom.Wbr:      true,
}

// IsVoid reports whether name is an element which never has content.
func IsVoid(name string) bool {
	a := atom.Lookup([]byte(name))
	return a != 0 && voidElements[a]
}
