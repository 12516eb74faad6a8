package rewrite

import (
	"github.com/signadot/rewrite/charset"
	"github.com/signadot/rewrite/content"
	"github.com/signadot/rewrite/serialize"
	"github.com/signadot/rewrite/token"
)

// startTag is one start tag occurrence. It is emitted from its source bytes
// unless its name or attributes were changed.
type startTag struct {
	name        string
	rawName     []byte
	attrs       []token.Attr
	selfClosing bool
	raw         []byte
	dirty       bool
	enc         *charset.Encoding

	mutations content.Buffer
}

func newStartTag(tok *token.Token, enc *charset.Encoding) *startTag {
	return &startTag{
		name:        tok.Name,
		rawName:     tok.RawName,
		attrs:       tok.Attrs,
		selfClosing: tok.SelfClosing,
		raw:         tok.Raw,
		enc:         enc,
	}
}

func (t *startTag) setName(name string) error {
	if err := checkTagName(name, t.enc); err != nil {
		return err
	}
	t.name = name
	t.rawName = nil
	t.dirty = true
	return nil
}

func (t *startTag) attribute(name string) (string, bool) {
	name = lowerASCII(name)
	for i := range t.attrs {
		if t.attrs[i].Name == name {
			return t.attrs[i].Value, true
		}
	}
	return "", false
}

func (t *startTag) setAttribute(name, value string) error {
	if err := checkAttributeName(name, t.enc); err != nil {
		return err
	}
	name = lowerASCII(name)
	t.dirty = true
	for i := range t.attrs {
		if t.attrs[i].Name == name {
			t.attrs[i].Value = value
			return nil
		}
	}
	t.attrs = append(t.attrs, token.Attr{Name: name, Value: value})
	return nil
}

func (t *startTag) removeAttribute(name string) {
	name = lowerASCII(name)
	for i := range t.attrs {
		if t.attrs[i].Name == name {
			t.attrs = append(t.attrs[:i], t.attrs[i+1:]...)
			t.dirty = true
			return
		}
	}
}

func (t *startTag) write(w *serialize.Writer) error {
	return w.Mutated(&t.mutations, func() error {
		if !t.dirty {
			return w.Raw(t.raw)
		}
		return w.StartTag(&token.Token{
			Kind:        token.StartTag,
			Name:        t.name,
			RawName:     t.rawName,
			Attrs:       t.attrs,
			SelfClosing: t.selfClosing,
		})
	})
}

// EndTag is an end tag occurrence, as handed to end tag handlers.
type EndTag struct {
	name  string
	raw   []byte
	dirty bool
	enc   *charset.Encoding

	mutations content.Buffer
}

func newEndTag(tok *token.Token, enc *charset.Encoding) *EndTag {
	return &EndTag{name: tok.Name, raw: tok.Raw, enc: enc}
}

// Name returns the tag name.
func (t *EndTag) Name() string {
	return t.name
}

// SetName renames the tag. On error the name is unchanged.
func (t *EndTag) SetName(name string) error {
	if err := checkTagName(name, t.enc); err != nil {
		return err
	}
	t.rename(name)
	return nil
}

func (t *EndTag) rename(name string) {
	t.name = name
	t.dirty = true
}

// Before inserts content before the tag, after anything inserted there
// earlier.
func (t *EndTag) Before(s string, ct content.Type) {
	t.mutations.InsertBefore(content.New(s, ct))
}

// After inserts content directly after the tag, ahead of anything inserted
// there earlier.
func (t *EndTag) After(s string, ct content.Type) {
	t.mutations.InsertAfter(content.New(s, ct))
}

// Replace replaces the tag with content.
func (t *EndTag) Replace(s string, ct content.Type) {
	t.mutations.Replace(content.New(s, ct))
}

// Remove removes the tag, leaving content inserted around it.
func (t *EndTag) Remove() {
	t.mutations.Remove()
}

// Removed reports whether the tag was replaced or removed.
func (t *EndTag) Removed() bool {
	return t.mutations.Removed()
}

func (t *EndTag) write(w *serialize.Writer) error {
	return w.Mutated(&t.mutations, func() error {
		if !t.dirty {
			return w.Raw(t.raw)
		}
		return w.EndTag(t.name)
	})
}
