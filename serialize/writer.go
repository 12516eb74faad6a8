// Package serialize writes rewritten markup. Untouched source bytes are
// copied as they are; queued content chunks and re-rendered tags are
// encoded into the document encoding.
package serialize

import (
	"io"

	"github.com/signadot/rewrite/charset"
	"github.com/signadot/rewrite/content"
	"github.com/signadot/rewrite/token"

	"golang.org/x/net/html"
)

// Writer is not safe for concurrent use. The first write error is sticky.
type Writer struct {
	out io.Writer
	enc *charset.Encoding
	err error
}

// NewWriter returns a Writer encoding to w. A nil enc means UTF-8.
func NewWriter(w io.Writer, enc *charset.Encoding) *Writer {
	if enc == nil {
		enc = charset.UTF8
	}
	return &Writer{out: w, enc: enc}
}

// Raw writes bytes already in the document encoding unchanged.
func (w *Writer) Raw(p []byte) error {
	return w.write(p)
}

func (w *Writer) write(p []byte) error {
	if w.err != nil {
		return w.err
	}
	_, w.err = w.out.Write(p)
	return w.err
}

// writeString writes UTF-8 text in the document encoding, using numeric
// character references for runes the encoding lacks.
func (w *Writer) writeString(s string) error {
	if w.err != nil {
		return w.err
	}
	if s, w.err = w.enc.Encode(s); w.err != nil {
		return w.err
	}
	_, w.err = io.WriteString(w.out, s)
	return w.err
}

// name writes a tag or attribute name, from its source bytes when it has
// them.
func (w *Writer) name(s string, raw []byte) error {
	if raw != nil {
		return w.write(raw)
	}
	return w.writeString(s)
}

// Chunk writes c, escaping Text literals and running streamed producers.
func (w *Writer) Chunk(c content.Chunk) error {
	switch c := c.(type) {
	case content.Literal:
		if c.Type == content.Text {
			return w.writeString(html.EscapeString(c.Data))
		}
		return w.writeString(c.Data)
	case *content.Streamed:
		s := &sink{w: w}
		err := c.Produce(s)
		s.w = nil
		if err != nil {
			return err
		}
		return w.err
	case nil:
		return nil
	}
	return w.err
}

// Chunks writes cs in order.
func (w *Writer) Chunks(cs []content.Chunk) error {
	for _, c := range cs {
		if err := w.Chunk(c); err != nil {
			return err
		}
	}
	return nil
}

// Mutated writes a tag occurrence resolved against its mutation buffer:
// the content queued before it, then the tag itself by way of writeTag,
// its replacement, or nothing, then the content queued after it.
func (w *Writer) Mutated(b *content.Buffer, writeTag func() error) error {
	if b.Empty() {
		return writeTag()
	}
	if err := w.Chunks(b.Before); err != nil {
		return err
	}
	switch d, repl := b.Disposition(); d {
	case content.Keep:
		if err := writeTag(); err != nil {
			return err
		}
	case content.Replace:
		if err := w.Chunk(repl); err != nil {
			return err
		}
	}
	return w.Chunks(b.After)
}

// StartTag renders the start tag tok. Attribute values are always double
// quoted and escaped with html.EscapeString, which also turns carriage
// returns into &#13; so they survive reparsing.
func (w *Writer) StartTag(tok *token.Token) error {
	w.writeString("<")
	w.name(tok.Name, tok.RawName)
	for _, a := range tok.Attrs {
		w.writeString(" ")
		w.name(a.Name, a.RawName)
		w.writeString(`="`)
		w.writeString(html.EscapeString(a.Value))
		w.writeString(`"`)
	}
	if tok.SelfClosing {
		return w.writeString("/>")
	}
	return w.writeString(">")
}

// EndTag renders an end tag.
func (w *Writer) EndTag(name string) error {
	w.writeString("</")
	w.writeString(name)
	return w.writeString(">")
}

// Close reports the first write error. It does not close the underlying
// writer.
func (w *Writer) Close() error {
	return w.err
}

// sink is handed to a single producer call.
type sink struct {
	w *Writer
}

func (s *sink) Write(c content.Chunk) error {
	if s.w == nil {
		return content.ErrSinkClosed
	}
	return s.w.Chunk(c)
}
