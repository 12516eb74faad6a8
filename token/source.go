package token

import (
	"bytes"
	"fmt"
	"io"

	"github.com/signadot/rewrite/charset"

	"golang.org/x/net/html"
)

// SourceOpt configures a Source.
type SourceOpt func(*sourceOpts)

type sourceOpts struct {
	maxBuf int
	enc    *charset.Encoding
}

// MaxBuf bounds the bytes buffered for a single token; 0 means unbounded.
// A token exceeding the limit fails Read with html.ErrBufferExceeded.
func MaxBuf(n int) SourceOpt {
	return func(o *sourceOpts) { o.maxBuf = n }
}

// Encoding sets the document encoding, UTF-8 by default. Tag names and
// attributes are decoded from it; Raw is left as read.
func Encoding(enc *charset.Encoding) SourceOpt {
	return func(o *sourceOpts) { o.enc = enc }
}

// Source provides streaming tokenization from an io.Reader. Only the bytes of
// the current token are buffered.
type Source struct {
	z   *html.Tokenizer
	enc *charset.Encoding
	err error
}

// NewSource creates a Source reading HTML from r.
func NewSource(r io.Reader, opts ...SourceOpt) *Source {
	opt := &sourceOpts{enc: charset.UTF8}
	for _, o := range opts {
		o(opt)
	}
	z := html.NewTokenizer(r)
	if opt.maxBuf > 0 {
		z.SetMaxBuf(opt.maxBuf)
	}
	return &Source{z: z, enc: opt.enc}
}

// Read returns the next token. At the end of the input it returns io.EOF, on
// every subsequent call as well.
func (s *Source) Read() (*Token, error) {
	if s.err != nil {
		return nil, s.err
	}
	tt := s.z.Next()
	if tt == html.ErrorToken {
		s.err = s.z.Err()
		return nil, s.err
	}
	// Raw must be copied before TagName and TagAttr, which lowercase the
	// tokenizer's buffer in place.
	tok := &Token{Raw: bytes.Clone(s.z.Raw())}
	switch tt {
	case html.TextToken:
		tok.Kind = Text
	case html.CommentToken:
		tok.Kind = Comment
	case html.DoctypeToken:
		tok.Kind = Doctype
	case html.StartTagToken, html.SelfClosingTagToken:
		tok.Kind = StartTag
		tok.SelfClosing = tt == html.SelfClosingTagToken
		readTag(s.z, tok)
	case html.EndTagToken:
		tok.Kind = EndTag
		readTag(s.z, tok)
	}
	if tok.Kind == StartTag || tok.Kind == EndTag {
		if err := s.decodeTag(tok); err != nil {
			s.err = err
			return nil, err
		}
	}
	return tok, nil
}

func readTag(z *html.Tokenizer, tok *Token) {
	name, more := z.TagName()
	tok.Name = string(name)
	var attrs []Attr
	for more {
		var k, v []byte
		k, v, more = z.TagAttr()
		attrs = append(attrs, Attr{Name: string(k), Value: string(v)})
	}
	tok.Attrs = attrs
}

// decodeTag replaces the tag name and attributes read from source bytes by
// their UTF-8 form, keeping the source names in RawName. The decoded tag is
// tokenized again so that character references in attribute values resolve
// against decoded text.
func (s *Source) decodeTag(tok *Token) error {
	if s.enc.IsUTF8() {
		return nil
	}
	decoded, err := s.enc.Decode(tok.Raw)
	if err != nil {
		return fmt.Errorf("decoding %q: %w", tok.Raw, err)
	}
	src := *tok
	z := html.NewTokenizer(bytes.NewReader(decoded))
	switch z.Next() {
	case html.StartTagToken, html.SelfClosingTagToken, html.EndTagToken:
		readTag(z, tok)
	}
	tok.RawName = []byte(src.Name)
	if len(tok.Attrs) != len(src.Attrs) {
		// No name mapping; the decoded attributes render from Name.
		return nil
	}
	for i := range tok.Attrs {
		tok.Attrs[i].RawName = []byte(src.Attrs[i].Name)
	}
	return nil
}
