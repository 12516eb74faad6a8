package serialize

import (
	"bytes"
	"errors"
	"testing"

	"github.com/signadot/rewrite/charset"
	"github.com/signadot/rewrite/content"
	"github.com/signadot/rewrite/token"
)

func TestChunkEscaping(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	w.Chunk(content.HTMLChunk("<b>"))
	w.Chunk(content.TextChunk("<quz> & co"))
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "<b>&lt;quz&gt; &amp; co"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestStreamedSink(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	var kept content.Sink
	c := content.Stream(func(s content.Sink) error {
		kept = s
		if err := s.Write(content.HTMLChunk("<i>")); err != nil {
			return err
		}
		if err := s.Write(content.Stream(func(s content.Sink) error {
			return s.Write(content.TextChunk("a<b"))
		})); err != nil {
			return err
		}
		return s.Write(content.HTMLChunk("</i>"))
	})
	if err := w.Chunk(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := kept.Write(content.HTMLChunk("late")); !errors.Is(err, content.ErrSinkClosed) {
		t.Errorf("expected ErrSinkClosed, got %v", err)
	}
	if err := w.Chunk(c); !errors.Is(err, content.ErrConsumed) {
		t.Errorf("expected ErrConsumed, got %v", err)
	}
	w.Close()
	expected := "<i>a&lt;b</i>"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestStreamedError(t *testing.T) {
	boom := errors.New("boom")
	w := NewWriter(&bytes.Buffer{}, nil)
	err := w.Chunk(content.Stream(func(content.Sink) error { return boom }))
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestMutated(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(b *content.Buffer)
		expected string
	}{
		{
			name:     "keep",
			mutate:   func(b *content.Buffer) {},
			expected: "[B]<p>[A]",
		},
		{
			name:     "replace",
			mutate:   func(b *content.Buffer) { b.Replace(content.TextChunk("<r>")) },
			expected: "[B]&lt;r&gt;[A]",
		},
		{
			name:     "remove",
			mutate:   func(b *content.Buffer) { b.Remove() },
			expected: "[B][A]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			w := NewWriter(&buf, nil)
			b := &content.Buffer{}
			b.InsertBefore(content.HTMLChunk("[B]"))
			b.InsertAfter(content.HTMLChunk("[A]"))
			tt.mutate(b)
			if err := w.Mutated(b, func() error { return w.Raw([]byte("<p>")) }); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			w.Close()
			if buf.String() != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, buf.String())
			}
		})
	}
}

func TestTags(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, nil)
	w.StartTag(&token.Token{Name: "a", Attrs: []token.Attr{{Name: "href", Value: `/x?a=1&b="2"`}, {Name: "hidden"}}})
	w.StartTag(&token.Token{Name: "br", SelfClosing: true})
	w.EndTag("a")
	w.Close()
	expected := `<a href="/x?a=1&amp;b=&#34;2&#34;" hidden=""><br/></a>`
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestEncodedOutput(t *testing.T) {
	enc, err := charset.Lookup("iso-8859-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	w := NewWriter(&buf, enc)
	w.Chunk(content.TextChunk("café ☃"))
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "caf\xe9 &#9731;"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}

func TestRawIsNotEncoded(t *testing.T) {
	enc, err := charset.Lookup("windows-1252")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var buf bytes.Buffer
	w := NewWriter(&buf, enc)
	w.Raw([]byte("a\x81b"))
	w.StartTag(&token.Token{
		Name:    "p\ufffd",
		RawName: []byte("p\x81"),
		Attrs:   []token.Attr{{Name: "data-\ufffd", RawName: []byte("data-\x81"), Value: "\u20ac\r"}, {Name: "id", Value: "\u2603"}},
	})
	if err := w.Close(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "a\x81b<p\x81 data-\x81=\"\x80&#13;\" id=\"&#9731;\">"
	if buf.String() != expected {
		t.Errorf("expected %q, got %q", expected, buf.String())
	}
}
