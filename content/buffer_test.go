package content

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func literals(t *testing.T, cs []Chunk) []string {
	t.Helper()
	res := make([]string, 0, len(cs))
	for _, c := range cs {
		l, ok := c.(Literal)
		if !ok {
			t.Fatalf("expected literal, got %T", c)
		}
		res = append(res, l.Data)
	}
	return res
}

func TestBufferInsertBeforeKeepsCallOrder(t *testing.T) {
	b := &Buffer{}
	b.InsertBefore(HTMLChunk("1"))
	b.InsertBefore(HTMLChunk("2"))
	b.InsertBefore(TextChunk("3"))
	if diff := cmp.Diff([]string{"1", "2", "3"}, literals(t, b.Before)); diff != "" {
		t.Errorf("before mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferInsertAfterLatestNearest(t *testing.T) {
	b := &Buffer{}
	b.InsertAfter(HTMLChunk("1"))
	b.InsertAfter(HTMLChunk("2"))
	b.InsertAfter(HTMLChunk("3"))
	if diff := cmp.Diff([]string{"3", "2", "1"}, literals(t, b.After)); diff != "" {
		t.Errorf("after mismatch (-want +got):\n%s", diff)
	}
}

func TestBufferDisposition(t *testing.T) {
	b := &Buffer{}
	if !b.Empty() {
		t.Error("new buffer should be empty")
	}
	if d, _ := b.Disposition(); d != Keep {
		t.Errorf("expected keep, got %s", d)
	}
	b.Replace(HTMLChunk("a"))
	b.Replace(TextChunk("b"))
	d, c := b.Disposition()
	if d != Replace {
		t.Fatalf("expected replace, got %s", d)
	}
	if diff := cmp.Diff(Chunk(Literal{Data: "b", Type: Text}), c); diff != "" {
		t.Errorf("replacement mismatch (-want +got):\n%s", diff)
	}
	if !b.Removed() {
		t.Error("replaced tag should report removed")
	}
	b.InsertBefore(HTMLChunk("x"))
	b.Remove()
	if d, c := b.Disposition(); d != Remove || c != nil {
		t.Errorf("expected remove without replacement, got %s %v", d, c)
	}
	if len(b.Before) != 1 {
		t.Error("remove must not touch queued content")
	}
}

type sliceSink struct {
	got []Chunk
}

func (s *sliceSink) Write(c Chunk) error {
	s.got = append(s.got, c)
	return nil
}

func TestStreamedProducedOnce(t *testing.T) {
	calls := 0
	c := Stream(func(s Sink) error {
		calls++
		return s.Write(TextChunk("hi"))
	})
	st, ok := c.(*Streamed)
	if !ok {
		t.Fatalf("expected *Streamed, got %T", c)
	}
	sink := &sliceSink{}
	if err := st.Produce(sink); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := st.Produce(sink); !errors.Is(err, ErrConsumed) {
		t.Errorf("expected ErrConsumed, got %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
	if len(sink.got) != 1 {
		t.Errorf("expected 1 chunk, got %d", len(sink.got))
	}
}

func TestParseType(t *testing.T) {
	for _, ty := range []Type{HTML, Text} {
		got, err := ParseType(ty.String())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != ty {
			t.Errorf("expected %s, got %s", ty, got)
		}
	}
	if _, err := ParseType("xml"); err == nil {
		t.Error("expected error for unknown type")
	}
}
