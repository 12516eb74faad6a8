// Package content holds the units of content a rewrite can insert around or
// in place of markup, and the per-tag buffers that queue them.
//
// A Chunk is either a Literal, carrying its data and the way it must be
// escaped, or a Streamed chunk whose bytes are produced lazily, exactly once,
// when the serializer reaches its position in the output.
package content

import "fmt"

// Type tells the serializer how to escape literal content.
type Type int

const (
	// HTML content is emitted verbatim.
	HTML Type = iota
	// Text content is escaped so that it renders as plain text.
	Text
)

func (t Type) String() string {
	switch t {
	case HTML:
		return "html"
	case Text:
		return "text"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ParseType is the inverse of Type.String.
func ParseType(s string) (Type, error) {
	switch s {
	case "html":
		return HTML, nil
	case "text":
		return Text, nil
	}
	return 0, fmt.Errorf("unknown content type %q", s)
}

// Chunk is a Literal or a *Streamed.
type Chunk interface {
	chunk()
}

// Literal is content known at the time it is queued.
type Literal struct {
	Data string
	Type Type
}

func (Literal) chunk() {}

// Sink accepts content while a Producer runs. A sink is only valid for the
// duration of the producer call it was passed to.
type Sink interface {
	Write(c Chunk) error
}

// Producer writes content to a sink. It is called at most once.
type Producer func(s Sink) error

// Streamed is content produced when its position in the output is reached.
type Streamed struct {
	produce Producer
}

func (*Streamed) chunk() {}

// Produce runs the producer against s. A Streamed chunk can only be
// produced once; later calls return ErrConsumed.
func (s *Streamed) Produce(sink Sink) error {
	p := s.produce
	if p == nil {
		return ErrConsumed
	}
	s.produce = nil
	return p(sink)
}

// HTMLChunk is shorthand for Literal{data, HTML}.
func HTMLChunk(data string) Chunk {
	return Literal{Data: data, Type: HTML}
}

// TextChunk is shorthand for Literal{data, Text}.
func TextChunk(data string) Chunk {
	return Literal{Data: data, Type: Text}
}

// New returns a literal chunk of the given type.
func New(data string, t Type) Chunk {
	return Literal{Data: data, Type: t}
}

// Stream returns a chunk whose content is written by p at flush time.
func Stream(p Producer) Chunk {
	return &Streamed{produce: p}
}
