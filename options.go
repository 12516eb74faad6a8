package rewrite

import (
	"log/slog"

	"github.com/signadot/rewrite/charset"
	"github.com/signadot/rewrite/selector"
)

// Option configures a Rewriter.
type Option func(*settings)

type settings struct {
	enc          *charset.Encoding
	log          *slog.Logger
	maxTokenSize int
	elements     []elementHandler
	documentEnd  []DocumentEndHandler
}

type elementHandler struct {
	sel selector.Selector
	fn  ElementHandler
}

// WithEncoding sets the document encoding used both to read the input and
// to write the output. The default is UTF-8.
func WithEncoding(enc *charset.Encoding) Option {
	return func(s *settings) { s.enc = enc }
}

// WithLogger sets the logger for debug tracing. By default nothing is
// logged.
func WithLogger(l *slog.Logger) Option {
	return func(s *settings) { s.log = l }
}

// WithMaxTokenSize bounds the bytes buffered for one token.
func WithMaxTokenSize(n int) Option {
	return func(s *settings) { s.maxTokenSize = n }
}

// OnElement calls fn for every start tag matching sel. Handlers matching
// the same start tag run in registration order and share one Element.
func OnElement(sel selector.Selector, fn ElementHandler) Option {
	return func(s *settings) {
		s.elements = append(s.elements, elementHandler{sel: sel, fn: fn})
	}
}

// OnDocumentEnd calls fn after the last token was written.
func OnDocumentEnd(fn DocumentEndHandler) Option {
	return func(s *settings) {
		s.documentEnd = append(s.documentEnd, fn)
	}
}
