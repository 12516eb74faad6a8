package rewrite

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/signadot/rewrite/charset"
	"github.com/signadot/rewrite/content"
	"github.com/signadot/rewrite/debug"
	"github.com/signadot/rewrite/serialize"
	"github.com/signadot/rewrite/token"
)

// Rewriter rewrites HTML streams with the handlers it was built with. A
// Rewriter holds no per-document state and may be used concurrently.
type Rewriter struct {
	s settings
}

// New creates a Rewriter.
func New(opts ...Option) *Rewriter {
	r := &Rewriter{}
	for _, o := range opts {
		o(&r.s)
	}
	if r.s.enc == nil {
		r.s.enc = charset.UTF8
	}
	if r.s.log == nil {
		r.s.log = slog.New(slog.DiscardHandler)
	}
	return r
}

// Rewrite reads the document from src and writes the rewritten document to
// dst as it goes. An error from a handler or content producer stops the
// rewrite; whatever was written to dst up to that point stays written.
func (r *Rewriter) Rewrite(ctx context.Context, dst io.Writer, src io.Reader) error {
	opts := []token.SourceOpt{token.Encoding(r.s.enc)}
	if r.s.maxTokenSize > 0 {
		opts = append(opts, token.MaxBuf(r.s.maxTokenSize))
	}
	st := &state{
		s:   &r.s,
		log: r.s.log,
		src: token.NewSource(src, opts...),
		out: serialize.NewWriter(dst, r.s.enc),
	}
	err := st.run(ctx)
	if cerr := st.out.Close(); err == nil {
		err = cerr
	}
	return err
}

// RewriteString rewrites a whole document held in memory.
func (r *Rewriter) RewriteString(doc string) (string, error) {
	var sb strings.Builder
	err := r.Rewrite(context.Background(), &sb, strings.NewReader(doc))
	return sb.String(), err
}

// openElement is the slot of an element whose end tag has not been read.
type openElement struct {
	name          string
	handler       EndTagHandler
	removeContent bool
}

type state struct {
	s   *settings
	log *slog.Logger
	src *token.Source
	out *serialize.Writer

	open []openElement
	// removing counts open elements whose content is being removed; while
	// it is positive, input tokens are not written.
	removing int
}

func (st *state) run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		tok, err := st.src.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("%w: %w", ErrTokenize, err)
		}
		if debug.Tokens() {
			st.log.Debug("token", "kind", tok.Kind, "raw", string(tok.Raw), "depth", len(st.open))
		}
		switch tok.Kind {
		case token.StartTag:
			err = st.startTag(tok)
		case token.EndTag:
			err = st.endTag(tok)
		default:
			if st.removing == 0 {
				err = st.out.Raw(tok.Raw)
			} else if debug.Content() {
				st.log.Debug("dropping removed content", "kind", tok.Kind, "raw", string(tok.Raw))
			}
		}
		if err != nil {
			return err
		}
	}
	for i := len(st.open) - 1; i >= 0; i-- {
		st.discard(st.open[i], "end of input")
	}
	st.open = nil
	d := &DocumentEnd{out: st.out}
	for _, fn := range st.s.documentEnd {
		if err := fn(d); err != nil {
			return fmt.Errorf("document end: %w", err)
		}
	}
	return nil
}

func (st *state) startTag(tok *token.Token) error {
	canHaveContent := tok.CanHaveContent()
	if st.removing > 0 {
		if debug.Content() {
			st.log.Debug("dropping removed content", "kind", tok.Kind, "raw", string(tok.Raw))
		}
		if canHaveContent {
			st.open = append(st.open, openElement{name: tok.Name})
		}
		return nil
	}
	tag := newStartTag(tok, st.s.enc)
	el := newElement(tag, canHaveContent)

	// Selectors see the tag as it was read, before any handler changes it.
	var matched []ElementHandler
	for _, h := range st.s.elements {
		if h.sel.Match(el) {
			matched = append(matched, h.fn)
		}
	}
	if debug.Dispatch() && len(matched) > 0 {
		st.log.Debug("element handlers", "tag", tok.Name, "count", len(matched))
	}
	for _, fn := range matched {
		if err := fn(el); err != nil {
			el.closed = true
			return fmt.Errorf("element <%s>: %w", tok.Name, err)
		}
	}
	handler := el.close()

	if err := tag.write(st.out); err != nil {
		return err
	}
	if canHaveContent {
		st.open = append(st.open, openElement{
			name:          tok.Name,
			handler:       handler,
			removeContent: el.removeContent,
		})
		if el.removeContent {
			st.removing++
		}
	}
	return nil
}

func (st *state) endTag(tok *token.Token) error {
	i := len(st.open) - 1
	for ; i >= 0; i-- {
		if st.open[i].name == tok.Name {
			break
		}
	}
	if i < 0 {
		if st.removing > 0 {
			return nil
		}
		return st.out.Raw(tok.Raw)
	}
	for j := len(st.open) - 1; j > i; j-- {
		st.discard(st.open[j], "implicitly closed by </"+tok.Name+">")
	}
	slot := st.open[i]
	st.open = st.open[:i]
	if slot.removeContent {
		st.removing--
	}
	if st.removing > 0 {
		return nil
	}
	end := newEndTag(tok, st.s.enc)
	if slot.handler != nil {
		if debug.Dispatch() {
			st.log.Debug("end tag handlers", "tag", tok.Name)
		}
		if err := slot.handler.Apply(end); err != nil {
			return fmt.Errorf("end tag </%s>: %w", tok.Name, err)
		}
	}
	return end.write(st.out)
}

// discard drops the slot of an element which will never see its end tag,
// together with anything queued for it.
func (st *state) discard(slot openElement, reason string) {
	if slot.removeContent {
		st.removing--
	}
	if slot.handler != nil || debug.Dispatch() {
		st.log.Debug("element closed without end tag",
			"tag", slot.name, "reason", reason, "pending", slot.handler != nil)
	}
}

// DocumentEnd lets document end handlers add content after the document.
type DocumentEnd struct {
	out *serialize.Writer
}

// Append writes content at the end of the output.
func (d *DocumentEnd) Append(s string, ct content.Type) error {
	return d.out.Chunk(content.New(s, ct))
}
