package rewrite

import (
	"github.com/signadot/rewrite/content"
	"github.com/signadot/rewrite/token"
)

// Element is the handle element handlers get on a start tag. Besides the
// start tag it carries what is queued for the element's end tag, which has
// not been read yet.
//
// An Element is only valid while the handlers for its start tag run; using
// it afterwards panics.
//
// Operations on the inner content of the element (Prepend, Append,
// SetInnerContent, their Stream variants and OnEndTag) do nothing on
// elements which cannot have content: void elements and self-closing tags.
type Element struct {
	start *startTag

	endMutations *content.Buffer
	endName      string
	renameEnd    bool
	endHandlers  []EndTagHandler

	canHaveContent bool
	removeContent  bool
	closed         bool
}

func newElement(st *startTag, canHaveContent bool) *Element {
	return &Element{start: st, canHaveContent: canHaveContent}
}

func (e *Element) check() {
	if e.closed {
		panic("rewrite: use of element after its handlers returned")
	}
}

func (e *Element) endMut() *content.Buffer {
	if e.endMutations == nil {
		e.endMutations = &content.Buffer{}
	}
	return e.endMutations
}

// TagName returns the current tag name.
func (e *Element) TagName() string {
	return e.start.name
}

// SetTagName renames the element, end tag included. On error the name is
// unchanged.
func (e *Element) SetTagName(name string) error {
	e.check()
	if err := e.start.setName(name); err != nil {
		return err
	}
	if e.canHaveContent {
		e.endName = name
		e.renameEnd = true
	}
	return nil
}

// Attribute returns the value of the first attribute named name, ignoring
// ASCII case.
func (e *Element) Attribute(name string) (string, bool) {
	return e.start.attribute(name)
}

func (e *Element) HasAttribute(name string) bool {
	_, ok := e.start.attribute(name)
	return ok
}

// Attributes returns a copy of the attributes.
func (e *Element) Attributes() []token.Attr {
	return append([]token.Attr(nil), e.start.attrs...)
}

// SetAttribute overwrites the attribute named name or appends it.
func (e *Element) SetAttribute(name, value string) error {
	e.check()
	return e.start.setAttribute(name, value)
}

// RemoveAttribute removes the attribute named name, if present.
func (e *Element) RemoveAttribute(name string) {
	e.check()
	e.start.removeAttribute(name)
}

func (e *Element) IsSelfClosing() bool {
	return e.start.selfClosing
}

func (e *Element) CanHaveContent() bool {
	return e.canHaveContent
}

// Removed reports whether the element was removed or replaced.
func (e *Element) Removed() bool {
	return e.start.mutations.Removed()
}

// Before inserts content before the element. Successive calls appear in call
// order.
func (e *Element) Before(s string, ct content.Type) {
	e.before(content.New(s, ct))
}

// After inserts content right after the element. The most recent call ends
// up nearest the element.
func (e *Element) After(s string, ct content.Type) {
	e.after(content.New(s, ct))
}

// Prepend inserts content right after the start tag. The most recent call
// ends up nearest the start tag.
func (e *Element) Prepend(s string, ct content.Type) {
	e.prepend(content.New(s, ct))
}

// Append inserts content right before the end tag. Successive calls appear
// in call order.
func (e *Element) Append(s string, ct content.Type) {
	e.append(content.New(s, ct))
}

// SetInnerContent replaces the content of the element, including anything
// prepended or appended before. Content inserted before or after the
// element is kept.
func (e *Element) SetInnerContent(s string, ct content.Type) {
	e.setInnerContent(content.New(s, ct))
}

// Replace replaces the element and its content. The last call wins.
func (e *Element) Replace(s string, ct content.Type) {
	e.replace(content.New(s, ct))
}

func (e *Element) StreamBefore(p content.Producer) { e.before(content.Stream(p)) }
func (e *Element) StreamAfter(p content.Producer) { e.after(content.Stream(p)) }
func (e *Element) StreamPrepend(p content.Producer) { e.prepend(content.Stream(p)) }
func (e *Element) StreamAppend(p content.Producer) { e.append(content.Stream(p)) }
func (e *Element) StreamInnerContent(p content.Producer) { e.setInnerContent(content.Stream(p)) }
func (e *Element) StreamReplace(p content.Producer) { e.replace(content.Stream(p)) }

func (e *Element) before(c content.Chunk) {
	e.check()
	e.start.mutations.InsertBefore(c)
}

func (e *Element) after(c content.Chunk) {
	e.check()
	if e.canHaveContent {
		e.endMut().InsertAfter(c)
		return
	}
	e.start.mutations.InsertAfter(c)
}

func (e *Element) prepend(c content.Chunk) {
	e.check()
	if e.canHaveContent {
		e.start.mutations.InsertAfter(c)
	}
}

func (e *Element) append(c content.Chunk) {
	e.check()
	if e.canHaveContent {
		e.endMut().InsertBefore(c)
	}
}

func (e *Element) setInnerContent(c content.Chunk) {
	e.check()
	if e.canHaveContent {
		e.dropInnerContent()
		e.start.mutations.InsertAfter(c)
	}
}

func (e *Element) replace(c content.Chunk) {
	e.check()
	e.start.mutations.Replace(c)
	if e.canHaveContent {
		e.dropInnerContent()
		e.endMut().Remove()
	}
}

// Remove removes the element and its content.
func (e *Element) Remove() {
	e.check()
	e.start.mutations.Remove()
	if e.canHaveContent {
		e.dropInnerContent()
		e.endMut().Remove()
	}
}

// RemoveAndKeepContent removes the start and end tags only, leaving the
// children in place.
func (e *Element) RemoveAndKeepContent() {
	e.check()
	e.start.mutations.Remove()
	if e.canHaveContent {
		e.endMut().Remove()
	}
}

// OnEndTag registers h to run when the end tag of the element is read.
// Handlers run in registration order, after the mutations queued through
// the element are installed on the end tag. If the element is closed
// implicitly or the input ends first, h never runs.
func (e *Element) OnEndTag(h EndTagHandler) {
	e.check()
	if e.canHaveContent {
		e.endHandlers = append(e.endHandlers, h)
	}
}

// dropInnerContent discards queued inner content and the original content
// between the tags.
func (e *Element) dropInnerContent() {
	e.start.mutations.After = nil
	if e.endMutations != nil {
		e.endMutations.Before = nil
	}
	e.removeContent = true
}

// close ends the handlers' access to e and returns the handler to run
// against its end tag, or nil if there is nothing to do there.
func (e *Element) close() EndTagHandler {
	e.closed = true
	if !e.canHaveContent {
		return nil
	}
	if e.endMutations.Empty() && !e.renameEnd && len(e.endHandlers) == 0 {
		return nil
	}
	chain := make(handlerChain, 0, len(e.endHandlers)+1)
	chain = append(chain, &endTagMutator{
		name:      e.endName,
		rename:    e.renameEnd,
		mutations: e.endMutations,
	})
	return append(chain, e.endHandlers...)
}
