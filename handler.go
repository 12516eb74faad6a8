package rewrite

import (
	"github.com/signadot/rewrite/content"
)

// EndTagHandler runs against the end tag of an element whose start tag was
// handled earlier in the stream.
type EndTagHandler interface {
	Apply(end *EndTag) error
}

// EndTagHandlerFunc adapts a function to an EndTagHandler.
type EndTagHandlerFunc func(end *EndTag) error

func (f EndTagHandlerFunc) Apply(end *EndTag) error {
	return f(end)
}

// ElementHandler is called for each start tag matching its selector.
type ElementHandler func(e *Element) error

// DocumentEndHandler is called once the whole input has been rewritten.
type DocumentEndHandler func(d *DocumentEnd) error

// endTagMutator carries what an element handler queued for the element's
// end tag while it did not exist yet.
type endTagMutator struct {
	name      string
	rename    bool
	mutations *content.Buffer
}

func (m *endTagMutator) Apply(end *EndTag) error {
	if m.rename {
		end.rename(m.name)
	}
	if m.mutations != nil {
		end.mutations = *m.mutations
	}
	return nil
}

// handlerChain applies its handlers in order and stops at the first error.
type handlerChain []EndTagHandler

func (c handlerChain) Apply(end *EndTag) error {
	for _, h := range c {
		if err := h.Apply(end); err != nil {
			return err
		}
	}
	return nil
}
