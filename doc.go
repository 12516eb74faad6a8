// Package rewrite is a streaming HTML rewriter.
//
// The input is tokenized and written back out token by token; only the
// current token is held in memory. Handlers registered with OnElement get an
// *Element for each matching start tag and may queue content around it,
// inside it or in its place, rename it, edit its attributes or register
// handlers for its end tag.
//
// Since the end tag of an element is read long after its start tag was
// written, whatever a handler queues for the end tag is kept in the slot of
// the element on the stack of open elements and installed on the end tag
// when it arrives. If the element is closed implicitly, or the input ends
// before its end tag, the queued work is dropped.
//
// # Example
//
//	rw := rewrite.New(
//		rewrite.OnElement(selector.Name("a"), func(e *rewrite.Element) error {
//			if err := e.SetAttribute("rel", "nofollow"); err != nil {
//				return err
//			}
//			e.Append(" ↗", content.Text)
//			return nil
//		}))
//	err := rw.Rewrite(ctx, os.Stdout, os.Stdin)
//
// # Composition
//
// Successive calls compose deterministically:
//   - Before and Append keep call order.
//   - Prepend and After put the latest call nearest the element.
//   - Replace: the last call wins.
//   - SetInnerContent discards earlier Prepend and Append but never Before or
//     After.
//
// On elements which cannot have content, the operations on the inner content
// are ignored rather than failing, so one handler can serve void and non-void
// elements alike.
package rewrite
