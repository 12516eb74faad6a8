package content

// Disposition decides what happens to a tag itself when it is serialized.
type Disposition int

const (
	Keep Disposition = iota
	Replace
	Remove
)

func (d Disposition) String() string {
	switch d {
	case Keep:
		return "keep"
	case Replace:
		return "replace"
	case Remove:
		return "remove"
	default:
		return "unknown"
	}
}

// Buffer queues the mutations of a single tag occurrence.
//
// Before is emitted ahead of the tag and After right behind it, whatever the
// disposition is: replacing or removing a tag never drops the content queued
// around it.
type Buffer struct {
	Before []Chunk
	After  []Chunk

	disposition Disposition
	replacement Chunk
}

// InsertBefore adds c at the end of the content emitted before the tag, so
// that successive calls appear in call order.
func (b *Buffer) InsertBefore(c Chunk) {
	b.Before = append(b.Before, c)
}

// InsertAfter adds c directly behind the tag, ahead of anything queued
// there earlier. The most recent call ends up nearest the tag.
func (b *Buffer) InsertAfter(c Chunk) {
	b.After = append(b.After, nil)
	copy(b.After[1:], b.After)
	b.After[0] = c
}

// Replace replaces the tag with c. The last call wins.
func (b *Buffer) Replace(c Chunk) {
	b.disposition = Replace
	b.replacement = c
}

// Remove drops the tag.
func (b *Buffer) Remove() {
	b.disposition = Remove
	b.replacement = nil
}

// Disposition returns the current disposition and, for Replace, the
// replacement chunk.
func (b *Buffer) Disposition() (Disposition, Chunk) {
	return b.disposition, b.replacement
}

// Removed reports whether the tag will not be emitted as-is.
func (b *Buffer) Removed() bool {
	return b.disposition != Keep
}

// Empty reports whether the buffer carries no mutation at all.
func (b *Buffer) Empty() bool {
	return b == nil || (len(b.Before) == 0 && len(b.After) == 0 && b.disposition == Keep)
}
