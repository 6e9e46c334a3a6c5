package linebuf

import "errors"

// Errors returned by buffer operations.
var (
	// ErrRangeInvalid indicates an invalid range (e.g., end < start).
	ErrRangeInvalid = errors.New("invalid range")
)

const initialCapacity = 64

// Buffer is a growable byte buffer with a logical cursor offset.
// The zero value is not usable; create buffers with New.
type Buffer struct {
	data   []byte
	length int
	cursor int
	rev    uint64
}

// New creates an empty buffer.
func New() *Buffer {
	return &Buffer{
		data: make([]byte, initialCapacity),
	}
}

// Len returns the number of bytes in the buffer.
func (b *Buffer) Len() int {
	return b.length
}

// Cursor returns the logical cursor offset, always in [0, Len()].
func (b *Buffer) Cursor() int {
	return b.cursor
}

// Rev returns a revision counter incremented on every mutation.
// Callers use it to detect edits between two observations.
func (b *Buffer) Rev() uint64 {
	return b.rev
}

// String returns the buffer contents.
func (b *Buffer) String() string {
	return string(b.data[:b.length])
}

// Bytes returns the buffer contents as a fresh slice.
func (b *Buffer) Bytes() []byte {
	out := make([]byte, b.length)
	copy(out, b.data[:b.length])
	return out
}

// Reset empties the buffer and puts the cursor at the start.
// Storage is retained.
func (b *Buffer) Reset() {
	b.length = 0
	b.cursor = 0
	b.rev++
}

// grow ensures room for n more bytes, doubling capacity as needed.
func (b *Buffer) grow(n int) {
	need := b.length + n
	if need <= len(b.data) {
		return
	}
	capacity := len(b.data)
	if capacity == 0 {
		capacity = initialCapacity
	}
	for capacity < need {
		capacity *= 2
	}
	next := make([]byte, capacity)
	copy(next, b.data[:b.length])
	b.data = next
}

// Insert places one byte at the cursor, shifting the tail right.
// The cursor advances past the inserted byte.
func (b *Buffer) Insert(c byte) {
	b.grow(1)
	copy(b.data[b.cursor+1:b.length+1], b.data[b.cursor:b.length])
	b.data[b.cursor] = c
	b.cursor++
	b.length++
	b.rev++
}

// Append places one byte at the end of the buffer without moving the cursor.
func (b *Buffer) Append(c byte) {
	b.grow(1)
	b.data[b.length] = c
	b.length++
	b.rev++
}

// RemoveBefore removes n bytes immediately before the cursor, shifting the
// tail left. It reports false, leaving the buffer unchanged, when fewer
// than n bytes precede the cursor.
func (b *Buffer) RemoveBefore(n int) bool {
	if n <= 0 || b.cursor < n {
		return false
	}
	copy(b.data[b.cursor-n:], b.data[b.cursor:b.length])
	b.cursor -= n
	b.length -= n
	b.rev++
	return true
}

// RemoveFrom removes n bytes starting at the cursor, shifting the tail
// left. It reports false, leaving the buffer unchanged, when fewer than n
// bytes follow the cursor.
func (b *Buffer) RemoveFrom(n int) bool {
	if n <= 0 || b.length-b.cursor < n {
		return false
	}
	copy(b.data[b.cursor:], b.data[b.cursor+n:b.length])
	b.length -= n
	b.rev++
	return true
}

// SetString replaces the entire contents and puts the cursor at the end.
func (b *Buffer) SetString(s string) {
	b.length = 0
	b.grow(len(s))
	copy(b.data, s)
	b.length = len(s)
	b.cursor = b.length
	b.rev++
}

// SetCursor moves the cursor to offset, clamped to [0, Len()].
func (b *Buffer) SetCursor(offset int) {
	if offset < 0 {
		offset = 0
	}
	if offset > b.length {
		offset = b.length
	}
	b.cursor = offset
}

// ReplaceRange substitutes s for the bytes in [start, end) and places the
// cursor after the substitution.
func (b *Buffer) ReplaceRange(start, end int, s string) error {
	if start < 0 || end < start || end > b.length {
		return ErrRangeInvalid
	}
	tail := string(b.data[end:b.length])
	need := start + len(s) + len(tail)
	if need > b.length {
		b.grow(need - b.length)
	}
	b.length = need
	copy(b.data[start:], s)
	copy(b.data[start+len(s):], tail)
	b.cursor = start + len(s)
	b.rev++
	return nil
}

func isWordByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

// WordStart returns the offset of the nearest word boundary at or before
// the cursor: it skips a run of non-alphanumeric bytes, then the
// alphanumeric run preceding it.
func (b *Buffer) WordStart() int {
	i := b.cursor
	for i > 0 && !isWordByte(b.data[i-1]) {
		i--
	}
	for i > 0 && isWordByte(b.data[i-1]) {
		i--
	}
	return i
}

// WordEnd returns the offset of the nearest word boundary at or after the
// cursor: it skips a run of non-alphanumeric bytes, then the alphanumeric
// run following it.
func (b *Buffer) WordEnd() int {
	i := b.cursor
	for i < b.length && !isWordByte(b.data[i]) {
		i++
	}
	for i < b.length && isWordByte(b.data[i]) {
		i++
	}
	return i
}
