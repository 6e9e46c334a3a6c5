package history

import "strings"

// DefaultCapacity is used when a ring is created with a non-positive
// capacity.
const DefaultCapacity = 128

// Ring is a fixed-capacity circular store of prior lines plus one draft
// slot. It is not safe for concurrent use; the editor is single-threaded.
type Ring struct {
	slots    []string // capacity+1 entries; index capacity is the draft slot
	capacity int
	start    int // physical index of the oldest entry
	count    int
	nav      int // physical index while navigating; == capacity when not
}

// NewRing creates a ring with the given capacity.
func NewRing(capacity int) *Ring {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Ring{
		slots:    make([]string, capacity+1),
		capacity: capacity,
		nav:      capacity,
	}
}

// Len returns the number of stored entries.
func (r *Ring) Len() int { return r.count }

// Cap returns the ring capacity, excluding the draft slot.
func (r *Ring) Cap() int { return r.capacity }

// end returns the physical index of the newest entry.
// Only meaningful when count > 0.
func (r *Ring) end() int {
	return (r.start + r.count - 1) % r.capacity
}

// Add appends a line, stripping one trailing newline if present. Beyond
// capacity the oldest entry is overwritten. Navigation state is reset.
func (r *Ring) Add(line string) {
	line = strings.TrimSuffix(line, "\n")
	if r.count < r.capacity {
		r.slots[(r.start+r.count)%r.capacity] = line
		r.count++
	} else {
		r.slots[r.start] = line
		r.start = (r.start + 1) % r.capacity
	}
	r.nav = r.capacity
}

// Get returns an entry by position: positive n counts 1-based from the
// oldest entry, negative n counts from the newest (-1 is the newest).
// It reports false when n is zero or out of range.
func (r *Ring) Get(n int) (string, bool) {
	switch {
	case n > 0 && n <= r.count:
		return r.slots[(r.start+n-1)%r.capacity], true
	case n < 0 && -n <= r.count:
		return r.slots[(r.start+r.count+n)%r.capacity], true
	default:
		return "", false
	}
}

// Entries returns a copy of the stored entries, oldest first.
func (r *Ring) Entries() []string {
	out := make([]string, r.count)
	for i := 0; i < r.count; i++ {
		out[i] = r.slots[(r.start+i)%r.capacity]
	}
	return out
}

// Clear empties every slot and resets the indices. Storage is retained.
func (r *Ring) Clear() {
	for i := range r.slots {
		r.slots[i] = ""
	}
	r.start = 0
	r.count = 0
	r.nav = r.capacity
}

// Navigating reports whether the ring is positioned on a history entry
// rather than the draft slot.
func (r *Ring) Navigating() bool {
	return r.nav != r.capacity
}

// ResetNav returns the navigation index to the draft slot without
// restoring anything.
func (r *Ring) ResetNav() {
	r.nav = r.capacity
}

// NavigatePrev moves toward older entries. The first call away from the
// draft slot saves current into it. It reports false at the oldest entry,
// leaving the position unchanged.
func (r *Ring) NavigatePrev(current string) (string, bool) {
	if r.count == 0 {
		return "", false
	}
	if r.nav == r.capacity {
		r.slots[r.capacity] = current
		r.nav = r.end()
		return r.slots[r.nav], true
	}
	if r.nav == r.start {
		return "", false
	}
	r.nav = (r.nav - 1 + r.capacity) % r.capacity
	return r.slots[r.nav], true
}

// NavigateNext moves toward newer entries. Moving past the newest entry
// returns to the draft slot, restoring the pre-navigation line. It reports
// false when not navigating.
func (r *Ring) NavigateNext() (string, bool) {
	if r.nav == r.capacity {
		return "", false
	}
	if r.nav == r.end() {
		r.nav = r.capacity
		return r.slots[r.capacity], true
	}
	r.nav = (r.nav + 1) % r.capacity
	return r.slots[r.nav], true
}
