package history

import "strings"

// SearchState identifies the incremental search mode.
type SearchState int

const (
	// SearchIdle means no search is in progress.
	SearchIdle SearchState = iota

	// SearchBackward scans from the newest entry toward the oldest.
	SearchBackward

	// SearchForward scans from the oldest entry toward the newest.
	SearchForward
)

// Search is an incremental substring search over a Ring. Printable input
// extends the key; repeating the direction key steps to the next match in
// that direction, reusing the last non-empty key when the current key is
// empty. A failed scan retains the previous match.
type Search struct {
	ring     *Ring
	state    SearchState
	key      []byte
	lastKey  string
	matchPos int // logical index of the current match, oldest = 0; -1 none
	display  string
	hasMatch bool
}

// NewSearch creates a search over the given ring.
func NewSearch(ring *Ring) *Search {
	return &Search{ring: ring, matchPos: -1}
}

// State returns the current search state.
func (s *Search) State() SearchState { return s.state }

// Key returns the current search key.
func (s *Search) Key() string { return string(s.key) }

// Match returns the entry currently displayed by the search.
func (s *Search) Match() (string, bool) {
	return s.display, s.hasMatch
}

// Start enters a search state with an empty key and no match.
func (s *Search) Start(state SearchState) {
	s.state = state
	s.key = s.key[:0]
	s.matchPos = -1
	s.display = ""
	s.hasMatch = false
}

// AddByte extends the key and rescans, keeping the current match when it
// still contains the extended key. It reports false when nothing matches.
func (s *Search) AddByte(c byte) bool {
	s.key = append(s.key, c)
	return s.scan(s.matchPos, true)
}

// DelByte removes the last key byte and rescans from the extreme end of
// the direction. An empty key clears the match.
func (s *Search) DelByte() bool {
	if len(s.key) == 0 {
		return false
	}
	s.key = s.key[:len(s.key)-1]
	if len(s.key) == 0 {
		s.matchPos = -1
		s.hasMatch = false
		s.display = ""
		return true
	}
	return s.scan(-1, true)
}

// Repeat steps to the next match in the given direction, switching
// direction when it differs from the current one. An empty key reuses the
// last non-empty key. It reports false when no further entry matches.
func (s *Search) Repeat(state SearchState) bool {
	s.state = state
	if len(s.key) == 0 {
		if s.lastKey == "" {
			return false
		}
		s.key = append(s.key[:0], s.lastKey...)
		return s.scan(s.matchPos, true)
	}
	return s.scan(s.matchPos, false)
}

// Accept leaves search mode, remembering the key for later reuse, and
// returns the displayed match.
func (s *Search) Accept() string {
	if len(s.key) > 0 {
		s.lastKey = string(s.key)
	}
	s.state = SearchIdle
	return s.display
}

// Cancel leaves search mode, remembering the key for later reuse.
func (s *Search) Cancel() {
	if len(s.key) > 0 {
		s.lastKey = string(s.key)
	}
	s.state = SearchIdle
}

// scan looks for the first entry containing the key, walking in the
// current direction from the given logical position. With inclusive set
// the entry at from is considered too. A failed scan leaves the current
// match in place.
func (s *Search) scan(from int, inclusive bool) bool {
	if s.ring.count == 0 || len(s.key) == 0 {
		return false
	}
	key := string(s.key)

	step := -1
	begin := s.ring.count - 1
	if s.state == SearchForward {
		step = 1
		begin = 0
	}
	if from >= 0 {
		begin = from
		if !inclusive {
			begin += step
		}
	}

	for i := begin; i >= 0 && i < s.ring.count; i += step {
		entry := s.ring.slots[(s.ring.start+i)%s.ring.capacity]
		if strings.Contains(entry, key) {
			s.matchPos = i
			s.display = entry
			s.hasMatch = true
			return true
		}
	}
	return false
}
