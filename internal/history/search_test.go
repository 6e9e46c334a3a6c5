package history

import "testing"

func newSearchRing(lines ...string) *Ring {
	r := NewRing(8)
	for _, l := range lines {
		r.Add(l)
	}
	return r
}

func TestBackwardSearchPrefersNewest(t *testing.T) {
	s := NewSearch(newSearchRing("xaby", "abc"))
	s.Start(SearchBackward)

	if !s.AddByte('a') {
		t.Fatal("AddByte('a') found no match")
	}
	if !s.AddByte('b') {
		t.Fatal("AddByte('b') found no match")
	}

	got, ok := s.Match()
	if !ok || got != "abc" {
		t.Errorf("Match() = (%q, %v), want (%q, true)", got, ok, "abc")
	}
}

func TestRepeatStepsToOlderMatch(t *testing.T) {
	s := NewSearch(newSearchRing("xaby", "none", "abc"))
	s.Start(SearchBackward)
	s.AddByte('a')
	s.AddByte('b')

	if !s.Repeat(SearchBackward) {
		t.Fatal("Repeat found no older match")
	}
	got, ok := s.Match()
	if !ok || got != "xaby" {
		t.Errorf("Match() = (%q, %v), want (%q, true)", got, ok, "xaby")
	}
}

func TestRepeatPastOldestRetainsMatch(t *testing.T) {
	s := NewSearch(newSearchRing("abc"))
	s.Start(SearchBackward)
	s.AddByte('a')

	if s.Repeat(SearchBackward) {
		t.Error("Repeat succeeded with no older match")
	}
	got, ok := s.Match()
	if !ok || got != "abc" {
		t.Errorf("failed repeat dropped the match: (%q, %v)", got, ok)
	}
}

func TestForwardSearchPrefersOldest(t *testing.T) {
	s := NewSearch(newSearchRing("abc", "xaby"))
	s.Start(SearchForward)
	s.AddByte('a')
	s.AddByte('b')

	got, ok := s.Match()
	if !ok || got != "abc" {
		t.Errorf("Match() = (%q, %v), want (%q, true)", got, ok, "abc")
	}

	if !s.Repeat(SearchForward) {
		t.Fatal("Repeat found no newer match")
	}
	got, _ = s.Match()
	if got != "xaby" {
		t.Errorf("Match() = %q, want %q", got, "xaby")
	}
}

func TestExtendKeepsCurrentMatchWhenStillContained(t *testing.T) {
	s := NewSearch(newSearchRing("grep old", "grep new"))
	s.Start(SearchBackward)
	for _, c := range []byte("grep") {
		if !s.AddByte(c) {
			t.Fatalf("AddByte(%q) found no match", c)
		}
	}
	got, _ := s.Match()
	if got != "grep new" {
		t.Fatalf("Match() = %q, want %q", got, "grep new")
	}

	// Extending toward the older entry steps off the current match.
	for _, c := range []byte(" old") {
		s.AddByte(c)
	}
	got, ok := s.Match()
	if !ok || got != "grep old" {
		t.Errorf("Match() = (%q, %v), want (%q, true)", got, ok, "grep old")
	}
}

func TestFailedExtendRetainsMatch(t *testing.T) {
	s := NewSearch(newSearchRing("abc"))
	s.Start(SearchBackward)
	s.AddByte('a')

	if s.AddByte('z') {
		t.Error("AddByte('z') reported a match")
	}
	got, ok := s.Match()
	if !ok || got != "abc" {
		t.Errorf("failed extend dropped the match: (%q, %v)", got, ok)
	}
	if s.Key() != "az" {
		t.Errorf("Key() = %q, want %q", s.Key(), "az")
	}
}

func TestDelByteRescansFromExtreme(t *testing.T) {
	s := NewSearch(newSearchRing("az older", "ab newer"))
	s.Start(SearchBackward)
	s.AddByte('a')
	s.AddByte('z')
	if got, _ := s.Match(); got != "az older" {
		t.Fatalf("Match() = %q, want %q", got, "az older")
	}

	if !s.DelByte() {
		t.Fatal("DelByte failed")
	}
	// Key is back to "a"; the rescan restarts at the newest entry.
	got, ok := s.Match()
	if !ok || got != "ab newer" {
		t.Errorf("Match() = (%q, %v), want (%q, true)", got, ok, "ab newer")
	}
}

func TestDelByteToEmptyClearsMatch(t *testing.T) {
	s := NewSearch(newSearchRing("abc"))
	s.Start(SearchBackward)
	s.AddByte('a')
	if !s.DelByte() {
		t.Fatal("DelByte failed")
	}
	if _, ok := s.Match(); ok {
		t.Error("empty key still has a match")
	}
	if s.DelByte() {
		t.Error("DelByte succeeded on an empty key")
	}
}

func TestRepeatWithEmptyKeyReusesLast(t *testing.T) {
	s := NewSearch(newSearchRing("abc"))
	s.Start(SearchBackward)
	s.AddByte('a')
	s.AddByte('b')
	if got := s.Accept(); got != "abc" {
		t.Fatalf("Accept() = %q, want %q", got, "abc")
	}

	s.Start(SearchBackward)
	if !s.Repeat(SearchBackward) {
		t.Fatal("Repeat with remembered key found no match")
	}
	if s.Key() != "ab" {
		t.Errorf("Key() = %q, want the remembered %q", s.Key(), "ab")
	}
	got, _ := s.Match()
	if got != "abc" {
		t.Errorf("Match() = %q, want %q", got, "abc")
	}
}

func TestRepeatWithNoKeyAtAll(t *testing.T) {
	s := NewSearch(newSearchRing("abc"))
	s.Start(SearchBackward)
	if s.Repeat(SearchBackward) {
		t.Error("Repeat succeeded with no key ever entered")
	}
}

func TestCancelRemembersKey(t *testing.T) {
	s := NewSearch(newSearchRing("abc"))
	s.Start(SearchBackward)
	s.AddByte('b')
	s.Cancel()
	if s.State() != SearchIdle {
		t.Fatalf("State() = %v after Cancel, want SearchIdle", s.State())
	}

	s.Start(SearchBackward)
	if !s.Repeat(SearchBackward) {
		t.Fatal("Repeat did not reuse the cancelled key")
	}
	if s.Key() != "b" {
		t.Errorf("Key() = %q, want %q", s.Key(), "b")
	}
}

func TestRepeatSwitchesDirection(t *testing.T) {
	s := NewSearch(newSearchRing("a1", "a2", "a3"))
	s.Start(SearchBackward)
	s.AddByte('a')
	s.Repeat(SearchBackward) // a2
	s.Repeat(SearchBackward) // a1

	if !s.Repeat(SearchForward) {
		t.Fatal("forward repeat found no match")
	}
	got, _ := s.Match()
	if got != "a2" {
		t.Errorf("Match() = %q, want %q", got, "a2")
	}
	if s.State() != SearchForward {
		t.Errorf("State() = %v, want SearchForward", s.State())
	}
}

func TestSearchEmptyRing(t *testing.T) {
	s := NewSearch(NewRing(4))
	s.Start(SearchBackward)
	if s.AddByte('a') {
		t.Error("AddByte matched on an empty ring")
	}
}
