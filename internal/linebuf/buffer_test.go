package linebuf

import "testing"

func insertString(b *Buffer, s string) {
	for i := 0; i < len(s); i++ {
		b.Insert(s[i])
	}
}

func TestInsertAtCursor(t *testing.T) {
	b := New()
	insertString(b, "helo")
	b.SetCursor(3)
	b.Insert('l')

	if got := b.String(); got != "hello" {
		t.Errorf("String() = %q, want %q", got, "hello")
	}
	if b.Cursor() != 4 {
		t.Errorf("Cursor() = %d, want 4", b.Cursor())
	}
}

func TestLengthTracksNetInsertions(t *testing.T) {
	b := New()
	insertString(b, "abcdef")
	b.SetCursor(3)
	if !b.RemoveBefore(2) {
		t.Fatal("RemoveBefore(2) failed")
	}
	if !b.RemoveFrom(1) {
		t.Fatal("RemoveFrom(1) failed")
	}

	if b.Len() != 3 {
		t.Errorf("Len() = %d, want 3", b.Len())
	}
	if got := b.String(); got != "aef" {
		t.Errorf("String() = %q, want %q", got, "aef")
	}
	if len(b.String()) != b.Len() {
		t.Errorf("String() length %d inconsistent with Len() %d", len(b.String()), b.Len())
	}
}

func TestRemoveBeforePastBoundary(t *testing.T) {
	b := New()
	insertString(b, "ab")
	b.SetCursor(1)

	if b.RemoveBefore(2) {
		t.Error("RemoveBefore(2) with cursor at 1 should fail")
	}
	if got := b.String(); got != "ab" {
		t.Errorf("buffer changed on failed remove: %q", got)
	}
	if b.Cursor() != 1 {
		t.Errorf("cursor changed on failed remove: %d", b.Cursor())
	}
}

func TestRemoveFromPastBoundary(t *testing.T) {
	b := New()
	insertString(b, "ab")
	b.SetCursor(1)

	if b.RemoveFrom(2) {
		t.Error("RemoveFrom(2) with one byte after cursor should fail")
	}
	if got := b.String(); got != "ab" {
		t.Errorf("buffer changed on failed remove: %q", got)
	}
}

func TestGrowthPreservesContents(t *testing.T) {
	b := New()
	want := make([]byte, 0, initialCapacity*4)
	for i := 0; i < initialCapacity*4; i++ {
		c := byte('a' + i%26)
		b.Insert(c)
		want = append(want, c)
	}
	if got := b.String(); got != string(want) {
		t.Errorf("contents corrupted across growth: got %d bytes, want %d", len(got), len(want))
	}
}

func TestSetString(t *testing.T) {
	b := New()
	insertString(b, "old")
	b.SetString("replacement")

	if got := b.String(); got != "replacement" {
		t.Errorf("String() = %q, want %q", got, "replacement")
	}
	if b.Cursor() != len("replacement") {
		t.Errorf("Cursor() = %d, want %d", b.Cursor(), len("replacement"))
	}
}

func TestReplaceRange(t *testing.T) {
	tests := []struct {
		name       string
		initial    string
		start, end int
		insert     string
		want       string
		wantCursor int
		wantErr    bool
	}{
		{"middle", "one two three", 4, 7, "2", "one 2 three", 5, false},
		{"expand", "ls do", 3, 5, "documents/", "ls documents/", 13, false},
		{"whole", "abc", 0, 3, "", "", 0, false},
		{"bad range", "abc", 2, 1, "x", "abc", 0, true},
		{"end past length", "abc", 0, 4, "x", "abc", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.SetString(tt.initial)
			err := b.ReplaceRange(tt.start, tt.end, tt.insert)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReplaceRange() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got := b.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
			if b.Cursor() != tt.wantCursor {
				t.Errorf("Cursor() = %d, want %d", b.Cursor(), tt.wantCursor)
			}
		})
	}
}

func TestWordBoundaries(t *testing.T) {
	tests := []struct {
		name      string
		line      string
		cursor    int
		wantStart int
		wantEnd   int
	}{
		{"from end", "hello", 5, 0, 5},
		{"from start", "hello", 0, 0, 5},
		{"between words", "foo  bar", 5, 0, 8},
		{"trailing punctuation", "foo();", 6, 3, 6},
		{"empty", "", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.SetString(tt.line)
			b.SetCursor(tt.cursor)
			if got := b.WordStart(); got != tt.wantStart {
				t.Errorf("WordStart() = %d, want %d", got, tt.wantStart)
			}
			if got := b.WordEnd(); got != tt.wantEnd {
				t.Errorf("WordEnd() = %d, want %d", got, tt.wantEnd)
			}
		})
	}
}

func TestWordBackwardIdempotentAtEdge(t *testing.T) {
	b := New()
	b.SetString("hello")
	b.SetCursor(5)

	b.SetCursor(b.WordStart())
	if b.Cursor() != 0 {
		t.Fatalf("first backward-word: cursor = %d, want 0", b.Cursor())
	}

	// A repeat at the edge must not move.
	if got := b.WordStart(); got != 0 {
		t.Errorf("backward-word at start: boundary = %d, want 0", got)
	}
}

func TestRevChangesOnMutation(t *testing.T) {
	b := New()
	r0 := b.Rev()
	b.Insert('a')
	if b.Rev() == r0 {
		t.Error("Rev() unchanged after Insert")
	}
	r1 := b.Rev()
	b.SetCursor(0) // cursor motion is not a mutation
	if b.Rev() != r1 {
		t.Error("Rev() changed on cursor move")
	}
}
