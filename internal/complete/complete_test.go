package complete

import (
	"reflect"
	"testing"

	"github.com/tidewater-io/shoreline/internal/linebuf"
)

func fixed(candidates ...string) Generator {
	return func(line string, start, end int) []string {
		return candidates
	}
}

func newBuf(line string) *linebuf.Buffer {
	b := linebuf.New()
	b.SetString(line)
	return b
}

func TestCommonPrefixSubstitution(t *testing.T) {
	e := NewEngine(fixed("cat", "car"), "")
	buf := newBuf("c")

	res, list := e.Complete(buf)
	if res != ResultPrefix {
		t.Fatalf("result = %v, want ResultPrefix", res)
	}
	if list != nil {
		t.Errorf("candidates returned with ResultPrefix: %v", list)
	}
	if got := buf.String(); got != "ca" {
		t.Errorf("buffer = %q, want %q", got, "ca")
	}
	if buf.Cursor() != 2 {
		t.Errorf("cursor = %d, want 2", buf.Cursor())
	}
}

func TestSingleCandidateReplaces(t *testing.T) {
	e := NewEngine(fixed("cargo"), "")
	buf := newBuf("car")

	res, _ := e.Complete(buf)
	if res != ResultReplaced {
		t.Fatalf("result = %v, want ResultReplaced", res)
	}
	if got := buf.String(); got != "cargo" {
		t.Errorf("buffer = %q, want %q", got, "cargo")
	}
}

func TestRepeatUnchangedListsCandidates(t *testing.T) {
	e := NewEngine(fixed("cat", "car"), "")
	buf := newBuf("c")

	if res, _ := e.Complete(buf); res != ResultPrefix {
		t.Fatalf("first request: result = %v, want ResultPrefix", res)
	}

	res, list := e.Complete(buf)
	if res != ResultList {
		t.Fatalf("second request: result = %v, want ResultList", res)
	}
	if want := []string{"cat", "car"}; !reflect.DeepEqual(list, want) {
		t.Errorf("candidates = %v, want %v", list, want)
	}
	if got := buf.String(); got != "ca" {
		t.Errorf("listing mutated the buffer: %q", got)
	}
}

func TestMutationResetsPendingList(t *testing.T) {
	e := NewEngine(fixed("cat", "car"), "")
	buf := newBuf("c")

	if res, _ := e.Complete(buf); res != ResultPrefix {
		t.Fatal("first request did not substitute the prefix")
	}

	// Any edit between requests voids the listing state, even one that
	// restores identical text.
	buf.Insert('x')
	if !buf.RemoveBefore(1) {
		t.Fatal("RemoveBefore failed")
	}

	res, _ := e.Complete(buf)
	if res != ResultPrefix {
		t.Errorf("result after mutation = %v, want ResultPrefix", res)
	}
}

func TestNoCandidates(t *testing.T) {
	e := NewEngine(fixed(), "")
	buf := newBuf("zzz")
	if res, _ := e.Complete(buf); res != ResultNone {
		t.Errorf("result = %v, want ResultNone", res)
	}
}

func TestNilGenerator(t *testing.T) {
	e := NewEngine(nil, "")
	buf := newBuf("a")
	if res, _ := e.Complete(buf); res != ResultNone {
		t.Errorf("result = %v, want ResultNone", res)
	}
}

func TestTokenBoundsPassedToGenerator(t *testing.T) {
	var gotStart, gotEnd int
	var gotLine string
	e := NewEngine(func(line string, start, end int) []string {
		gotLine, gotStart, gotEnd = line, start, end
		return nil
	}, "")

	buf := newBuf("ls docu and more")
	buf.SetCursor(7) // inside "docu"
	e.Complete(buf)

	if gotLine != "ls docu and more" || gotStart != 3 || gotEnd != 7 {
		t.Errorf("generator got (%q, %d, %d), want (%q, 3, 7)",
			gotLine, gotStart, gotEnd, "ls docu and more")
	}
}

func TestCompletionInsideLine(t *testing.T) {
	e := NewEngine(fixed("documents/"), "")
	buf := newBuf("ls docu trailing")
	buf.SetCursor(7)

	res, _ := e.Complete(buf)
	if res != ResultReplaced {
		t.Fatalf("result = %v, want ResultReplaced", res)
	}
	if got := buf.String(); got != "ls documents/ trailing" {
		t.Errorf("buffer = %q, want %q", got, "ls documents/ trailing")
	}
	if buf.Cursor() != len("ls documents/") {
		t.Errorf("cursor = %d, want %d", buf.Cursor(), len("ls documents/"))
	}
}

func TestCustomDelimiters(t *testing.T) {
	e := NewEngine(nil, ":/")
	if got := e.tokenStart("a b:cd", 6); got != 4 {
		t.Errorf("tokenStart = %d, want 4 (space is not a delimiter here)", got)
	}

	e.SetDelimiters("")
	if got := e.tokenStart("a b:cd", 6); got != 2 {
		t.Errorf("tokenStart with default delimiters = %d, want 2", got)
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		in   []string
		want string
	}{
		{[]string{"cat", "car"}, "ca"},
		{[]string{"abc", "abc"}, "abc"},
		{[]string{"abc", "xyz"}, ""},
		{[]string{"prefix", "pre"}, "pre"},
		{[]string{"solo"}, "solo"},
	}
	for _, tt := range tests {
		if got := commonPrefix(tt.in); got != tt.want {
			t.Errorf("commonPrefix(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
