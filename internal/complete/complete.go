// Package complete implements the tab-completion protocol: token scanning,
// candidate generation through a caller-supplied callback, longest common
// prefix substitution, and candidate listing on a repeated request.
package complete

import (
	"strings"

	"github.com/tidewater-io/shoreline/internal/linebuf"
)

// DefaultDelimiters bounds a completable token when no set is configured.
const DefaultDelimiters = " \t"

// Generator produces completion candidates for the token in
// line[start:end). The returned slice must be sorted ascending; the engine
// owns it for the duration of one request only.
type Generator func(line string, start, end int) []string

// Result classifies the outcome of a completion request.
type Result int

const (
	// ResultNone means no candidates were produced; the caller alerts.
	ResultNone Result = iota

	// ResultReplaced means a single candidate replaced the token.
	ResultReplaced

	// ResultPrefix means the token was replaced by the candidates'
	// longest common prefix.
	ResultPrefix

	// ResultList means a repeated request with an unchanged token asked
	// for the full candidate listing.
	ResultList
)

// Engine resolves completion requests against an edit buffer.
type Engine struct {
	gen    Generator
	delims string

	// pending listing state: set after a prefix substitution, cleared by
	// any intervening buffer mutation.
	pending    bool
	pendingRev uint64
	pendingTok string
}

// NewEngine creates an engine using the given generator and delimiter set.
// An empty delimiter set falls back to DefaultDelimiters.
func NewEngine(gen Generator, delims string) *Engine {
	if delims == "" {
		delims = DefaultDelimiters
	}
	return &Engine{gen: gen, delims: delims}
}

// SetDelimiters replaces the delimiter set.
func (e *Engine) SetDelimiters(delims string) {
	if delims == "" {
		delims = DefaultDelimiters
	}
	e.delims = delims
}

// SetGenerator replaces the candidate generator.
func (e *Engine) SetGenerator(gen Generator) {
	e.gen = gen
}

// tokenStart scans left from the cursor to the nearest delimiter or the
// buffer start.
func (e *Engine) tokenStart(line string, cursor int) int {
	i := cursor
	for i > 0 && !strings.ContainsRune(e.delims, rune(line[i-1])) {
		i--
	}
	return i
}

// Complete resolves one request against buf. With ResultList the returned
// slice holds the candidates to display; it is nil otherwise.
func (e *Engine) Complete(buf *linebuf.Buffer) (Result, []string) {
	if e.gen == nil {
		return ResultNone, nil
	}

	line := buf.String()
	cursor := buf.Cursor()
	start := e.tokenStart(line, cursor)
	token := line[start:cursor]

	candidates := e.gen(line, start, cursor)
	if len(candidates) == 0 {
		e.pending = false
		return ResultNone, nil
	}

	if len(candidates) == 1 {
		e.pending = false
		if err := buf.ReplaceRange(start, cursor, candidates[0]); err != nil {
			return ResultNone, nil
		}
		return ResultReplaced, nil
	}

	if e.pending && e.pendingTok == token && e.pendingRev == buf.Rev() {
		return ResultList, candidates
	}

	prefix := commonPrefix(candidates)
	if err := buf.ReplaceRange(start, cursor, prefix); err != nil {
		return ResultNone, nil
	}
	e.pending = true
	e.pendingTok = prefix
	e.pendingRev = buf.Rev()
	return ResultPrefix, nil
}

// commonPrefix returns the byte-wise, case-sensitive longest common prefix
// of the candidates.
func commonPrefix(candidates []string) string {
	prefix := candidates[0]
	for _, c := range candidates[1:] {
		if len(c) < len(prefix) {
			prefix = prefix[:len(c)]
		}
		for i := 0; i < len(prefix); i++ {
			if c[i] != prefix[i] {
				prefix = prefix[:i]
				break
			}
		}
	}
	return prefix
}
