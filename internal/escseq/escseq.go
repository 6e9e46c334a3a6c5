// Package escseq recognizes ANSI escape sequences arriving byte by byte
// and maps them to edit actions.
//
// The recognizer is an incremental prefix walk over a small fixed table.
// After each byte it either reports an exact match, asks for more input
// while the accumulated bytes remain a strict prefix of some entry, or
// abandons the sequence. Abandoned sequences are discarded, never echoed.
package escseq

// Esc is the escape marker that opens every sequence in the table.
const Esc = 0x1b

// MaxLen bounds the number of bytes read for a single sequence,
// including the escape marker.
const MaxLen = 8

// Action identifies an edit operation bound to an escape sequence.
type Action int

const (
	// ActionNone is reported while no binding has matched.
	ActionNone Action = iota
	ActionCursorLeft
	ActionCursorRight
	ActionCursorHome
	ActionCursorEnd
	ActionDelete
	ActionHistoryPrev
	ActionHistoryNext
	ActionWordBackward
	ActionWordForward
	ActionDeleteWordForward
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionCursorLeft:
		return "cursor-left"
	case ActionCursorRight:
		return "cursor-right"
	case ActionCursorHome:
		return "cursor-home"
	case ActionCursorEnd:
		return "cursor-end"
	case ActionDelete:
		return "delete"
	case ActionHistoryPrev:
		return "history-prev"
	case ActionHistoryNext:
		return "history-next"
	case ActionWordBackward:
		return "word-backward"
	case ActionWordForward:
		return "word-forward"
	case ActionDeleteWordForward:
		return "delete-word-forward"
	default:
		return "none"
	}
}

// Binding pairs a complete escape sequence with its action.
// Sequences include the leading escape marker.
type Binding struct {
	Seq    string
	Action Action
}

// DefaultTable holds the sequences the editor understands.
var DefaultTable = Table{
	{"\x1b[A", ActionHistoryPrev},
	{"\x1b[B", ActionHistoryNext},
	{"\x1b[C", ActionCursorRight},
	{"\x1b[D", ActionCursorLeft},
	{"\x1b[H", ActionCursorHome},
	{"\x1b[F", ActionCursorEnd},
	{"\x1b[1~", ActionCursorHome},
	{"\x1b[4~", ActionCursorEnd},
	{"\x1b[3~", ActionDelete},
	{"\x1b[1;5C", ActionWordForward},
	{"\x1b[1;5D", ActionWordBackward},
	{"\x1bb", ActionWordBackward},
	{"\x1bf", ActionWordForward},
	{"\x1bd", ActionDeleteWordForward},
}

// Table is an immutable set of bindings.
type Table []Binding

// Status reports the recognizer state after a byte is consumed.
type Status int

const (
	// StatusPrefix means the accumulated bytes are a strict prefix of at
	// least one binding; the caller should feed the next byte.
	StatusPrefix Status = iota

	// StatusMatch means a binding matched exactly.
	StatusMatch

	// StatusAbandon means no binding can match; the sequence is dropped.
	StatusAbandon
)

// Matcher walks a table one byte at a time.
type Matcher struct {
	table   Table
	scratch []byte
}

// NewMatcher creates a matcher primed with the escape marker.
func NewMatcher(table Table) *Matcher {
	m := &Matcher{
		table:   table,
		scratch: make([]byte, 0, MaxLen),
	}
	m.scratch = append(m.scratch, Esc)
	return m
}

// Step consumes one byte. It returns StatusMatch with the bound action,
// StatusPrefix when more input is needed, or StatusAbandon when the
// accumulated bytes can no longer match any binding or the length bound
// is exceeded.
func (m *Matcher) Step(c byte) (Action, Status) {
	if len(m.scratch) >= MaxLen {
		return ActionNone, StatusAbandon
	}
	m.scratch = append(m.scratch, c)

	prefix := false
	for _, b := range m.table {
		if string(m.scratch) == b.Seq {
			return b.Action, StatusMatch
		}
		if !prefix && len(m.scratch) < len(b.Seq) && b.Seq[:len(m.scratch)] == string(m.scratch) {
			prefix = true
		}
	}
	if prefix {
		return ActionNone, StatusPrefix
	}
	return ActionNone, StatusAbandon
}
