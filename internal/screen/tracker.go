package screen

import (
	"fmt"
	"io"
)

// ANSI sequences emitted by the tracker.
const (
	ansiSetColumn   = "\x1b[%dG"
	ansiCursorUp    = "\x1b[%dA"
	ansiCursorDown  = "\x1b[%dB"
	ansiClearLine   = "\x1b[2K\r"
	ansiClearScreen = "\x1b[2J"
	ansiCursorHome  = "\x1b[H"
	bell            = "\a"
)

// Tracker maintains the cursor (row, column) relative to the prompt start
// for a given terminal width. All output that affects the tracked region
// must go through it.
type Tracker struct {
	w       io.Writer
	width   int
	row     int // 1-based
	col     int // 1-based
	written int // cells written since the last Reset or Clear
}

// NewTracker creates a tracker writing to w for a terminal of the given
// width. Widths below one are treated as one.
func NewTracker(w io.Writer, width int) *Tracker {
	t := &Tracker{w: w}
	t.Reset(width)
	return t
}

// Reset returns the tracker to row 1, column 1 with nothing written, for a
// terminal of the given width.
func (t *Tracker) Reset(width int) {
	if width < 1 {
		width = 1
	}
	t.width = width
	t.row = 1
	t.col = 1
	t.written = 0
}

// Width returns the cached terminal width.
func (t *Tracker) Width() int { return t.width }

// Row returns the 1-based cursor row relative to the prompt start.
func (t *Tracker) Row() int { return t.row }

// Col returns the 1-based cursor column.
func (t *Tracker) Col() int { return t.col }

// Written returns the number of cells written since the last reset.
func (t *Tracker) Written() int { return t.written }

// flat returns the cursor position encoded as a single cell index.
func (t *Tracker) flat() int {
	return (t.row-1)*t.width + t.col - 1
}

func (t *Tracker) setFlat(pos int) {
	t.row = pos/t.width + 1
	t.col = pos%t.width + 1
}

// Write sends raw bytes to the terminal without touching the model.
func (t *Tracker) Write(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if _, err := t.w.Write(data); err != nil {
		return fmt.Errorf("tty write: %w", err)
	}
	return nil
}

func (t *Tracker) writeSeq(format string, args ...any) error {
	return t.Write(fmt.Appendf(nil, format, args...))
}

// advance moves the model forward by n cells after n printable bytes were
// written, emitting the padding space and absolute column set that keep the
// terminal cursor in step.
func (t *Tracker) advance(n int) error {
	t.written += n
	t.setFlat(t.flat() + n)
	if t.col == 1 {
		// Force the hardware wrap the model just assumed.
		if err := t.Write([]byte{' '}); err != nil {
			return err
		}
	}
	return t.writeSeq(ansiSetColumn, t.col)
}

// WriteTracked writes printable bytes and advances the model by one cell
// per byte.
func (t *Tracker) WriteTracked(data []byte) error {
	if len(data) == 0 {
		return nil
	}
	if err := t.Write(data); err != nil {
		return err
	}
	return t.advance(len(data))
}

// WritePrompt writes the prompt verbatim, styling runs included, advancing
// the model by the prompt's printable length only.
func (t *Tracker) WritePrompt(prompt string, visible int) error {
	if len(prompt) == 0 {
		return nil
	}
	if err := t.Write([]byte(prompt)); err != nil {
		return err
	}
	if visible <= 0 {
		return nil
	}
	return t.advance(visible)
}

// MoveLeft moves the cursor n cells toward the prompt start, wrapping
// across rows. A vertical move is emitted only when the row changes,
// always followed by an absolute column set.
func (t *Tracker) MoveLeft(n int) error {
	if n == 0 {
		return nil
	}
	pos := t.flat() - n
	row := pos/t.width + 1
	col := pos%t.width + 1
	if row != t.row {
		if err := t.writeSeq(ansiCursorUp, t.row-row); err != nil {
			return err
		}
		t.row = row
	}
	if err := t.writeSeq(ansiSetColumn, col); err != nil {
		return err
	}
	t.col = col
	return nil
}

// MoveRight moves the cursor n cells away from the prompt start, wrapping
// across rows.
func (t *Tracker) MoveRight(n int) error {
	if n == 0 {
		return nil
	}
	pos := t.flat() + n
	row := pos/t.width + 1
	col := pos%t.width + 1
	if row != t.row {
		if err := t.writeSeq(ansiCursorDown, row-t.row); err != nil {
			return err
		}
		t.row = row
	}
	if err := t.writeSeq(ansiSetColumn, col); err != nil {
		return err
	}
	t.col = col
	return nil
}

// MoveToEnd walks the cursor to the cell just past the written region.
func (t *Tracker) MoveToEnd() error {
	return t.MoveRight(t.written - t.flat())
}

// Clear erases the whole tracked region. It walks to the end of the
// written cells, then clears each row bottom-up, leaving the cursor at
// column 1 of the first row with nothing written.
func (t *Tracker) Clear() error {
	if err := t.MoveToEnd(); err != nil {
		return err
	}
	rows := (t.written + t.width) / t.width
	for i := 0; i < rows; i++ {
		if err := t.Write([]byte(ansiClearLine)); err != nil {
			return err
		}
		t.col = 1
		if i < rows-1 {
			if err := t.writeSeq(ansiCursorUp, 1); err != nil {
				return err
			}
			t.row--
		}
	}
	t.written = 0
	return nil
}

// Redraw clears the tracked region, rewrites the prompt and input, and
// walks the cursor back cells toward the prompt.
func (t *Tracker) Redraw(prompt string, visible int, input []byte, back int) error {
	if err := t.Clear(); err != nil {
		return err
	}
	if err := t.WritePrompt(prompt, visible); err != nil {
		return err
	}
	if err := t.WriteTracked(input); err != nil {
		return err
	}
	return t.MoveLeft(back)
}

// Resize recomputes (row, column) from the current flat position for a new
// terminal width. The caller schedules a full redraw afterwards.
func (t *Tracker) Resize(width int) {
	if width < 1 {
		width = 1
	}
	pos := t.flat()
	t.width = width
	t.setFlat(pos)
}

// ClearScreen wipes the terminal and homes the cursor. The written count
// is retained so a following Clear walks a blank region harmlessly before
// the redraw.
func (t *Tracker) ClearScreen() error {
	if err := t.Write([]byte(ansiClearScreen)); err != nil {
		return err
	}
	if err := t.Write([]byte(ansiCursorHome)); err != nil {
		return err
	}
	t.row = 1
	t.col = 1
	return nil
}

// Bell writes the alert character.
func (t *Tracker) Bell() error {
	return t.Write([]byte(bell))
}
