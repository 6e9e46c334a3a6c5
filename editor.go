package shoreline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"golang.org/x/sys/unix"

	"github.com/tidewater-io/shoreline/internal/complete"
	"github.com/tidewater-io/shoreline/internal/config"
	"github.com/tidewater-io/shoreline/internal/escseq"
	"github.com/tidewater-io/shoreline/internal/history"
	"github.com/tidewater-io/shoreline/internal/linebuf"
	"github.com/tidewater-io/shoreline/internal/screen"
	"github.com/tidewater-io/shoreline/internal/termctl"
)

// ASCII control bytes handled by the dispatcher.
const (
	ctrlA     = 0x01
	ctrlB     = 0x02
	ctrlD     = 0x04
	ctrlE     = 0x05
	ctrlF     = 0x06
	ctrlG     = 0x07
	ctrlH     = 0x08
	tab       = 0x09
	lineFeed  = 0x0a
	ctrlK     = 0x0b
	ctrlL     = 0x0c
	carriage  = 0x0d
	ctrlN     = 0x0e
	ctrlP     = 0x10
	ctrlR     = 0x12
	ctrlS     = 0x13
	ctrlU     = 0x15
	ctrlW     = 0x17
	backspace = 0x7f
)

const defaultWidth = 80

// Editor is a line-editing session. Create one with New, read lines with
// ReadLine, and release the terminal with Close. An Editor is
// single-threaded and non-reentrant.
type Editor struct {
	in   io.Reader
	term *termctl.Controller // nil when streams are injected

	tracker *screen.Tracker
	buf     *linebuf.Buffer
	hist    *history.Ring
	search  *history.Search
	comp    *complete.Engine
	table   escseq.Table

	prompt    string
	promptVis int
	bell      bool
	histFile  string

	width   int
	winch   chan os.Signal
	cfgCh   chan config.Config
	watcher *config.Watcher

	reading  bool
	finished bool
	sawEOF   bool
	redraw   bool
	ioErr    error

	// pre-search snapshot, restored on cancel
	savedLine   string
	savedCursor int
}

// New creates an editor. Without injected streams it requires both
// standard input and standard output to be interactive terminals and
// returns ErrNotTerminal otherwise.
func New(opts ...Option) (*Editor, error) {
	cfg := config.FromEnv()
	s := settings{cfg: cfg, width: defaultWidth}
	for _, opt := range opts {
		opt(&s)
	}
	if s.err != nil {
		return nil, s.err
	}

	e := &Editor{
		in:       s.in,
		buf:      linebuf.New(),
		hist:     history.NewRing(s.cfg.History.Capacity),
		table:    escseq.DefaultTable,
		bell:     s.cfg.Bell,
		histFile: s.cfg.History.File,
		width:    s.width,
		winch:    make(chan os.Signal, 1),
		cfgCh:    make(chan config.Config, 1),
	}
	e.search = history.NewSearch(e.hist)
	e.comp = complete.NewEngine(complete.Generator(s.gen), s.cfg.Completion.Delimiters)
	e.SetPrompt(s.prompt)

	out := s.out
	if out == nil {
		out = io.Discard
	}
	if s.in == nil {
		ctl, err := termctl.Open(int(os.Stdin.Fd()), int(os.Stdout.Fd()))
		if err != nil {
			return nil, err
		}
		w, err := ctl.Size()
		if err != nil {
			return nil, err
		}
		e.term = ctl
		e.in = os.Stdin
		e.width = w
		out = os.Stdout
		signal.Notify(e.winch, unix.SIGWINCH)
	}
	e.tracker = screen.NewTracker(out, e.width)

	if e.histFile != "" {
		if err := e.hist.Load(e.histFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}
	return e, nil
}

// Close releases the terminal, stops any config watcher, and saves the
// history file when one is configured.
func (e *Editor) Close() error {
	signal.Stop(e.winch)
	if e.watcher != nil {
		e.watcher.Close()
		e.watcher = nil
	}
	var err error
	if e.histFile != "" {
		err = e.hist.Save(e.histFile, false)
	}
	if e.term != nil && e.term.Raw() {
		if rerr := e.term.Restore(); err == nil {
			err = rerr
		}
	}
	return err
}

// SetPrompt replaces the prompt used by the next ReadLine call.
func (e *Editor) SetPrompt(prompt string) {
	e.prompt = prompt
	e.promptVis = screen.VisibleLen(prompt)
}

// SetCompleter replaces the completion generator.
func (e *Editor) SetCompleter(gen Generator) {
	e.comp.SetGenerator(complete.Generator(gen))
}

// ReadLine reads one line from the terminal. The returned line includes
// its trailing newline. It returns io.EOF when the input stream ends with
// nothing pending, and ErrBusy when called reentrantly.
func (e *Editor) ReadLine() (string, error) {
	if e.reading {
		return "", ErrBusy
	}
	e.reading = true
	defer func() { e.reading = false }()

	e.buf.Reset()
	e.hist.ResetNav()
	e.finished = false
	e.sawEOF = false
	e.ioErr = nil
	e.redraw = true
	if e.search.State() != history.SearchIdle {
		e.search.Cancel()
	}

	if e.term != nil {
		if w, err := e.term.Size(); err == nil {
			e.width = w
		}
		if err := e.term.EnterRaw(); err != nil {
			return "", err
		}
		defer e.term.Restore()
	}
	e.tracker.Reset(e.width)

	for !e.finished {
		e.serviceConfig()
		e.serviceResize()
		if e.redraw {
			e.redraw = false
			e.redrawLine()
		}
		c, ok := e.readByte()
		if !ok {
			e.finished = true
			e.sawEOF = true
			continue
		}
		e.dispatch(c)
	}

	if e.tracker.Col() != 1 {
		e.must(e.tracker.Write([]byte{'\n'}))
	}
	switch {
	case e.ioErr != nil:
		return "", e.ioErr
	case e.sawEOF:
		return "", io.EOF
	default:
		return e.buf.String(), nil
	}
}

// readByte blocks for a single byte. It reports false at end of stream.
func (e *Editor) readByte() (byte, bool) {
	var one [1]byte
	for !e.finished {
		n, err := e.in.Read(one[:])
		if n > 0 {
			return one[0], true
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				return 0, false
			}
			e.fatal(fmt.Errorf("tty read: %w", err))
			return 0, false
		}
	}
	return 0, false
}

// fatal handles an unrecoverable terminal I/O failure: restore the
// terminal, emit a diagnostic, and exit non-zero. Without an attached
// terminal the error is surfaced to the ReadLine caller instead.
func (e *Editor) fatal(err error) {
	if e.term == nil {
		e.ioErr = err
		e.finished = true
		return
	}
	if e.term.Raw() {
		e.term.Restore()
	}
	fmt.Fprintf(os.Stderr, "shoreline: %v\n", err)
	os.Exit(1)
}

func (e *Editor) must(err error) {
	if err != nil {
		e.fatal(err)
	}
}

// alert signals a boundary condition without changing state.
func (e *Editor) alert() {
	if e.bell {
		e.must(e.tracker.Bell())
	}
}

// serviceResize applies a pending window size change. The signal handler
// only delivers into the coalescing channel; all work happens here,
// synchronously, at the top of the loop.
func (e *Editor) serviceResize() {
	select {
	case <-e.winch:
	default:
		return
	}
	if e.term == nil {
		return
	}
	w, err := e.term.Size()
	if err != nil {
		return
	}
	e.width = w
	e.tracker.Resize(w)
	e.redraw = true
}

// serviceConfig applies a pending config reload delivered by the watcher.
func (e *Editor) serviceConfig() {
	select {
	case cfg := <-e.cfgCh:
		e.bell = cfg.Bell
		e.comp.SetDelimiters(cfg.Completion.Delimiters)
		e.histFile = cfg.History.File
	default:
	}
}

// redrawLine repaints the prompt and input, or the search display while a
// search is in progress.
func (e *Editor) redrawLine() {
	if e.search.State() != history.SearchIdle {
		label := "i-search"
		if e.search.State() == history.SearchBackward {
			label = "reverse-i-search"
		}
		display, ok := e.search.Match()
		if !ok {
			display = e.savedLine
		}
		prompt := fmt.Sprintf("(%s)`%s': ", label, e.search.Key())
		e.must(e.tracker.Redraw(prompt, len(prompt), []byte(display), 0))
		return
	}
	back := e.buf.Len() - e.buf.Cursor()
	e.must(e.tracker.Redraw(e.prompt, e.promptVis, e.buf.Bytes(), back))
}

// dispatch classifies one input byte and routes it.
func (e *Editor) dispatch(c byte) {
	if e.search.State() != history.SearchIdle {
		e.dispatchSearch(c)
		return
	}
	if c >= 0x20 && c < 0x7f {
		e.buf.Insert(c)
		e.redraw = true
		return
	}
	e.control(c)
}

func (e *Editor) control(c byte) {
	switch c {
	case ctrlA:
		e.cursorHome()
	case ctrlB:
		e.cursorLeft()
	case ctrlD:
		if e.buf.Len() == 0 {
			e.finished = true
			e.sawEOF = true
			return
		}
		e.deleteAtCursor()
	case ctrlE:
		e.cursorEnd()
	case ctrlF:
		e.cursorRight()
	case ctrlG:
		e.alert()
	case ctrlH, backspace:
		e.deleteBeforeCursor()
	case tab:
		e.complete()
	case lineFeed, carriage:
		e.enter()
	case ctrlK:
		e.killToEnd()
	case ctrlL:
		e.must(e.tracker.ClearScreen())
		e.redraw = true
	case ctrlN:
		e.historyNext()
	case ctrlP:
		e.historyPrev()
	case ctrlR:
		e.startSearch(history.SearchBackward)
	case ctrlS:
		e.startSearch(history.SearchForward)
	case ctrlU:
		e.killToStart()
	case ctrlW:
		e.deleteWordBackward()
	case escseq.Esc:
		e.escapeSequence()
	}
}

// escapeSequence reads bytes one at a time through the recognizer until a
// binding matches or the sequence is abandoned. Abandoned input is never
// echoed.
func (e *Editor) escapeSequence() {
	m := escseq.NewMatcher(e.table)
	for {
		c, ok := e.readByte()
		if !ok {
			return
		}
		act, status := m.Step(c)
		switch status {
		case escseq.StatusMatch:
			e.act(act)
			return
		case escseq.StatusAbandon:
			return
		}
	}
}

func (e *Editor) act(a escseq.Action) {
	switch a {
	case escseq.ActionCursorLeft:
		e.cursorLeft()
	case escseq.ActionCursorRight:
		e.cursorRight()
	case escseq.ActionCursorHome:
		e.cursorHome()
	case escseq.ActionCursorEnd:
		e.cursorEnd()
	case escseq.ActionDelete:
		e.deleteAtCursor()
	case escseq.ActionHistoryPrev:
		e.historyPrev()
	case escseq.ActionHistoryNext:
		e.historyNext()
	case escseq.ActionWordBackward:
		e.wordBackward()
	case escseq.ActionWordForward:
		e.wordForward()
	case escseq.ActionDeleteWordForward:
		e.deleteWordForward()
	}
}

// Cursor motion. Moves that change no text reposition the terminal cursor
// directly instead of scheduling a redraw.

func (e *Editor) cursorHome() {
	if e.buf.Cursor() == 0 {
		return
	}
	e.must(e.tracker.MoveLeft(e.buf.Cursor()))
	e.buf.SetCursor(0)
}

func (e *Editor) cursorEnd() {
	if e.buf.Cursor() == e.buf.Len() {
		return
	}
	e.must(e.tracker.MoveRight(e.buf.Len() - e.buf.Cursor()))
	e.buf.SetCursor(e.buf.Len())
}

func (e *Editor) cursorLeft() {
	if e.buf.Cursor() == 0 {
		e.alert()
		return
	}
	e.must(e.tracker.MoveLeft(1))
	e.buf.SetCursor(e.buf.Cursor() - 1)
}

func (e *Editor) cursorRight() {
	if e.buf.Cursor() == e.buf.Len() {
		e.alert()
		return
	}
	e.must(e.tracker.MoveRight(1))
	e.buf.SetCursor(e.buf.Cursor() + 1)
}

func (e *Editor) wordBackward() {
	start := e.buf.WordStart()
	if start == e.buf.Cursor() {
		e.alert()
		return
	}
	e.must(e.tracker.MoveLeft(e.buf.Cursor() - start))
	e.buf.SetCursor(start)
}

func (e *Editor) wordForward() {
	end := e.buf.WordEnd()
	if end == e.buf.Cursor() {
		e.alert()
		return
	}
	e.must(e.tracker.MoveRight(end - e.buf.Cursor()))
	e.buf.SetCursor(end)
}

// Deletion.

func (e *Editor) deleteBeforeCursor() {
	if !e.buf.RemoveBefore(1) {
		e.alert()
		return
	}
	e.redraw = true
}

func (e *Editor) deleteAtCursor() {
	if !e.buf.RemoveFrom(1) {
		e.alert()
		return
	}
	e.redraw = true
}

func (e *Editor) killToEnd() {
	if !e.buf.RemoveFrom(e.buf.Len() - e.buf.Cursor()) {
		e.alert()
		return
	}
	e.redraw = true
}

func (e *Editor) killToStart() {
	if !e.buf.RemoveBefore(e.buf.Cursor()) {
		e.alert()
		return
	}
	e.redraw = true
}

func (e *Editor) deleteWordBackward() {
	start := e.buf.WordStart()
	if !e.buf.RemoveBefore(e.buf.Cursor() - start) {
		e.alert()
		return
	}
	e.redraw = true
}

func (e *Editor) deleteWordForward() {
	end := e.buf.WordEnd()
	if !e.buf.RemoveFrom(end - e.buf.Cursor()) {
		e.alert()
		return
	}
	e.redraw = true
}

// enter finishes the line: walk the terminal cursor to the end of the
// input, then append the terminator.
func (e *Editor) enter() {
	e.must(e.tracker.MoveRight(e.buf.Len() - e.buf.Cursor()))
	e.buf.Append('\n')
	e.finished = true
}

// History navigation.

func (e *Editor) historyPrev() {
	line, ok := e.hist.NavigatePrev(e.buf.String())
	if !ok {
		e.alert()
		return
	}
	e.buf.SetString(line)
	e.redraw = true
}

func (e *Editor) historyNext() {
	line, ok := e.hist.NavigateNext()
	if !ok {
		e.alert()
		return
	}
	e.buf.SetString(line)
	e.redraw = true
}

// Incremental search.

func (e *Editor) startSearch(state history.SearchState) {
	e.savedLine = e.buf.String()
	e.savedCursor = e.buf.Cursor()
	e.search.Start(state)
	e.redraw = true
}

func (e *Editor) dispatchSearch(c byte) {
	switch {
	case c >= 0x20 && c < 0x7f:
		if !e.search.AddByte(c) {
			e.alert()
		}
		e.redraw = true
	case c == ctrlR:
		if !e.search.Repeat(history.SearchBackward) {
			e.alert()
		}
		e.redraw = true
	case c == ctrlS:
		if !e.search.Repeat(history.SearchForward) {
			e.alert()
		}
		e.redraw = true
	case c == ctrlH || c == backspace:
		if !e.search.DelByte() {
			e.alert()
		}
		e.redraw = true
	case c == ctrlG:
		e.search.Cancel()
		e.buf.SetString(e.savedLine)
		e.buf.SetCursor(e.savedCursor)
		e.redraw = true
	case c == escseq.Esc:
		// Usually the start of an arrow sequence rather than a lone cancel
		// key. Leave the search first, then run the recognizer so the
		// remaining sequence bytes act on the restored line instead of
		// landing in the buffer as text.
		e.search.Cancel()
		e.buf.SetString(e.savedLine)
		e.buf.SetCursor(e.savedCursor)
		e.redraw = true
		e.escapeSequence()
	case c == lineFeed || c == carriage:
		match, ok := e.search.Match()
		e.search.Accept()
		if ok {
			e.buf.SetString(match)
		} else {
			e.buf.SetString(e.savedLine)
			e.buf.SetCursor(e.savedCursor)
		}
		e.redraw = true
	default:
		e.alert()
	}
}

// Completion.

func (e *Editor) complete() {
	result, candidates := e.comp.Complete(e.buf)
	switch result {
	case complete.ResultNone:
		e.alert()
	case complete.ResultReplaced, complete.ResultPrefix:
		e.redraw = true
	case complete.ResultList:
		e.showCandidates(candidates)
	}
}

// showCandidates prints the candidate list below the input, then repaints
// the line on a fresh tracked region.
func (e *Editor) showCandidates(candidates []string) {
	e.must(e.tracker.MoveToEnd())
	var b strings.Builder
	b.WriteString("\r\n")
	b.WriteString(strings.Join(candidates, "  "))
	b.WriteString("\r\n")
	e.must(e.tracker.Write([]byte(b.String())))
	e.tracker.Reset(e.width)
	e.redraw = true
}

// History facade.

// AddHistory appends a line to the history, stripping one trailing
// newline if present.
func (e *Editor) AddHistory(line string) {
	e.hist.Add(line)
}

// HistoryEntry returns an entry by position: positive n counts 1-based
// from the oldest entry, negative from the newest (-1 is the newest).
func (e *Editor) HistoryEntry(n int) (string, bool) {
	return e.hist.Get(n)
}

// HistoryEntries returns a copy of the stored history, oldest first.
func (e *Editor) HistoryEntries() []string {
	return e.hist.Entries()
}

// ClearHistory empties the history store.
func (e *Editor) ClearHistory() {
	e.hist.Clear()
}

// SaveHistory writes the history to path, truncating or appending.
func (e *Editor) SaveHistory(path string, appendMode bool) error {
	return e.hist.Save(path, appendMode)
}

// LoadHistory replaces the history with the records in path.
func (e *Editor) LoadHistory(path string) error {
	return e.hist.Load(path)
}

// WriteHistory writes a numbered history listing, oldest first.
func (e *Editor) WriteHistory(w io.Writer) error {
	return e.hist.Print(w)
}

// WatchConfig reloads the TOML file at path whenever it changes. Reloads
// are applied synchronously at the top of the read loop, the same way
// resizes are. Bell, completion delimiters, and the history file path
// take effect live; the history capacity is fixed at construction.
func (e *Editor) WatchConfig(path string) error {
	if e.watcher != nil {
		e.watcher.Close()
	}
	w, err := config.Watch(path, 0, func(cfg config.Config, err error) {
		if err != nil {
			return
		}
		// Replace any pending reload; only the latest matters.
		select {
		case <-e.cfgCh:
		default:
		}
		select {
		case e.cfgCh <- cfg:
		default:
		}
	})
	if err != nil {
		return err
	}
	e.watcher = w
	return nil
}
