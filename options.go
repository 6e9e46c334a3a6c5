package shoreline

import (
	"io"

	"github.com/tidewater-io/shoreline/internal/config"
)

// Generator produces completion candidates for the token in
// line[start:end). The returned slice must be sorted ascending and is
// consumed by the editor for the duration of one request only.
type Generator func(line string, start, end int) []string

// settings collects everything the options can influence before the
// editor is assembled.
type settings struct {
	cfg    config.Config
	prompt string
	gen    Generator
	in     io.Reader
	out    io.Writer
	width  int
	err    error
}

// Option configures an Editor at construction time.
type Option func(*settings)

// WithPrompt sets the prompt displayed before each line. Styling escape
// runs are displayed verbatim and excluded from cursor math.
func WithPrompt(prompt string) Option {
	return func(s *settings) { s.prompt = prompt }
}

// WithHistoryCapacity fixes the number of history slots.
func WithHistoryCapacity(n int) Option {
	return func(s *settings) { s.cfg.History.Capacity = n }
}

// WithHistoryFile loads history from path at construction and saves it
// back on Close.
func WithHistoryFile(path string) Option {
	return func(s *settings) { s.cfg.History.File = path }
}

// WithCompleter installs the completion candidate generator.
func WithCompleter(gen Generator) Option {
	return func(s *settings) { s.gen = gen }
}

// WithDelimiters sets the characters bounding a completable token.
func WithDelimiters(delims string) Option {
	return func(s *settings) { s.cfg.Completion.Delimiters = delims }
}

// WithBell enables or disables the audible alert on boundary conditions.
func WithBell(enabled bool) Option {
	return func(s *settings) { s.cfg.Bell = enabled }
}

// WithConfigFile overlays settings from a TOML file (with SHORELINE_*
// environment overrides). Later options still win.
func WithConfigFile(path string) Option {
	return func(s *settings) {
		cfg, err := config.Load(path)
		if err != nil {
			s.err = err
			return
		}
		s.cfg = cfg
	}
}

// WithStreams runs the editor over the given reader and writer instead of
// the process terminal. No raw-mode control or size queries happen; the
// width set with WithWidth is used. Intended for embedding over
// pseudo-terminals and for tests.
func WithStreams(in io.Reader, out io.Writer) Option {
	return func(s *settings) {
		s.in = in
		s.out = out
	}
}

// WithWidth fixes the terminal width when streams are injected.
func WithWidth(width int) Option {
	return func(s *settings) { s.width = width }
}
