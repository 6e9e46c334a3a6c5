// Package termctl switches the terminal between cooked and raw mode and
// answers size queries. Raw mode here means canonical processing and echo
// off with reads returning after one byte and no timeout; everything else,
// signal generation included, is left as found.
package termctl

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// Errors returned by the controller.
var (
	// ErrNotTerminal indicates a standard stream is not an interactive
	// terminal.
	ErrNotTerminal = errors.New("not an interactive terminal")

	// ErrNotRaw indicates Restore was called without a prior EnterRaw.
	ErrNotRaw = errors.New("terminal is not in raw mode")
)

// Controller owns the terminal mode for one input/output descriptor pair.
type Controller struct {
	inFD  int
	outFD int
	saved *unix.Termios
}

// Open validates that both descriptors are interactive terminals and
// returns a controller for them.
func Open(inFD, outFD int) (*Controller, error) {
	if !term.IsTerminal(inFD) || !term.IsTerminal(outFD) {
		return nil, ErrNotTerminal
	}
	return &Controller{inFD: inFD, outFD: outFD}, nil
}

// EnterRaw captures the current attributes, then disables canonical mode
// and echo and sets reads to return after one byte with no timeout.
func (c *Controller) EnterRaw() error {
	saved, err := unix.IoctlGetTermios(c.inFD, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("get tty attributes: %w", err)
	}

	raw := *saved
	raw.Lflag &^= unix.ICANON | unix.ECHO
	raw.Cc[unix.VMIN] = 1
	raw.Cc[unix.VTIME] = 0
	if err := unix.IoctlSetTermios(c.inFD, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("set tty attributes: %w", err)
	}

	c.saved = saved
	return nil
}

// Raw reports whether the terminal is currently in raw mode.
func (c *Controller) Raw() bool {
	return c.saved != nil
}

// Restore reinstates the attributes captured by EnterRaw.
func (c *Controller) Restore() error {
	if c.saved == nil {
		return ErrNotRaw
	}
	if err := unix.IoctlSetTermios(c.inFD, ioctlWriteTermios, c.saved); err != nil {
		return fmt.Errorf("reset tty attributes: %w", err)
	}
	c.saved = nil
	return nil
}

// Size returns the terminal width in columns.
func (c *Controller) Size() (int, error) {
	w, _, err := term.GetSize(c.outFD)
	if err != nil {
		return 0, fmt.Errorf("get tty window size: %w", err)
	}
	return w, nil
}
