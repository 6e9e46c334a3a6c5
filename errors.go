package shoreline

import (
	"errors"

	"github.com/tidewater-io/shoreline/internal/termctl"
)

// Errors returned by the editor.
var (
	// ErrNotTerminal indicates a standard stream is not an interactive
	// terminal. The editor refuses to operate without one.
	ErrNotTerminal = termctl.ErrNotTerminal

	// ErrBusy indicates a ReadLine call is already in flight.
	ErrBusy = errors.New("a read is already in progress")
)
