// Package shoreline is an interactive terminal line-editing engine. It
// reads one line from an interactive terminal while providing cursor
// movement, deletion, word-wise motion, history recall, incremental
// history search, and tab-completion, implemented over raw-mode terminal
// I/O and hand-emitted ANSI escape sequences.
//
// Basic usage:
//
//	ed, err := shoreline.New(shoreline.WithPrompt("> "))
//	if err != nil {
//		// not running on an interactive terminal
//	}
//	defer ed.Close()
//
//	for {
//		line, err := ed.ReadLine()
//		if err == io.EOF {
//			break
//		}
//		ed.AddHistory(line)
//		// line includes its trailing newline
//	}
//
// An Editor is single-threaded and non-reentrant: exactly one ReadLine
// call may be in flight at a time. The returned line is a copy and remains
// valid after the next call.
//
// Key bindings follow the usual conventions: Ctrl+A/E home and end,
// Ctrl+B/F and the arrow keys move, Ctrl+H/Backspace and Delete erase,
// Ctrl+K/U kill to the line ends, Ctrl+W and Alt+d erase words, Alt+b/f
// and Ctrl+Arrow move by words, Ctrl+L clears the screen, Up/Down and
// Ctrl+P/N walk history, Ctrl+R/S search it incrementally, and Tab
// completes through a caller-supplied generator.
package shoreline
