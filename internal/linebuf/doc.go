// Package linebuf provides the single-line edit buffer used by the editor.
//
// A Buffer holds the bytes of the line being edited together with a logical
// cursor offset. It supports insertion at the cursor, range removal on
// either side of the cursor, word-boundary scanning for word-wise motion,
// and whole-content replacement for history recall and completion.
//
// The buffer grows by doubling its capacity, preserving contents. One input
// byte is one display column; the buffer performs no encoding-aware work.
package linebuf
