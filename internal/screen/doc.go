// Package screen tracks the terminal cursor across soft-wrapped output and
// emits the ANSI sequences that keep the real cursor aligned with the model.
//
// The screen is modeled as a flat stream of cells: a (row, column) pair,
// both 1-based and relative to the start of the prompt, encodes to the flat
// position (row-1)*width + column-1. Advancing by n cells and moving the
// cursor without writing both use the same arithmetic. A tracked write that
// lands exactly on column 1 emits one padding space so the terminal's own
// wrap fires when the model expects it to.
//
// Prompts may contain ANSI styling runs; VisibleLen computes the printable
// length used for cursor math with those runs excluded.
package screen
