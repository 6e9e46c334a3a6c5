// Package history stores prior input lines in a fixed-capacity circular
// ring and provides navigation, incremental substring search, and
// plain-text persistence.
//
// The ring pre-allocates N entry slots plus one extra draft slot at logical
// index N. While the user browses history the draft slot holds the
// in-progress line, so navigating past the newest entry restores it.
// Adding beyond capacity overwrites the oldest entry; slots are only ever
// overwritten, never released, until the ring itself is dropped.
//
// Persistence is one entry per line, newline-terminated, with no escaping:
// an entry containing a newline would prematurely end its record.
package history
