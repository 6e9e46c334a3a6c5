package history

import (
	"bufio"
	"fmt"
	"io"
	"os"
)

// Save writes the entries to path, oldest first, one per line. With
// appendMode set the file is appended to, otherwise it is truncated.
func (r *Ring) Save(path string, appendMode bool) error {
	flags := os.O_WRONLY | os.O_CREATE
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	f, err := os.OpenFile(path, flags, 0o644)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	w := bufio.NewWriter(f)
	for i := 0; i < r.count; i++ {
		if _, err := w.WriteString(r.slots[(r.start+i)%r.capacity]); err != nil {
			f.Close()
			return fmt.Errorf("write history file: %w", err)
		}
		if err := w.WriteByte('\n'); err != nil {
			f.Close()
			return fmt.Errorf("write history file: %w", err)
		}
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write history file: %w", err)
	}
	return f.Close()
}

// Load replaces the ring contents with the records in path, one entry per
// line. Records beyond capacity displace the oldest, matching Add.
func (r *Ring) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open history file: %w", err)
	}
	defer f.Close()

	r.Clear()
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		r.Add(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("read history file: %w", err)
	}
	return nil
}

// Print writes a numbered listing of the entries, oldest first.
func (r *Ring) Print(w io.Writer) error {
	for i := 0; i < r.count; i++ {
		if _, err := fmt.Fprintf(w, "%5d  %s\n", i+1, r.slots[(r.start+i)%r.capacity]); err != nil {
			return err
		}
	}
	return nil
}
