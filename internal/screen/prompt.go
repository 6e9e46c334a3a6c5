package screen

// VisibleLen returns the printable length of s with ANSI escape runs
// excluded. A CSI run (ESC '[') ends at its final byte in 0x40..0x7e;
// any other escape is treated as a two-byte sequence.
func VisibleLen(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if s[i] != 0x1b {
			n++
			i++
			continue
		}
		i++
		if i < len(s) && s[i] == '[' {
			i++
			for i < len(s) {
				c := s[i]
				i++
				if c >= 0x40 && c <= 0x7e {
					break
				}
			}
		} else if i < len(s) {
			i++
		}
	}
	return n
}
