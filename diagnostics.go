package mysql

import (
	"fmt"
	"strings"
)

// HexDump renders data as a human-readable hex/ASCII dump, 16 bytes per
// line, grounded on MySQLProtocol.hexdump from the original source
// (spec.md §9 "Hex dump / logging ... a pure function from bytes to a
// human-readable string; belongs in a diagnostic helper, not the core
// contract"). Nothing in the core calls it; protocol logic never consults
// it.
func HexDump(data []byte) string {
	var b strings.Builder
	for i := 0; i < len(data); i += 16 {
		end := i + 16
		if end > len(data) {
			end = len(data)
		}
		line := data[i:end]

		fmt.Fprintf(&b, "%08x  ", i)
		for j := 0; j < 16; j++ {
			if j < len(line) {
				fmt.Fprintf(&b, "%02x ", line[j])
			} else {
				b.WriteString("   ")
			}
			if j == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for _, c := range line {
			if c >= 0x20 && c < 0x7f {
				b.WriteByte(c)
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteString("|\n")
	}
	return b.String()
}
