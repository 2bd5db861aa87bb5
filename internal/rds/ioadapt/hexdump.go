package ioadapt

import (
	"fmt"
	"strings"
)

// HexDump renders data as offset/hex/ASCII rows, 16 bytes per line, the way
// the teacher repo's hex_dump.go does for diagnostic printing. No decoder
// output path calls it.
func HexDump(data []byte) string {
	var b strings.Builder

	offset := 0
	for len(data) > 0 {
		n := min(len(data), 16)

		fmt.Fprintf(&b, "  %03x: ", offset)

		for i := 0; i < n; i++ {
			fmt.Fprintf(&b, " %02x", data[i])
		}

		for i := n; i < 16; i++ {
			b.WriteString("   ")
		}

		b.WriteString("  ")

		for i := 0; i < n; i++ {
			if data[i] >= 0x20 && data[i] <= 0x7E {
				b.WriteByte(data[i])
			} else {
				b.WriteByte('.')
			}
		}

		b.WriteByte('\n')

		data = data[n:]
		offset += n
	}

	return b.String()
}
