package ioadapt

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/windytan-exercise/rdsgo/internal/rds/group"
)

// HexGroupReader reads RDS Spy-style hex groups ("XXXX XXXX XXXX XXXX",
// "----" for missing blocks, an optional leading "#SN" data-stream tag),
// one per line. Spaces between blocks are optional; lines shorter than 16
// characters are skipped. Grounded on original_source/src/io/input.cc's
// readHexGroup.
type HexGroupReader struct {
	scanner  *bufio.Scanner
	feedThru io.Writer
}

// NewHexGroupReader wraps r for line-at-a-time hex group reads. If
// feedThru is non-nil every input line is echoed to it, matching the
// --feed-through option.
func NewHexGroupReader(r io.Reader, feedThru io.Writer) *HexGroupReader {
	return &HexGroupReader{scanner: bufio.NewScanner(r), feedThru: feedThru}
}

// ReadGroup reads the next hex group. The returned bool is false at EOF.
// A block whose four nibbles contain anything that isn't a hex digit
// (e.g. the "----" marker) stays un-received; what did arrive is still
// returned, so out-of-order or truncated lines degrade to partial groups
// rather than being rejected.
func (h *HexGroupReader) ReadGroup() (group.Group, bool) {
	for h.scanner.Scan() {
		line := h.scanner.Text()

		if h.feedThru != nil {
			fmt.Fprintln(h.feedThru, line)
		}

		if len(line) < 16 {
			continue
		}

		dataStream := 0

		if len(line) >= 20 && (strings.HasPrefix(line, "#S1 ") ||
			strings.HasPrefix(line, "#S2 ") || strings.HasPrefix(line, "#S3 ")) {
			dataStream = int(line[2] - '0')
			line = line[4:]
		}

		var g group.Group
		g.DisableOffsets()

		pos := 0

		for _, n := range []group.BlockNumber{group.Block1, group.Block2, group.Block3, group.Block4} {
			var data uint16

			valid := true
			nibbles := 0

			for nibbles < 4 && pos < len(line) {
				c := line[pos]
				pos++

				if c == ' ' {
					continue
				}

				v, ok := hexNibble(c)
				if !ok {
					valid = false
				}

				data = data<<4 | uint16(v)
				nibbles++
			}

			if valid && nibbles == 4 {
				g.SetBlock(n, group.Block{Data: data, IsReceived: true})
			}
		}

		g.SetDataStream(dataStream)

		if dataStream > 0 {
			g.SetVersionC()
		}

		return g, true
	}

	return group.Group{}, false
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}

	return 0, false
}
