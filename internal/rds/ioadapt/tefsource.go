package ioadapt

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/windytan-exercise/rdsgo/internal/rds/group"
)

// TEFGroupReader reads the line-oriented debug protocol a TEF6686-based
// tuner emits over serial: a "PXXXX" line carrying the PI code, followed by
// an "Rxxxxxxxxxxxxee" line carrying blocks 2-4 plus a per-block error
// nibble pair. Grounded on original_source/src/io/input.cc's readTEFGroup,
// referencing the same PE5PVB/TEF6686_ESP32 wire format the original cites.
type TEFGroupReader struct {
	scanner  *bufio.Scanner
	feedThru io.Writer
}

// NewTEFGroupReader wraps r for line-at-a-time TEF6686 reads. If feedThru
// is non-nil every input line is echoed to it, matching the
// --feed-through option.
func NewTEFGroupReader(r io.Reader, feedThru io.Writer) *TEFGroupReader {
	return &TEFGroupReader{scanner: bufio.NewScanner(r), feedThru: feedThru}
}

// ReadGroup reads one PI line followed by one R line as a single group. The
// returned bool is false at EOF before a complete group was assembled.
func (t *TEFGroupReader) ReadGroup() (group.Group, bool) {
	var g group.Group
	g.DisableOffsets()

	for t.scanner.Scan() {
		line := t.scanner.Text()

		if t.feedThru != nil {
			fmt.Fprintln(t.feedThru, line)
		}

		switch {
		case strings.HasPrefix(line, "P"):
			value, err := strconv.ParseUint(line[1:], 16, 16)
			if err != nil {
				continue
			}

			g.SetBlock(group.Block1, group.Block{Data: uint16(value), IsReceived: true})
		case strings.HasPrefix(line, "R") && len(line) >= 15:
			b2, err2 := strconv.ParseUint(line[1:5], 16, 16)
			b3, err3 := strconv.ParseUint(line[5:9], 16, 16)
			b4, err4 := strconv.ParseUint(line[9:13], 16, 16)
			rdsErr, errE := strconv.ParseUint(line[13:15], 16, 8)

			if err2 != nil || err3 != nil || err4 != nil || errE != nil {
				return g, true
			}

			g.SetBlock(group.Block2, group.Block{Data: uint16(b2), IsReceived: (rdsErr>>4)&0x3 == 0})
			g.SetBlock(group.Block3, group.Block{Data: uint16(b3), IsReceived: (rdsErr>>2)&0x3 == 0})
			g.SetBlock(group.Block4, group.Block{Data: uint16(b4), IsReceived: (rdsErr>>0)&0x3 == 0})

			return g, true
		}
	}

	return g, !g.IsEmpty()
}
