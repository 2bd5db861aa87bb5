package ioadapt

import (
	"bufio"
	"io"
)

// AsciiBitReader reads an unsynchronized serial bitstream expressed as '0'
// and '1' characters, skipping anything else (typically newlines).
// Grounded on original_source/src/io/input.cc's AsciiBitReader.
type AsciiBitReader struct {
	reader   *bufio.Reader
	isEOF    bool
	feedThru io.Writer
}

// NewAsciiBitReader wraps r; if feedThru is non-nil, every byte read
// (including skipped ones) is echoed to it, matching the --feed-through
// option.
func NewAsciiBitReader(r io.Reader, feedThru io.Writer) *AsciiBitReader {
	return &AsciiBitReader{reader: bufio.NewReader(r), feedThru: feedThru}
}

// ReadBit returns the next '0'/'1' character as a bool. EOF returns false;
// callers should check IsEOF afterwards.
func (a *AsciiBitReader) ReadBit() bool {
	for {
		b, err := a.reader.ReadByte()
		if err != nil {
			a.isEOF = true

			return false
		}

		if a.feedThru != nil {
			a.feedThru.Write([]byte{b})
		}

		if b == '0' || b == '1' {
			return b == '1'
		}
	}
}

// IsEOF reports whether the underlying reader has been exhausted.
func (a *AsciiBitReader) IsEOF() bool { return a.isEOF }
