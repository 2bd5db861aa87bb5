// Package text implements RDSString, the accumulating fixed-capacity text
// buffer used for PS, RadioText, PTY name, and the other RDS text fields,
// per spec.md §4.7.
//
// Grounded on original_source/src/text/rdsstring.cc/.hh: per-position
// "received" tracking via a single running sequential_length_ counter
// (rather than a bool per slot, since runs are always contiguous from 0),
// the three encodings, and the last-complete-string snapshot rule.
package text

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// Encoding selects how raw bytes in the buffer are rendered as text.
type Encoding int

const (
	// Basic maps each byte through the EN 50067:1998 Annex E G0 table.
	Basic Encoding = iota
	// UCS2 decodes two-byte big-endian UCS-2/UTF-16 code units.
	UCS2
	// UTF8 passes raw bytes straight through.
	UTF8
)

// Direction records whether this field reads left-to-right or right-to-left
// (carried for RDS2 additional data streams that declare a reading
// direction; the RDS1 fields are all LTR).
type Direction int

const (
	LTR Direction = iota
	RTL
)

const (
	stringTerminator byte = 0x0D
	blankSpace       byte = 0x20
)

// RDSString is a fixed-capacity byte buffer with per-position reception
// tracking and a snapshot of the last fully-received string.
type RDSString struct {
	encoding Encoding
	dir      Direction

	data             []byte
	lastCompleteData []byte

	prevPos          int
	sequentialLength int

	lastComplete string
}

// NewRDSString allocates a zero-filled buffer of the given byte capacity.
func NewRDSString(length int) *RDSString {
	return &RDSString{data: make([]byte, length)}
}

// Set writes one byte at pos, extending the received run if pos continues
// it, and snapshots the string if this completes it.
func (s *RDSString) Set(pos int, b byte) {
	if pos < 0 || pos >= len(s.data) {
		return
	}

	s.data[pos] = b

	if pos == 0 || (pos == s.prevPos+1 && s.sequentialLength == pos) {
		s.sequentialLength = pos + 1
	}

	if s.IsComplete() {
		str, err := s.Str()
		if err == nil {
			s.lastComplete = str
			s.lastCompleteData = append([]byte(nil), s.GetData()...)
		} else {
			s.Clear()

			return
		}
	}

	s.prevPos = pos
}

// SetPair writes two consecutive bytes (the common case: most group types
// deliver two characters per block).
func (s *RDSString) SetPair(pos int, b1, b2 byte) {
	s.Set(pos, b1)
	s.Set(pos+1, b2)
}

// GetReceivedLength is the length, in bytes, of the longest prefix received
// in sequence so far.
func (s *RDSString) GetReceivedLength() int {
	return s.sequentialLength
}

// GetExpectedLength is the position of the first string-terminator byte, or
// the buffer's full capacity if none has been seen.
func (s *RDSString) GetExpectedLength() int {
	for i, b := range s.data {
		if b == stringTerminator {
			return i + 1
		}
	}

	return len(s.data)
}

// HasPreviouslyReceivedTerminators reports whether a 0x0D terminator byte
// has ever landed in the buffer (used to detect a station that pads PS/RT
// with early terminators rather than spaces).
func (s *RDSString) HasPreviouslyReceivedTerminators() bool {
	for _, b := range s.data {
		if b == stringTerminator {
			return true
		}
	}

	return false
}

// Resize grows or shrinks the buffer, padding with blanks.
func (s *RDSString) Resize(n int) {
	if n <= len(s.data) {
		s.data = s.data[:n]

		return
	}

	grown := make([]byte, n)
	copy(grown, s.data)

	for i := len(s.data); i < n; i++ {
		grown[i] = blankSpace
	}

	s.data = grown
}

// SetEncoding selects Basic/UCS2/UTF8 rendering.
func (s *RDSString) SetEncoding(e Encoding) { s.encoding = e }

// SetDirection records the reading direction.
func (s *RDSString) SetDirection(d Direction) { s.dir = d }

// GetData returns the expected-length byte slice, with un-received or
// terminator/NUL positions rendered as blanks.
func (s *RDSString) GetData() []byte {
	length := s.GetExpectedLength()
	out := make([]byte, length)

	for i := 0; i < length; i++ {
		if s.sequentialLength > i && s.data[i] != stringTerminator && s.data[i] != 0x00 {
			out[i] = s.data[i]
		} else {
			out[i] = blankSpace
		}
	}

	return out
}

// Str decodes the buffer per its configured encoding. It returns an error
// for malformed UTF-8 or an odd-length/invalid UCS-2 payload, so that
// callers can drop the field rather than emit garbage (spec.md §8's
// "malformed UTF-8 / bad UCS-2" edge case).
func (s *RDSString) Str() (string, error) {
	data := s.GetData()

	switch s.encoding {
	case Basic:
		var sb []byte
		for _, b := range data {
			sb = append(sb, g0Table[b]...)
		}

		return string(sb), nil

	case UCS2:
		return decodeUCS2(data)

	case UTF8:
		if !utf8.Valid(data) {
			return "", fmt.Errorf("text: invalid UTF-8 in field")
		}

		return string(data), nil
	}

	return "", fmt.Errorf("text: unknown encoding %d", s.encoding)
}

func decodeUCS2(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", fmt.Errorf("text: odd-length UCS-2 payload (%d bytes)", len(data))
	}

	units := make([]uint16, len(data)/2)
	for i := range units {
		units[i] = uint16(data[2*i])<<8 | uint16(data[2*i+1])
	}

	runes := utf16.Decode(units)
	for _, r := range runes {
		if r == utf8.RuneError {
			return "", fmt.Errorf("text: invalid UCS-2 code unit")
		}
	}

	return string(runes), nil
}

// LastCompleteString returns the most recent fully-received decode, or ""
// if none has completed yet.
func (s *RDSString) LastCompleteString() string {
	return s.lastComplete
}

// LastCompleteStringRange returns a rune-indexed substring of the last
// complete string, or "" if the range falls outside it (used by RT+/eRT+ to
// pull out a tagged span, spec.md §4.6's 3A ODA dispatch).
func (s *RDSString) LastCompleteStringRange(start, length int) string {
	runes := []rune(s.lastComplete)

	end := start + length
	if start < 0 || end > len(runes) {
		return ""
	}

	return string(runes[start:end])
}

// IsComplete reports whether the received run covers the full expected
// length.
func (s *RDSString) IsComplete() bool {
	return s.GetReceivedLength() >= s.GetExpectedLength()
}

// Clear resets reception state and the last-complete snapshot, but keeps
// the configured encoding/direction/capacity.
func (s *RDSString) Clear() {
	s.sequentialLength = 0
	s.prevPos = 0
	s.lastComplete = ""
	s.lastCompleteData = nil
}
