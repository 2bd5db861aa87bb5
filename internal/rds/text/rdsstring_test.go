package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/text"
)

func TestBasicEncodingDecodesViaG0Table(t *testing.T) {
	s := text.NewRDSString(8)
	s.SetPair(0, 'R', 'D')
	s.SetPair(2, 'S', ' ')
	s.SetPair(4, 'F', 'M')
	s.SetPair(6, ' ', ' ')

	require.True(t, s.IsComplete())

	str, err := s.Str()
	require.NoError(t, err)
	assert.Equal(t, "RDS FM  ", str)
	assert.Equal(t, "RDS FM  ", s.LastCompleteString())
}

func TestExpectedLengthStopsAtTerminator(t *testing.T) {
	s := text.NewRDSString(8)
	s.SetPair(0, 'A', 'B')
	s.Set(2, 0x0D)

	assert.Equal(t, 3, s.GetExpectedLength())
	assert.True(t, s.HasPreviouslyReceivedTerminators())
}

func TestIsCompleteRequiresContiguousReceipt(t *testing.T) {
	s := text.NewRDSString(4)
	s.SetPair(0, 'A', 'B')
	assert.False(t, s.IsComplete())

	// Out-of-order write to position 3 does not extend the received run.
	s.Set(3, 'D')
	assert.Equal(t, 2, s.GetReceivedLength())
	assert.False(t, s.IsComplete())

	// Recovering requires rewriting the run starting at the exact frontier
	// position, one byte at a time, same as a station re-sending PS/RT from
	// its first segment after an interruption.
	s.Set(1, 'B')
	s.Set(2, 'C')
	s.Set(3, 'D')
	assert.True(t, s.IsComplete())
}

func TestLastCompleteStringOnlyUpdatesOnCompletion(t *testing.T) {
	s := text.NewRDSString(4)
	s.SetEncoding(text.Basic)
	s.SetPair(0, 'H', 'I')
	s.SetPair(2, '!', '!')
	require.True(t, s.IsComplete())
	assert.Equal(t, "HI!!", s.LastCompleteString())

	// Clear wipes the snapshot, and a partial update afterwards (not yet
	// completing a new run) does not produce a new one.
	s.Clear()
	s.Set(0, 'X')
	assert.Equal(t, "", s.LastCompleteString(), "Clear wipes the snapshot; a lone byte can't re-complete a 4-char field")
}

func TestUTF8EncodingRejectsInvalidBytes(t *testing.T) {
	// Capacity 4 keeps the string incomplete: Set clears a string whose
	// completing byte makes it undecodable.
	s := text.NewRDSString(4)
	s.SetEncoding(text.UTF8)
	s.SetPair(0, 0xFF, 0xFE)

	_, err := s.Str()
	assert.Error(t, err)
}

func TestUCS2EncodingDecodesBigEndianPairs(t *testing.T) {
	s := text.NewRDSString(2)
	s.SetEncoding(text.UCS2)
	// U+20AC '€' as UCS-2 big-endian. (A 0x00 high byte would be read back
	// as a space by GetData, which treats a raw NUL as not-yet-received.)
	s.SetPair(0, 0x20, 0xAC)

	str, err := s.Str()
	require.NoError(t, err)
	assert.Equal(t, "€", str)
}

func TestLastCompleteStringRangeExtractsSubstring(t *testing.T) {
	s := text.NewRDSString(8)
	s.SetEncoding(text.Basic)
	s.SetPair(0, 'H', 'E')
	s.SetPair(2, 'L', 'L')
	s.SetPair(4, 'O', ' ')
	s.SetPair(6, '!', ' ')
	require.True(t, s.IsComplete())

	assert.Equal(t, "HELLO", s.LastCompleteStringRange(0, 5))
	assert.Equal(t, "", s.LastCompleteStringRange(0, 99))
}
