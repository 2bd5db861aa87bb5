package bits_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
)

func TestGet(t *testing.T) {
	var word uint32 = 0b1011_0100
	assert.Equal(t, uint32(0b0100), bits.Get(word, 0, 4))
	assert.Equal(t, uint32(0b1011), bits.Get(word, 4, 4))
	assert.Equal(t, uint32(0), bits.Get(word, 8, 4))
}

func TestGetBool(t *testing.T) {
	var word uint32 = 0b0010
	assert.True(t, bits.GetBool(word, 1))
	assert.False(t, bits.GetBool(word, 0))
}

func TestGetSigned(t *testing.T) {
	// 5-bit two's complement: 0b11100 == -4
	assert.Equal(t, int32(-4), bits.GetSigned(0b11100, 0, 5))
	assert.Equal(t, int32(12), bits.GetSigned(0b01100, 0, 5))
}

func TestGet2SpansWords(t *testing.T) {
	// word1 = 0x00AB, word2 = 0xCD00 -> combined 0x00ABCD00; bits 8..23
	// span the boundary between the two words.
	var word1 uint32 = 0x00AB
	var word2 uint32 = 0xCD00
	combinedTop := bits.Get2(word1, word2, 8, 16)
	assert.Equal(t, uint32(0xABCD), combinedTop)
}
