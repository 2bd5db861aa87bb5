package blocksync_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/blocksync"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
)

// encodeBlock builds a clean 26-bit codeword for the given 16-bit data word
// and offset by brute-forcing the 10-bit checkword that produces the
// offset's syndrome. The code is linear, so exactly one checkword satisfies
// this for any data/offset pair.
func encodeBlock(t *testing.T, data uint16, offset group.Offset) uint32 {
	t.Helper()

	for checkword := uint32(0); checkword < 1<<10; checkword++ {
		raw := (uint32(data) << 10) | checkword
		if blocksync.GetOffsetForSyndrome(blocksync.CalculateSyndrome(raw)) == offset {
			return raw
		}
	}

	t.Fatalf("no checkword found for data %04x offset %v", data, offset)

	return 0
}

func pushBits(bs *blocksync.BlockStream, raw uint32, bitCount int) {
	for i := bitCount - 1; i >= 0; i-- {
		bs.PushBit((raw>>uint(i))&1 == 1)
	}
}

func TestEncodeBlockRoundTrips(t *testing.T) {
	raw := encodeBlock(t, 0x1234, group.OffsetA)
	assert.Equal(t, group.OffsetA, blocksync.GetOffsetForSyndrome(blocksync.CalculateSyndrome(raw)))
	assert.Equal(t, uint16(0x1234), uint16(raw>>10))
}

func TestCorrectBurstErrorsSingleBitFlip(t *testing.T) {
	raw := encodeBlock(t, 0xBEEF, group.OffsetB)
	flipped := raw ^ (1 << 5)

	corrected, ok := blocksync.CorrectBurstErrors(flipped, group.OffsetB)
	require.True(t, ok)
	assert.Equal(t, raw, corrected)
}

func TestCorrectBurstErrorsTwoBitAdjacentBurst(t *testing.T) {
	raw := encodeBlock(t, 0x0102, group.OffsetC)
	flipped := raw ^ (0b11 << 14)

	corrected, ok := blocksync.CorrectBurstErrors(flipped, group.OffsetC)
	require.True(t, ok)
	assert.Equal(t, raw, corrected)
}

func TestCorrectBurstErrorsRejectsWidespreadDamage(t *testing.T) {
	raw := encodeBlock(t, 0x5555, group.OffsetD)
	// Three widely separated bit flips: not a single burst of <=2 bits, and
	// their syndrome matches no correctable pattern. (Some triples, such as
	// bits 2, 12 and 22, share a syndrome with a 2-bit burst and are
	// miscorrected instead.)
	flipped := raw ^ (1 << 1) ^ (1 << 12) ^ (1 << 22)

	_, ok := blocksync.CorrectBurstErrors(flipped, group.OffsetD)
	assert.False(t, ok)
}

func TestBlockStreamAcquiresSyncAndEmitsGroups(t *testing.T) {
	bs := blocksync.NewBlockStream(blocksync.Options{UseFEC: true})

	blockA := encodeBlock(t, 0x1001, group.OffsetA)
	blockB := encodeBlock(t, 0x2002, group.OffsetB)
	blockC := encodeBlock(t, 0x3003, group.OffsetC)
	blockD := encodeBlock(t, 0x4004, group.OffsetD)

	for i := 0; i < 2; i++ {
		pushBits(bs, blockA, 26)
		pushBits(bs, blockB, 26)
		pushBits(bs, blockC, 26)
		pushBits(bs, blockD, 26)
	}

	require.True(t, bs.IsInSync())
	require.True(t, bs.HasGroupReady())

	g := bs.PopGroup()
	assert.Equal(t, uint16(0x1001), g.Get(group.Block1))
	assert.Equal(t, uint16(0x2002), g.Get(group.Block2))
	assert.Equal(t, uint16(0x3003), g.Get(group.Block3))
	assert.Equal(t, uint16(0x4004), g.Get(group.Block4))
	assert.True(t, g.Has(group.Block1))
	assert.True(t, g.Has(group.Block4))
}

func TestBlockStreamLosesSyncAfterSustainedErrors(t *testing.T) {
	bs := blocksync.NewBlockStream(blocksync.Options{UseFEC: false})

	blockA := encodeBlock(t, 0x1001, group.OffsetA)
	blockB := encodeBlock(t, 0x2002, group.OffsetB)
	blockC := encodeBlock(t, 0x3003, group.OffsetC)
	blockD := encodeBlock(t, 0x4004, group.OffsetD)

	for i := 0; i < 2; i++ {
		pushBits(bs, blockA, 26)
		pushBits(bs, blockB, 26)
		pushBits(bs, blockC, 26)
		pushBits(bs, blockD, 26)
	}

	require.True(t, bs.IsInSync())

	// Feed 43 consecutive garbage blocks (all zero bits never match any
	// offset syndrome), exceeding the 42-of-50 tolerance.
	for i := 0; i < 43; i++ {
		pushBits(bs, 0, 26)
	}

	assert.False(t, bs.IsInSync())
}
