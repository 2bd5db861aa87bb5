package rft_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/rft"
)

func TestReceiveAssemblesSegmentsInOrder(t *testing.T) {
	f := rft.New()
	f.SetSize(10)

	f.Receive(0, 0, 0x0041, 0x4243, 0x4445)
	require.False(t, f.HasNewCompleteFile())

	f.Receive(0, 1, 0x0046, 0x4748, 0x494A)
	require.True(t, f.HasNewCompleteFile())

	data, err := base64.StdEncoding.DecodeString(f.Base64Data())
	require.NoError(t, err)
	assert.Equal(t, []byte("ABCDEFGHIJ"), data)
}

// TestEmittedExactlyOnce covers spec.md §8 scenario 6's second half: once
// the file has been handed out, re-receiving the same segments under the
// same toggle bit must not complete it again.
func TestEmittedExactlyOnce(t *testing.T) {
	f := rft.New()
	f.SetSize(5)

	f.Receive(0, 0, 0x4142, 0x4344, 0x4500)
	require.True(t, f.HasNewCompleteFile())
	_ = f.Base64Data()

	assert.False(t, f.HasNewCompleteFile())

	f.Receive(0, 0, 0x4142, 0x4344, 0x4500)
	assert.False(t, f.HasNewCompleteFile())
}

// TestToggleChangeRestartsTransfer: a flipped toggle bit clears reception
// state, and the new contents are emitted once reassembled.
func TestToggleChangeRestartsTransfer(t *testing.T) {
	f := rft.New()
	f.SetSize(5)

	f.Receive(0, 0, 0x4142, 0x4344, 0x4500)
	require.True(t, f.HasNewCompleteFile())
	_ = f.Base64Data()

	f.Receive(1, 0, 0x5858, 0x5858, 0x5858)
	require.True(t, f.HasNewCompleteFile())

	data, err := base64.StdEncoding.DecodeString(f.Base64Data())
	require.NoError(t, err)
	assert.Equal(t, []byte{0x58, 0x58, 0x58, 0x58, 0x58}, data)
}

// TestSegmentsBeforeDescriptor: segment data arriving before the variant-0
// size descriptor is buffered, and completion is declared as soon as the
// size becomes known.
func TestSegmentsBeforeDescriptor(t *testing.T) {
	f := rft.New()

	f.Receive(0, 0, 0x4142, 0x4344, 0x4500)
	assert.False(t, f.HasNewCompleteFile())

	f.SetSize(5)
	assert.True(t, f.HasNewCompleteFile())
}

func TestOversizeFileRejected(t *testing.T) {
	f := rft.New()
	f.SetSize(1 << 20)
	f.Receive(0, 0, 0, 0, 0)
	assert.False(t, f.HasNewCompleteFile())
}

func TestCRCFlagTracked(t *testing.T) {
	f := rft.New()
	assert.False(t, f.IsCRCExpected())
	f.SetCRCFlag(true)
	assert.True(t, f.IsCRCExpected())
}

// TestCRC16CCITT pins the Annex D polynomial against the known check
// value for the ASCII digits "123456789" (0x1021 poly, 0xFFFF init and
// final inversion).
func TestCRC16CCITT(t *testing.T) {
	assert.Equal(t, uint16(0xD64E), rft.CRC16CCITT([]byte("123456789"), 0, 9))
}

func TestWholeFileCRC(t *testing.T) {
	f := rft.New()
	f.SetSize(5)
	f.SetCRCFlag(true)

	contents := []byte{0x41, 0x42, 0x43, 0x44, 0x45}
	f.ReceiveCRC(rft.ChunkCRC{Mode: 0, AddressRaw: 0, CRC: rft.CRC16CCITT(contents, 0, 5)})

	f.Receive(0, 0, 0x0041, 0x4243, 0x4445)
	require.True(t, f.HasNewCompleteFile())
	assert.True(t, f.CheckCRC())

	// A corrupted CRC must be detected.
	f2 := rft.New()
	f2.SetSize(5)
	f2.ReceiveCRC(rft.ChunkCRC{Mode: 0, AddressRaw: 0, CRC: 0xBEEF})
	f2.Receive(0, 0, 0x4142, 0x4344, 0x4500)
	assert.False(t, f2.CheckCRC())
}

// TestChunkCRCModes pins the mode arithmetic: chunk length is 5 x (8 <<
// mode) bytes, with auto mode (7) resolved against the file size.
func TestChunkCRCModes(t *testing.T) {
	chunk := rft.ChunkCRC{Mode: 1, AddressRaw: 2}
	assert.Equal(t, 80, chunk.ChunkLength(100_000))
	assert.Equal(t, 160, chunk.ByteAddress(100_000))

	auto := rft.ChunkCRC{Mode: 7}
	assert.Equal(t, 1, auto.ActualMode(10_000))
	assert.Equal(t, 2, auto.ActualMode(50_000))
	assert.Equal(t, 3, auto.ActualMode(100_000))

	whole := rft.ChunkCRC{Mode: 0}
	assert.Equal(t, 1234, whole.ChunkLength(1234))
	assert.Equal(t, 0, whole.ByteAddress(1234))
}
