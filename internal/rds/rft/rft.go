// Package rft implements RDS2's RFT (RDS File Transfer) per-pipe file
// reassembly, per spec.md §4.10. Grounded on
// original_source/src/rft/rft.cc (segment buffer, toggle handling, the
// emitted-exactly-once rule) and original_source/src/rft/crc.cc (chunk
// CRC bookkeeping and the CRC-16/CCITT of IEC 62106-2 ED2:2021 Annex D).
package rft

import (
	"encoding/base64"
)

const segmentBytes = 5

// maxNumSegments bounds the lazily-allocated buffer: 15-bit segment
// addresses, 5 bytes each (spec.md §4.10's "163 kB").
const maxNumSegments = 1 << 15

const maxNumCRCs = 1 << 9

const (
	crcModeEntireFile = 0
	crcModeAuto       = 7
)

// ChunkCRC is one received CRC descriptor: a mode, a raw chunk address,
// and the CRC-16 the transmitter computed over that range of the file.
type ChunkCRC struct {
	Mode       int
	AddressRaw int
	CRC        uint16

	received bool
}

// ActualMode resolves auto mode selection (mode 7) against the file
// size: larger files use longer chunks so the chunk count stays bounded.
func (c ChunkCRC) ActualMode(fileSizeBytes int) int {
	if c.Mode == crcModeAuto {
		switch {
		case fileSizeBytes <= 40960:
			return 1
		case fileSizeBytes <= 81920:
			return 2
		default:
			return 3
		}
	}

	return c.Mode
}

// ChunkLength is the chunk length in bytes for this mode and file size.
func (c ChunkCRC) ChunkLength(fileSizeBytes int) int {
	if c.Mode == crcModeEntireFile {
		return fileSizeBytes
	}

	return segmentBytes * (8 << c.ActualMode(fileSizeBytes))
}

// ByteAddress is the chunk's starting byte offset within the file.
func (c ChunkCRC) ByteAddress(fileSizeBytes int) int {
	if c.Mode == crcModeEntireFile {
		return 0
	}

	return c.AddressRaw * c.ChunkLength(fileSizeBytes)
}

// CRC16CCITT computes the CRC-16/CCITT of IEC 62106-2 ED2:2021 Annex D
// over data[address : address+length].
func CRC16CCITT(data []byte, address, length int) uint16 {
	if len(data) == 0 || length == 0 {
		return 0
	}

	crc := uint32(0xFFFF)

	for i := 0; i < length; i++ {
		crc = uint32(uint8(crc>>8)) | (crc << 8)
		crc ^= uint32(data[address+i])
		crc ^= uint32(uint8(crc&0xFF) >> 4)
		crc ^= (crc << 8) << 4
		crc ^= ((crc & 0xFF) << 4) << 1
	}

	return uint16(crc ^ 0xFFFF)
}

// File is one pipe's (0..15) in-progress or completed file transfer
// buffer.
type File struct {
	data      []byte
	received  []bool
	crcChunks []ChunkCRC

	expectedSizeBytes int
	isPrinted         bool
	expectCRC         bool
	prevToggle        int
}

// New returns an empty, unallocated File.
func New() *File {
	return &File{}
}

// SetSize records the file size in bytes from an ODA variant-0
// descriptor. Does nothing if the size exceeds the segment address space.
func (f *File) SetSize(sizeBytes int) {
	if sizeBytes <= maxNumSegments*segmentBytes {
		f.expectedSizeBytes = sizeBytes
	}
}

// SetCRCFlag records whether the descriptor says a CRC accompanies this
// file.
func (f *File) SetCRCFlag(hasCRC bool) { f.expectCRC = hasCRC }

// IsCRCExpected reports whether the descriptor declared a CRC.
func (f *File) IsCRCExpected() bool { return f.expectCRC }

// ReceiveCRC records one CRC descriptor (whole-file or chunk mode).
func (f *File) ReceiveCRC(chunk ChunkCRC) {
	if chunk.AddressRaw < 0 || chunk.AddressRaw >= maxNumCRCs {
		return
	}

	if f.crcChunks == nil {
		f.crcChunks = make([]ChunkCRC, maxNumCRCs)
	}

	chunk.received = true
	f.crcChunks[chunk.AddressRaw] = chunk
}

// Receive stores one 5-byte segment (spanning blocks 2-4) at
// segmentAddress. The full-size buffer is allocated on the first segment
// received on this pipe, so idle pipes cost nothing (spec.md §5). A
// toggle-bit change means the file contents changed, clearing all
// reception state (spec.md §4.10).
func (f *File) Receive(toggle int, segmentAddress int, b2, b3, b4 uint16) {
	if f.received == nil {
		f.received = make([]bool, maxNumSegments)
		f.data = make([]byte, maxNumSegments*segmentBytes)
	}

	if toggle != f.prevToggle {
		f.Clear()
	}

	f.prevToggle = toggle

	if segmentAddress < 0 || segmentAddress >= maxNumSegments {
		return
	}

	off := segmentAddress * segmentBytes
	f.data[off+0] = byte(b2)
	f.data[off+1] = byte(b3 >> 8)
	f.data[off+2] = byte(b3)
	f.data[off+3] = byte(b4 >> 8)
	f.data[off+4] = byte(b4)

	f.received[segmentAddress] = true
}

// HasNewCompleteFile reports whether every expected segment has arrived
// since the last clear, and the file hasn't been handed out yet.
func (f *File) HasNewCompleteFile() bool {
	if f.isPrinted || f.expectedSizeBytes == 0 || f.received == nil {
		return false
	}

	expectedNumSegments := (f.expectedSizeBytes + segmentBytes - 1) / segmentBytes
	for i := 0; i < expectedNumSegments; i++ {
		if !f.received[i] {
			return false
		}
	}

	return true
}

// CheckCRC verifies every received CRC descriptor against the reassembled
// contents, per spec.md §4.10: mode 0 covers the entire file, chunk modes
// cover ChunkLength-sized ranges (truncated at end-of-file for the final
// chunk). It reports false only on an actual mismatch; with no CRCs
// received there is nothing to fail.
func (f *File) CheckCRC() bool {
	if f.data == nil {
		return false
	}

	for _, chunk := range f.crcChunks {
		if !chunk.received {
			continue
		}

		address := chunk.ByteAddress(f.expectedSizeBytes)
		length := chunk.ChunkLength(f.expectedSizeBytes)

		if address >= f.expectedSizeBytes {
			continue
		}

		if address+length > f.expectedSizeBytes {
			length = f.expectedSizeBytes - address
		}

		if CRC16CCITT(f.data, address, length) != chunk.CRC {
			return false
		}
	}

	return true
}

// Base64Data renders the reassembled file contents as standard Base64 and
// marks the file as handed out, so it is emitted exactly once per toggle
// state.
func (f *File) Base64Data() string {
	f.isPrinted = true

	n := f.expectedSizeBytes
	if n > len(f.data) {
		n = len(f.data)
	}

	return base64.StdEncoding.EncodeToString(f.data[:n])
}

// Clear resets reception state (segment bitmap, printed flag, CRC
// chunks). The declared size and CRC expectation persist: they describe
// the pipe's file slot, not one transmission pass.
func (f *File) Clear() {
	for i := range f.received {
		f.received[i] = false
	}

	f.isPrinted = false
	f.crcChunks = nil
}
