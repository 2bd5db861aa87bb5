// Package blocksync implements RDS block synchronization and the (26,16)
// shortened cyclic code's burst-error correction, per spec.md §4.3.
//
// Grounded directly on original_source/src/block_sync.cc (the parity-check
// matrix, offset-word syndromes, and error lookup table below are taken
// verbatim from IEC 62106 as redsea implements them); state-machine shape
// follows the teacher repo's hdlc_rec.go ("receive one bit, maintain a
// shift register, act on protocol boundaries").
package blocksync

import "github.com/windytan-exercise/rdsgo/internal/rds/group"

const (
	blockLength     = 26
	blockBitmask    = (uint32(1) << blockLength) - 1
	checkwordLength = 10
)

// parityCheckMatrix is IEC 62106:2015 section B.3.1's 26x10 matrix, one row
// per input bit, read verbatim from block_sync.cc.
var parityCheckMatrix = [26]uint32{
	0b1000000000,
	0b0100000000,
	0b0010000000,
	0b0001000000,
	0b0000100000,
	0b0000010000,
	0b0000001000,
	0b0000000100,
	0b0000000010,
	0b0000000001,
	0b1011011100,
	0b0101101110,
	0b0010110111,
	0b1010000111,
	0b1110011111,
	0b1100010011,
	0b1101010101,
	0b1101110110,
	0b0110111011,
	0b1000000001,
	0b1111011100,
	0b0111101110,
	0b0011110111,
	0b1010100111,
	0b1110001111,
	0b1100011011,
}

// CalculateSyndrome computes the 10-bit syndrome of a 26-bit block by
// modulo-two matrix multiplication (EN 50067:1998 section B.1.1): XOR
// together every row of the parity-check matrix whose corresponding input
// bit is 1.
func CalculateSyndrome(vec uint32) uint32 {
	var result uint32

	n := len(parityCheckMatrix)
	for k := 0; k < n; k++ {
		bit := (vec >> uint(k)) & 1
		if bit == 1 {
			result ^= parityCheckMatrix[n-1-k]
		}
	}

	return result
}

// offsetWordSyndromes is IEC 62106:2015 Table B.1.
var offsetWordSyndromes = map[uint32]group.Offset{
	0b1111011000: group.OffsetA,
	0b1111010100: group.OffsetB,
	0b1001011100: group.OffsetC,
	0b1111001100: group.OffsetCPrime,
	0b1001011000: group.OffsetD,
}

// GetOffsetForSyndrome identifies which of the five known offset words
// produced the given syndrome, or OffsetInvalid if none did.
func GetOffsetForSyndrome(syndrome uint32) group.Offset {
	if o, ok := offsetWordSyndromes[syndrome]; ok {
		return o
	}

	return group.OffsetInvalid
}

// offsetWordValues is the 10-bit value XORed into a block's checkword
// region for each offset word, from block_sync.cc's makeErrorLookupTable.
var offsetWordValues = map[group.Offset]uint32{
	group.OffsetA:      0b0011111100,
	group.OffsetB:      0b0110011000,
	group.OffsetC:      0b0101101000,
	group.OffsetCPrime: 0b1101010000,
	group.OffsetD:      0b0110110100,
}

// errorLookupTable maps (expected offset) -> (syndrome -> error vector),
// covering every 1-bit and every 2-bit-adjacent-burst error pattern across
// all 26 positions, per spec.md §4.3's "burst-error correction" contract.
var errorLookupTable = buildErrorLookupTable()

func buildErrorLookupTable() map[group.Offset]map[uint32]uint32 {
	table := make(map[group.Offset]map[uint32]uint32, 5)

	offsets := []group.Offset{group.OffsetA, group.OffsetB, group.OffsetC, group.OffsetCPrime, group.OffsetD}

	for _, offset := range offsets {
		inner := make(map[uint32]uint32)

		for _, errorBits := range []uint32{0b1, 0b11} {
			for shift := uint(0); shift < blockLength; shift++ {
				errorVector := (errorBits << shift) & blockBitmask
				syndrome := CalculateSyndrome(errorVector ^ offsetWordValues[offset])
				inner[syndrome] = errorVector
			}
		}

		table[offset] = inner
	}

	return table
}

// CorrectBurstErrors attempts to correct a block assuming it should have
// matched expectedOffset, returning the corrected raw word and whether
// correction succeeded (EN 50067:1998 section B.2.2).
func CorrectBurstErrors(raw uint32, expectedOffset group.Offset) (corrected uint32, ok bool) {
	syndrome := CalculateSyndrome(raw)

	table, exists := errorLookupTable[expectedOffset]
	if !exists {
		return raw, false
	}

	errVec, found := table[syndrome]
	if !found {
		return raw, false
	}

	return raw ^ errVec, true
}
