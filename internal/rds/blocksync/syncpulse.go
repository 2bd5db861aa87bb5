package blocksync

import "github.com/windytan-exercise/rdsgo/internal/rds/group"

// SyncPulse is one offset-word sighting during acquisition: its cyclic
// identity and the absolute bit position it occurred at.
type SyncPulse struct {
	Offset      group.Offset
	BitPosition uint32
}

// CouldFollow reports whether this pulse could realistically follow other
// in a self-consistent A->B->C->D (or A->B->C'->D) progression spaced in
// whole blocks no more than 6 blocks apart (spec.md §4.3).
func (s SyncPulse) CouldFollow(other SyncPulse) bool {
	syncDistance := s.BitPosition - other.BitPosition

	if syncDistance%blockLength != 0 {
		return false
	}

	if syncDistance/blockLength > 6 {
		return false
	}

	if s.Offset == group.OffsetInvalid || other.Offset == group.OffsetInvalid {
		return false
	}

	expectedBlockNum := (int(group.BlockNumberForOffset(other.Offset)) + int(syncDistance/blockLength)) % 4

	return expectedBlockNum == int(group.BlockNumberForOffset(s.Offset))
}

// SyncPulseBuffer holds the last 4 sync pulses seen during acquisition
// (spec.md §5's "sync pulse buffer is 4 slots").
type SyncPulseBuffer struct {
	pulses [4]SyncPulse
	filled int
}

// NewSyncPulseBuffer returns an empty buffer. Unlike SyncPulseBuffer{}, its
// slots default to OffsetInvalid rather than the zero Offset value (OffsetA),
// so an unfilled slot can never masquerade as a real sighting.
func NewSyncPulseBuffer() SyncPulseBuffer {
	b := SyncPulseBuffer{}
	for i := range b.pulses {
		b.pulses[i] = SyncPulse{Offset: group.OffsetInvalid}
	}

	return b
}

// Push records a newly-detected offset sighting, sliding the buffer.
func (b *SyncPulseBuffer) Push(offset group.Offset, bitPosition uint32) {
	for i := 0; i < len(b.pulses)-1; i++ {
		b.pulses[i] = b.pulses[i+1]
	}

	b.pulses[len(b.pulses)-1] = SyncPulse{Offset: offset, BitPosition: bitPosition}

	if b.filled < len(b.pulses) {
		b.filled++
	}
}

// IsSequenceFound reports whether three pulses exist forming a consistent
// cyclic progression (spec.md §4.3 "Acquire sync").
func (b *SyncPulseBuffer) IsSequenceFound() bool {
	if b.filled < 3 {
		return false
	}

	third := b.pulses[len(b.pulses)-1]

	for iFirst := 0; iFirst < len(b.pulses)-2; iFirst++ {
		for iSecond := iFirst + 1; iSecond < len(b.pulses)-1; iSecond++ {
			if third.CouldFollow(b.pulses[iSecond]) && b.pulses[iSecond].CouldFollow(b.pulses[iFirst]) {
				return true
			}
		}
	}

	return false
}
