package blocksync

import "github.com/windytan-exercise/rdsgo/internal/rds/group"

// maxTolerableBLER and maxErrorsTolerated50 follow original_source/src/
// block_sync.cc's kMaxTolerableBLER=85 and kMaxErrorsToleratedOver50Blocks
// = kMaxTolerableBLER/2 = 42 (integer division). spec.md §3 states the
// invariant as "holds sync iff fewer than 43 of the last 50 blocks had
// errors" (consistent with >42 triggering loss); §4.3's "more than 25
// errors (~50%)" is the distillation's looser paraphrase and is overridden
// here by the original source and the §3 invariant.
const maxErrorsTolerated50 = 42

// errorRing is a fixed-size ring of the last 50 blocks' had-errors flags
// (spec.md §5's "block error ring is 50 slots").
type errorRing struct {
	window [50]bool
	pos    int
	filled int
	sum    int
}

func (r *errorRing) push(hadErrors bool) {
	if r.filled == len(r.window) && r.window[r.pos] {
		r.sum--
	} else if r.filled < len(r.window) {
		r.filled++
	}

	r.window[r.pos] = hadErrors
	if hadErrors {
		r.sum++
	}

	r.pos = (r.pos + 1) % len(r.window)
}

func (r *errorRing) clear() {
	*r = errorRing{}
}

// Options configures a BlockStream.
type Options struct {
	// UseFEC enables burst-error correction (spec.md §4.3 "If FEC is
	// disabled (option), skip the correction step.").
	UseFEC bool
}

// BlockStream consumes a bitstream and groups it into 26-bit blocks,
// maintaining synchronization and applying FEC, per spec.md §4.3.
type BlockStream struct {
	options Options

	bitCount               uint32
	numBitsUntilNextBlock   uint32
	inputRegister           uint32
	expectedOffset          group.Offset
	isInSync                bool
	blockErrorSum50         errorRing
	currentGroup            group.Group
	readyGroup              group.Group
	hasGroupReady           bool
	numBitsSinceSyncLost    uint32
	syncBuffer              SyncPulseBuffer
}

// NewBlockStream creates a BlockStream configured with the given options.
func NewBlockStream(options Options) *BlockStream {
	return &BlockStream{
		options:               options,
		numBitsUntilNextBlock: 1,
		expectedOffset:        group.OffsetA,
		syncBuffer:            NewSyncPulseBuffer(),
	}
}

// PushBit feeds one raw demodulated bit into the synchronizer.
func (bs *BlockStream) PushBit(bit bool) {
	bs.inputRegister = (bs.inputRegister << 1)
	if bit {
		bs.inputRegister |= 1
	}

	bs.numBitsUntilNextBlock--
	bs.bitCount++

	if bs.numBitsUntilNextBlock == 0 {
		bs.findBlockInInputRegister()

		if bs.isInSync {
			bs.numBitsUntilNextBlock = blockLength
		} else {
			bs.numBitsUntilNextBlock = 1
		}
	}
}

func (bs *BlockStream) findBlockInInputRegister() {
	raw := bs.inputRegister & blockBitmask
	offset := GetOffsetForSyndrome(CalculateSyndrome(raw))

	bs.acquireSync(raw, offset)

	if !bs.isInSync {
		return
	}

	if bs.expectedOffset == group.OffsetC && offset == group.OffsetCPrime {
		bs.expectedOffset = group.OffsetCPrime
	}

	hadErrors := offset != bs.expectedOffset

	bs.blockErrorSum50.push(hadErrors)
	if bs.blockErrorSum50.sum > maxErrorsTolerated50 {
		bs.isInSync = false
		bs.blockErrorSum50.clear()
		bs.syncBuffer = NewSyncPulseBuffer()

		if !bs.currentGroup.IsEmpty() {
			bs.handleNewlyReceivedGroup()
		}

		return
	}

	data := uint16(raw >> checkwordLength)
	finalOffset := offset

	if hadErrors && bs.options.UseFEC {
		if corrected, ok := CorrectBurstErrors(raw, bs.expectedOffset); ok {
			data = uint16(corrected >> checkwordLength)
			finalOffset = bs.expectedOffset
		}
	}

	if finalOffset == bs.expectedOffset {
		block := group.Block{
			Raw:        raw,
			Data:       data,
			IsReceived: true,
			HadErrors:  hadErrors,
			Offset:     finalOffset,
		}
		bs.currentGroup.SetBlock(group.BlockNumberForOffset(bs.expectedOffset), block)
	} else {
		block := group.Block{
			Raw:        raw,
			IsReceived: false,
			HadErrors:  true,
			Offset:     finalOffset,
		}
		bs.currentGroup.SetBlock(group.BlockNumberForOffset(bs.expectedOffset), block)
	}

	next := group.NextOffsetFor(bs.expectedOffset)
	if next == group.OffsetA {
		bs.handleNewlyReceivedGroup()
	}

	bs.expectedOffset = next
}

func (bs *BlockStream) acquireSync(raw uint32, offset group.Offset) {
	if bs.isInSync {
		return
	}

	bs.numBitsSinceSyncLost++

	if offset == group.OffsetInvalid {
		return
	}

	bs.syncBuffer.Push(offset, bs.bitCount)

	if bs.syncBuffer.IsSequenceFound() {
		bs.isInSync = true
		bs.expectedOffset = offset
		bs.currentGroup = group.Group{}
		bs.numBitsSinceSyncLost = 0
	}
}

func (bs *BlockStream) handleNewlyReceivedGroup() {
	bs.readyGroup = bs.currentGroup
	bs.hasGroupReady = true
	bs.currentGroup = group.Group{}
}

// HasGroupReady reports whether a complete group is waiting to be popped.
func (bs *BlockStream) HasGroupReady() bool {
	return bs.hasGroupReady
}

// PopGroup returns the ready group and clears the ready flag.
func (bs *BlockStream) PopGroup() group.Group {
	bs.hasGroupReady = false

	return bs.readyGroup
}

// FlushCurrentGroup returns the in-progress group without consuming it
// (used at end of input; a group in progress when sync is lost is handed
// out through HasGroupReady/PopGroup instead).
func (bs *BlockStream) FlushCurrentGroup() group.Group {
	return bs.currentGroup
}

// IsInSync reports whether the stream currently holds block sync.
func (bs *BlockStream) IsInSync() bool {
	return bs.isInSync
}

// NumBitsSinceSyncLost reports how many bits have been consumed since the
// last time sync was lost (or since start).
func (bs *BlockStream) NumBitsSinceSyncLost() uint32 {
	return bs.numBitsSinceSyncLost
}
