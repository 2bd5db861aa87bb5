// Package group holds the RDS wire-level value types: Block, Group, and
// GroupType, grounded on original_source/src/group.hh and group.cc.
package group

import (
	"fmt"
	"time"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
)

// BlockNumber identifies one of the four slots in a Group.
type BlockNumber int

const (
	Block1 BlockNumber = iota
	Block2
	Block3
	Block4
)

// Offset identifies which of the five cyclic offset words a block matched.
type Offset int

const (
	OffsetA Offset = iota
	OffsetB
	OffsetC
	OffsetCPrime
	OffsetD
	OffsetInvalid
)

// BlockNumberForOffset maps an offset word to the group slot it fills.
func BlockNumberForOffset(o Offset) BlockNumber {
	switch o {
	case OffsetA:
		return Block1
	case OffsetB:
		return Block2
	case OffsetC, OffsetCPrime:
		return Block3
	case OffsetD:
		return Block4
	default:
		return Block1
	}
}

// NextOffsetFor reports which offset is expected to follow this one.
func NextOffsetFor(o Offset) Offset {
	switch o {
	case OffsetA:
		return OffsetB
	case OffsetB:
		return OffsetC
	case OffsetC, OffsetCPrime:
		return OffsetD
	case OffsetD:
		return OffsetA
	default:
		return OffsetA
	}
}

// Block is one 26-bit RDS block: its raw word, the extracted 16-bit data
// payload, the offset word identity it matched, and reception flags.
type Block struct {
	Raw        uint32
	Data       uint16
	IsReceived bool
	HadErrors  bool
	Offset     Offset
}

// Version distinguishes RDS1 group versions A/B from the RDS2 "version C"
// additional data stream sentinel.
type Version int

const (
	VersionA Version = iota
	VersionB
	VersionC
)

// GroupType is the (number, version) classifier decoded from Block 2's
// bits [15..11] (spec.md §4.3 "Group assembly").
type GroupType struct {
	Number  int
	Version Version
}

// NewGroupType decodes a 5-bit type code (as extracted from Block 2 bits
// 15..11) into a GroupType.
func NewGroupType(typeCode uint32) GroupType {
	return GroupType{
		Number:  int(bits.Get(typeCode, 1, 4)),
		Version: boolToVersion(bits.GetBool(typeCode, 0)),
	}
}

func boolToVersion(isB bool) Version {
	if isB {
		return VersionB
	}

	return VersionA
}

// String renders "0A", "2B", "15A", or "C" for version-C groups.
func (t GroupType) String() string {
	if t.Version == VersionC {
		return "C"
	}

	suffix := "A"
	if t.Version == VersionB {
		suffix = "B"
	}

	return fmt.Sprintf("%d%s", t.Number, suffix)
}

// Less orders group types by number, then by version.
func (t GroupType) Less(other GroupType) bool {
	if t.Number != other.Number {
		return t.Number < other.Number
	}

	return t.Version < other.Version
}

// Group is a complete (or partially-received) four-block RDS group, per
// spec.md §3's Group entity.
type Group struct {
	blocks         [4]Block
	dataStream     int
	groupType      *GroupType
	rxTime         *time.Time
	bler           *float32
	timeFromStart  *float64
	hasCPrime      bool
	offsetsDisabled bool
}

// Get returns the 16-bit data payload for the named block slot.
func (g *Group) Get(n BlockNumber) uint16 { return g.blocks[n].Data }

// Has reports whether the named block slot was received.
func (g *Group) Has(n BlockNumber) bool { return g.blocks[n].IsReceived }

// Block returns the raw Block value for the named slot.
func (g *Group) Block(n BlockNumber) Block { return g.blocks[n] }

// IsEmpty reports whether no blocks were received at all.
func (g *Group) IsEmpty() bool {
	return !(g.Has(Block1) || g.Has(Block2) || g.Has(Block3) || g.Has(Block4))
}

// HasPI reports whether a PI code is present in this group: Block 1 for
// version A/B groups, or Block 3 when it carries offset C' (the "alternate
// PI" position used by 0B and some EON variants).
func (g *Group) HasPI() bool {
	if g.groupType != nil && g.groupType.Version == VersionC {
		return false
	}

	return g.Has(Block1) || (g.Has(Block3) && g.blocks[Block3].Offset == OffsetCPrime)
}

// PI returns the group's Programme Identification code, or 0 if HasPI is
// false.
func (g *Group) PI() uint16 {
	if g.Has(Block1) {
		return g.Get(Block1)
	}

	if g.Has(Block3) && g.blocks[Block3].Offset == OffsetCPrime {
		return g.Get(Block3)
	}

	return 0
}

// NumErrors counts un-received or corrected-with-errors blocks.
func (g *Group) NumErrors() int {
	n := 0

	for _, b := range g.blocks {
		if b.HadErrors || !b.IsReceived {
			n++
		}
	}

	return n
}

// Type returns the decoded GroupType, if known yet.
func (g *Group) Type() (GroupType, bool) {
	if g.groupType == nil {
		return GroupType{}, false
	}

	return *g.groupType, true
}

// BLER returns the running block-error-rate snapshot attached to this
// group, if any.
func (g *Group) BLER() (float32, bool) {
	if g.bler == nil {
		return 0, false
	}

	return *g.bler, true
}

// RxTime returns the group's receive timestamp, if any.
func (g *Group) RxTime() (time.Time, bool) {
	if g.rxTime == nil {
		return time.Time{}, false
	}

	return *g.rxTime, true
}

// TimeFromStart returns seconds since the beginning of the input stream
// until the first bit of this group, if tracked that way.
func (g *Group) TimeFromStart() (float64, bool) {
	if g.timeFromStart == nil {
		return 0, false
	}

	return *g.timeFromStart, true
}

// DataStream reports which of the up to 4 RDS2 data streams this group
// came from (0 for RDS1 / data stream 0).
func (g *Group) DataStream() int { return g.dataStream }

// SetDataStream records which data stream produced this group.
func (g *Group) SetDataStream(stream int) { g.dataStream = stream }

// SetVersionC marks this as an RDS2 additional-data-stream group.
func (g *Group) SetVersionC() {
	v := VersionC
	g.groupType = &GroupType{Version: v}
}

// SetRxTime records the group's receive timestamp.
func (g *Group) SetRxTime(t time.Time) { g.rxTime = &t }

// SetAverageBLER records the running block-error-rate snapshot.
func (g *Group) SetAverageBLER(bler float32) { g.bler = &bler }

// SetTimeFromStart records seconds-from-start bookkeeping for file-offset
// clocking.
func (g *Group) SetTimeFromStart(t float64) { g.timeFromStart = &t }

// DisableOffsets tells SetBlock not to wait for a C' sighting before
// deciding group type (used for already-synchronized hex/bit input where
// offset identity isn't independently verifiable).
func (g *Group) DisableOffsets() { g.offsetsDisabled = true }

// SetBlock places a received block into its slot and, opportunistically,
// determines the group type once enough blocks have arrived.
//
// Grounded on group.cc's setBlock: the type is read from Block 2 bits
// [15:11] but deferred for version-B groups unless a C' sighting (or
// DisableOffsets) already disambiguates 0B/2B-style layouts from a
// genuinely out-of-order stream.
func (g *Group) SetBlock(n BlockNumber, b Block) {
	g.blocks[n] = b

	if b.Offset == OffsetCPrime {
		g.hasCPrime = true
	}

	if g.groupType == nil {
		switch n {
		case Block2:
			t := NewGroupType(uint32(b.Data) >> 11)
			if t.Version == VersionB && !(g.hasCPrime || g.offsetsDisabled) {
				// Deferred: wait for a later disambiguating signal.
			} else {
				g.groupType = &t
			}
		case Block4:
			if g.hasCPrime {
				potential := NewGroupType(uint32(b.Data) >> 11)
				if potential.Number == 15 && potential.Version == VersionB {
					g.groupType = &potential
				}
			}
		}

		if b.Offset == OffsetCPrime && g.Has(Block2) {
			t := NewGroupType(uint32(g.Get(Block2)) >> 11)
			if t.Version == VersionB {
				g.groupType = &t
			}
		}
	}
}

// AsHex renders the group's raw group in RDS Spy hex format: four 4-digit
// hex words separated by spaces, "----" for un-received blocks.
func (g *Group) AsHex() string {
	out := make([]byte, 0, 4*4+3)

	for i, n := range []BlockNumber{Block1, Block2, Block3, Block4} {
		b := g.blocks[n]
		if b.IsReceived {
			out = append(out, []byte(fmt.Sprintf("%04X", b.Data))...)
		} else {
			out = append(out, []byte("----")...)
		}

		if i != 3 {
			out = append(out, ' ')
		}
	}

	return string(out)
}
