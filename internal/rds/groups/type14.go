package groups

import (
	"fmt"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
	"github.com/windytan-exercise/rdsgo/internal/rds/text"
)

// decodeType14 handles Enhanced Other Networks information, type
// 14A/14B, per spec.md §4.6: each group names another station's PI in
// Block 4 and carries one piece of that station's own data (PS segment,
// AF, mapped FM/AM frequency, linkage info, PTY/TA, or PIN) selected by a
// 4-bit variant code, per EN 50067:1998 §3.1.5.3. Grounded on
// original_source/src/groups/basics.cc's decodeType14.
func (d *Decoder) decodeType14(g *group.Group, gt group.GroupType, out *jsontree.Tree) {
	if !g.Has(group.Block2) || !g.Has(group.Block4) {
		return
	}

	b2 := uint32(g.Get(group.Block2))
	onPI := g.Get(group.Block4)

	eon := out.Get("other_network")
	eon.Set("pi", formatPI(onPI))

	tp := bits.GetBool(b2, 4)
	eon.Set("tp", tp)

	if gt.Version == group.VersionB {
		eon.Set("ta", bits.GetBool(b2, 3))

		return
	}

	if !g.Has(group.Block3) {
		return
	}

	variant := int(bits.Get(b2, 0, 4))
	b3 := uint32(g.Get(group.Block3))

	switch variant {
	case 0, 1, 2, 3:
		psName, ok := d.eonPSNames[uint16(onPI)]
		if !ok {
			psName = text.NewRDSString(8)
			d.eonPSNames[uint16(onPI)] = psName
		}

		psName.Set(2*variant, byte(b3>>8))
		psName.Set(2*variant+1, byte(b3))

		if psName.IsComplete() {
			eon.Set("ps", psName.LastCompleteString())
		}

	case 4:
		list, ok := d.eonAltFreqs[uint16(onPI)]
		if !ok {
			list = NewAltFreqList()
			d.eonAltFreqs[uint16(onPI)] = list
		}

		list.Insert(byte(b3 >> 8))
		list.Insert(byte(b3))

		if list.IsComplete() {
			afTree := eon.Get("alt_frequencies")
			for _, f := range list.GetRawList() {
				afTree.Push(jsontree.New(f))
			}

			list.Clear()
		}

	case 5, 6, 7, 8, 9:
		if freq, ok := CarrierFrequencyKHz(byte(bits.Get(b3, 0, 8))); ok {
			eon.Set("kilohertz", freq)
		}

	case 12:
		hasLinkage := bits.GetBool(b3, 15)
		lsn := int(bits.Get(b3, 0, 12))

		eon.Set("has_linkage", hasLinkage)

		if hasLinkage && lsn != 0 {
			eon.Set("linkage_set", lsn)
		}

	case 13:
		pty := int(bits.Get(b3, 11, 5))
		if d.rbds {
			eon.Set("prog_type", tables.PTYNameRBDS(pty))
		} else {
			eon.Set("prog_type", tables.PTYName(pty))
		}

		eon.Set("ta", bits.GetBool(b3, 0))

	case 14:
		if b3 != 0 {
			decodePIN(b3, eon)
		}

	case 15:
		eon.Set("broadcaster_data", fmt.Sprintf("%04X", b3))

	default:
		out.Get("debug").Push(jsontree.New(fmt.Sprintf("TODO: EON variant %d", variant)))
	}
}
