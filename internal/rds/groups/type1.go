package groups

import (
	"fmt"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

// decodeType1 handles Programme Item Number and Slow Labelling Codes,
// type 1A/1B, per spec.md §4.6. Grounded on
// original_source/src/decode/decode.cc's decodeType1/decodePIN: the PIN
// is read from Block 4 regardless of version, validated (day >= 1, hour
// <= 24, minute <= 59) and dropped with a debug note on failure per
// spec.md §7's "Invalid PIN fields" policy; slow-labelling codes (Block
// 3) are version-A only.
func (d *Decoder) decodeType1(g *group.Group, gt group.GroupType, out *jsontree.Tree) {
	if !g.Has(group.Block3) || !g.Has(group.Block4) {
		return
	}

	pin := uint32(g.Get(group.Block4))
	if pin != 0 {
		decodePIN(pin, out)
	}

	if gt.Version != group.VersionA {
		return
	}

	b3 := uint32(g.Get(group.Block3))
	out.Set("has_linkage", bits.GetBool(b3, 15))

	variant := int(bits.Get(b3, 12, 3))

	switch variant {
	case 0:
		ecc := int(bits.Get(b3, 0, 8))
		if ecc != 0 {
			cc := int(bits.Get(uint32(d.PI), 12, 4))
			out.Set("country", tables.Country(cc, ecc))
		}
	case 1:
		tmcID := int(bits.Get(b3, 0, 12))
		out.Set("tmc_id", tmcID)
	case 2:
		// Pager is not implemented.
	case 3:
		lang := int(bits.Get(b3, 0, 8))
		out.Set("language", tables.Language(lang))
	case 6:
		out.Set("slc_broadcaster_bits", fmt.Sprintf("0x%03X", bits.Get(b3, 0, 11)))
	case 7:
		out.Set("ews", int(bits.Get(b3, 0, 12)))
	default:
		out.Get("debug").Push(jsontree.New(fmt.Sprintf("TODO: SLC variant %d", variant)))
	}
}

// decodePIN decodes a non-zero Programme Item Number (day/hour/minute,
// Block 4 in type 1A/1B, Block 3 variant 14 in type 14A), writing into
// tree or a debug note on validation failure, per spec.md §7's "Invalid
// PIN fields" policy. Grounded on original_source/src/decode/decode.cc's
// decodePIN.
func decodePIN(pin uint32, tree *jsontree.Tree) {
	day := int(bits.Get(pin, 11, 5))
	hour := int(bits.Get(pin, 6, 5))
	minute := int(bits.Get(pin, 0, 6))

	if day >= 1 && hour <= 24 && minute <= 59 {
		tree.Set("prog_item_number", int(pin))
		tree.Get("prog_item_started").Set("day", day)
		tree.Get("prog_item_started").Set("time", fmt.Sprintf("%02d:%02d", hour, minute))
	} else {
		tree.Get("debug").Push(jsontree.New("invalid PIN"))
	}
}
