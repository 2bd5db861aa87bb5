package groups

import (
	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

// decodeType15A handles Long PS, type 15A, per spec.md §4.6: a 32-byte
// name assembled 4 UTF-8 bytes per group, addressed by a 3-bit segment
// index, distinct from the 8-character Basic Tuning PS. Grounded on
// original_source/src/decode/decode.cc's decodeType15A.
func (d *Decoder) decodeType15A(g *group.Group, out *jsontree.Tree) {
	if !g.Has(group.Block2) {
		return
	}

	segAddr := int(bits.Get(uint32(g.Get(group.Block2)), 0, 3))

	if g.Has(group.Block3) {
		b3 := g.Get(group.Block3)
		d.LongPS.SetPair(4*segAddr, byte(b3>>8), byte(b3))
	}

	if g.Has(group.Block4) {
		b4 := g.Get(group.Block4)
		d.LongPS.SetPair(4*segAddr+2, byte(b4>>8), byte(b4))
	}

	if (g.Has(group.Block3) || g.Has(group.Block4)) && d.LongPS.IsComplete() {
		out.Set("long_ps", rtrim(d.LongPS.LastCompleteString()))
	} else if d.showPartial {
		if s, err := d.LongPS.Str(); err == nil {
			out.Set("partial_long_ps", s)
		} else {
			out.Get("debug").Push(jsontree.New(err.Error()))
		}
	}
}

// decodeType15B handles Fast Basic Tuning and Switching Information,
// type 15B, per spec.md §4.6: the same TA/music-speech/DI flags as 0A/0B,
// sent more often and without any PS/AF payload so receivers can track
// TA quickly. Block 4 repeats Block 2, so either serves when the other
// was lost. Grounded on original_source/src/decode/decode.cc's
// decodeType15B.
func (d *Decoder) decodeType15B(g *group.Group, out *jsontree.Tree) {
	flagBlock := group.Block2
	if !g.Has(group.Block2) {
		if !g.Has(group.Block4) {
			return
		}

		flagBlock = group.Block4
	}

	flags := uint32(g.Get(flagBlock))
	segAddr := int(bits.Get(flags, 0, 2))

	out.Get("di").Set(tables.DICode(segAddr), bits.GetBool(flags, 2))

	out.Set("ta", bits.GetBool(flags, 4))
	out.Set("is_music", bits.GetBool(flags, 3))
}
