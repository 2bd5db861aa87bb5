package groups

import (
	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

// decodeType10A handles Programme Type Name, type 10A, per spec.md §4.6:
// an 8-byte text field assembled from two groups (one 4-char segment
// each), with the A/B toggle flag clearing the buffer on a new name.
// Grounded on original_source/src/decode/decode.cc's decodeType10A.
func (d *Decoder) decodeType10A(g *group.Group, out *jsontree.Tree) {
	if !g.Has(group.Block3) || !g.Has(group.Block4) {
		return
	}

	b2 := uint32(g.Get(group.Block2))
	abFlag := bits.GetBool(b2, 4)
	segAddr := int(bits.Get(b2, 0, 1))

	if abFlag != d.ptynABFlag {
		d.PTYN.Clear()
	}

	d.ptynABFlag = abFlag

	b3 := g.Get(group.Block3)
	b4 := g.Get(group.Block4)

	d.PTYN.SetPair(4*segAddr, byte(b3>>8), byte(b3))
	d.PTYN.SetPair(4*segAddr+2, byte(b4>>8), byte(b4))

	if d.PTYN.IsComplete() {
		out.Set("pty_name", d.PTYN.LastCompleteString())
	}
}
