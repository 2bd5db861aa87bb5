package groups

import (
	"github.com/windytan-exercise/rdsgo/internal/rds"
	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

// decodeRadioTextPlus handles the RadioText+ ODA payload (RDS Forum
// R06/040_1), carried in the group type that a 3A group registered for
// AID 0x4BD7 (tags into RadioText) or 0x4BD8 (tags into Enhanced
// RadioText). Grounded on original_source/src/decode/decode_oda.cc's
// decodeRadioTextPlus: two 6-bit content-type / 6-bit start / length tag
// triples packed across blocks 2-4, resolved as (start, length) ranges
// into the last complete text maintained by the underlying stream - not
// the raw, possibly mid-reception buffer. Either the item-toggle or
// item-running flag changing marks a new tagged item and clears that
// buffer.
func (d *Decoder) decodeRadioTextPlus(g *group.Group, rt *radioText, treeEl *jsontree.Tree) {
	if !g.Has(group.Block2) {
		return
	}

	b2 := uint32(g.Get(group.Block2))

	itemToggle := bits.GetBool(b2, 4)
	itemRunning := bits.GetBool(b2, 3)

	if itemToggle != rt.plus.toggle || itemRunning != rt.plus.itemRunning {
		rt.text.Clear()
		rt.plus.toggle = itemToggle
		rt.plus.itemRunning = itemRunning
	}

	treeEl.Set("item_running", itemRunning)
	treeEl.Set("item_toggle", rds.IfThenElse(itemToggle, 1, 0))

	if !g.Has(group.Block3) {
		return
	}

	b3 := uint32(g.Get(group.Block3))

	// The wire length field is one less than the actual span.
	appendRTPlusTag(rt, treeEl,
		int(bits.Get2(b2, b3, 13, 6)),
		int(bits.Get(b3, 7, 6)),
		int(bits.Get(b3, 1, 6))+1)

	if !g.Has(group.Block4) {
		return
	}

	b4 := uint32(g.Get(group.Block4))

	appendRTPlusTag(rt, treeEl,
		int(bits.Get2(b3, b4, 11, 6)),
		int(bits.Get(b4, 5, 6)),
		int(bits.Get(b4, 0, 5))+1)
}

func appendRTPlusTag(rt *radioText, treeEl *jsontree.Tree, contentType, start, length int) {
	if contentType == 0 {
		return
	}

	data := rtrim(rt.text.LastCompleteStringRange(start, length))
	if len(data) == 0 {
		return
	}

	tag := &jsontree.Tree{}
	tag.Set("content-type", tables.RTPlusContentType(contentType))
	tag.Set("data", data)
	treeEl.Get("tags").Push(tag)
}
