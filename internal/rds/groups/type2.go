package groups

import (
	"github.com/windytan-exercise/rdsgo/internal/rds"
	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

// decodeType2 handles RadioText, type 2A/2B, per spec.md §4.6. Grounded
// on original_source/src/decode/decode.cc's decodeType2: the text-toggle
// (A/B) flag flipping clears the running buffer (the transmitter signals
// "new message" this way), 2A carries 4 characters per group addressed by
// a 4-bit segment, and 2B carries 2 (block 3 repeats PI instead of
// carrying text) addressed by a 4-bit segment into a shorter buffer.
//
// Three practices are seen in the wild for signalling message length: a
// string terminator (method 1), a fixed 64-char length (method 2), or
// neither (method 3) - decode.cc's heuristic trusts a terminator-less
// guess only once it has been seen twice in a row.
func (d *Decoder) decodeType2(g *group.Group, gt group.GroupType, out *jsontree.Tree) {
	if !g.Has(group.Block3) || !g.Has(group.Block4) {
		return
	}

	b2 := uint32(g.Get(group.Block2))

	charsPerGroup := 2
	if gt.Version == group.VersionA {
		charsPerGroup = 4
	}

	position := int(bits.Get(b2, 0, 4)) * charsPerGroup
	abFlag := bits.GetBool(b2, 4)
	isABChanged := d.rt.isABChanged(abFlag)

	if d.showPartial {
		out.Set("rt_ab", rds.IfThenElse(abFlag, "B", "A"))
	}

	// If these heuristics match it's possible we just received a full
	// random-length message with no string terminator (method 3).
	hasPotentiallyComplete := position == 0 && d.rt.text.GetReceivedLength() > 1 &&
		!d.rt.text.IsComplete() && !d.rt.text.HasPreviouslyReceivedTerminators()

	var potentiallyComplete string

	if hasPotentiallyComplete {
		s, err := d.rt.text.Str()
		if err != nil {
			out.Get("debug").Push(jsontree.New(err.Error()))

			return
		}

		potentiallyComplete = rtrim(s)

		// Perhaps the terminator was just lost in noise, or the message
		// got interrupted by an A/B change. Wait for a repeat.
		if potentiallyComplete != d.rt.prevPotentiallyComplete {
			hasPotentiallyComplete = false
		}

		d.rt.prevPotentiallyComplete = potentiallyComplete
	}

	// The transmitter requests us to clear the buffer (message contents
	// will change). Sometimes overused in the wild.
	if isABChanged {
		d.rt.text.Clear()
	}

	if gt.Version == group.VersionA {
		d.rt.text.Resize(64)

		b3 := g.Get(group.Block3)
		d.rt.update(position, byte(b3>>8), byte(b3))

		b4 := g.Get(group.Block4)
		d.rt.update(position+2, byte(b4>>8), byte(b4))
	} else {
		d.rt.text.Resize(32)

		b4 := g.Get(group.Block4)
		d.rt.update(position, byte(b4>>8), byte(b4))
	}

	switch {
	// Method 1 or 2 conveyed the length.
	case d.rt.text.IsComplete():
		out.Set("radiotext", rtrim(d.rt.text.LastCompleteString()))

	// Method 3 was used instead, confirmed by a repeat.
	case hasPotentiallyComplete:
		out.Set("radiotext", potentiallyComplete)

	// Not complete yet, but the user wants to see it anyway.
	case d.showPartial:
		if s, err := d.rt.text.Str(); err == nil {
			if len(rtrim(s)) > 0 {
				out.Set("partial_radiotext", s)
			}
		} else {
			out.Get("debug").Push(jsontree.New(err.Error()))
		}
	}
}
