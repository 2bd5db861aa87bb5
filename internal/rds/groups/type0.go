package groups

import (
	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

// decodeType0 handles Basic Tuning and Switching Information, type 0A/0B,
// per spec.md §4.6. Grounded on original_source/src/decode/decode.cc's
// decodeType0, including its AF method A/B split: method A is a flat
// list, method B is pairs against the tuned frequency where descending
// pair order flags a regional variant.
func (d *Decoder) decodeType0(g *group.Group, gt group.GroupType, out *jsontree.Tree) {
	if !g.Has(group.Block2) {
		return
	}

	b2 := uint32(g.Get(group.Block2))
	segAddr := int(bits.Get(b2, 0, 2))

	out.Get("di").Set(tables.DICode(segAddr), bits.GetBool(b2, 2))
	out.Set("ta", bits.GetBool(b2, 4))
	out.Set("is_music", bits.GetBool(b2, 3))

	if !g.Has(group.Block3) {
		// Reset a method B list so two lists can't get mixed up.
		if d.AF.IsMethodB() {
			d.AF.Clear()
		}

		return
	}

	if gt.Version == group.VersionA {
		d.AF.Insert(byte(g.Get(group.Block3) >> 8))
		d.AF.Insert(byte(g.Get(group.Block3)))

		switch {
		case d.AF.IsComplete():
			d.emitAltFrequencies(out)
			d.AF.Clear()

		case d.showPartial:
			partial := out.Get("partial_alt_frequencies")
			for _, f := range d.AF.GetRawList() {
				partial.Push(jsontree.New(f))
			}
		}
	} else {
		out.Set("alt_pi", formatPI(g.Get(group.Block3)))
	}

	if !g.Has(group.Block4) {
		return
	}

	b4 := g.Get(group.Block4)
	d.PS.SetPair(2*segAddr, byte(b4>>8), byte(b4))

	if d.PS.IsComplete() {
		out.Set("ps", d.PS.LastCompleteString())
	} else if d.showPartial {
		if ps, err := d.PS.Str(); err == nil {
			out.Set("partial_ps", ps)
		} else {
			out.Get("debug").Push(jsontree.New(err.Error()))
		}
	}
}

// emitAltFrequencies renders a completed AF list: method B as a
// tuned-frequency record with same-programme and regional-variant lists
// (suppressed when duplicate entries indicate missed groups), method A as
// a plain frequency list.
func (d *Decoder) emitAltFrequencies(out *jsontree.Tree) {
	rawFrequencies := d.AF.GetRawList()

	if !d.AF.IsMethodB() {
		listA := out.Get("alt_frequencies_a")
		for _, f := range rawFrequencies {
			listA.Push(jsontree.New(f))
		}

		return
	}

	tunedFrequency := rawFrequencies[0]

	var alternativeFrequencies, regionalVariants []int

	uniqueAlternatives := map[int]bool{}
	uniqueVariants := map[int]bool{}

	for i := 1; i+1 < len(rawFrequencies); i += 2 {
		freq1 := rawFrequencies[i]
		freq2 := rawFrequencies[i+1]

		nonTuned := freq1
		if freq1 == tunedFrequency {
			nonTuned = freq2
		}

		if freq1 < freq2 {
			alternativeFrequencies = append(alternativeFrequencies, nonTuned)
			uniqueAlternatives[nonTuned] = true
		} else {
			regionalVariants = append(regionalVariants, nonTuned)
			uniqueVariants[nonTuned] = true
		}
	}

	// In noisy conditions, missed 0A groups can leave multiple copies of
	// some frequencies in the pair list; only emit when every pair was
	// distinct.
	if len(uniqueAlternatives)+len(uniqueVariants) != len(rawFrequencies)/2 {
		return
	}

	listB := out.Get("alt_frequencies_b")
	listB.Set("tuned_frequency", tunedFrequency)

	for _, f := range alternativeFrequencies {
		listB.Get("same_programme").Push(jsontree.New(f))
	}

	for _, f := range regionalVariants {
		listB.Get("regional_variants").Push(jsontree.New(f))
	}
}
