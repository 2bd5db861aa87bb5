package groups

import (
	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

// decodeODAGroup routes a group whose type was reassigned to an Open Data
// Application by an earlier 3A group, per spec.md §4.6's "Any number,
// Version A/B" row. Unregistered or unrecognised AIDs surface the raw
// payload under unknown_oda so nothing is silently dropped (spec.md §7).
// Grounded on original_source/src/decode/decode_oda.cc's decodeODAGroup.
func (d *Decoder) decodeODAGroup(g *group.Group, gt group.GroupType, out *jsontree.Tree) {
	aid, registered := d.odaAIDs[gt]

	if !registered {
		out.Get("unknown_oda").Set("raw_data", rawODAData(g))

		return
	}

	switch {
	// DAB cross-referencing
	case aid == 0x0093:
		d.decodeDAB(g, out)

	// RT+
	case aid == 0x4BD7:
		d.decodeRadioTextPlus(g, &d.rt, out.Get("radiotext_plus"))

	// RT+ for Enhanced RadioText
	case aid == 0x4BD8:
		d.decodeRadioTextPlus(g, &d.ert, out.Get("ert_plus"))

	// Enhanced RadioText (eRT)
	case aid == 0x6552:
		d.decodeEnhancedRT(g, out)

	// RDS-TMC
	case isTMCAppID(aid):
		if g.Has(group.Block2) && g.Has(group.Block3) && g.Has(group.Block4) {
			x := uint16(bits.Get(uint32(g.Get(group.Block2)), 0, 5))
			d.TMC.ReceiveUserGroup(x, g.Get(group.Block3), g.Get(group.Block4), out)
		}

	default:
		unknown := out.Get("unknown_oda")
		unknown.Set("app_id", hexString(uint32(aid), 4))
		unknown.Set("app_name", tables.AppName(aid))
		unknown.Set("raw_data", rawODAData(g))
	}
}

// rawODAData renders the application bits of an ODA group (the low 5 bits
// of Block 2 plus Blocks 3-4) in the same dashes-for-missing hex layout
// the hex output format uses.
func rawODAData(g *group.Group) string {
	s := hexString(uint32(g.Get(group.Block2))&0b11111, 2) + " "

	if g.Has(group.Block3) {
		s += hexString(uint32(g.Get(group.Block3)), 4)
	} else {
		s += "----"
	}

	s += " "

	if g.Has(group.Block4) {
		s += hexString(uint32(g.Get(group.Block4)), 4)
	} else {
		s += "----"
	}

	return s
}

// decodeEnhancedRT handles an RDS2 Enhanced RadioText (eRT) group: 4
// bytes of UCS-2 or UTF-8 text addressed by a 5-bit segment, rendered
// once the buffer completes. Grounded on decode_oda.cc's
// decodeEnhancedRT.
func (d *Decoder) decodeEnhancedRT(g *group.Group, out *jsontree.Tree) {
	if !g.Has(group.Block2) || !g.Has(group.Block3) {
		return
	}

	position := int(bits.Get(uint32(g.Get(group.Block2)), 0, 5)) * 4

	b3 := g.Get(group.Block3)
	d.ert.update(position, byte(b3>>8), byte(b3))

	if g.Has(group.Block4) {
		b4 := g.Get(group.Block4)
		d.ert.update(position+2, byte(b4>>8), byte(b4))
	}

	if d.ert.text.IsComplete() {
		out.Set("enhanced_radiotext", rtrim(d.ert.text.LastCompleteString()))
	}
}

// decodeDAB handles a DAB cross-referencing group (ETSI EN 301 700): the
// ensemble table maps a DAB transmission mode, frequency, and ensemble
// identifier the listener could switch to. Grounded on decode_oda.cc's
// decodeDAB.
func (d *Decoder) decodeDAB(g *group.Group, out *jsontree.Tree) {
	if !g.Has(group.Block2) || !g.Has(group.Block3) || !g.Has(group.Block4) {
		return
	}

	esFlag := bits.GetBool(uint32(g.Get(group.Block2)), 4)

	if esFlag {
		// Service table
		out.Get("debug").Push(jsontree.New("TODO: DAB service table"))

		return
	}

	// Ensemble table
	dab := out.Get("dab")

	modes := [4]string{"unspecified", "I", "II or III", "IV"}
	mode := bits.Get(uint32(g.Get(group.Block2)), 2, 2)
	dab.Set("mode", modes[mode])

	freq := 16 * int(bits.Get2(uint32(g.Get(group.Block2)), uint32(g.Get(group.Block3)), 0, 18))
	dab.Set("kilohertz", freq)

	if channel, ok := dabChannels[freq]; ok {
		dab.Set("channel", channel)
	}

	dab.Set("ensemble_id", "0x"+hexString(uint32(g.Get(group.Block4)), 4))
}

// dabChannels maps a DAB block frequency in kHz to its channel label
// (Band III and L-Band), per ETSI EN 301 700 V1.1.1.
var dabChannels = map[int]string{
	174928: "5A", 176640: "5B", 178352: "5C", 180064: "5D",
	181936: "6A", 183648: "6B", 185360: "6C", 187072: "6D",
	188928: "7A", 190640: "7B", 192352: "7C", 194064: "7D",
	195936: "8A", 197648: "8B", 199360: "8C", 201072: "8D",
	202928: "9A", 204640: "9B", 206352: "9C", 208064: "9D",
	209936: "10A", 211648: "10B", 213360: "10C", 215072: "10D",
	216928: "11A", 218640: "11B", 220352: "11C", 222064: "11D",
	223936: "12A", 225648: "12B", 227360: "12C", 229072: "12D",
	230784: "13A", 232496: "13B", 234208: "13C", 235776: "13D",
	237488: "13E", 239200: "13F", 1452960: "LA", 1454672: "LB",
	1456384: "LC", 1458096: "LD", 1459808: "LE", 1461520: "LF",
	1463232: "LG", 1464944: "LH", 1466656: "LI", 1468368: "LJ",
	1470080: "LK", 1471792: "LL", 1473504: "LM", 1475216: "LN",
	1476928: "LO", 1478640: "LP", 1480352: "LQ", 1482064: "LR",
	1483776: "LS", 1485488: "LT", 1487200: "LU", 1488912: "LV",
	1490624: "LW",
}
