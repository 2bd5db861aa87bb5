package groups

import (
	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
	"github.com/windytan-exercise/rdsgo/internal/rds/text"
)

// decodeType3A handles Application Identification for Open Data, type 3A,
// per spec.md §4.6: it registers which (number, version) group carries a
// given AID, so later sightings of that group type route to the matching
// content decoder, and it applies the AID-specific setup carried in the
// 16-bit ODA message of Block 3 (RT+ content descriptors, eRT encoding
// declaration, TMC system information). Grounded on
// original_source/src/decode/decode_oda.cc's decodeType3A.
func (d *Decoder) decodeType3A(g *group.Group, out *jsontree.Tree) {
	if !g.Has(group.Block3) || !g.Has(group.Block4) {
		return
	}

	odaGroupType := group.NewGroupType(bits.Get(uint32(g.Get(group.Block2)), 0, 5))
	odaMessage := uint32(g.Get(group.Block3))
	aid := int(g.Get(group.Block4))

	d.odaAIDs[odaGroupType] = aid

	oda := out.Get("open_data_app")
	oda.Set("oda_group", odaGroupType.String())
	oda.Set("app_name", tables.AppName(aid))

	switch {
	// DAB cross-referencing: the message bits are not used.
	case aid == 0x0093:

	// RT+
	case aid == 0x4BD7:
		d.rt.plus.exists = true
		d.rt.plus.cb = bits.GetBool(odaMessage, 12)
		d.rt.plus.scb = int(bits.Get(odaMessage, 8, 4))
		d.rt.plus.templateNum = int(bits.Get(odaMessage, 0, 8))

	// RT+ for Enhanced RadioText
	case aid == 0x4BD8:
		d.ert.plus.exists = true
		d.ert.plus.cb = bits.GetBool(odaMessage, 12)
		d.ert.plus.scb = int(bits.Get(odaMessage, 8, 4))
		d.ert.plus.templateNum = int(bits.Get(odaMessage, 0, 8))

	// Enhanced RadioText (eRT)
	case aid == 0x6552:
		if bits.GetBool(odaMessage, 0) {
			d.ert.text.SetEncoding(text.UTF8)
		} else {
			d.ert.text.SetEncoding(text.UCS2)
		}

		if bits.GetBool(odaMessage, 1) {
			d.ert.text.SetDirection(text.RTL)
		} else {
			d.ert.text.SetDirection(text.LTR)
		}

		d.ertUsesChartableE3 = bits.Get(odaMessage, 2, 4) == 0

	// RDS-TMC
	case isTMCAppID(aid):
		d.TMC.ReceiveSystemGroup(uint16(odaMessage), out)

	default:
		out.Get("debug").Push(jsontree.New("TODO: Unimplemented ODA app " + hexString(uint32(aid), 4)))
		oda.Set("message", int(odaMessage))
	}
}
