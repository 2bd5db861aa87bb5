package groups

import (
	"fmt"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/rft"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
	"github.com/windytan-exercise/rdsgo/internal/rds/text"
	"github.com/windytan-exercise/rdsgo/internal/rds/tmc"
)

// isTMCAppID reports whether an ODA AID names RDS-TMC (ALERT-C), per
// original_source/src/decode/decode_oda.cc's 0xCD46/0xCD47 cases (both
// values route identically; a receiver never needs to tell them apart).
func isTMCAppID(aid int) bool {
	return aid == 0xCD46 || aid == 0xCD47
}

// Decoder owns the per-station mutable state that group types accumulate
// into across many groups: the PS/RT/eRT/PTYN text buffers, the long-PS
// segments, the alternate-frequency list, and the ODA AID registry used to
// route 3A/version-A-or-B groups to content-specific handling.
//
// Grounded on original_source/src/station.hh's per-PI member set (one
// RDSString per text field, a SimpleMap<group_type, oda_app_id> registry)
// and the teacher's practice of giving each protocol's mutable session
// state its own owning struct (src/ax25_pad.go's packet builder).
type Decoder struct {
	PI uint16
	PS *text.RDSString

	rt  radioText
	ert radioText

	// ertUsesChartableE3 records the character-table announcement from an
	// eRT 3A group. Only UCS-2/UTF-8 are rendered; the flag is kept so the
	// announcement survives across groups the way station.hh keeps it.
	ertUsesChartableE3 bool

	ptynABFlag bool

	PTYN    *text.RDSString
	LongPS  *text.RDSString
	AF      *AltFreqList
	fullTDC *text.RDSString

	odaAIDs map[group.GroupType]int

	TMC *tmc.Service

	odaAppForPipe map[int]int
	rftFiles      [16]*rft.File

	// eonPSNames holds one RDSString per other-network PI named by an
	// EON 14A variant 0-3 group, since that PS name is assembled two
	// bytes at a time across separate groups naming the same PI.
	eonPSNames map[uint16]*text.RDSString

	// eonAltFreqs holds one AltFreqList per other-network PI named by an
	// EON 14A variant 4 group, for the same reason as eonPSNames.
	eonAltFreqs map[uint16]*AltFreqList

	// lastGroupHadPI lets one group slip through with a missed PI block;
	// a second consecutive miss drops the group entirely.
	lastGroupHadPI bool

	// showPartial mirrors redsea.cc's show_partial option: when set,
	// in-progress RdsString buffers are emitted (marked partial) instead
	// of withheld until complete. See SPEC_FULL.md C.4.
	showPartial bool

	// rbds mirrors station.cc's options_.rbds: use the North American
	// PTY name table and back-calculate a callsign from the PI code.
	rbds bool
}

// NewDecoder returns a Decoder for the station identified by pi. The TMC
// service starts with no location database attached; call
// SetTMCLocationDatabase once one has been loaded. showPartial controls
// whether partially-received text fields are emitted before completion.
// rbds selects North American PTY names and RBDS callsign back-calculation.
func NewDecoder(pi uint16, showPartial bool, rbds bool) *Decoder {
	d := &Decoder{
		PI:            pi,
		PS:            text.NewRDSString(8),
		rt:            newRadioText(),
		ert:           newRadioText(),
		PTYN:          text.NewRDSString(8),
		LongPS:        text.NewRDSString(32),
		AF:            NewAltFreqList(),
		fullTDC:       text.NewRDSString(32 * 4),
		odaAIDs:       map[group.GroupType]int{},
		TMC:           tmc.NewService(nil),
		odaAppForPipe: map[int]int{},
		showPartial:   showPartial,
		rbds:          rbds,
		eonPSNames:    map[uint16]*text.RDSString{},
		eonAltFreqs:   map[uint16]*AltFreqList{},
	}

	d.LongPS.SetEncoding(text.UTF8)

	for i := range d.rftFiles {
		d.rftFiles[i] = rft.New()
	}

	return d
}

// SetTMCLocationDatabase attaches a loaded ALERT-C location table so TMC
// messages can be resolved to coordinates and road names. Safe to call
// on every emitted group: it updates the existing Service in place
// rather than replacing it, so an in-progress multi-group TMC message is
// never discarded.
func (d *Decoder) SetTMCLocationDatabase(locdb *tmc.LocationDatabase) {
	d.TMC.SetLocationDatabase(locdb)
}

// SetTMCServiceKeys installs an encryption-id -> key table, merged with
// the built-in identity entry, on this station's TMC service.
func (d *Decoder) SetTMCServiceKeys(keys map[uint16]tmc.ServiceKey) {
	d.TMC.SetServiceKeys(keys)
}

// Decode dispatches one fully- or partially-received Group to its
// per-type handler and returns the resulting output document, per
// spec.md §4.6's Group dispatch table.
//
// Grounded on original_source/src/station.cc's updateAndPrint and
// decode.cc's per-type functions: groups whose primary type has been
// reassigned to an Open Data Application by a 3A group route to the ODA
// handler before the optionally-ODA types (5, 6, 7A, 8A, 9A, 15A) get a
// chance at them.
func (d *Decoder) Decode(g *group.Group) *jsontree.Tree {
	out := &jsontree.Tree{}

	gt, hasType := g.Type()
	isVersionC := hasType && gt.Version == group.VersionC

	if !isVersionC {
		// Allow 1 group with missed PI. For subsequent misses, don't
		// process at all.
		if g.HasPI() {
			d.lastGroupHadPI = true
		} else if d.lastGroupHadPI {
			d.lastGroupHadPI = false
		} else {
			return out
		}

		if g.IsEmpty() {
			return out
		}

		out.Set("pi", formatPI(d.PI))

		if d.rbds {
			if callsign := tables.CallsignFromPI(d.PI); callsign != "" {
				if d.PI&0xF000 == 0x1000 {
					out.Set("callsign_uncertain", callsign)
				} else {
					out.Set("callsign", callsign)
				}
			}
		}
	}

	d.decodeBasics(g, out)

	if !hasType {
		return out
	}

	switch {
	case isVersionC:
		d.decodeVersionC(g, out)
	case gt.Number == 0:
		d.decodeType0(g, gt, out)
	case gt.Number == 1:
		d.decodeType1(g, gt, out)
	case gt.Number == 2:
		d.decodeType2(g, gt, out)
	case gt.Number == 3 && gt.Version == group.VersionA:
		d.decodeType3A(g, out)
	case gt.Number == 4 && gt.Version == group.VersionA:
		d.decodeType4A(g, out)
	case gt.Number == 10 && gt.Version == group.VersionA:
		d.decodeType10A(g, out)
	case gt.Number == 14:
		d.decodeType14(g, gt, out)
	case gt.Number == 15 && gt.Version == group.VersionB:
		d.decodeType15B(g, out)

	// Other groups can be reassigned for ODA by a 3A group.
	case d.isODARegistered(gt):
		d.decodeODAGroup(g, gt, out)

	// Groups that could optionally carry ODA but have another primary
	// function.
	case gt.Number == 5:
		d.decodeType5(g, gt, out)
	case gt.Number == 6:
		d.decodeType6(g, gt, out)
	case gt.Number == 7 && gt.Version == group.VersionA:
		d.decodeType7A(g, out)
	case gt.Number == 8 && gt.Version == group.VersionA:
		if g.Has(group.Block2) && g.Has(group.Block3) && g.Has(group.Block4) {
			x := uint16(bits.Get(uint32(g.Get(group.Block2)), 0, 5))
			d.TMC.ReceiveUserGroup(x, g.Get(group.Block3), g.Get(group.Block4), out)
		}
	case gt.Number == 9 && gt.Version == group.VersionA:
		d.decodeType9A(g, out)
	case gt.Number == 15 && gt.Version == group.VersionA:
		d.decodeType15A(g, out)

	// ODA-only groups: 3B, 4B, 7B, 8B, 9B, 10B, 11A, 11B, 12A, 12B, 13B.
	default:
		d.decodeODAGroup(g, gt, out)
	}

	return out
}

// isODARegistered reports whether a 3A group has reassigned this group
// type to an Open Data Application.
func (d *Decoder) isODARegistered(gt group.GroupType) bool {
	_, ok := d.odaAIDs[gt]

	return ok
}

// formatPI renders a PI code as its 0x-prefixed 4-digit hex form
// (station.cc's getPrefixedHexString).
func formatPI(pi uint16) string {
	return fmt.Sprintf("0x%04X", pi)
}

// decodeBasics extracts the fields present in (almost) every group: the
// type string, TP, and the programme type. A 15B group repeats them in
// Block 4, so a 15B whose Block 2 was lost can still be decoded.
func (d *Decoder) decodeBasics(g *group.Group, out *jsontree.Tree) {
	gt, hasType := g.Type()

	if hasType && gt.Version == group.VersionC {
		out.Set("group", "C")

		return
	}

	switch {
	case g.Has(group.Block2):
		b2 := uint32(g.Get(group.Block2))

		if hasType {
			out.Set("group", gt.String())
		}

		out.Set("tp", bits.GetBool(b2, 10))
		out.Set("prog_type", d.ptyName(int(bits.Get(b2, 5, 5))))

	case hasType && gt.Number == 15 && gt.Version == group.VersionB && g.Has(group.Block4):
		b4 := uint32(g.Get(group.Block4))

		out.Set("group", gt.String())
		out.Set("tp", bits.GetBool(b4, 10))
		out.Set("prog_type", d.ptyName(int(bits.Get(b4, 5, 5))))
	}
}

func (d *Decoder) ptyName(pty int) string {
	if d.rbds {
		return tables.PTYNameRBDS(pty)
	}

	return tables.PTYName(pty)
}
