package groups

import (
	"strings"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/text"
)

// decodeType5 handles Transparent Data Channels, type 5A/5B, per
// spec.md §4.6: a 5-bit channel address and 4 (5A) or 2 (5B) bytes of
// opaque application payload, reported raw and as text. The 32-channel
// payload is also accumulated into one 128-byte buffer so a full TDC
// broadcast can be rendered in one piece. Grounded on
// original_source/src/decode/decode.cc's decodeType5.
func (d *Decoder) decodeType5(g *group.Group, gt group.GroupType, out *jsontree.Tree) {
	if !g.Has(group.Block2) {
		return
	}

	address := int(bits.Get(uint32(g.Get(group.Block2)), 0, 5))

	tdc := out.Get("transparent_data")
	tdc.Set("address", address)

	if gt.Version == group.VersionA {
		if !g.Has(group.Block3) || !g.Has(group.Block4) {
			return
		}

		b3 := g.Get(group.Block3)
		b4 := g.Get(group.Block4)
		data := [4]byte{byte(b3 >> 8), byte(b3), byte(b4 >> 8), byte(b4)}

		tdc.Set("raw", hexBytes(data[:]))

		decodedText := text.NewRDSString(4)
		decodedText.SetPair(0, data[0], data[1])
		decodedText.SetPair(2, data[2], data[3])

		d.fullTDC.SetPair(address*4, data[0], data[1])
		d.fullTDC.SetPair(address*4+2, data[2], data[3])

		if d.fullTDC.IsComplete() {
			if s, err := d.fullTDC.Str(); err == nil {
				tdc.Set("full_text", s)
			}

			tdc.Set("full_raw", hexBytes(d.fullTDC.GetData()))
		}

		if s, err := decodedText.Str(); err == nil {
			tdc.Set("as_text", s)
		}
	} else {
		if !g.Has(group.Block4) {
			return
		}

		b4 := g.Get(group.Block4)
		data := [2]byte{byte(b4 >> 8), byte(b4)}

		tdc.Set("raw", hexBytes(data[:]))

		decodedText := text.NewRDSString(2)
		decodedText.SetPair(0, data[0], data[1])

		if s, err := decodedText.Str(); err == nil {
			tdc.Set("as_text", s)
		}
	}
}

// hexBytes renders bytes as space-separated uppercase hex pairs.
func hexBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = hexString(uint32(b), 2)
	}

	return strings.Join(parts, " ")
}

// decodeType6 handles In-House Applications, type 6A/6B: opaque
// transmitter-specific data with no standardised layout, reported as a
// raw value list. Grounded on original_source/src/decode/decode.cc's
// decodeType6 (redsea itself does no further interpretation).
func (d *Decoder) decodeType6(g *group.Group, gt group.GroupType, out *jsontree.Tree) {
	if !g.Has(group.Block2) {
		return
	}

	inHouse := out.Get("in_house_data")

	inHouse.Push(jsontree.New(int(bits.Get(uint32(g.Get(group.Block2)), 0, 5))))

	if gt.Version == group.VersionA {
		if g.Has(group.Block3) {
			inHouse.Push(jsontree.New(int(g.Get(group.Block3))))

			if g.Has(group.Block4) {
				inHouse.Push(jsontree.New(int(g.Get(group.Block4))))
			}
		}
	} else if g.Has(group.Block4) {
		inHouse.Push(jsontree.New(int(g.Get(group.Block4))))
	}
}

// decodeType7A handles Radio Paging, type 7A. Pager message decoding is
// not implemented.
func (d *Decoder) decodeType7A(_ *group.Group, out *jsontree.Tree) {
	out.Get("debug").Push(jsontree.New("TODO: 7A"))
}

// decodeType9A handles Emergency Warning Systems, type 9A. The payload
// layouts are nationally allocated and not decoded further.
func (d *Decoder) decodeType9A(_ *group.Group, out *jsontree.Tree) {
	out.Get("debug").Push(jsontree.New("TODO: 9A"))
}
