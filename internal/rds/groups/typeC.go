package groups

import (
	"fmt"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/rft"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

// decodeVersionC dispatches an RDS2 additional-data-stream group (version
// C, transmitted only on data streams 1-3), per spec.md §4.10. Grounded
// verbatim on original_source/src/decode/decode.cc's decodeC: Block 1
// carries a 2-bit FID and 6-bit FN that together select RFT segment data
// (fid 0, fn pattern 10xxxx), an ODA channel's raw bytes (fid 1), or an
// AID/channel assignment descriptor (fid 2, fn 0) that in turn carries
// RFT file-info/CRC/non-file-ODA-data sub-variants.
func (d *Decoder) decodeVersionC(g *group.Group, out *jsontree.Tree) {
	if !g.Has(group.Block1) || !g.Has(group.Block2) || !g.Has(group.Block3) || !g.Has(group.Block4) {
		return
	}

	b1 := uint32(g.Get(group.Block1))
	b2 := uint32(g.Get(group.Block2))
	b3 := uint32(g.Get(group.Block3))
	b4 := uint32(g.Get(group.Block4))

	fid := bits.Get(b1, 14, 2)
	fn := bits.Get(b1, 8, 6)

	switch {
	case fid == 0 && fn == 0:
		out.Get("debug").Push(jsontree.New("TODO: Tunnelling A & B over type C"))
	case fid == 0 && fn&0b110000 == 0b100000:
		d.decodeRFTData(b1, b2, b3, b4, int(fn), out)
	case fid == 1:
		d.decodeODAChannel(b1, b2, b3, b4, int(fn), out)
	case fid == 0b10 && fn == 0:
		d.decodeAIDAssignment(b1, b2, b3, b4, out)
	default:
		out.Get("debug").Push(jsontree.New("TODO: FID/FN"))

		oda := out.Get("open_data_app").Get("data")
		for _, v := range []uint32{
			bits.Get(b2, 8, 8), bits.Get(b2, 0, 8),
			bits.Get(b3, 8, 8), bits.Get(b3, 0, 8),
			bits.Get(b4, 8, 8), bits.Get(b4, 0, 8),
		} {
			oda.Push(jsontree.New(int(v)))
		}
	}
}

// decodeRFTData handles an RFT segment-data group for ODA pipe fn&0xF,
// page 82 of the RDS2 spec.
func (d *Decoder) decodeRFTData(b1, b2, b3, b4 uint32, fn int, out *jsontree.Tree) {
	pipe := fn & 0b1111
	toggle := int(bits.Get(b1, 7, 1))
	segmentAddress := int(bits.Get2(b1, b2, 8, 15))

	rftOut := out.Get("rft").Get("data")

	if aid, ok := d.odaAppForPipe[pipe]; ok {
		out.Get("open_data_app").Set("app_name", tables.AppName(aid))
	}

	rftOut.Set("pipe", pipe)
	rftOut.Set("toggle", toggle)
	rftOut.Set("byte_address", segmentAddress*5)

	file := d.rftFiles[pipe]
	file.Receive(toggle, segmentAddress, uint16(b2), uint16(b3), uint16(b4))

	for _, v := range []uint32{bits.Get(b2, 0, 8), bits.Get(b3, 8, 8), bits.Get(b3, 0, 8), bits.Get(b4, 8, 8), bits.Get(b4, 0, 8)} {
		rftOut.Get("segment_data").Push(jsontree.New(int(v)))
	}

	if file.HasNewCompleteFile() {
		if file.IsCRCExpected() {
			rftOut.Set("crc_ok", file.CheckCRC())
		}

		rftOut.Set("file_contents", file.Base64Data())
	}
}

// decodeODAChannel handles fid==1's raw channel data (page 47).
func (d *Decoder) decodeODAChannel(b1, b2, b3, b4 uint32, fn int, out *jsontree.Tree) {
	oda := out.Get("open_data_app")
	oda.Set("channel", fn)

	for _, v := range []uint32{
		bits.Get(b1, 0, 8),
		bits.Get(b2, 8, 8), bits.Get(b2, 0, 8),
		bits.Get(b3, 8, 8), bits.Get(b3, 0, 8),
		bits.Get(b4, 8, 8), bits.Get(b4, 0, 8),
	} {
		oda.Get("app_data").Push(jsontree.New(int(v)))
	}
}

// decodeAIDAssignment handles fid==2, fn==0's AID/channel assignment
// descriptor (page 48), including the RFT file-info/CRC sub-variants for
// channels 0-15.
func (d *Decoder) decodeAIDAssignment(b1, b2, b3, b4 uint32, out *jsontree.Tree) {
	assMethod := int(bits.Get(b1, 6, 2)) + 1
	channelID := int(bits.Get(b1, 0, 6))

	if assMethod != 1 {
		out.Get("debug").Push(jsontree.New("TODO: assignment method"))

		return
	}

	aid := int(b2)

	out.Get("open_data_app").Set("channel", channelID)
	out.Get("open_data_app").Set("oda_aid", aid)
	out.Get("open_data_app").Set("app_name", tables.AppName(aid))
	d.odaAppForPipe[channelID] = aid

	if channelID >= 16 {
		oda := out.Get("open_data_app").Get("app_data")

		for _, v := range []uint32{bits.Get(b3, 8, 8), bits.Get(b3, 0, 8), bits.Get(b4, 8, 8), bits.Get(b4, 0, 8)} {
			oda.Push(jsontree.New(int(v)))
		}

		return
	}

	d.decodeRFTDescriptor(b3, b4, channelID, out)
}

// decodeRFTDescriptor handles the variant field nested within an
// assignment descriptor for an RFT channel (0-15), per RDS2 page 79-80.
func (d *Decoder) decodeRFTDescriptor(b3, b4 uint32, channelID int, out *jsontree.Tree) {
	variant := int(bits.Get(b3, 12, 4))
	file := d.rftFiles[channelID]

	switch {
	case variant == 0:
		crcFlag := bits.GetBool(b3, 11)
		fileVersion := bits.Get(b3, 8, 3)
		fileID := bits.Get(b3, 2, 6)
		fileSizeBytes := int(bits.Get2(b3, b4, 0, 18))

		file.SetSize(fileSizeBytes)
		file.SetCRCFlag(crcFlag)

		fi := out.Get("rft").Get("file_info")
		fi.Set("version", int(fileVersion))
		fi.Set("id", int(fileID))
		fi.Set("size", fileSizeBytes)
		fi.Set("has_crc", crcFlag)
	case variant == 1:
		crcMode := int(bits.Get(b3, 9, 3))
		chunkAddress := int(bits.Get(b3, 0, 9))
		crc := uint16(b4)

		chunk := rft.ChunkCRC{Mode: crcMode, AddressRaw: chunkAddress, CRC: crc}
		file.ReceiveCRC(chunk)

		crcInfo := out.Get("rft").Get("crc_info")

		switch crcMode {
		case 0:
			crcInfo.Set("file_crc16", int(crc))
		case 1, 2, 3, 4, 5, 7:
			crcInfo.Set("chunk_crc16", int(crc))
			crcInfo.Set("chunk_address", chunkAddress)
			crcInfo.Set("crc_mode", crcMode)
		default:
			out.Get("debug").Push(jsontree.New(fmt.Sprintf("TODO: CRC mode %d", crcMode)))
		}
	case variant >= 8:
		out.Get("open_data_app").Set("non_file_oda_data", hexString(bits.Get2(b3, b4, 0, 28), 7))
	case variant >= 2:
		out.Get("open_data_app").Set("file_oda_data", hexString(bits.Get2(b3, b4, 0, 28), 7))
	}
}
