package tables

// threeLetterCodes is the NRSC-4-B (2011) D.7 table of North American PI
// codes that back-calculate to a historical three-letter callsign.
var threeLetterCodes = map[int]string{
	0x99A5: "KBW", 0x9992: "KOY", 0x9978: "WHO", 0x99A6: "KCY",
	0x9993: "KPQ", 0x999C: "WHP", 0x9990: "KDB", 0x9964: "KQV",
	0x999D: "WIL", 0x99A7: "KDF", 0x9994: "KSD", 0x997A: "WIP",
	0x9950: "KEX", 0x9965: "KSL", 0x99B3: "WIS", 0x9951: "KFH",
	0x9966: "KUJ", 0x997B: "WJR", 0x9952: "KFI", 0x9995: "KUT",
	0x99B4: "WJW", 0x9953: "KGA", 0x9967: "KVI", 0x99B5: "WJZ",
	0x9991: "KGB", 0x9968: "KWG", 0x997C: "WKY", 0x9954: "KGO",
	0x9996: "KXL", 0x997D: "WLS", 0x9955: "KGU", 0x9997: "KXO",
	0x997E: "WLW", 0x9956: "KGW", 0x996B: "KYW", 0x999E: "WMC",
	0x9957: "KGY", 0x9999: "WBT", 0x999F: "WMT", 0x99AA: "KHQ",
	0x996D: "WBZ", 0x9981: "WOC", 0x9958: "KID", 0x996E: "WDZ",
	0x99A0: "WOI", 0x9959: "KIT", 0x996F: "WEW", 0x9983: "WOL",
	0x995A: "KJR", 0x999A: "WGH", 0x9984: "WOR", 0x995B: "KLO",
	0x9971: "WGL", 0x99A1: "WOW", 0x995C: "KLZ", 0x9972: "WGN",
	0x99B9: "WRC", 0x995D: "KMA", 0x9973: "WGR", 0x99A2: "WRR",
	0x995E: "KMJ", 0x999B: "WGY", 0x99A3: "WSB", 0x995F: "KNX",
	0x9975: "WHA", 0x99A4: "WSM", 0x9960: "KOA", 0x9976: "WHB",
	0x9988: "WWJ", 0x99AB: "KOB", 0x9977: "WHK", 0x9989: "WWL",
}

// linkedStationCodes is the table of nationally-linked network PI codes
// (shared across many transmitters of one network) that back-calculate to
// a network name rather than a single station's call sign.
var linkedStationCodes = map[int]string{
	0xB001: "NPR-1",
	0xB002: "CBC English - Radio One", 0xB003: "CBC English - Radio Two",
	0xB004: "CBC French => Radio-Canada - Premiere Chaine",
	0xB005: "CBC French => Radio-Canada - Espace Musique",
	0xB006: "CBC", 0xB007: "CBC", 0xB008: "CBC", 0xB009: "CBC",
	0xB00A: "NPR-2", 0xB00B: "NPR-3", 0xB00C: "NPR-4",
	0xB00D: "NPR-5", 0xB00E: "NPR-6",
}

// CallsignFromPI back-calculates a North American RBDS station's call sign
// from its 16-bit PI code, per NRSC-4-B (2011) page 18, D.7. It returns ""
// when the PI falls outside the assigned North American ranges or has no
// table entry.
func CallsignFromPI(pi uint16) string {
	switch {
	case pi&0xFFF0 == 0xAFA0 && pi&0x000F < 0x000A:
		// P1 0 0 0 -> A F A P1
		pi <<= 12
	case pi&0xFF00 == 0xAF00:
		// P1 P2 0 0 -> A F P1 P2
		pi <<= 8
	case pi&0xF000 == 0xA000:
		// P1 0 P3 P4 -> A P1 P3 P4
		pi = uint16((pi&0x0F00)<<4) | (pi & 0x00FF)
	}

	switch {
	case pi >= 0x9950 && pi <= 0x9EFF:
		return threeLetterCodes[int(pi)]

	case pi>>12 == 0xB || pi>>12 == 0xD || pi>>12 == 0xE:
		return linkedStationCodes[int(pi&0xF0FF)]

	case pi >= 0x1000 && pi <= 0x994F:
		const numLetters = 26

		first := byte('K')
		offset := pi - 0x1000

		if pi > 0x54A7 {
			first = 'W'
			offset = pi - 0x54A8
		}

		return string([]byte{
			first,
			'A' + byte(offset/(numLetters*numLetters)%numLetters),
			'A' + byte(offset/numLetters%numLetters),
			'A' + byte(offset%numLetters),
		})
	}

	return ""
}
