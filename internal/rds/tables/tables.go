// Package tables holds the static lookup tables used across group
// decoders: PTY names, country codes, languages, ODA application names,
// RadioText+ content types, DI codes, and RBDS callsign back-calculation.
//
// Grounded verbatim on original_source/src/tables.cc, which cites its own
// standards references per table; those are preserved below.
package tables

// PTYName returns the EN 50067:1998 Annex F (pp. 77-78) European PTY name
// for a 5-bit code.
func PTYName(pty int) string {
	if pty < 0 || pty >= len(ptyNames) {
		return "Unknown"
	}

	return ptyNames[pty]
}

// PTYNameRBDS returns the U.S. RBDS Standard 1998 Annex F (pp. 95-96) PTY
// name for a 5-bit code.
func PTYNameRBDS(pty int) string {
	if pty < 0 || pty >= len(ptyNamesRBDS) {
		return "Unknown"
	}

	return ptyNamesRBDS[pty]
}

var ptyNames = [32]string{
	"No PTY", "News", "Current affairs", "Information",
	"Sport", "Education", "Drama", "Culture",
	"Science", "Varied", "Pop music", "Rock music",
	"Easy listening", "Light classical", "Serious classical", "Other music",
	"Weather", "Finance", "Children's programmes", "Social affairs",
	"Religion", "Phone-in", "Travel", "Leisure",
	"Jazz music", "Country music", "National music", "Oldies music",
	"Folk music", "Documentary", "Alarm test", "Alarm",
}

var ptyNamesRBDS = [32]string{
	"No PTY", "News", "Information", "Sports",
	"Talk", "Rock", "Classic rock", "Adult hits",
	"Soft rock", "Top 40", "Country", "Oldies",
	"Soft", "Nostalgia", "Jazz", "Classical",
	"Rhythm and blues", "Soft rhythm and blues", "Language", "Religious music",
	"Religious talk", "Personality", "Public", "College",
	"Spanish talk", "Spanish music", "Hip hop", "",
	"", "Weather", "Emergency test", "Emergency",
}

// countryCodes is EN 50067:1998 Annex D Table D.1 / RDS Forum R08/008_7
// Table D.2: extended country code (ecc) -> 15 entries indexed by the
// 4-bit country code (cc) minus 1.
var countryCodes = map[int][15]string{
	0xA0: {"us", "us", "us", "us", "us", "us", "us", "us", "us", "us", "us", "--", "us", "us", "--"},
	0xA1: {"--", "--", "--", "--", "--", "--", "--", "--", "--", "--", "ca", "ca", "ca", "ca", "gl"},
	0xA2: {"ai", "ag", "ec", "fk", "bb", "bz", "ky", "cr", "cu", "ar", "br", "bm", "an", "gp", "bs"},
	0xA3: {"bo", "co", "jm", "mq", "gf", "py", "ni", "--", "pa", "dm", "do", "cl", "gd", "tc", "gy"},
	0xA4: {"gt", "hn", "aw", "--", "ms", "tt", "pe", "sr", "uy", "kn", "lc", "sv", "ht", "ve", "--"},
	0xA5: {"--", "--", "--", "--", "--", "--", "--", "--", "--", "--", "mx", "vc", "mx", "mx", "mx"},
	0xA6: {"--", "--", "--", "--", "--", "--", "--", "--", "--", "--", "--", "--", "--", "--", "pm"},
	0xD0: {"cm", "cf", "dj", "mg", "ml", "ao", "gq", "ga", "gn", "za", "bf", "cg", "tg", "bj", "mw"},
	0xD1: {"na", "lr", "gh", "mr", "st", "cv", "sn", "gm", "bi", "--", "bw", "km", "tz", "et", "bg"},
	0xD2: {"sl", "zw", "mz", "ug", "sz", "ke", "so", "ne", "td", "gw", "zr", "ci", "tz", "zm", "--"},
	0xD3: {"--", "--", "eh", "--", "rw", "ls", "--", "sc", "--", "mu", "--", "sd", "--", "--", "--"},
	0xE0: {"de", "dz", "ad", "il", "it", "be", "ru", "ps", "al", "at", "hu", "mt", "de", "--", "eg"},
	0xE1: {"gr", "cy", "sm", "ch", "jo", "fi", "lu", "bg", "dk", "gi", "iq", "gb", "ly", "ro", "fr"},
	0xE2: {"ma", "cz", "pl", "va", "sk", "sy", "tn", "--", "li", "is", "mc", "lt", "rs", "es", "no"},
	0xE3: {"me", "ie", "tr", "mk", "--", "--", "--", "nl", "lv", "lb", "az", "hr", "kz", "se", "by"},
	0xE4: {"md", "ee", "kg", "--", "--", "ua", "ks", "pt", "si", "am", "--", "ge", "--", "--", "ba"},
	0xF0: {"au", "au", "au", "au", "au", "au", "au", "au", "sa", "af", "mm", "cn", "kp", "bh", "my"},
	0xF1: {"ki", "bt", "bd", "pk", "fj", "om", "nr", "ir", "nz", "sb", "bn", "lk", "tw", "kr", "hk"},
	0xF2: {"kw", "qa", "kh", "ws", "in", "mo", "vn", "ph", "jp", "sg", "mv", "id", "ae", "np", "vu"},
	0xF3: {"la", "th", "to", "--", "--", "--", "--", "--", "pg", "--", "ye", "--", "--", "fm", "mn"},
}

// Country returns the 2-letter country code for the given (cc, ecc) pair.
func Country(cc, ecc int) string {
	row, ok := countryCodes[ecc]
	if !ok || cc <= 0 || cc > len(row) {
		return "--"
	}

	return row[cc-1]
}

// languages is EN 50067:1998 Annex J (p. 84).
var languages = [128]string{
	"Unknown", "Albanian", "Breton", "Catalan",
	"Croatian", "Welsh", "Czech", "Danish",
	"German", "English", "Spanish", "Esperanto",
	"Estonian", "Basque", "Faroese", "French",
	"Frisian", "Irish", "Gaelic", "Galician",
	"Icelandic", "Italian", "Lappish", "Latin",
	"Latvian", "Luxembourgian", "Lithuanian", "Hungarian",
	"Maltese", "Dutch", "Norwegian", "Occitan",
	"Polish", "Portuguese", "Romanian", "Romansh",
	"Serbian", "Slovak", "Slovene", "Finnish",
	"Swedish", "Turkish", "Flemish", "Walloon",
	"", "", "", "",
	"", "", "", "",
	"", "", "", "",
	"", "", "", "",
	"", "", "", "",
	"Background", "", "", "",
	"", "Zulu", "Vietnamese", "Uzbek",
	"Urdu", "Ukrainian", "Thai", "Telugu",
	"Tatar", "Tamil", "Tadzhik", "Swahili",
	"SrananTongo", "Somali", "Sinhalese", "Shona",
	"Serbo-Croat", "Ruthenian", "Russian", "Quechua",
	"Pushtu", "Punjabi", "Persian", "Papamiento",
	"Oriya", "Nepali", "Ndebele", "Marathi",
	"Moldovian", "Malaysian", "Malagasay", "Macedonian",
	"Laotian", "Korean", "Khmer", "Kazakh",
	"Kannada", "Japanese", "Indonesian", "Hindi",
	"Hebrew", "Hausa", "Gurani", "Gujurati",
	"Greek", "Georgian", "Fulani", "Dari",
	"Churash", "Chinese", "Burmese", "Bulgarian",
	"Bengali", "Belorussian", "Bambora", "Azerbaijan",
	"Assamese", "Armenian", "Arabic", "Amharic",
}

// Language returns the EN 50067:1998 Annex J language name for a 7-bit
// code, or "" if unassigned.
func Language(code int) string {
	if code < 0 || code >= len(languages) {
		return ""
	}

	return languages[code]
}

// odaApps is RDS Forum R13/041_2 / R17/032_1 / DHL 7/14/2020's registered
// Open Data Application identifiers.
var odaApps = map[int]string{
	0x0000: "None",
	0x0093: "Cross referencing DAB within RDS",
	0x0BCB: "Leisure & Practical Info for Drivers",
	0x0C24: "ELECTRABEL-DSM 7",
	0x0CC1: "Wireless Playground broadcast control signal",
	0x0D45: "RDS-TMC: ALERT-C / EN ISO 14819-1",
	0x0D8B: "ELECTRABEL-DSM 18",
	0x0E2C: "ELECTRABEL-DSM 3",
	0x0E31: "ELECTRABEL-DSM 13",
	0x0F87: "ELECTRABEL-DSM 2",
	0x125F: "I-FM-RDS for fixed and mobile devices",
	0x1BDA: "ELECTRABEL-DSM 1",
	0x1C5E: "ELECTRABEL-DSM 20",
	0x1C68: "ITIS In-vehicle data base",
	0x1CB1: "ELECTRABEL-DSM 10",
	0x1D47: "ELECTRABEL-DSM 4",
	0x1DC2: "CITIBUS 4",
	0x1DC5: "Encrypted TTI using ALERT-Plus",
	0x1E8F: "ELECTRABEL-DSM 17",
	0x4400: "RDS-Light",
	0x4AA1: "RASANT",
	0x4AB7: "ELECTRABEL-DSM 9",
	0x4BA2: "ELECTRABEL-DSM 5",
	0x4BD7: "RadioText+ (RT+)",
	0x4BD8: "RadioText Plus / RT+ for eRT",
	0x4C59: "CITIBUS 2",
	0x4D87: "Radio Commerce System (RCS)",
	0x4D95: "ELECTRABEL-DSM 16",
	0x4D9A: "ELECTRABEL-DSM 11",
	0x50DD: "To warn people in case of disasters or emergency",
	0x5757: "Personal weather station",
	0x6363: "Hybradio RDS-Net(for testing use, only)",
	0x6365: "RDS2 - 9 bit AF lists ODA",
	0x6552: "Enhanced RadioText (eRT)",
	0x6A7A: "Warning receiver",
	0x7373: "Enhanced early warning system",
	0xA112: "NL _ Alert system",
	0xA911: "Data FM Selective Multipoint Messaging",
	0xABCF: "RF Power Monitoring",
	0xC350: "NRSC Song Title and Artist",
	0xC3A1: "Personal Radio Service",
	0xC3B0: "iTunes Tagging",
	0xC3C3: "NAVTEQ Traffic Plus",
	0xC4D4: "eEAS",
	0xC549: "Smart Grid Broadcast Channel",
	0xC563: "ID Logic",
	0xC6A7: "Veil Enabled Interactive Device",
	0xC737: "Utility Message Channel (UMC)",
	0xCB73: "CITIBUS 1",
	0xCB97: "ELECTRABEL-DSM 14",
	0xCC21: "CITIBUS 3",
	0xCD46: "RDS-TMC: ALERT-C",
	0xCD47: "RDS-TMC: ALERT-C",
	0xCD9E: "ELECTRABEL-DSM 8",
	0xCE6B: "Encrypted TTI using ALERT-Plus",
	0xE123: "APS Gateway",
	0xE1C1: "Action code",
	0xE319: "ELECTRABEL-DSM 12",
	0xE411: "Beacon downlink",
	0xE440: "ELECTRABEL-DSM 15",
	0xE4A6: "ELECTRABEL-DSM 19",
	0xE5D7: "ELECTRABEL-DSM 6",
	0xE911: "EAS open protocol",
	0xFF7F: "RFT: Station logo",
	0xFF80: "RFT+ (work title)",
}

// AppName returns the registered ODA application name for an AID, or
// "(Unknown)".
func AppName(aid int) string {
	if name, ok := odaApps[aid]; ok {
		return name
	}

	return "(Unknown)"
}

// rtPlusContentTypes is RDS Forum R06/040_1 (2006-07-21).
var rtPlusContentTypes = [66]string{
	"dummy_class", "item.title", "item.album",
	"item.tracknumber", "item.artist", "item.composition",
	"item.movement", "item.conductor", "item.composer",
	"item.band", "item.comment", "item.genre",
	"info.news", "info.news.local", "info.stockmarket",
	"info.sport", "info.lottery", "info.horoscope",
	"info.daily_diversion", "info.health", "info.event",
	"info.scene", "info.cinema", "info.tv",
	"info.date_time", "info.weather", "info.traffic",
	"info.alarm", "info.advertisement", "info.url",
	"info.other", "stationname.short", "stationname.long",
	"programme.now", "programme.next", "programme.part",
	"programme.host", "programme.editorial_staff", "programme.frequency",
	"programme.homepage", "programme.subchannel", "phone.hotline",
	"phone.studio", "phone.other", "sms.studio",
	"sms.other", "email.hotline", "email.studio",
	"email.other", "mms.other", "chat",
	"chat.centre", "vote.question", "vote.centre",
	"unknown", "unknown", "unknown",
	"unknown", "unknown", "place",
	"appointment", "identifier", "purchase",
	"get_data",
}

// RTPlusContentType returns the RadioText+ content-type name for a 6-bit
// code.
func RTPlusContentType(contentType int) string {
	if contentType < 0 || contentType >= len(rtPlusContentTypes) {
		return "unknown"
	}

	return rtPlusContentTypes[contentType]
}

// diCodes is EN 50067:1998 3.2.1.5 (p. 41): the Decoder Identification /
// Dynamic PTY Indicator codes, indexed directly by the PS segment address
// (0A/0B/15B block 2 bits 0-1) that carries each flag.
var diCodes = [4]string{"dynamic_pty", "compressed", "artificial_head", "stereo"}

// DICode returns the DI flag name carried by PS segment address di (0..3).
func DICode(di int) string {
	if di < 0 || di >= len(diCodes) {
		return "unknown"
	}

	return diCodes[di]
}
