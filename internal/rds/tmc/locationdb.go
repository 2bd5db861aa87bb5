package tmc

import (
	"os"
	"path/filepath"

	"github.com/golang/geo/s2"
)

// Point is one location in an ALERT-C location table, per spec.md §4.9's
// "primary and secondary locations" and original_source/src/tmc/
// locationdb.hh's Point struct.
type Point struct {
	LCD        uint16
	Name1      string
	RoadName   string
	RoaLCD     uint16
	SegLCD     uint16
	NegOff     uint16
	PosOff     uint16
	LatDegrees float64
	LonDegrees float64
}

// LatLng returns the point's coordinates as an s2.LatLng, for callers
// that want spherical-geometry operations (distance, containment)
// instead of bare degree floats.
func (p Point) LatLng() s2.LatLng {
	return s2.LatLngFromDegrees(p.LatDegrees, p.LonDegrees)
}

// Segment links a location code to the road it belongs to.
type Segment struct {
	LCD    uint16
	RoaLCD uint16
}

// Road is a named stretch of road referenced by Points, per
// locationdb.hh's Road struct.
type Road struct {
	LCD        uint16
	RoadNumber string
	Name       string
	Name1      string
}

// AdminArea is a named administrative region (county, state) a location
// can belong to.
type AdminArea struct {
	LCD  uint16
	Name string
}

// LocationDatabase is a fully loaded ALERT-C location table, per spec.md
// §4.9 "TMC location database" and locationdb.hh's LocationDatabase
// struct.
type LocationDatabase struct {
	LTN        uint16
	Points     map[uint16]Point
	Roads      map[uint16]Road
	Names      map[int]string
	Segments   map[uint16]Segment
	AdminAreas map[uint16]AdminArea
}

// NumPoints, NumRoads, NumNames report table sizes the way
// LocationDatabase::toString's JSON summary does.
func (l *LocationDatabase) NumPoints() int { return len(l.Points) }
func (l *LocationDatabase) NumRoads() int  { return len(l.Roads) }
func (l *LocationDatabase) NumNames() int  { return len(l.Names) }

// ReadLTN reads just the location table number out of a location
// database directory's LOCATIONDATASETS.DAT, without loading the full
// table. Grounded on locationdb.cc's readLTN.
func ReadLTN(directory string) uint16 {
	table := readDiskCSVTable(filepath.Join(directory, "LOCATIONDATASETS.DAT"), ';')

	var ltn uint16

	for _, row := range table.rows {
		if v, ok := table.uint16Val(row, "TABCD"); ok {
			ltn = v
		}
	}

	return ltn
}

// LoadLocationDatabase reads the ALERT-C ENCODER DATA DELIVERY STANDARD
// files NAMES.DAT, ROADS.DAT, SEGMENTS.DAT, POINTS.DAT, POFFSETS.DAT and
// ADMINISTRATIVEAREA.DAT from directory (README.DAT is not read), per
// spec.md §4.9 and locationdb.cc's loadLocationDatabase.
//
// Unlike the original, this does not transcode NAMES.DAT out of the
// README.DAT-declared legacy encoding (ISO-8859-N and friends): callers
// feeding in legacy Western European TMC location tables built before
// the 2010s ISO 14819-3 UTF-8 mandate will see those names un-transcoded.
// No example repository in the retrieval pack wires a non-UTF-8 decoder,
// so this is recorded as an accepted gap rather than invented.
func LoadLocationDatabase(directory string) LocationDatabase {
	locdb := LocationDatabase{
		Points:     map[uint16]Point{},
		Roads:      map[uint16]Road{},
		Names:      map[int]string{},
		Segments:   map[uint16]Segment{},
		AdminAreas: map[uint16]AdminArea{},
	}

	loadNames(directory, &locdb)
	loadRoads(directory, &locdb)
	loadSegments(directory, &locdb)
	loadPoints(directory, &locdb)
	loadOffsets(directory, &locdb)
	loadAdminAreas(directory, &locdb)

	return locdb
}

func loadNames(directory string, locdb *LocationDatabase) {
	table := readDiskCSVTable(filepath.Join(directory, "NAMES.DAT"), ';')

	for _, row := range table.rows {
		nid, ok := table.intVal(row, "NID")
		if !ok {
			continue
		}

		locdb.Names[nid] = table.str(row, "NAME")
	}
}

func loadRoads(directory string, locdb *LocationDatabase) {
	table := readDiskCSVTable(filepath.Join(directory, "ROADS.DAT"), ';')

	for _, row := range table.rows {
		lcd, ok := table.uint16Val(row, "LCD")
		if !ok {
			continue
		}

		road := Road{LCD: lcd, RoadNumber: table.str(row, "ROADNUMBER")}

		if rnid, ok := table.intVal(row, "RNID"); ok {
			road.Name = locdb.Names[rnid]
		}

		locdb.Roads[lcd] = road
	}
}

func loadSegments(directory string, locdb *LocationDatabase) {
	table := readDiskCSVTable(filepath.Join(directory, "SEGMENTS.DAT"), ';')

	for _, row := range table.rows {
		lcd, ok := table.uint16Val(row, "LCD")
		if !ok {
			continue
		}

		roaLCD, _ := table.uint16Val(row, "ROA_LCD")

		locdb.Segments[lcd] = Segment{LCD: lcd, RoaLCD: roaLCD}
	}
}

func loadPoints(directory string, locdb *LocationDatabase) {
	table := readDiskCSVTable(filepath.Join(directory, "POINTS.DAT"), ';')

	for _, row := range table.rows {
		lcd, ok := table.uint16Val(row, "LCD")
		if !ok {
			continue
		}

		if tabcd, ok := table.uint16Val(row, "TABCD"); ok {
			locdb.LTN = tabcd
		}

		point := Point{LCD: lcd}

		if n1id, ok := table.intVal(row, "N1ID"); ok {
			point.Name1 = locdb.Names[n1id]
		}

		if x, ok := table.intVal(row, "XCOORD"); ok {
			point.LonDegrees = float64(x) * 1e-5
		}

		if y, ok := table.intVal(row, "YCOORD"); ok {
			point.LatDegrees = float64(y) * 1e-5
		}

		if roaLCD, ok := table.uint16Val(row, "ROA_LCD"); ok {
			point.RoaLCD = roaLCD
		}

		if segLCD, ok := table.uint16Val(row, "SEG_LCD"); ok {
			point.SegLCD = segLCD
		}

		if rnid, ok := table.intVal(row, "RNID"); ok {
			point.RoadName = locdb.Names[rnid]
		}

		if point.RoaLCD == 0 {
			if seg, ok := locdb.Segments[point.SegLCD]; ok {
				point.RoaLCD = seg.RoaLCD
			}
		}

		locdb.Points[point.LCD] = point
	}
}

func loadOffsets(directory string, locdb *LocationDatabase) {
	table := readDiskCSVTable(filepath.Join(directory, "POFFSETS.DAT"), ';')

	for _, row := range table.rows {
		lcd, ok := table.uint16Val(row, "LCD")
		if !ok {
			continue
		}

		point, ok := locdb.Points[lcd]
		if !ok {
			continue
		}

		point.NegOff, _ = table.uint16Val(row, "NEG_OFF_LCD")
		point.PosOff, _ = table.uint16Val(row, "POS_OFF_LCD")
		locdb.Points[lcd] = point
	}
}

func loadAdminAreas(directory string, locdb *LocationDatabase) {
	table := readDiskCSVTable(filepath.Join(directory, "ADMINISTRATIVEAREA.DAT"), ';')

	for _, row := range table.rows {
		lcd, ok := table.uint16Val(row, "LCD")
		if !ok {
			continue
		}

		area := AdminArea{LCD: lcd}

		if nid, ok := table.intVal(row, "NID"); ok {
			area.Name = locdb.Names[nid]
		}

		locdb.AdminAreas[lcd] = area
	}
}

// readDiskCSVTable is readCSVTable for files that live on disk rather
// than as embedded strings; a missing or unreadable file yields an empty
// table rather than an error, matching loadLocationDatabase's per-row
// try/catch-and-skip behavior in the original.
func readDiskCSVTable(path string, delimiter rune) csvTable {
	data, err := os.ReadFile(path)
	if err != nil {
		return csvTable{}
	}

	return readCSVTable(string(data), delimiter)
}
