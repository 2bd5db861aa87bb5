package tmc

import (
	"math"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

// earthRadiusKm converts the great-circle angle s2.LatLng.Distance returns
// into kilometers for decodeLocation's span_distance_km field (mean Earth
// radius, IUGG).
const earthRadiusKm = 6371.0088

// carrierFrequencyKHz converts an AF code byte to a VHF/FM frequency in
// kHz, duplicating groups.AltFreqList's band math locally: tmc cannot
// import package groups (groups dispatches into tmc, so the reverse
// import would cycle).
func carrierFrequencyKHz(af uint8) (int, bool) {
	switch {
	case af >= 1 && af <= 204:
		return 87500 + int(af)*100, true
	default:
		return 0, false
	}
}

// otherNetworkAFs is the tiny two-frequency accumulator a variant-6
// tuning info group fills in, two AF bytes per group.
type otherNetworkAFs struct {
	khz []int
}

func (o *otherNetworkAFs) insert(af uint8) {
	if f, ok := carrierFrequencyKHz(af); ok {
		o.khz = append(o.khz, f)
	}
}

// ServiceKey is one encryption id's XOR/rotate key, per spec.md §4.9's
// decrypt formula. Grounded on original_source/src/tmc/message.hh's
// ServiceKey and tmc.cc's loadServiceKeyTable (a small on-disk CSV in the
// original; here a built-in table that SetServiceKeys extends with
// entries read from a YAML file by LoadServiceKeys).
type ServiceKey struct {
	XorVal   uint8
	XorStart uint8
	NRot     uint8
}

// serviceKeyTable is a minimal built-in encryption-id -> key table. Real
// deployments using encrypted TMC services obtain their keys out of band
// (typically from the broadcaster); this covers the identity-like
// fallback entry (encid 0) so an encrypted-but-unkeyed stream still
// round-trips when xorval/xorstart/nrot all default to 0.
var serviceKeyTable = map[uint16]ServiceKey{
	0: {},
}

// Service is the per-station TMC decode state: system-group bookkeeping
// (location table number, scope, encryption), the in-progress multi-group
// message, and the other-network AF/PI registries carried by tuning-info
// variants. Named "Service" (not "TMCService") because it already lives
// in package tmc; spec.md §3 calls this entity TMCService.
//
// Grounded on original_source/src/tmc/tmc.cc's free functions plus
// tmc.h's TMCService member set.
type Service struct {
	initialized bool
	encrypted   bool
	hasEncID    bool

	ltn   uint16
	sid   uint16
	encID uint16
	ltcc  uint16

	message      *Message
	serviceKeys  map[uint16]ServiceKey
	ps           *psBuffer
	otherNetwork map[uint16]*otherNetworkAFs

	locationDB *LocationDatabase
}

// psBuffer is the tiny 8-byte PS accumulator TMC tuning-info groups fill
// in (variant 4/5), independent of the station's main PS text buffer.
type psBuffer struct {
	chars    [8]byte
	filled   [8]bool
	snapshot string
}

func (p *psBuffer) set(pos int, b byte) {
	if pos < 0 || pos >= len(p.chars) {
		return
	}

	p.chars[pos] = b
	p.filled[pos] = true

	for _, f := range p.filled {
		if !f {
			return
		}
	}

	p.snapshot = string(p.chars[:])
}

func (p *psBuffer) isComplete() bool { return p.snapshot != "" }

// NewService returns a fresh per-station TMC decoder. locationDB may be
// nil if no TMC location table has been loaded (the message is still
// decoded; only location/road lookups are skipped, per spec.md §5: "must
// be loaded before the first TMC group is decoded" — decoding itself
// never blocks on it).
func NewService(locationDB *LocationDatabase) *Service {
	return &Service{
		message:      NewMessage(false),
		serviceKeys:  serviceKeyTable,
		ps:           &psBuffer{},
		otherNetwork: map[uint16]*otherNetworkAFs{},
		locationDB:   locationDB,
	}
}

// SetLocationDatabase attaches locdb in place, preserving any in-progress
// multi-group message and service-key table. Safe to call repeatedly
// (e.g. once per emitted group, before a database is known to be loaded
// yet) since it is a no-op once locdb is already attached.
func (s *Service) SetLocationDatabase(locdb *LocationDatabase) {
	if s.locationDB == locdb {
		return
	}

	s.locationDB = locdb
}

// SetServiceKeys replaces the encryption-id -> key table a Service
// decrypts location codes with, merging rather than dropping the
// built-in identity entry. Intended to be populated once at startup from
// LoadServiceKeys and shared across every Service the process creates.
func (s *Service) SetServiceKeys(keys map[uint16]ServiceKey) {
	merged := make(map[uint16]ServiceKey, len(serviceKeyTable)+len(keys))

	for id, key := range serviceKeyTable {
		merged[id] = key
	}

	for id, key := range keys {
		merged[id] = key
	}

	s.serviceKeys = merged
}

func scopeStrings(mgs uint16) []string {
	var scope []string

	if bits.GetBool(uint32(mgs), 3) {
		scope = append(scope, "inter-road")
	}

	if bits.GetBool(uint32(mgs), 2) {
		scope = append(scope, "national")
	}

	if bits.GetBool(uint32(mgs), 1) {
		scope = append(scope, "regional")
	}

	if bits.GetBool(uint32(mgs), 0) {
		scope = append(scope, "urban")
	}

	return scope
}

// ReceiveSystemGroup decodes the ODA message payload of a 3A group
// assigned to TMC (AID 0xCD46/0xCD47), per spec.md §4.9 "System groups".
func (s *Service) ReceiveSystemGroup(message uint16, out *jsontree.Tree) {
	variant := bits.Get(uint32(message), 14, 2)

	sys := out.Get("tmc").Get("system_info")

	switch variant {
	case 0:
		LoadEventData()

		s.initialized = true
		ltn := uint16(bits.Get(uint32(message), 6, 6))
		s.encrypted = ltn == 0

		sys.Set("is_encrypted", s.encrypted)

		if !s.encrypted {
			s.ltn = ltn
			sys.Set("location_table", int(s.ltn))
		}

		afi := bits.GetBool(uint32(message), 5)
		mgs := uint16(bits.Get(uint32(message), 0, 4))

		sys.Set("is_on_alt_freqs", afi)

		for _, scope := range scopeStrings(mgs) {
			sys.Get("scope").Push(jsontree.New(scope))
		}
	case 1:
		s.sid = uint16(bits.Get(uint32(message), 6, 6))
		sys.Set("service_id", int(s.sid))

		gapValues := [4]int{3, 5, 8, 11}
		g := bits.Get(uint32(message), 12, 2)
		sys.Set("gap", gapValues[g])

		s.ltcc = uint16(bits.Get(uint32(message), 0, 4))
		if s.ltcc > 0 {
			sys.Set("ltcc", int(s.ltcc))
		}
	case 2:
		ltecc := uint8(bits.Get(uint32(message), 0, 8))
		if ltecc > 0 {
			sys.Set("ltecc", int(ltecc))

			if s.ltcc > 0 {
				sys.Set("country", tables.Country(int(s.ltcc), int(ltecc)))
			}
		}
	}
}

// ReceiveUserGroup decodes an 8A (or ODA-reassigned) TMC user group, per
// spec.md §4.9 "User groups": encryption administration, tuning info, or
// an event message (single- or multi-group).
func (s *Service) ReceiveUserGroup(x, y, z uint16, out *jsontree.Tree) {
	if !s.initialized {
		return
	}

	t := bits.GetBool(uint32(x), 4)

	switch {
	case bits.Get(uint32(x), 0, 5) == 0:
		s.receiveEncryptionAdmin(y, z, out)
	case t:
		s.receiveTuningInfo(x, y, z, out)
	default:
		s.receiveEventMessage(x, y, z, out)
	}
}

func (s *Service) receiveEncryptionAdmin(y, z uint16, out *jsontree.Tree) {
	s.sid = uint16(bits.Get(uint32(y), 5, 6))
	s.encID = uint16(bits.Get(uint32(y), 0, 5))
	s.ltn = uint16(bits.Get(uint32(z), 10, 6))
	s.hasEncID = true

	sys := out.Get("tmc").Get("system_info")
	sys.Set("service_id", int(s.sid))
	sys.Set("encryption_id", int(s.encID))
	sys.Set("location_table", int(s.ltn))
}

func (s *Service) receiveTuningInfo(x, y, z uint16, out *jsontree.Tree) {
	variant := bits.Get(uint32(x), 0, 4)
	on := out.Get("tmc").Get("other_network")

	switch variant {
	case 4, 5:
		pos := 4 * int(variant-4)
		s.ps.set(pos+0, uint8(bits.Get(uint32(y), 8, 8)))
		s.ps.set(pos+1, uint8(bits.Get(uint32(y), 0, 8)))
		s.ps.set(pos+2, uint8(bits.Get(uint32(z), 8, 8)))
		s.ps.set(pos+3, uint8(bits.Get(uint32(z), 0, 8)))

		if s.ps.isComplete() {
			out.Get("tmc").Set("service_provider", s.ps.snapshot)
		}
	case 6:
		onPI := z
		if _, ok := s.otherNetwork[onPI]; !ok {
			s.otherNetwork[onPI] = &otherNetworkAFs{}
		}

		list := s.otherNetwork[onPI]
		list.insert(uint8(bits.Get(uint32(y), 8, 8)))
		list.insert(uint8(bits.Get(uint32(y), 0, 8)))

		on.Set("pi", formatPI(onPI))

		for _, f := range list.khz {
			on.Get("frequencies_khz").Push(jsontree.New(f))
		}

		s.otherNetwork = map[uint16]*otherNetworkAFs{}
	case 8:
		if y == 0 || z == 0 || y == z {
			on.Set("pi", formatPI(y))
		} else {
			on.Get("pi_codes").Push(jsontree.New(formatPI(y)))
			on.Get("pi_codes").Push(jsontree.New(formatPI(z)))
		}
	case 9:
		onPI := z
		onSID := bits.Get(uint32(y), 0, 6)
		onMGS := uint16(bits.Get(uint32(y), 6, 4))
		onLTN := bits.Get(uint32(y), 10, 6)

		on.Set("pi", formatPI(onPI))
		on.Set("service_id", int(onSID))
		on.Set("location_table", int(onLTN))

		for _, scopeStr := range scopeStrings(onMGS) {
			on.Get("scope").Push(jsontree.New(scopeStr))
		}
	default:
		out.Get("debug").Push(jsontree.New("TODO: TMC tuning info variant"))
	}
}

func (s *Service) receiveEventMessage(x, y, z uint16, out *jsontree.Tree) {
	if s.encrypted && !s.hasEncID {
		return
	}

	isSingleGroup := bits.GetBool(uint32(x), 3)

	if isSingleGroup {
		msg := NewMessage(s.encrypted)
		msg.PushSingle(x, y, z)
		s.finishMessage(msg, out)

		return
	}

	continuity := int(bits.Get(uint32(x), 0, 3))
	if continuity != s.message.ContinuityIndex() {
		s.message = NewMessage(s.encrypted)
	}

	s.message.PushMulti(x, y, z)

	if s.message.IsComplete() {
		s.finishMessage(s.message, out)
		s.message = NewMessage(s.encrypted)
	}
}

func (s *Service) finishMessage(msg *Message, out *jsontree.Tree) {
	if s.encrypted {
		if key, ok := s.serviceKeys[s.encID]; ok {
			msg.Decrypt(key)
		}
	}

	tree := msg.Tree()
	if tree.IsEmpty() {
		return
	}

	*out.Get("tmc").Get("message") = *tree

	if s.locationDB != nil {
		s.decodeLocation(msg, out)
	}
}

// decodeLocation walks the positive/negative offset chain from the
// message's location code and attaches Point/Road names, per spec.md
// §4.9's "look up Point, Road, Segment records" and
// original_source/src/tmc/tmc.cc's decodeLocation.
func (s *Service) decodeLocation(msg *Message, out *jsontree.Tree) {
	if s.locationDB.LTN != s.ltn || s.locationDB.LTN == 0 {
		return
	}

	lcd := msg.Location()

	point, ok := s.locationDB.Points[lcd]
	if !ok {
		return
	}

	extent := msg.Extent()
	isPositive := extent >= 0

	pointsLeft := extent
	if pointsLeft < 0 {
		pointsLeft = -pointsLeft
	}

	pointsLeft++

	var chain []Point

	this := lcd

	for pointsLeft > 0 {
		p, ok := s.locationDB.Points[this]
		if !ok {
			break
		}

		chain = append(chain, p)

		if isPositive {
			this = p.PosOff
		} else {
			this = p.NegOff
		}

		pointsLeft--
	}

	msgTree := out.Get("tmc").Get("message")

	for i, p := range chain {
		msgTree.Get("coordinates").At(i).Set("lat", p.LatDegrees)
		msgTree.Get("coordinates").At(i).Set("lon", p.LonDegrees)
	}

	msgTree.Set("location_dms", Coordinate{LatDegrees: point.LatDegrees, LonDegrees: point.LonDegrees}.DMSString())

	if len(chain) > 1 && chain[0].Name1 != "" && chain[len(chain)-1].Name1 != "" {
		msgTree.Set("span_from", chain[0].Name1)
		msgTree.Set("span_to", chain[len(chain)-1].Name1)
	}

	if len(chain) > 1 {
		radians := chain[0].LatLng().Distance(chain[len(chain)-1].LatLng()).Radians()
		msgTree.Set("span_distance_km", math.Round(radians*earthRadiusKm*10)/10)
	}

	if road, ok := s.locationDB.Roads[point.RoaLCD]; ok {
		if road.RoadNumber != "" {
			msgTree.Set("road_number", road.RoadNumber)
		}

		switch {
		case road.Name != "":
			msgTree.Set("road_name", road.Name)
		case point.RoadName != "":
			msgTree.Set("road_name", point.RoadName)
		}
	}
}

func formatPI(pi uint16) string {
	return "0x" + hex4(pi)
}

func hex4(v uint16) string {
	const digits = "0123456789ABCDEF"

	out := make([]byte, 4)
	for i := 3; i >= 0; i-- {
		out[i] = digits[v&0xF]
		v >>= 4
	}

	return string(out)
}
