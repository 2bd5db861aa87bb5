package tmc

import (
	"fmt"
	"strings"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

// FieldLabel identifies one freeform field within a multi-group TMC
// message's continuation groups, per ISO 14819-1 §5.5 and spec.md §4.9's
// "Labels include" list.
type FieldLabel int

const (
	LabelDuration FieldLabel = iota
	LabelControlCode
	LabelAffectedLength
	LabelSpeedLimit
	LabelQuantifier5Bit
	LabelQuantifier8Bit
	LabelSupplementary
	LabelStartTime
	LabelStopTime
	LabelAdditionalEvent
	LabelDetailedDiversion
	LabelDestination
	labelRFU
	LabelCrossLinkage
	LabelSeparator
)

// fieldSize is the bit width of each label's value, ISO 14819-1 Table 7.
var fieldSize = [16]int{3, 3, 5, 5, 5, 8, 8, 8, 8, 11, 16, 16, 16, 16, 0, 0}

// ControlCode is the freeform-field control action named by LabelControlCode.
type ControlCode int

const (
	ControlIncreaseUrgency ControlCode = iota
	ControlReduceUrgency
	ControlChangeDirectionality
	ControlChangeDurationType
	controlSpokenUnspoken
	ControlSetDiversion
	ControlIncreaseExtentBy8
	ControlIncreaseExtentBy16
)

// Direction is the message's direction of applicability along the route,
// relative to the location's positive/negative offset chain.
type Direction int

const (
	DirectionPositive Direction = iota
	DirectionNegative
)

// messagePart holds one of the 5 group-payload slots (x excluded: only
// y, z) of a multi-group TMC message, per original_source's MessagePart.
type messagePart struct {
	received bool
	y, z     uint16
}

// quantifiers maps an event-list index to its attached quantifier value,
// preserving the small-map-over-vector-of-pairs shape of
// original_source/src/tmc/message.hh's Quantifiers (insertion order
// doesn't matter here and a plain map is the idiomatic Go equivalent).
type quantifiers map[int]uint16

// Message is a single- or multi-group ALERT-C traffic message under
// construction or ready for emission, per spec.md §3's TmcMessage entity
// and §4.9.
//
// Grounded verbatim on original_source/src/tmc/message.cc's Message:
// field-by-field bit layout for pushSingle/pushMulti, the freeform-field
// bitstream reassembly in decodeMulti (concatenating the last
// second-group-sequence-indicator groups per ISO 14819-1 §5.5), and the
// quantifier-to-text tables in getDescriptionWithQuantifier.
type Message struct {
	isEncrypted  bool
	wasEncrypted bool

	duration       uint16
	durationType   DurationType
	diversionOK    bool
	direction      Direction
	extent         int
	events         []uint16
	supplementary  []uint16
	quantifiers    quantifiers
	diversion      []uint16
	location       uint16
	encryptedLoc   uint16
	complete       bool
	lengthAffected int
	hasLength      bool
	timeUntil      int
	hasTimeUntil   bool
	timeStarts     int
	hasTimeStarts  bool
	speedLimit     int
	hasSpeedLimit  bool
	directionality Directionality
	urgency        Urgency
	continuityIdx  int
	parts          [5]messagePart
}

// NewMessage starts an empty message, recording whether the station's
// locations are currently encrypted (per the last-seen system group).
func NewMessage(isEncrypted bool) *Message {
	return &Message{isEncrypted: isEncrypted, wasEncrypted: isEncrypted, quantifiers: quantifiers{}}
}

// IsComplete reports whether enough groups have arrived to emit a record.
func (m *Message) IsComplete() bool { return m.complete }

// ContinuityIndex returns the 3-bit multi-group continuity index last
// observed, used by the caller to detect a message restart.
func (m *Message) ContinuityIndex() int { return m.continuityIdx }

// PushSingle decodes a complete single-group event message (spec.md §4.9
// "Single-group"): x is Block 2, y is Block 3, z is Block 4.
func (m *Message) PushSingle(x, y, z uint16) {
	m.duration = uint16(bits.Get(uint32(x), 0, 3))
	m.diversionOK = bits.GetBool(uint32(y), 15)

	if bits.GetBool(uint32(y), 14) {
		m.direction = DirectionNegative
	}

	m.extent = int(bits.Get(uint32(y), 11, 3))
	m.events = append(m.events, uint16(bits.Get(uint32(y), 0, 11)))

	if m.isEncrypted {
		m.encryptedLoc = z
	} else {
		m.location = z
	}

	ev := GetEvent(m.events[0])
	m.directionality = ev.Directionality
	m.urgency = ev.Urgency
	m.durationType = ev.DurationType
	m.complete = true
}

// PushMulti feeds one group of a multi-group message, decoding and
// clearing once the "last group" flag arrives (spec.md §4.9
// "Multi-group").
func (m *Message) PushMulti(x, y, z uint16) {
	m.continuityIdx = int(bits.Get(uint32(x), 0, 3))

	isFirst := bits.GetBool(uint32(y), 15)

	var current int

	var isLast bool

	switch {
	case isFirst:
		current = 0
	case bits.GetBool(uint32(y), 14):
		gsi := int(bits.Get(uint32(y), 12, 2))
		current = 1
		isLast = gsi == 0
	default:
		gsi := int(bits.Get(uint32(y), 12, 2))
		current = 4 - gsi
		isLast = gsi == 0
	}

	m.parts[current] = messagePart{received: true, y: y, z: z}

	if isLast {
		m.decodeMulti()
		m.clearParts()
	}
}

func (m *Message) clearParts() {
	for i := range m.parts {
		m.parts[i] = messagePart{}
	}

	m.continuityIdx = 0
}

func (m *Message) decodeMulti() {
	if !m.parts[0].received {
		return
	}

	m.complete = true

	p0 := m.parts[0]
	if bits.GetBool(uint32(p0.y), 14) {
		m.direction = DirectionNegative
	}

	m.extent = int(bits.Get(uint32(p0.y), 11, 3))
	m.events = append(m.events, uint16(bits.Get(uint32(p0.y), 0, 11)))

	if m.isEncrypted {
		m.encryptedLoc = p0.z
	} else {
		m.location = p0.z
	}

	ev := GetEvent(m.events[0])
	m.directionality = ev.Directionality
	m.urgency = ev.Urgency
	m.durationType = ev.DurationType

	if !m.parts[1].received {
		return
	}

	for _, field := range getFreeformFields(&m.parts) {
		m.applyFreeformField(field)
	}
}

type freeformField struct {
	label FieldLabel
	data  uint16
}

// getFreeformFields reassembles the bitstream spanning the last
// second-group-sequence-indicator groups of parts[1:] (plus parts[1]
// itself) into 4-bit-label + variable-length-value fields, per
// ISO 14819-1 §5.5 and spec.md §4.9.
func getFreeformFields(parts *[5]messagePart) []freeformField {
	secondGSI := int(bits.Get(uint32(parts[1].y), 12, 2))

	var bitBuf []byte

	pushBits := func(v uint32, n int) {
		for b := n - 1; b >= 0; b-- {
			bitBuf = append(bitBuf, byte((v>>uint(b))&1))
		}
	}

	for i := 1; i < len(parts); i++ {
		if i != 1 && i < len(parts)-secondGSI {
			continue
		}

		if !parts[i].received {
			break
		}

		pushBits(uint32(parts[i].y), 12)
		pushBits(uint32(parts[i].z), 16)
	}

	popBits := func(n int) uint16 {
		var v uint16
		for i := 0; i < n; i++ {
			v = v<<1 | uint16(bitBuf[i])
		}

		bitBuf = bitBuf[n:]

		return v
	}

	var result []freeformField

	for len(bitBuf) > 4 {
		label := int(popBits(4))
		if len(bitBuf) < fieldSize[label] {
			break
		}

		data := popBits(fieldSize[label])

		if label == 0 && data == 0 {
			break
		}

		if label <= 14 {
			result = append(result, freeformField{label: FieldLabel(label), data: data})
		}
	}

	return result
}

func (m *Message) applyFreeformField(f freeformField) {
	switch f.label {
	case LabelDuration:
		m.duration = f.data
	case LabelControlCode:
		m.applyControlCode(ControlCode(f.data))
	case LabelAffectedLength:
		m.lengthAffected = int(f.data)
		m.hasLength = true
	case LabelSpeedLimit:
		m.speedLimit = int(f.data) * 5
		m.hasSpeedLimit = true
	case LabelQuantifier5Bit:
		m.maybeSetQuantifier(f.data, 5)
	case LabelQuantifier8Bit:
		m.maybeSetQuantifier(f.data, 8)
	case LabelSupplementary:
		m.supplementary = append(m.supplementary, f.data)
	case LabelStartTime:
		m.timeStarts = int(f.data)
		m.hasTimeStarts = true
	case LabelStopTime:
		m.timeUntil = int(f.data)
		m.hasTimeUntil = true
	case LabelAdditionalEvent:
		m.events = append(m.events, f.data)
	case LabelDetailedDiversion:
		m.diversion = append(m.diversion, f.data)
	case LabelDestination, LabelCrossLinkage, LabelSeparator:
		// Carried in freeform data but not surfaced as a decoded field,
		// matching original_source/src/tmc/message.cc's no-op cases.
	}
}

func (m *Message) applyControlCode(cc ControlCode) {
	if cc > ControlIncreaseExtentBy16 {
		return
	}

	switch cc {
	case ControlIncreaseUrgency:
		m.urgency = bumpUrgency(m.urgency, 1)
	case ControlReduceUrgency:
		m.urgency = bumpUrgency(m.urgency, -1)
	case ControlChangeDirectionality:
		if m.directionality == DirectionalitySingle {
			m.directionality = DirectionalityBoth
		} else {
			m.directionality = DirectionalitySingle
		}
	case ControlChangeDurationType:
		if m.durationType == DurationDynamic {
			m.durationType = DurationLongerLasting
		} else {
			m.durationType = DurationDynamic
		}
	case ControlSetDiversion:
		m.diversionOK = true
	case ControlIncreaseExtentBy8:
		m.extent += 8
	case ControlIncreaseExtentBy16:
		m.extent += 16
	case controlSpokenUnspoken:
		// RFU per ISO 14819-1; no decoded effect.
	}
}

func bumpUrgency(u Urgency, delta int) Urgency {
	// Cyclic None -> U -> X -> None (increase) or the reverse (reduce),
	// per original_source/src/tmc/message.cc's two explicit switches.
	order := [3]Urgency{UrgencyNone, UrgencyU, UrgencyX}
	idx := 0

	for i, v := range order {
		if v == u {
			idx = i
		}
	}

	return order[(idx+delta+3)%3]
}

func (m *Message) maybeSetQuantifier(value uint16, size int) {
	if len(m.events) == 0 {
		return
	}

	idx := len(m.events) - 1
	if _, has := m.quantifiers[idx]; has {
		return
	}

	ev := GetEvent(m.events[idx])
	if ev.AllowsQuantifier && QuantifierSize(ev.QuantifierType) == size {
		m.quantifiers[idx] = value
	}
}

// Clear resets the message to empty, discarding any partially-received
// multi-group state.
func (m *Message) Clear() {
	*m = *NewMessage(m.wasEncrypted)
}

// Decrypt applies a service key's rotate/xor scheme to the encrypted
// location code, per spec.md §4.9: "location = rotl16(enc ^ (xorval <<
// xorstart), nrot)".
func (m *Message) Decrypt(key ServiceKey) {
	if !m.isEncrypted {
		return
	}

	x := m.encryptedLoc ^ (uint16(key.XorVal) << key.XorStart)
	m.location = rotl16(x, uint32(key.NRot))
	m.isEncrypted = false
}

func rotl16(v uint16, count uint32) uint16 {
	count &= 15

	return v<<count | v>>((16-count)&15)
}

// HasLocation reports whether a decrypted (or never encrypted) location
// code is present; an encrypted code that has not been decrypted does not
// count.
func (m *Message) HasLocation() bool { return m.location != 0 }

// Location returns the decrypted location code.
func (m *Message) Location() uint16 { return m.location }

// Extent returns the signed number of locations the message spans,
// negative meaning the "negative" direction chain.
func (m *Message) Extent() int {
	if m.direction == DirectionNegative {
		return -m.extent
	}

	return m.extent
}

// Tree renders the message as spec.md §6's tmc.message document, or an
// empty Tree if the message is incomplete or carries no events.
func (m *Message) Tree() *jsontree.Tree {
	out := &jsontree.Tree{}

	if !m.complete || len(m.events) == 0 {
		return out
	}

	for _, code := range m.events {
		out.Get("event_codes").Push(jsontree.New(int(code)))
	}

	for _, code := range m.supplementary {
		out.Get("supplementary_codes").Push(jsontree.New(int(code)))
	}

	var sentences []string

	for i, code := range m.events {
		if !IsValidEventCode(code) {
			continue
		}

		ev := GetEvent(code)

		var description string
		if q, has := m.quantifiers[i]; has {
			description = descriptionWithQuantifier(ev, q)
		} else {
			description = ev.Description
		}

		sentences = append(sentences, ucFirst(description))
	}

	if IsValidEventCode(m.events[0]) {
		out.Set("update_class", GetEvent(m.events[0]).UpdateClass)
	}

	for _, code := range m.supplementary {
		if IsValidSupplementaryCode(code) {
			sentences = append(sentences, ucFirst(SupplementaryDescription(code)))
		}
	}

	if len(sentences) > 0 {
		out.Set("description", strings.Join(sentences, ". ")+".")
	}

	if m.hasSpeedLimit {
		out.Set("speed_limit", fmt.Sprintf("%d km/h", m.speedLimit))
	}

	for _, code := range m.diversion {
		out.Get("diversion_route").Push(jsontree.New(int(code)))
	}

	if m.wasEncrypted {
		out.Set("encrypted_location", int(m.encryptedLoc))
	}

	if !m.isEncrypted {
		out.Set("location", int(m.location))
	}

	directionality := "single"
	if m.directionality == DirectionalityBoth {
		directionality = "both"
	}

	out.Set("direction", directionality)

	sign := "+"
	if m.direction == DirectionNegative {
		sign = "-"
	}

	out.Set("extent", fmt.Sprintf("%s%d", sign, m.extent))

	if m.hasTimeStarts {
		out.Set("starts", timeString(m.timeStarts))
	}

	if m.hasTimeUntil {
		out.Set("until", timeString(m.timeUntil))
	}

	out.Set("urgency", UrgencyString(m.urgency))

	return out
}

func ucFirst(s string) string {
	if s == "" {
		return s
	}

	return strings.ToUpper(s[:1]) + s[1:]
}

var monthNames = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// timeString renders a freeform start/stop-time field value, per
// original_source/src/tmc/message.cc's getTimeString.
func timeString(fieldData int) string {
	switch {
	case fieldData <= 95:
		return hoursMinutesString(fieldData/4, 15*(fieldData%4))
	case fieldData <= 200:
		days := (fieldData - 96) / 24
		hour := (fieldData - 96) % 24

		switch days {
		case 0:
			return "at " + hoursMinutesString(hour, 0)
		case 1:
			return "after 1 day at " + hoursMinutesString(hour, 0)
		default:
			return fmt.Sprintf("after %d days at %s", days, hoursMinutesString(hour, 0))
		}
	case fieldData <= 231:
		return fmt.Sprintf("day %d of the month", fieldData-200)
	default:
		month := (fieldData - 232) / 2
		endOrMid := (fieldData-232)%2 == 1

		if month >= 12 {
			return ""
		}

		if endOrMid {
			return "end of " + monthNames[month]
		}

		return "mid-" + monthNames[month]
	}
}

func hoursMinutesString(hour, minute int) string {
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// descriptionWithQuantifier substitutes the rendered quantifier value
// into an event's "(Q)"-templated description, per
// original_source/src/tmc/message.cc's getDescriptionWithQuantifier.
func descriptionWithQuantifier(event Event, qValue uint16) string {
	text := "(Q)"

	if QuantifierSize(event.QuantifierType) == 5 && qValue == 0 {
		qValue = 32
	}

	q := int(qValue)

	switch event.QuantifierType {
	case QuantifierSmallNumber:
		if q > 28 {
			q += q - 28
		}

		text = fmt.Sprintf("%d", q)
	case QuantifierNumber:
		var num int

		switch {
		case q <= 4:
			num = q
		case q <= 14:
			num = (q - 4) * 10
		default:
			num = (q - 12) * 50
		}

		text = fmt.Sprintf("%d", num)
	case QuantifierLessThanMetres:
		text = fmt.Sprintf("less than %d metres", q*10)
	case QuantifierPercent:
		pct := q * 5
		if q == 32 {
			pct = 0
		}

		text = fmt.Sprintf("%d %%", pct)
	case QuantifierUptoKmh:
		text = fmt.Sprintf("of up to %d km/h", q*5)
	case QuantifierUptoTime:
		switch {
		case q <= 10:
			text = fmt.Sprintf("of up to %d minutes", q*5)
		case q <= 22:
			text = fmt.Sprintf("of up to %d hours", q-10)
		default:
			text = fmt.Sprintf("of up to %d hours", (q-20)*6)
		}
	case QuantifierDegreesCelsius:
		text = fmt.Sprintf("%d degrees Celsius", q-51)
	case QuantifierTime:
		minute := (q - 1) * 10
		hour := minute / 60
		minute %= 60
		text = hoursMinutesString(hour, minute)
	case QuantifierTonnes:
		decitonnes := q
		if q > 100 {
			decitonnes = 100 + (q-100)*5
		}

		text = fmt.Sprintf("%d.%d tonnes", decitonnes/10, decitonnes%10)
	case QuantifierMetres:
		decimetres := q
		if q > 100 {
			decimetres = 100 + (q-100)*5
		}

		text = fmt.Sprintf("%d.%d metres", decimetres/10, decimetres%10)
	case QuantifierUptoMillimetres:
		text = fmt.Sprintf("of up to %d millimetres", q)
	case QuantifierMHz:
		text = fmFrequencyString(qValue)
	case QuantifierKHz:
		text = lfMfFrequencyString(qValue)
	}

	return strings.Replace(event.DescriptionWithQuantifier, "(Q)", text, 1)
}

// fmFrequencyString and lfMfFrequencyString render an AF-style code value
// as a human frequency, per original_source/src/freq.cc's CarrierFrequency,
// reused here only for the quantifier text (the main AF list decoder has
// its own copy in groups.AltFreqList since the two never share state).
func fmFrequencyString(code uint16) string {
	if code < 1 || code > 204 {
		return "N/A"
	}

	khz := 87500 + 100*int(code)

	return fmt.Sprintf("%d.%d MHz", khz/1000, (khz%1000)/100)
}

func lfMfFrequencyString(code uint16) string {
	if code < 1 || code > 135 {
		return "N/A"
	}

	var khz int
	if code <= 15 {
		khz = 144 + 9*int(code)
	} else {
		khz = 522 + 9*(int(code)-15)
	}

	return fmt.Sprintf("%d kHz", khz)
}
