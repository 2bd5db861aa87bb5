package tmc

import (
	"strconv"
	"strings"
)

func parseUint16(s string) (uint16, error) {
	n, err := strconv.ParseUint(s, 10, 16)

	return uint16(n), err
}

// QuantifierType selects how a freeform quantifier value attached to an
// event is rendered into human text, per ISO 14819-2 Table 3.
type QuantifierType int

const (
	QuantifierSmallNumber QuantifierType = iota
	QuantifierNumber
	QuantifierLessThanMetres
	QuantifierPercent
	QuantifierUptoKmh
	QuantifierUptoTime
	QuantifierDegreesCelsius
	QuantifierTime
	QuantifierTonnes
	QuantifierMetres
	QuantifierUptoMillimetres
	QuantifierMHz
	QuantifierKHz
)

// QuantifierSize reports the bit width (5 or 8) of the freeform field that
// carries a quantifier of this type, per spec.md §4.9's "5- and 8-bit
// quantifiers" label pair.
func QuantifierSize(qtype QuantifierType) int {
	switch qtype {
	case QuantifierSmallNumber, QuantifierNumber, QuantifierLessThanMetres,
		QuantifierPercent, QuantifierUptoKmh, QuantifierUptoTime:
		return 5
	default:
		return 8
	}
}

// EventNature classifies an event as a live report, a forecast, or a
// silent (non-reported) update.
type EventNature int

const (
	NatureEvent EventNature = iota
	NatureForecast
	NatureSilent
)

// Directionality reports whether an event's effects apply to one
// direction of travel or both.
type Directionality int

const (
	DirectionalitySingle Directionality = iota
	DirectionalityBoth
)

// Urgency is the ALERT-C urgency class: none, "U" (urgent), or "X"
// (very urgent).
type Urgency int

const (
	UrgencyNone Urgency = iota
	UrgencyU
	UrgencyX
)

// UrgencyString renders the urgency the way redsea's JSON output does.
func UrgencyString(u Urgency) string {
	switch u {
	case UrgencyU:
		return "U"
	case UrgencyX:
		return "X"
	default:
		return "none"
	}
}

// DurationType distinguishes a dynamically-timed event from a
// longer-lasting one (roadworks, permanent restrictions).
type DurationType int

const (
	DurationDynamic DurationType = iota
	DurationLongerLasting
)

// Event is one ALERT-C event code's static definition, per
// original_source/src/tmc/eventdb.hh's Event struct.
type Event struct {
	Description               string
	DescriptionWithQuantifier string
	Nature                    EventNature
	QuantifierType            QuantifierType
	DurationType              DurationType
	Directionality            Directionality
	Urgency                   Urgency
	UpdateClass               int
	AllowsQuantifier          bool
	ShowDuration              bool
}

var (
	eventDB       = map[uint16]Event{}
	supplementary = map[uint16]string{}
	eventDBLoaded bool
)

// IsEventDataEmpty reports whether the event table has been loaded yet,
// mirroring original_source/src/tmc/eventdb.cc's lazy-init guard (spec.md
// §5: "one-time lazy init guarded by an is-empty check").
func IsEventDataEmpty() bool { return !eventDBLoaded }

// LoadEventData parses the embedded ALERT-C event and supplementary-code
// tables exactly once. Safe to call repeatedly; only the first call has
// an effect.
func LoadEventData() {
	if eventDBLoaded {
		return
	}

	eventDBLoaded = true

	table := readCSVTable(rawEventData, ';')

	for _, row := range table.rows {
		code, ok := table.uint16Val(row, "Code")
		if !ok {
			continue
		}

		var ev Event

		ev.Description = table.str(row, "Description")
		ev.DescriptionWithQuantifier = table.str(row, "Description with Q")
		ev.AllowsQuantifier = ev.DescriptionWithQuantifier != ""
		ev.ShowDuration = true

		switch table.str(row, "N") {
		case "F":
			ev.Nature = NatureForecast
		case "S":
			ev.Nature = NatureSilent
		}

		if qt, ok := table.intVal(row, "Q"); ok && qt >= 0 && qt <= 12 {
			ev.QuantifierType = QuantifierType(qt)
		}

		switch table.str(row, "U") {
		case "U":
			ev.Urgency = UrgencyU
		case "X":
			ev.Urgency = UrgencyX
		}

		durationField := table.str(row, "T")
		if strings.Contains(durationField, "L") {
			ev.DurationType = DurationLongerLasting
		}

		if strings.Contains(durationField, "(") {
			ev.ShowDuration = false
		}

		if d, ok := table.intVal(row, "D"); ok && d == 2 {
			ev.Directionality = DirectionalityBoth
		}

		if uc, ok := table.intVal(row, "C"); ok {
			ev.UpdateClass = uc
		}

		eventDB[code] = ev
	}

	for _, line := range strings.Split(strings.TrimSpace(rawSupplementaryData), "\n") {
		fields := strings.SplitN(line, ";", 2)
		if len(fields) < 2 {
			continue
		}

		code, err := parseUint16(strings.TrimSpace(fields[0]))
		if err != nil {
			continue
		}

		supplementary[code] = fields[1]
	}
}

// IsValidEventCode reports whether code names a known event.
func IsValidEventCode(code uint16) bool {
	_, ok := eventDB[code]

	return ok
}

// GetEvent returns the static definition for an event code, or the zero
// value if unknown.
func GetEvent(code uint16) Event {
	return eventDB[code]
}

// IsValidSupplementaryCode reports whether code names a known
// supplementary information code.
func IsValidSupplementaryCode(code uint16) bool {
	_, ok := supplementary[code]

	return ok
}

// SupplementaryDescription returns the human-readable phrase for a
// supplementary information code, or "" if unknown.
func SupplementaryDescription(code uint16) string {
	return supplementary[code]
}
