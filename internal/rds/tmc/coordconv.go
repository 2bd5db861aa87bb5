package tmc

// Coordinate helpers built on https://github.com/tzneal/coordconv, adapted
// from the teacher repo's coordconv.go (which wraps the same library for
// UTM<->lat/long conversion). TMC's POINTS.DAT stores each location as a
// signed latitude/longitude pair in degrees; we keep them in that form
// internally but go through coordconv's hemisphere type when rendering
// DMS-style output so a north/south or east/west sign is never silently
// dropped.

import (
	"math"

	"github.com/tzneal/coordconv"
)

// latLonHemisphere splits a signed degree value into (hemisphere, magnitude).
// coordconv only defines one north/south Hemisphere enum; for longitude we
// reuse North to mean East and South to mean West, matching how the
// hemisphere rune round-trips below.
func latLonHemisphere(degrees float64) (coordconv.Hemisphere, float64) {
	if degrees < 0 {
		return coordconv.HemisphereSouth, -degrees
	}

	return coordconv.HemisphereNorth, degrees
}

func HemisphereToRune(h coordconv.Hemisphere) rune {
	switch h {
	case coordconv.HemisphereNorth:
		return 'N'
	case coordconv.HemisphereSouth:
		return 'S'
	case coordconv.HemisphereInvalid:
		return '!'
	default:
		return '?'
	}
}

// Coordinate is a decoded POINTS.DAT location, held as signed degrees.
type Coordinate struct {
	LatDegrees float64
	LonDegrees float64
}

// DMSString renders the coordinate as whole degrees and decimal minutes
// (e.g. 60°10.5'N) with an explicit hemisphere letter instead of a sign,
// so debug/CLI output never leaves a bare negative number ambiguous.
func (c Coordinate) DMSString() string {
	latHemi, latMag := latLonHemisphere(c.LatDegrees)
	lonHemi, lonMag := latLonHemisphere(c.LonDegrees)

	latLetter := HemisphereToRune(latHemi)
	lonLetter := IfThenElse(lonHemi == coordconv.HemisphereNorth, 'E', 'W')

	return formatDMS(latMag, latLetter) + " " + formatDMS(lonMag, lonLetter)
}

func formatDMS(magnitude float64, hemisphereLetter rune) string {
	degrees := math.Floor(magnitude)
	minutes := (magnitude - degrees) * 60

	return itoa(int(degrees)) + "°" + ftoa(minutes) + "'" + string(hemisphereLetter)
}

// IfThenElse is a local copy of the ternary helper (avoids an import cycle
// back to the root rds package from this leaf package).
func IfThenElse[T any](cond bool, a, b T) T { //nolint:ireturn
	if cond {
		return a
	}

	return b
}

func itoa(v int) string {
	if v == 0 {
		return "0"
	}

	neg := v < 0
	if neg {
		v = -v
	}

	var digits []byte
	for v > 0 {
		digits = append([]byte{byte('0' + v%10)}, digits...)
		v /= 10
	}

	if neg {
		return "-" + string(digits)
	}

	return string(digits)
}

func ftoa(v float64) string {
	whole := int(v)
	frac := int((v - float64(whole)) * 1000)

	return itoa(whole) + "." + itoa(frac)
}
