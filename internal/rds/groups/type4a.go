package groups

import (
	"fmt"
	"time"

	"github.com/windytan-exercise/rdsgo/internal/rds/bits"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

// decodeType4A handles Clock-Time and Date, type 4A, per spec.md §4.6.
// Grounded on original_source/src/decode/decode.cc's decodeType4A: a
// Modified Julian Day plus UTC hour/minute and a sign-magnitude local
// offset (bit 5 = sign, bits 0-4 = half-hour count) spanning blocks 2-4,
// rejecting the documented invalid combinations (hour > 23, minute > 59,
// |offset| > 14 hours, or an MJD that predates the RDS standard's
// earliest representable date). The rendered clock_time is the *local*
// wall time (UTC plus the offset), not the raw UTC fields, per decode.cc
// running the UTC time_point through mktime/localtime with the offset
// folded into the seconds field before formatting.
func (d *Decoder) decodeType4A(g *group.Group, out *jsontree.Tree) {
	if !g.Has(group.Block2) || !g.Has(group.Block3) || !g.Has(group.Block4) {
		return
	}

	b2 := uint32(g.Get(group.Block2))
	b3 := uint32(g.Get(group.Block3))
	b4 := uint32(g.Get(group.Block4))

	mjd := int(bits.Get2(b2, b3, 1, 17))
	hourUTC := int(bits.Get2(b3, b4, 12, 5))
	minuteUTC := int(bits.Get(b4, 6, 6))

	offsetHalfHours := int(bits.Get(b4, 0, 5))
	if bits.GetBool(b4, 5) {
		offsetHalfHours = -offsetHalfHours
	}

	if hourUTC > 23 || minuteUTC > 59 || offsetHalfHours > 28 || offsetHalfHours < -28 || mjd < 15079 {
		out.Get("debug").Push(jsontree.New("invalid date/time"))

		return
	}

	year, month, day := mjdToDate(mjd)

	utc := time.Date(year, time.Month(month), day, hourUTC, minuteUTC, 0, 0, time.UTC)
	local := utc.Add(time.Duration(offsetHalfHours) * 30 * time.Minute)

	offsetMinutes := offsetHalfHours * 30

	var clockTime string

	if offsetMinutes == 0 {
		clockTime = fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00Z",
			local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute())
	} else {
		sign := "+"
		if offsetMinutes < 0 {
			sign = "-"
			offsetMinutes = -offsetMinutes
		}

		clockTime = fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:00%s%02d:%02d",
			local.Year(), local.Month(), local.Day(), local.Hour(), local.Minute(),
			sign, offsetMinutes/60, offsetMinutes%60)
	}

	out.Set("clock_time", clockTime)
}

// mjdToDate converts a Modified Julian Day number to a Gregorian
// (year, month, day), per the algorithm in EN 50067:1998 Annex G.
func mjdToDate(mjd int) (year, month, day int) {
	yp := int((float64(mjd) - 15078.2) / 365.25)
	mp := int((float64(mjd) - 14956.1 - float64(int(float64(yp)*365.25))) / 30.6001)
	day = mjd - 14956 - int(float64(yp)*365.25) - int(float64(mp)*30.6001)

	k := 0
	if mp == 14 || mp == 15 {
		k = 1
	}

	year = yp + k + 1900
	month = mp - 1 - k*12

	return year, month, day
}
