package groups

import (
	"strings"

	"github.com/windytan-exercise/rdsgo/internal/rds/text"
)

// rtPlusInfo is the RadioText+ state attached to a text stream: the
// content-descriptor bits announced by a 3A group and the toggle/running
// flags whose change marks a new tagged item.
type rtPlusInfo struct {
	exists      bool
	cb          bool
	scb         int
	templateNum int
	toggle      bool
	itemRunning bool
}

// radioText bundles one RadioText-like text stream (RadioText proper, or
// RDS2 Enhanced RadioText) with its A/B flag and RT+ state. Grounded on
// original_source/src/text/radiotext.hh's RadioText class.
type radioText struct {
	text *text.RDSString
	plus rtPlusInfo

	// prevPotentiallyComplete is the previous group's guess at a
	// terminator-less message (decode.cc's length method 3 heuristic): a
	// guess is only trusted once it repeats verbatim.
	prevPotentiallyComplete string

	ab bool
}

func newRadioText() radioText {
	return radioText{text: text.NewRDSString(64)}
}

// isABChanged records the latest A/B flag and reports whether it flipped.
func (r *radioText) isABChanged(newAB bool) bool {
	changed := r.ab != newAB
	r.ab = newAB

	return changed
}

func (r *radioText) update(pos int, b1, b2 byte) {
	r.text.SetPair(pos, b1, b2)
}

// rtrim drops trailing spaces, matching stringutil.cc's rtrim.
func rtrim(s string) string {
	return strings.TrimRight(s, " ")
}

// hexString renders the low 4n bits of value as n uppercase hex digits
// with no prefix, matching stringutil.cc's getHexString.
func hexString(value uint32, n int) string {
	const digits = "0123456789ABCDEF"

	out := make([]byte, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = digits[value&0xF]
		value >>= 4
	}

	return string(out)
}
