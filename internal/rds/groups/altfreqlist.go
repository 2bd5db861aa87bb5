// Package groups dispatches decoded Groups to per-type decoders and
// assembles their output into a jsontree.Tree, per spec.md §4.6.
//
// Grounded on original_source/src/decode/decode.cc (the dispatch table and
// per-type field layouts) and original_source/src/util/tree.hh's tree
// model (internal/rds/jsontree here); teacher shape follows
// src/ax25_pad.go's pattern of one small file per concern.
package groups

import "fmt"

// band selects which IEC 62106 Annex D code table an AF code is read
// against: the FM and LF/MF ranges share the numeric code space 1..135,
// so the band must be tracked out-of-band via code 250.
type band int

const (
	bandFM band = iota
	bandLFMF
)

// carrierFrequencyKHz converts one AF code to integer kilohertz, or ok ==
// false when the code is outside the band's valid range. Grounded on
// original_source/src/freq.cc's CarrierFrequency::kHz.
func carrierFrequencyKHz(code uint8, b band) (freqKHz int, ok bool) {
	switch b {
	case bandFM:
		if code < 1 || code > 204 {
			return 0, false
		}

		return 87500 + 100*int(code), true

	case bandLFMF:
		if code < 1 || code > 135 {
			return 0, false
		}

		if code <= 15 {
			return 144 + 9*int(code), true
		}

		return 522 + 9*(int(code)-15), true
	}

	return 0, false
}

// CarrierFrequencyKHz converts a single FM AF code byte to a frequency in
// kHz, without touching any accumulator state. Used where only one
// mapped-frequency code arrives per group, e.g. EON variants 5-9
// (spec.md §4.6).
func CarrierFrequencyKHz(code uint8) (freqKHz int, ok bool) {
	return carrierFrequencyKHz(code, bandFM)
}

const maxAltFreqs = 25

// AltFreqList accumulates 8-bit AF codes into a list of frequencies, per
// spec.md §4.8.
//
// Grounded on original_source/src/freq.cc's AltFreqList: a frequency code
// is only accepted after a 225..249 count code has declared the list
// length; an overlong list or an invalid code resets the accumulator, so
// two interleaved lists never mix (spec.md §8's "another list start must
// not leak entries" boundary).
type AltFreqList struct {
	altFreqsKHz [maxAltFreqs]int
	numExpected int
	numReceived int
	lfMFFollows bool
}

// NewAltFreqList returns an empty accumulator.
func NewAltFreqList() *AltFreqList {
	return &AltFreqList{}
}

// Insert records one 8-bit AF code, advancing the list state machine:
// 225..249 start a new list of N = code - 224 entries, 250 marks the next
// code as LF/MF, 205 (filler) and 224 (no AF) are ignored, and any other
// out-of-range code clears the accumulator.
func (a *AltFreqList) Insert(code uint8) {
	b := bandFM
	if a.lfMFFollows {
		b = bandLFMF
	}

	a.lfMFFollows = false

	if freq, valid := carrierFrequencyKHz(code, b); valid && a.numExpected > 0 {
		if a.numReceived < a.numExpected && a.numReceived < maxAltFreqs {
			a.altFreqsKHz[a.numReceived] = freq
			a.numReceived++
		} else {
			// No space left in the list.
			a.Clear()
		}

		return
	}

	switch {
	case code == 205 || code == 224:
		// Filler / no AF exists.

	case code >= 225 && code <= 249:
		a.numExpected = int(code) - 224
		a.numReceived = 0

	case code == 250:
		a.lfMFFollows = true

	default:
		// Invalid AF code.
		a.Clear()
	}
}

// IsMethodB reports whether the transmitter is probably using alternative
// frequency method B: an odd list length of at least 3 where the list is
// pairs, one of each pair always being the tuned frequency (which method B
// transmits first).
func (a *AltFreqList) IsMethodB() bool {
	if a.numExpected%2 != 1 || a.numReceived < 3 {
		return false
	}

	tunedFrequency := a.altFreqsKHz[0]
	for i := 1; i+1 < a.numReceived; i += 2 {
		if a.altFreqsKHz[i] != tunedFrequency && a.altFreqsKHz[i+1] != tunedFrequency {
			return false
		}
	}

	return true
}

// IsComplete reports whether exactly the declared number of codes has
// arrived.
func (a *AltFreqList) IsComplete() bool {
	return a.numExpected == a.numReceived && a.numReceived > 0
}

// GetRawList returns the frequencies received so far, in kHz, in arrival
// order (special AF codes excluded).
func (a *AltFreqList) GetRawList() []int {
	return append([]int(nil), a.altFreqsKHz[:a.numReceived]...)
}

// Clear resets the accumulator to its initial state.
func (a *AltFreqList) Clear() {
	a.numExpected = 0
	a.numReceived = 0
	a.lfMFFollows = false
}

// String renders the accumulator state for debugging/logging.
func (a *AltFreqList) String() string {
	return fmt.Sprintf("AltFreqList{expected=%d, got=%d}", a.numExpected, a.numReceived)
}
