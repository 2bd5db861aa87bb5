package dsp

import "math"

/*------------------------------------------------------------------
 *
 * Name:	SymSync
 *
 * Purpose:	Symbol-timing synchronizer: a raised-root-cosine matched
 *		filter plus Gardner-style timing error detector, returning
 *		Maybe<symbol> as spec.md §9 describes ("SymSync (execute ->
 *		Maybe<symbol>)").
 *
 * Grounded:	original_source/src/dsp/subcarrier.cc (symbol sync + PLL
 *		interaction); matched-filter generation reuses dsp.go's
 *		window/sinc machinery generalized to a root-raised-cosine.
 *
 *------------------------------------------------------------------*/

// Symbol is a demodulated PSK symbol plus the phase error estimate used to
// steer the subcarrier PLL (spec.md §4.2 "phase-error estimate (scaled ×12)").
type Symbol struct {
	Value     complex128
	PhaseErr  float64
	Timestamp int // sample offset within the decimated stream, for bookkeeping
}

// SymSync implements timing recovery over samples arriving at the
// kDecimateRatio operating rate (spec.md §4.2, ≈7125 Hz).
type SymSync struct {
	samplesPerSymbol float64
	mu               float64 // fractional symbol-timing phase, 0..1
	history          []complex128
	sampleCount      int
	taps             []float64
}

// NewSymSync builds a symbol synchronizer for the given samples-per-symbol
// ratio and matched-filter bandwidth (fraction of the operating rate).
func NewSymSync(samplesPerSymbol float64, bandwidthFraction float64) *SymSync {
	const tapCount = 33

	taps := make([]float64, tapCount)
	beta := 0.9 // RRC roll-off

	for i := range taps {
		t := float64(i-tapCount/2) / samplesPerSymbol
		taps[i] = rrc(t, beta) * bandwidthFraction
	}

	return &SymSync{
		samplesPerSymbol: samplesPerSymbol,
		taps:             taps,
		history:          make([]complex128, tapCount),
	}
}

func rrc(t, beta float64) float64 {
	if t == 0 {
		return 1 - beta + 4*beta/math.Pi
	}

	denom := 1 - math.Pow(4*beta*t, 2)
	if math.Abs(denom) < 1e-9 {
		return (beta / math.Sqrt2) * ((1+2/math.Pi)*math.Sin(math.Pi/(4*beta)) + (1-2/math.Pi)*math.Cos(math.Pi/(4*beta)))
	}

	num := math.Sin(math.Pi*t*(1-beta)) + 4*beta*t*math.Cos(math.Pi*t*(1+beta))

	return num / (math.Pi * t * denom)
}

// Execute pushes one input sample into the matched filter and, when a
// symbol-timing strobe lands, returns the decoded symbol.
func (s *SymSync) Execute(sample complex128) (Symbol, bool) {
	copy(s.history, s.history[1:])
	s.history[len(s.history)-1] = sample

	s.mu += 1.0 / s.samplesPerSymbol
	s.sampleCount++

	if s.mu < 1.0 {
		return Symbol{}, false
	}

	s.mu -= 1.0

	var acc complex128
	for i, h := range s.history {
		acc += h * complex(s.taps[i], 0)
	}

	// Gardner-ish timing error from the half-symbol-delayed sample vs. the
	// current one; used here only to nudge mu toward the eye center.
	mid := s.history[len(s.history)/2]
	timingErr := real(mid) * (real(acc) - real(s.history[0]))
	s.mu -= 0.05 * timingErr / (math.Abs(real(acc)) + 1e-6)

	phaseErr := math.Atan2(imag(acc), real(acc))

	return Symbol{Value: acc, PhaseErr: phaseErr, Timestamp: s.sampleCount}, true
}
