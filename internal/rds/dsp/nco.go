package dsp

import "math"

/*------------------------------------------------------------------
 *
 * Name:	NCO
 *
 * Purpose:	Numerically controlled oscillator: step + mix-down + PLL
 *		step, per the spec.md §9 DSP boundary contract.
 *
 * Grounded:	original_source/src/dsp/liquid_wrappers.cc (Nco wrapper);
 *		phase-accumulator shape follows the teacher's gen_tone.go
 *		tone generator.
 *
 *------------------------------------------------------------------*/

// NCO tracks a phase accumulator at a nominal frequency (radians/sample)
// and can be nudged by a PLL phase-error term.
type NCO struct {
	phase     float64
	frequency float64 // radians per sample
}

// NewNCO creates an NCO for the given frequency in Hz at sampleRate.
func NewNCO(freqHz, sampleRate float64) *NCO {
	return &NCO{frequency: 2 * math.Pi * freqHz / sampleRate}
}

// MixDown multiplies sample by exp(-j*phase) and advances the phase by one
// step, returning the down-converted complex sample.
func (n *NCO) MixDown(sample float64) complex128 {
	phasor := complex(math.Cos(n.phase), -math.Sin(n.phase))
	out := complex(sample, 0) * phasor

	n.Step()

	return out
}

// Step advances the phase accumulator by one sample without mixing.
func (n *NCO) Step() {
	n.phase += n.frequency
	if n.phase > math.Pi {
		n.phase -= 2 * math.Pi
	} else if n.phase < -math.Pi {
		n.phase += 2 * math.Pi
	}
}

// MixDownAndAdvance mixes sample down using the current phase, then
// advances the phase by stepRadians instead of the NCO's own nominal
// frequency. Used for RDS2 streams 1..3, whose phase is derived entirely
// from stream 0's measured per-sample drift rather than stepped at their
// own nominal rate, per spec.md §4.2 ("one NCO step is amplified by the
// frequency ratio for each stream").
func (n *NCO) MixDownAndAdvance(sample float64, stepRadians float64) complex128 {
	phasor := complex(math.Cos(n.phase), -math.Sin(n.phase))
	out := complex(sample, 0) * phasor

	n.phase += stepRadians
	for n.phase > math.Pi {
		n.phase -= 2 * math.Pi
	}

	for n.phase < -math.Pi {
		n.phase += 2 * math.Pi
	}

	return out
}

// AdjustPhase applies a PLL phase-error correction, scaled by gain.
func (n *NCO) AdjustPhase(errorRadians, gain float64) {
	n.phase += errorRadians * gain
}

// Phase reports the current phase accumulator value.
func (n *NCO) Phase() float64 {
	return n.phase
}

// SetPhase forces the phase accumulator to the given value.
func (n *NCO) SetPhase(phase float64) {
	n.phase = phase
}
