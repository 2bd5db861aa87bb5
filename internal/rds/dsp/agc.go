package dsp

import "math"

/*------------------------------------------------------------------
 *
 * Name:	AGC
 *
 * Purpose:	Automatic gain control ahead of the symbol synchronizer,
 *		matching the "level tracking, 1-sample in/out" contract
 *		spec.md §9 describes for the DSP library boundary.
 *
 * Grounded:	original_source/src/dsp/liquid_wrappers.cc (AGC wrapper);
 *		shape follows the teacher's dsp.go gen_lowpass style of a
 *		small, explicitly-stepped DSP primitive.
 *
 *------------------------------------------------------------------*/

// AGC tracks the envelope of its input with a single loop bandwidth for
// both rising and falling levels and rescales each sample to a unit-ish target level.
type AGC struct {
	bandwidth float64
	level     float64
}

// NewAGC creates an AGC with the given loop bandwidth (fraction of the
// operating rate; smaller tracks more slowly).
func NewAGC(bandwidth float64) *AGC {
	return &AGC{bandwidth: bandwidth, level: 1.0}
}

// Execute applies gain correction to one sample and updates the level
// estimate from its magnitude.
func (a *AGC) Execute(sample float64) float64 {
	mag := math.Abs(sample)
	if mag > 1e-9 {
		a.level += a.bandwidth * (mag - a.level)
	}

	if a.level < 1e-6 {
		a.level = 1e-6
	}

	return sample / a.level
}

// Level reports the current tracked envelope level.
func (a *AGC) Level() float64 {
	return a.level
}
