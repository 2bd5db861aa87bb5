package dsp

import "math"

/*------------------------------------------------------------------
 *
 * Name:	FIR
 *
 * Purpose:	Push+execute finite-impulse-response filter, matching the
 *		"push+execute" contract from spec.md §9.
 *
 * Grounded:	original_source/src/filters.cc / src/dsp/liquid_wrappers.cc;
 *		window-function shape ported from the teacher's src/dsp.go
 *		(window() and gen_lowpass()), generalized from real-only
 *		taps to complex-capable push/execute for the 57 kHz mixer
 *		output.
 *
 *------------------------------------------------------------------*/

// WindowType selects the taper applied to a windowed-sinc kernel.
type WindowType int

const (
	WindowHamming WindowType = iota
	WindowBlackman
	WindowKaiser
)

// besselI0 is the zeroth-order modified Bessel function of the first kind,
// used by the Kaiser window.
func besselI0(x float64) float64 {
	sum := 1.0
	term := 1.0

	for k := 1; k < 32; k++ {
		term *= (x / 2 / float64(k)) * (x / 2 / float64(k))
		sum += term

		if term < 1e-12*sum {
			break
		}
	}

	return sum
}

func window(wtype WindowType, size, j int, kaiserBeta float64) float64 {
	n := float64(size)
	x := float64(j)
	center := 0.5 * (n - 1)

	switch wtype {
	case WindowBlackman:
		return 0.42 - 0.5*math.Cos(2*math.Pi*x/(n-1)) + 0.08*math.Cos(4*math.Pi*x/(n-1))
	case WindowKaiser:
		ratio := (x - center) / center
		return besselI0(kaiserBeta*math.Sqrt(1-ratio*ratio)) / besselI0(kaiserBeta)
	case WindowHamming:
		fallthrough
	default:
		return 0.53836 - 0.46164*math.Cos(2*math.Pi*x/(n-1))
	}
}

// GenLowpass generates a normalized windowed-sinc lowpass kernel of the
// given length, with cutoff fc expressed as a fraction of the sample rate.
func GenLowpass(fc float64, size int, wtype WindowType, kaiserBeta float64) []float64 {
	taps := make([]float64, size)
	center := 0.5 * float64(size-1)

	sum := 0.0

	for j := 0; j < size; j++ {
		var sinc float64

		x := float64(j) - center
		if x == 0 {
			sinc = 2 * fc
		} else {
			sinc = math.Sin(2*math.Pi*fc*x) / (math.Pi * x)
		}

		taps[j] = sinc * window(wtype, size, j, kaiserBeta)
		sum += taps[j]
	}

	if sum != 0 {
		for j := range taps {
			taps[j] /= sum
		}
	}

	return taps
}

// FIR is a real-tap, real- or complex-sample finite impulse response filter
// implemented as a circular history buffer.
type FIR struct {
	taps    []float64
	history []complex128
	pos     int
}

// NewFIR builds a FIR filter from precomputed taps.
func NewFIR(taps []float64) *FIR {
	return &FIR{
		taps:    taps,
		history: make([]complex128, len(taps)),
	}
}

// Push appends one input sample to the filter's history.
func (f *FIR) Push(sample complex128) {
	f.history[f.pos] = sample
	f.pos = (f.pos + 1) % len(f.history)
}

// Execute convolves the current history against the taps and returns the
// filtered output for the most recently pushed sample.
func (f *FIR) Execute() complex128 {
	var acc complex128

	n := len(f.taps)
	for i := 0; i < n; i++ {
		// history[pos] is the oldest sample; taps[0] corresponds to it.
		idx := (f.pos + i) % n
		acc += complex(f.taps[i], 0) * f.history[idx]
	}

	return acc
}

// PushExecuteReal is a convenience for real-valued (post-mixer magnitude or
// baseband) signals.
func (f *FIR) PushExecuteReal(sample float64) float64 {
	f.Push(complex(sample, 0))
	return real(f.Execute())
}
