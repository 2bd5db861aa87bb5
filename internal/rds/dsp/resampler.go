package dsp

/*------------------------------------------------------------------
 *
 * Name:	Resampler
 *
 * Purpose:	Rate conversion to the canonical 171 000 Hz internal
 *		rate (spec.md §4.1) with a single fixed low-pass kernel.
 *
 * Grounded:	original_source/src/dsp/liquid_wrappers.cc (Resampler
 *		wrapper) and src/filters.cc; Kaiser-window kernel generator
 *		reused from fir.go (itself ported from the teacher's
 *		dsp.go gen_lowpass).
 *
 *------------------------------------------------------------------*/

const CanonicalSampleRate = 171000

// ErrSampleRateOutOfRange is returned by NewResampler when the input rate
// falls outside spec.md §4.1's bounds (128 kHz..40 MHz).
type ErrSampleRateOutOfRange struct {
	SampleRate float64
}

func (e ErrSampleRateOutOfRange) Error() string {
	return "sample rate out of range (must be 128000..40000000 Hz)"
}

// Resampler converts an arbitrary input sample rate to CanonicalSampleRate
// by convolving one fixed Kaiser-windowed low-pass FIR kernel over the
// input history at each output instant. It has no polyphase filter bank:
// the fractional position of an output sample between input samples is
// not interpolated.
type Resampler struct {
	inputRate  float64
	outputRate float64
	ratio      float64 // output/input
	kernel     []float64
	halfLen    int

	history  []float64
	histPos  int
	nextTime float64 // fractional output-sample time, in input-sample units
}

// NewResampler builds a resampler from inputRate to CanonicalSampleRate.
func NewResampler(inputRate float64) (*Resampler, error) {
	if inputRate < 128000 || inputRate > 40_000_000 {
		return nil, ErrSampleRateOutOfRange{SampleRate: inputRate}
	}

	const halfLen = 13

	ratio := CanonicalSampleRate / inputRate
	cutoff := 0.45 / max(1/ratio, 1.0) // guard against aliasing on downsampling

	kernel := GenLowpass(cutoff, 2*halfLen+1, WindowKaiser, 5.0)

	return &Resampler{
		inputRate:  inputRate,
		outputRate: CanonicalSampleRate,
		ratio:      ratio,
		kernel:     kernel,
		halfLen:    halfLen,
		history:    make([]float64, 2*halfLen+1),
		nextTime:   0,
	}, nil
}

func max(a, b float64) float64 {
	if a > b {
		return a
	}

	return b
}

// Execute accepts one input sample and returns 0 to ceil(ratio) output
// samples, per spec.md §4.1.
func (r *Resampler) Execute(sample float64) []float64 {
	copy(r.history, r.history[1:])
	r.history[len(r.history)-1] = sample

	var out []float64

	r.nextTime -= 1
	for r.nextTime <= 0 {
		frac := -r.nextTime // 0..1, fractional delay from the newest sample
		out = append(out, r.interpolate(frac))
		r.nextTime += 1.0 / r.ratio
	}

	return out
}

// interpolate convolves the current history against the fixed kernel. frac
// is accepted for interface symmetry with a true polyphase bank (indexed by
// fractional delay); this implementation uses a single wideband kernel,
// which is adequate at the oversampling ratios RDS demodulation runs at.
func (r *Resampler) interpolate(_ float64) float64 {
	var acc float64

	for i, k := range r.kernel {
		acc += k * r.history[i]
	}

	return acc
}

// Ratio reports the configured input->output rate ratio.
func (r *Resampler) Ratio() float64 {
	return r.ratio
}
