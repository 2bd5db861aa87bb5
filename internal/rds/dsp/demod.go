package dsp

/*------------------------------------------------------------------
 *
 * Name:	Demod / SubcarrierSet
 *
 * Purpose:	Per-subcarrier demodulation chain (mixer -> LPF -> decimate ->
 *		AGC -> symbol sync -> PSK -> biphase -> delta), and the
 *		1-4 wide bank that drives it across RDS1/RDS2 data streams,
 *		per spec.md §4.2.
 *
 * Grounded:	original_source/src/dsp/subcarrier.cc (the whole chain);
 *		multi-stream phase derivation follows spec.md §4.2's "one
 *		NCO step is amplified by the frequency ratio for each
 *		stream"; struct-of-owned-substates shape follows the
 *		teacher's src/multi_modem.go per-channel state arrays.
 *
 *------------------------------------------------------------------*/

import "math"

// SubcarrierFrequenciesHz are the four RDS2 subcarrier centers; RDS1 uses
// only index 0.
var SubcarrierFrequenciesHz = [4]float64{57000, 66500, 71250, 76000}

const operatingRateHz = CanonicalSampleRate / 24 // kDecimateRatio = 24, spec.md §4.2
const lowpassCutoffHz = 2400

// TimedBit is one post-demodulation bit together with the symbol
// synchronizer's running count of decimated samples at that bit.
type TimedBit struct {
	Value      int
	TimeOffset int
}

// Demod is one subcarrier's full chain: AGC, mixer, FIR, decimator, symbol
// sync, biphase decoder, delta decoder.
type Demod struct {
	nco       *NCO
	lpf       *FIR
	agc       *AGC
	symSync   *SymSync
	biphase   BiphaseDecoder
	delta     DeltaDecoder
	decimator int

	streamIndex int
	rollover    int // samples processed since last ~7h reset, spec.md §4.2
}

const rolloverSamples = int(7 * 3600 * CanonicalSampleRate)

// NewDemod builds a Demod for the given subcarrier index (0..3).
func NewDemod(streamIndex int) *Demod {
	freq := SubcarrierFrequenciesHz[streamIndex]
	taps := GenLowpass(lowpassCutoffHz/CanonicalSampleRate, 65, WindowBlackman, 0)

	return &Demod{
		nco:         NewNCO(freq, CanonicalSampleRate),
		lpf:         NewFIR(taps),
		agc:         NewAGC(0.01),
		symSync:     NewSymSync(float64(operatingRateHz)/1187.5, 2200.0/operatingRateHz),
		streamIndex: streamIndex,
	}
}

// ProcessSample pushes one canonical-rate MPX sample through the chain and
// returns a decoded bit if one completed on this sample. For stream 0,
// driftRadians is ignored: stream 0 steps and PLL-corrects its own NCO.
// For streams 1..3, driftRadians is stream 0's measured phase advance this
// sample (nominal step plus any PLL correction); their own phase is
// derived from it, scaled by the subcarrier frequency ratio, rather than
// stepped independently (spec.md §4.2).
func (d *Demod) ProcessSample(sample float64, driftRadians float64) (TimedBit, bool) {
	d.rollover++
	if d.rollover >= rolloverSamples {
		d.resetSyncState()
	}

	var mixed complex128
	if d.streamIndex == 0 {
		mixed = d.nco.MixDown(sample)
	} else {
		ratio := SubcarrierFrequenciesHz[d.streamIndex] / SubcarrierFrequenciesHz[0]
		mixed = d.nco.MixDownAndAdvance(sample, driftRadians*ratio)
	}

	d.lpf.Push(mixed)
	filtered := d.lpf.Execute()

	d.decimator++
	if d.decimator < 24 {
		return TimedBit{}, false
	}

	d.decimator = 0

	agcOut := complex(d.agc.Execute(real(filtered)), d.agc.Execute(imag(filtered)))

	sym, ok := d.symSync.Execute(agcOut)
	if !ok {
		return TimedBit{}, false
	}

	d.nco.AdjustPhase(sym.PhaseErr, 12.0/operatingRateHz)

	biphase, ok := d.biphase.Push(sym.Value)
	if !ok {
		return TimedBit{}, false
	}

	bitValue := 0
	if real(biphase) > 0 {
		bitValue = 1
	}

	decoded := d.delta.Push(bitValue)

	return TimedBit{Value: decoded, TimeOffset: sym.Timestamp}, true
}

func (d *Demod) resetSyncState() {
	d.symSync = NewSymSync(float64(operatingRateHz)/1187.5, 2200.0/operatingRateHz)
	d.biphase = BiphaseDecoder{}
	d.rollover = 0
}

// SubcarrierSet is a bank of up to 4 Demods sharing the per-sample loop, as
// described in spec.md §4.2 and the concurrency model in spec.md §5 (no
// parallelism between streams; they are interleaved per sample).
type SubcarrierSet struct {
	demods []*Demod
}

// NewSubcarrierSet builds a bank with numStreams active Demods (1 for RDS1,
// up to 4 for RDS2).
func NewSubcarrierSet(numStreams int) *SubcarrierSet {
	numStreams = clampStreams(numStreams)

	s := &SubcarrierSet{demods: make([]*Demod, numStreams)}
	for i := range s.demods {
		s.demods[i] = NewDemod(i)
	}

	return s
}

func clampStreams(n int) int {
	if n < 1 {
		return 1
	}

	if n > 4 {
		return 4
	}

	return n
}

// ProcessSample runs every active stream's chain on one canonical-rate
// sample and returns the bits produced, if any, indexed by stream. Stream
// 0 is processed first so its actual phase advance this sample (nominal
// step plus any PLL correction) can be measured and handed to streams
// 1..3, which derive their phase from it rather than stepping
// independently (spec.md §4.2).
func (s *SubcarrierSet) ProcessSample(sample float64) map[int]TimedBit {
	out := map[int]TimedBit{}

	if len(s.demods) == 0 {
		return out
	}

	prevPhase := s.demods[0].nco.Phase()

	if bit, ok := s.demods[0].ProcessSample(sample, 0); ok {
		out[0] = bit
	}

	drift := unwrapPhase(s.demods[0].nco.Phase() - prevPhase)

	for i := 1; i < len(s.demods); i++ {
		if bit, ok := s.demods[i].ProcessSample(sample, drift); ok {
			out[i] = bit
		}
	}

	return out
}

// unwrapPhase folds a phase difference back into (-pi, pi], since stream
// 0's phase accumulator wraps every step.
func unwrapPhase(diff float64) float64 {
	for diff > math.Pi {
		diff -= 2 * math.Pi
	}

	for diff < -math.Pi {
		diff += 2 * math.Pi
	}

	return diff
}

// NumStreams reports how many subcarrier streams are active.
func (s *SubcarrierSet) NumStreams() int {
	return len(s.demods)
}
