package ioadapt

import (
	"encoding/binary"
	"io"
)

// MPXSource reads raw signed 16-bit little-endian PCM samples (one or more
// interleaved channels) and hands back float64 samples in [-1, 1], ready
// for dsp.Resampler/dsp.SubcarrierSet.
//
// Grounded on original_source/src/io/input.cc's MPXReader, minus the
// container-format (WAV/FLAC/etc.) handling libsndfile provides there: this
// retrieval pack carries no audio-container-decoding library, so MPXSource
// only understands raw interleaved PCM16, the same format MPXReader itself
// falls back to for its MPX_stdin mode. Sample-rate bookkeeping is the
// caller's responsibility.
type MPXSource struct {
	reader      io.Reader
	numChannels int
	feedThru    io.Writer
	isEOF       bool

	// frame holds one interleaved sample frame, reused across reads.
	frame   []byte
	samples []float64
}

// NewMPXSource wraps r, which is expected to carry numChannels interleaved
// PCM16 channels. If feedThru is non-nil every raw frame read is echoed to
// it, matching the --feed-through option.
func NewMPXSource(r io.Reader, numChannels int, feedThru io.Writer) *MPXSource {
	if numChannels < 1 {
		numChannels = 1
	}

	return &MPXSource{
		reader:      r,
		numChannels: numChannels,
		feedThru:    feedThru,
		frame:       make([]byte, 2*numChannels),
		samples:     make([]float64, numChannels),
	}
}

// ReadFrame reads one interleaved frame and returns each channel's sample
// normalized to [-1, 1]. The slice is reused between calls. The returned
// bool is false once the stream is exhausted.
func (m *MPXSource) ReadFrame() ([]float64, bool) {
	if _, err := io.ReadFull(m.reader, m.frame); err != nil {
		m.isEOF = true

		return nil, false
	}

	if m.feedThru != nil {
		m.feedThru.Write(m.frame)
	}

	for ch := 0; ch < m.numChannels; ch++ {
		raw := int16(binary.LittleEndian.Uint16(m.frame[ch*2 : ch*2+2]))
		m.samples[ch] = float64(raw) / 32768.0
	}

	return m.samples, true
}

// IsEOF reports whether the underlying reader has been exhausted.
func (m *MPXSource) IsEOF() bool { return m.isEOF }

// NumChannels returns the configured interleaved channel count.
func (m *MPXSource) NumChannels() int { return m.numChannels }
