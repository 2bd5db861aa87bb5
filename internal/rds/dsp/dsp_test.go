package dsp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/dsp"
)

func TestNewResamplerRejectsOutOfRangeRate(t *testing.T) {
	_, err := dsp.NewResampler(1000)
	require.Error(t, err)

	_, err = dsp.NewResampler(41_000_000)
	require.Error(t, err)
}

func TestNewResamplerAcceptsValidRate(t *testing.T) {
	r, err := dsp.NewResampler(171000)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, r.Ratio(), 1e-9)
}

func TestDeltaDecoderXorsWithPrevious(t *testing.T) {
	var d dsp.DeltaDecoder

	// First output equals first input (no previous).
	assert.Equal(t, 1, d.Push(1))
	// 1 XOR 1 = 0
	assert.Equal(t, 0, d.Push(1))
	// 0 XOR 1 = 1
	assert.Equal(t, 1, d.Push(0))
}

func TestAGCTracksLevel(t *testing.T) {
	a := dsp.NewAGC(0.5)
	for i := 0; i < 50; i++ {
		a.Execute(2.0)
	}

	assert.InDelta(t, 2.0, a.Level(), 0.2)
}

func TestNewSubcarrierSetClampsStreamCount(t *testing.T) {
	assert.Equal(t, 1, dsp.NewSubcarrierSet(0).NumStreams())
	assert.Equal(t, 4, dsp.NewSubcarrierSet(99).NumStreams())
	assert.Equal(t, 2, dsp.NewSubcarrierSet(2).NumStreams())
}
