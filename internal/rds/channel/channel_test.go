package channel_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/channel"
	"github.com/windytan-exercise/rdsgo/internal/rds/group"
	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
)

// basicPSGroups returns the four 0A groups of spec.md §8 scenario 1
// (PI 0x6204, PS "YLE X3M ") encoded directly as group.Group values, for
// tests that need a known-good non-empty tree without going through the
// hex reader.
func basicPSGroups() []group.Group {
	blocks := [][4]uint16{
		{0x6204, 0x0130, 0x966B, 0x594C},
		{0x6204, 0x0131, 0x93CD, 0x4520},
		{0x6204, 0x0132, 0xE472, 0x5833},
		{0x6204, 0x0137, 0x966B, 0x4D20},
	}

	out := make([]group.Group, len(blocks))

	for i, b := range blocks {
		var g group.Group

		g.SetBlock(group.Block1, group.Block{Data: b[0], IsReceived: true})
		g.SetBlock(group.Block2, group.Block{Data: b[1], IsReceived: true})
		g.SetBlock(group.Block3, group.Block{Data: b[2], IsReceived: true})
		g.SetBlock(group.Block4, group.Block{Data: b[3], IsReceived: true})

		out[i] = g
	}

	return out
}

func treeToMap(t *testing.T, tree *jsontree.Tree) map[string]any {
	t.Helper()

	raw, err := tree.MarshalJSON()
	require.NoError(t, err)

	var m map[string]any

	require.NoError(t, json.Unmarshal(raw, &m))

	return m
}

// Test_EnvelopeFields covers the transport-level fields station.cc's
// updateAndPrint sets directly on the tree regardless of group type:
// stream, channel, bler, raw_data and time_from_start, each gated by its
// own Options flag.
func Test_EnvelopeFields(t *testing.T) {
	opts := channel.Options{
		ShowStream:        true,
		ShowChannelIndex:  true,
		ReportBLER:        true,
		ShowRaw:           true,
		ShowTimeFromStart: true,
	}

	ch := channel.NewWithKnownPI(opts, 0x6204)

	var captured map[string]any

	ch.OnGroup = func(tree *jsontree.Tree) {
		captured = treeToMap(t, tree)
	}

	for _, g := range basicPSGroups() {
		g.SetTimeFromStart(1.5)
		ch.ProcessGroup(g, 0)
	}

	require.NotNil(t, captured)
	assert.Equal(t, float64(0), captured["stream"])
	assert.Equal(t, float64(0), captured["channel"])
	assert.Equal(t, float64(0), captured["bler"])
	assert.Equal(t, float64(1.5), captured["time_from_start"])
	assert.Contains(t, captured, "raw_data")
	assert.Equal(t, "0x6204", captured["pi"])
	assert.Equal(t, "YLE X3M ", captured["ps"])
}

// Test_EnvelopeFields_Disabled confirms that none of the envelope fields
// appear when their options are left off, matching station.cc's gating
// (each field is written only under its corresponding options_ flag).
func Test_EnvelopeFields_Disabled(t *testing.T) {
	ch := channel.NewWithKnownPI(channel.Options{}, 0x6204)

	var captured map[string]any

	ch.OnGroup = func(tree *jsontree.Tree) {
		captured = treeToMap(t, tree)
	}

	for _, g := range basicPSGroups() {
		ch.ProcessGroup(g, 0)
	}

	require.NotNil(t, captured)
	assert.NotContains(t, captured, "stream")
	assert.NotContains(t, captured, "channel")
	assert.NotContains(t, captured, "bler")
	assert.NotContains(t, captured, "raw_data")
	assert.NotContains(t, captured, "rx_time")
	assert.NotContains(t, captured, "time_from_start")
}
