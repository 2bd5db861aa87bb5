package tmc_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/jsontree"
	"github.com/windytan-exercise/rdsgo/internal/rds/tmc"
)

// Test_ReceiveUserGroup_LocationSpan drives a single-group event message
// through a Service with a tiny two-point location database attached,
// exercising decodeLocation's span-distance and DMS-rendering fields
// (spec.md §4.9 "look up Point, Road, Segment records").
func Test_ReceiveUserGroup_LocationSpan(t *testing.T) {
	locDB := &tmc.LocationDatabase{
		LTN: 1,
		Points: map[uint16]tmc.Point{
			100: {LCD: 100, Name1: "Start", PosOff: 101, LatDegrees: 52.0, LonDegrees: 5.0},
			101: {LCD: 101, Name1: "End", LatDegrees: 52.5, LonDegrees: 5.5},
		},
	}

	svc := tmc.NewService(nil)
	svc.SetLocationDatabase(locDB)

	sysOut := &jsontree.Tree{}
	svc.ReceiveSystemGroup(1<<6, sysOut) // variant 0, LTN=1, unencrypted

	out := &jsontree.Tree{}

	const x = uint16(0b1000)  // bit3 (F flag) set: single-group event message, T=0
	const y = uint16(1 << 11) // extent = 1, direction positive, event code 0
	const z = uint16(100)     // location code

	svc.ReceiveUserGroup(x, y, z, out)

	data, err := out.MarshalJSON()
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	msg, ok := decoded["tmc"].(map[string]any)["message"].(map[string]any)
	require.True(t, ok)

	assert.Contains(t, msg, "location_dms")
	assert.NotZero(t, msg["span_distance_km"])
	assert.Equal(t, "Start", msg["span_from"])
	assert.Equal(t, "End", msg["span_to"])
}
