package groups_test

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/windytan-exercise/rdsgo/internal/rds/groups"
	"github.com/windytan-exercise/rdsgo/internal/rds/ioadapt"
)

// decodeHexLines feeds each hex group line through a single-station
// Decoder and returns the JSON-decoded output of the last group, the way
// spec.md §8's worked scenarios are phrased ("four groups ... last
// output contains ...").
func decodeHexLines(t *testing.T, pi uint16, lines ...string) map[string]any {
	t.Helper()

	return decodeHexLinesRBDS(t, pi, false, lines...)
}

func decodeHexLinesRBDS(t *testing.T, pi uint16, rbds bool, lines ...string) map[string]any {
	t.Helper()

	all := decodeHexLinesAll(t, pi, rbds, lines...)
	if len(all) == 0 {
		return nil
	}

	return all[len(all)-1]
}

// decodeHexLinesAll returns every group's decoded output, for scenarios
// that assert on emission counts rather than just the final record.
func decodeHexLinesAll(t *testing.T, pi uint16, rbds bool, lines ...string) []map[string]any {
	t.Helper()

	d := groups.NewDecoder(pi, false, rbds)

	reader := ioadapt.NewHexGroupReader(strings.NewReader(strings.Join(lines, "\n")+"\n"), nil)

	var outputs []map[string]any

	for {
		g, ok := reader.ReadGroup()
		if !ok {
			break
		}

		out := d.Decode(&g)

		raw, err := out.MarshalJSON()
		require.NoError(t, err)

		var m map[string]any

		require.NoError(t, json.Unmarshal(raw, &m))

		outputs = append(outputs, m)
	}

	return outputs
}

// Test_BasicPS covers spec.md §8 scenario 1: four 0A groups building a
// complete 8-character PS name plus DI and programme-type flags.
func Test_BasicPS(t *testing.T) {
	out := decodeHexLines(t, 0x6204,
		"6204 0130 966B 594C",
		"6204 0131 93CD 4520",
		"6204 0132 E472 5833",
		"6204 0137 966B 4D20",
	)

	assert.Equal(t, "0x6204", out["pi"])
	assert.Equal(t, "YLE X3M ", out["ps"])
	assert.Equal(t, "Varied", out["prog_type"])

	di, ok := out["di"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, di["stereo"])
}

// Test_RadiotextWithTerminator covers spec.md §8 scenario 2: three 2A
// groups whose third carries a 0x0D terminator.
func Test_RadiotextWithTerminator(t *testing.T) {
	out := decodeHexLines(t, 0xC954,
		"C954 24F0 4A41 434B",
		"C954 24F1 2039 362E",
		"C954 24F2 390D 0000",
	)

	assert.Equal(t, "JACK 96.9", out["radiotext"])
}

// Test_ClockTimeAcrossDST covers spec.md §8 scenario 3: a single 4A group
// whose UTC hour/minute plus a +2-hour local offset must be rendered as
// the *local* wall time, not the raw UTC fields.
func Test_ClockTimeAcrossDST(t *testing.T) {
	out := decodeHexLines(t, 0xD314,
		"D314 41C1 C3EF 5AC4",
	)

	assert.Equal(t, "2017-04-04T23:43:00+02:00", out["clock_time"])
}

// Test_RBDSCallsign covers the RBDS option: a PI code that back-calculates
// to a three-letter US call sign must be reported under "callsign", and
// the prog_type must come from the North American PTY table.
func Test_RBDSCallsign(t *testing.T) {
	out := decodeHexLinesRBDS(t, 0x9972, true,
		"9972 0148 0000 0000",
	)

	assert.Equal(t, "0x9972", out["pi"])
	assert.Equal(t, "WGN", out["callsign"])
	assert.NotContains(t, out, "callsign_uncertain")
}

// Test_RadioTextPlus builds a complete RadioText message, registers RT+
// on group 11A via a 3A group, and confirms a tag resolves against the
// last complete text rather than the raw buffer.
func Test_RadioTextPlus(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 2000 4142 4344", // RT "ABCD"
		"1234 2001 4546 4748", // RT "EFGH"
		"1234 2002 0D00 0000", // terminator -> "ABCDEFGH"
		"1234 3016 0000 4BD7", // 3A: RT+ carried on 11A
		"1234 B000 200E 0000", // 11A: tag item.title, start 0, length 8
	)

	rtPlus, ok := out["radiotext_plus"].(map[string]any)
	require.True(t, ok, "radiotext_plus missing: %v", out)
	assert.Equal(t, false, rtPlus["item_running"])

	tags, ok := rtPlus["tags"].([]any)
	require.True(t, ok)
	require.Len(t, tags, 1)

	tag := tags[0].(map[string]any)
	assert.Equal(t, "item.title", tag["content-type"])
	assert.Equal(t, "ABCDEFGH", tag["data"])
}

// Test_EnhancedRadioText registers eRT (AID 0x6552, UTF-8) on group 12A
// and confirms the text is emitted once its buffer completes.
func Test_EnhancedRadioText(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 3018 0001 6552", // 3A: eRT on 12A, UTF-8, LTR
		"1234 C000 4849 0D00", // 12A segment 0: "HI\r"
	)

	assert.Equal(t, "HI", out["enhanced_radiotext"])
}

// Test_DABCrossReference registers DAB cross-referencing (AID 0x0093) on
// group 13A and decodes an ensemble-table entry to its channel label.
func Test_DABCrossReference(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 301A 0000 0093", // 3A: DAB on 13A
		"1234 D004 3782 BEEF", // 13A ensemble: mode I, 227360 kHz
	)

	dab, ok := out["dab"].(map[string]any)
	require.True(t, ok, "dab missing: %v", out)
	assert.Equal(t, "I", dab["mode"])
	assert.Equal(t, float64(227360), dab["kilohertz"])
	assert.Equal(t, "12C", dab["channel"])
	assert.Equal(t, "0xBEEF", dab["ensemble_id"])
}

// Test_UnknownODA: an ODA-only group type with no 3A registration
// surfaces its raw payload under unknown_oda (spec.md §7).
func Test_UnknownODA(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 C815 BEEF CAFE", // 12B, never registered
	)

	unknown, ok := out["unknown_oda"].(map[string]any)
	require.True(t, ok, "unknown_oda missing: %v", out)
	assert.Equal(t, "15 BEEF CAFE", unknown["raw_data"])
}

// Test_TransparentData covers type 5A: per-channel raw bytes plus the
// text rendering.
func Test_TransparentData(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 5002 4142 4344",
	)

	tdc, ok := out["transparent_data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(2), tdc["address"])
	assert.Equal(t, "41 42 43 44", tdc["raw"])
	assert.Equal(t, "ABCD", tdc["as_text"])
}

// Test_InHouseData covers type 6A's raw value list.
func Test_InHouseData(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 6005 1234 5678",
	)

	inHouse, ok := out["in_house_data"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{float64(5), float64(0x1234), float64(0x5678)}, inHouse)
}

// Test_FastBasicTuning covers type 15B's TA/music/DI flags.
func Test_FastBasicTuning(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 F81C 1234 F81C",
	)

	assert.Equal(t, "15B", out["group"])
	assert.Equal(t, true, out["ta"])
	assert.Equal(t, true, out["is_music"])

	di, ok := out["di"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, di["dynamic_pty"])
}

// Test_EONPSName assembles another network's PS name across 14A variants
// 0-3, keyed by the other network's PI.
func Test_EONPSName(t *testing.T) {
	out := decodeHexLines(t, 0x1234,
		"1234 E000 4E45 5678", // variant 0: "NE"
		"1234 E001 5753 5678", // variant 1: "WS"
		"1234 E002 2020 5678", // variant 2: "  "
		"1234 E003 2020 5678", // variant 3: "  "
	)

	eon, ok := out["other_network"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "0x5678", eon["pi"])
	assert.Equal(t, "NEWS    ", eon["ps"])
}

// Test_AltFrequenciesMethodA covers a two-entry method A AF list carried
// in 0A block 3.
func Test_AltFrequenciesMethodA(t *testing.T) {
	out := decodeHexLines(t, 0x6204,
		"6204 0130 E205 594C", // count=2, AF 88.0 MHz
		"6204 0131 14CD 4520", // AF 89.5 MHz, filler
	)

	afs, ok := out["alt_frequencies_a"].([]any)
	require.True(t, ok, "alt_frequencies_a missing: %v", out)
	assert.Equal(t, []any{float64(88000), float64(89500)}, afs)
}

// Test_RFTFileEmittedOnce covers spec.md §8 scenario 6: an RFT descriptor
// declaring the size, segments completing the file exactly once, and a
// replay under the same toggle bit emitting nothing more.
func Test_RFTFileEmittedOnce(t *testing.T) {
	outputs := decodeHexLinesAll(t, 0x1234, false,
		"#S1 8000 ABCD 0000 000A", // AID assignment, pipe 0, size 10
		"#S1 2000 0041 4243 4445", // segment 0: "ABCDE"
		"#S1 2000 0146 4748 494A", // segment 1: "FGHIJ"
		"#S1 2000 0041 4243 4445", // replay, same toggle
		"#S1 2000 0146 4748 494A",
	)

	require.Len(t, outputs, 5)

	var emissions []string

	for _, out := range outputs {
		rft, ok := out["rft"].(map[string]any)
		if !ok {
			continue
		}

		data, ok := rft["data"].(map[string]any)
		if !ok {
			continue
		}

		if contents, ok := data["file_contents"].(string); ok {
			emissions = append(emissions, contents)
		}
	}

	require.Len(t, emissions, 1)
	assert.Equal(t, "QUJDREVGR0hJSg==", emissions[0])
}
