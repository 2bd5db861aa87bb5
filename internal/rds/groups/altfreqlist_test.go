package groups_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windytan-exercise/rdsgo/internal/rds/groups"
)

func Test_AltFreqList_MethodA(t *testing.T) {
	af := groups.NewAltFreqList()

	af.Insert(225) // 1 AF follows
	assert.False(t, af.IsComplete())

	af.Insert(1)
	assert.True(t, af.IsComplete())
	assert.Equal(t, []int{87600}, af.GetRawList())
	assert.False(t, af.IsMethodB())
}

// Test_AltFreqList_IgnoresFreqBeforeCount confirms a frequency code
// arriving before any list-length announcement is not stored: the list
// state machine only opens on a 225..249 code.
func Test_AltFreqList_IgnoresFreqBeforeCount(t *testing.T) {
	af := groups.NewAltFreqList()

	af.Insert(1)
	assert.Empty(t, af.GetRawList())
	assert.False(t, af.IsComplete())
}

// Test_AltFreqList_RestartDoesNotLeak exercises spec.md §8's boundary:
// a list start (code 225) with no subsequent codes, followed by another
// list start, must not leak entries between the two lists.
func Test_AltFreqList_RestartDoesNotLeak(t *testing.T) {
	af := groups.NewAltFreqList()

	af.Insert(227) // 3 AFs follow
	af.Insert(5)
	af.Insert(226) // restart: 2 AFs follow
	af.Insert(10)
	af.Insert(20)

	assert.True(t, af.IsComplete())
	assert.Equal(t, []int{88500, 89500}, af.GetRawList())
}

// Test_AltFreqList_LFMFFollows exercises spec.md §4.8's code-250 state
// machine: the code after a 250 is an LF/MF frequency, not an FM one, even
// though the two bands share the same 1..135 code range.
func Test_AltFreqList_LFMFFollows(t *testing.T) {
	af := groups.NewAltFreqList()

	af.Insert(226) // 2 AFs follow
	af.Insert(250) // LF/MF next
	af.Insert(1)   // LF: 144 + 9*1 = 153
	af.Insert(1)   // FM again: 87500 + 100 = 87600

	assert.True(t, af.IsComplete())
	assert.Equal(t, []int{153, 87600}, af.GetRawList())
}

// Test_AltFreqList_MediumWave covers the piecewise LF/MF mapping: codes
// above 15 continue at the 522 kHz medium-wave base.
func Test_AltFreqList_MediumWave(t *testing.T) {
	af := groups.NewAltFreqList()

	af.Insert(225)
	af.Insert(250)
	af.Insert(16) // MF: 522 + 9*1 = 531

	assert.Equal(t, []int{531}, af.GetRawList())
}

// Test_AltFreqList_InvalidCodeClears confirms an undefined AF code resets
// the accumulator rather than polluting the list.
func Test_AltFreqList_InvalidCodeClears(t *testing.T) {
	af := groups.NewAltFreqList()

	af.Insert(226)
	af.Insert(5)
	af.Insert(210) // undefined code range 206..223

	assert.Empty(t, af.GetRawList())
	assert.False(t, af.IsComplete())
}

// Test_AltFreqList_MethodB builds a pair-structured list whose first
// entry is the tuned frequency, the shape the method-B heuristic keys on.
func Test_AltFreqList_MethodB(t *testing.T) {
	af := groups.NewAltFreqList()

	af.Insert(229) // 5 AFs follow
	af.Insert(50)  // tuned
	af.Insert(50)  // pair 1: tuned + higher AF
	af.Insert(60)
	af.Insert(70) // pair 2: descending, regional variant
	af.Insert(50)

	assert.True(t, af.IsComplete())
	assert.True(t, af.IsMethodB())
}
