package tables_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/windytan-exercise/rdsgo/internal/rds/tables"
)

func TestPTYNameBoundsAndContent(t *testing.T) {
	assert.Equal(t, "No PTY", tables.PTYName(0))
	assert.Equal(t, "Alarm", tables.PTYName(31))
	assert.Equal(t, "Unknown", tables.PTYName(99))
	assert.Equal(t, "Unknown", tables.PTYName(-1))
}

func TestPTYNameRBDSDiffersFromEuropean(t *testing.T) {
	assert.Equal(t, "Talk", tables.PTYNameRBDS(4))
	assert.NotEqual(t, tables.PTYName(4), tables.PTYNameRBDS(4))
}

func TestCountryLooksUpByECCThenCC(t *testing.T) {
	assert.Equal(t, "gb", tables.Country(12, 0xE1))
	assert.Equal(t, "--", tables.Country(0, 0xE1))
	assert.Equal(t, "--", tables.Country(1, 0x1234))
}

func TestLanguageTableLookup(t *testing.T) {
	assert.Equal(t, "English", tables.Language(9))
	assert.Equal(t, "", tables.Language(200))
}

func TestAppNameKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "RadioText+ (RT+)", tables.AppName(0x4BD7))
	assert.Equal(t, "(Unknown)", tables.AppName(0x1111))
}

func TestDICodeRotation(t *testing.T) {
	assert.Equal(t, "dynamic_pty", tables.DICode(0))
	assert.Equal(t, "stereo", tables.DICode(3))
	assert.Equal(t, "unknown", tables.DICode(4))
}

func TestCallsignFromPIThreeLetterWGN(t *testing.T) {
	// WGN, a well-known Chicago callsign used in redsea's own test fixtures.
	assert.Equal(t, "WGN", tables.CallsignFromPI(0x9972))
}

func TestCallsignFromPIThreeLetter(t *testing.T) {
	assert.Equal(t, "KEX", tables.CallsignFromPI(0x9950))
}

func TestCallsignFromPILinkedNetwork(t *testing.T) {
	assert.Equal(t, "NPR-1", tables.CallsignFromPI(0xB001))
}

func TestCallsignFromPIUnassignedReturnsEmpty(t *testing.T) {
	assert.Equal(t, "", tables.CallsignFromPI(0x0001))
}
