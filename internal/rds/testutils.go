package rds

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertOutputContains runs command with os.Stdout redirected to a pipe and
// asserts the captured output contains expectedOutputContains. Useful for
// exercising cmd/rdsgo's JSON/hex sinks end to end without wiring a fake Sink.
func AssertOutputContains(t *testing.T, command func(), expectedOutputContains string) {
	t.Helper()

	var oldStdout = os.Stdout
	defer func() {
		os.Stdout = oldStdout
	}()

	var r, w, _ = os.Pipe()
	os.Stdout = w

	command()

	w.Close() //nolint:gosec

	os.Stdout = oldStdout

	var outputBytes, readErr = io.ReadAll(r)

	require.NoError(t, readErr)

	var outputString = string(outputBytes)

	assert.Contains(t, outputString, expectedOutputContains)
}
