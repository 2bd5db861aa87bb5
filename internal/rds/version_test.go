package rds

import (
	"testing"
)

func TestPrintVersionMentionsProgramName(t *testing.T) {
	AssertOutputContains(t, func() { PrintVersion(false) }, "rdsgo - Version")
}

func TestPrintVersionVerboseIncludesBuildInfo(t *testing.T) {
	AssertOutputContains(t, func() { PrintVersion(true) }, "BuildInfo:")
}

func TestIfThenElse(t *testing.T) {
	if got := IfThenElse(false, 1, 2); got != 2 {
		t.Errorf("IfThenElse(false, 1, 2) = %d, want 2", got)
	}

	if got := IfThenElse(true, "a", "b"); got != "a" {
		t.Errorf("IfThenElse(true, ...) = %q, want \"a\"", got)
	}
}
