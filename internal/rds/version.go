package rds

import (
	"fmt"
	"runtime/debug"
	"strconv"
)

// Set at build time via `-ldflags "-X 'rds.RDSGO_VERSION=X'"`
var RDSGO_VERSION string

func getBuildSettingOrDefault(bi *debug.BuildInfo, key string, defaultValue string) string {
	for _, bs := range bi.Settings {
		if bs.Key == key {
			return bs.Value
		}
	}

	return defaultValue
}

// PrintVersion writes the build identification line used by the CLI's
// -v / --version flag.
func PrintVersion(verbose bool) {
	var buildInfo, _ = debug.ReadBuildInfo()

	var buildTimeStr = getBuildSettingOrDefault(buildInfo, "vcs.time", "UNKNOWN")

	var (
		buildCommit               = getBuildSettingOrDefault(buildInfo, "vcs.revision", "UNKNOWN")
		buildDirtyStr             = getBuildSettingOrDefault(buildInfo, "vcs.modified", "INVALID")
		buildDirty, buildDirtyErr = strconv.ParseBool(buildDirtyStr)
	)

	if buildDirty {
		buildCommit += "-DIRTY"
	} else if buildDirtyErr != nil {
		fmt.Printf("Error parsing vcs.modified, got %s, %s\n", buildDirtyStr, buildDirtyErr)

		buildCommit += "-UNKNOWNDIRTY"
	}

	var version = RDSGO_VERSION
	if version == "" {
		version = "!UNKNOWN!"
	}

	fmt.Printf("rdsgo - Version %s (revision %s, built at %s)\n", version, buildCommit, buildTimeStr)

	if verbose {
		fmt.Printf("\nBuildInfo: %+v\n", buildInfo)
	}
}
