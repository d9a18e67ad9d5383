// Package misc keeps program identity stamped at build time.
package misc

import (
	"runtime/debug"
)

// Set with -ldflags "-X stylecascade/misc.version=... -X stylecascade/misc.gitHash=...".
var (
	appName = "stylecat"
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

// GetVersion returns stamped version, or the module version when the
// program was installed with go install.
func GetVersion() string {
	if version != "dev" {
		return version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	return version
}

// GetGitHash returns stamped commit hash falling back to the VCS revision
// recorded by the go tool.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
