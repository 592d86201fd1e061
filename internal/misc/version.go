// Package misc holds build identification.
package misc

import (
	"runtime/debug"
)

const appName = "rapidsvg"

// set with -ldflags "-X rapidsvg/internal/misc.version=... -X rapidsvg/internal/misc.gitHash=..."
var (
	version = "dev"
	gitHash = ""
)

func GetAppName() string {
	return appName
}

func GetVersion() string {
	return version
}

// GetGitHash falls back to the VCS revision recorded by the go tool.
func GetGitHash() string {
	if gitHash != "" {
		return gitHash
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" {
				return s.Value
			}
		}
	}
	return "unknown"
}
