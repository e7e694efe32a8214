// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// These variables are set via -ldflags at build time, for example:
//
//	go build -ldflags "-X github.com/bureau-foundation/blockarray/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// shortCommitLength matches `git rev-parse --short`.
const shortCommitLength = 7

// stamp is the resolved build identity.
type stamp struct {
	commit string
	dirty  bool
	time   string
}

// resolve prefers ldflags values and falls back to the toolchain's VCS
// settings for anything left at its default.
func resolve(settings []debug.BuildSetting) stamp {
	resolved := stamp{commit: GitCommit, dirty: GitDirty == "true", time: BuildTime}
	if resolved.commit != "unknown" {
		return resolved
	}

	for _, setting := range settings {
		switch setting.Key {
		case "vcs.revision":
			resolved.commit = setting.Value
			if len(resolved.commit) > shortCommitLength {
				resolved.commit = resolved.commit[:shortCommitLength]
			}
		case "vcs.modified":
			resolved.dirty = setting.Value == "true"
		case "vcs.time":
			if resolved.time == "unknown" {
				resolved.time = setting.Value
			}
		}
	}
	return resolved
}

func current() stamp {
	var settings []debug.BuildSetting
	if info, ok := debug.ReadBuildInfo(); ok {
		settings = info.Settings
	}
	return resolve(settings)
}

// Info returns a formatted version string suitable for --version output.
func Info() string {
	resolved := current()
	dirty := ""
	if resolved.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", Version, resolved.commit, dirty, resolved.time)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return current().commit
}
