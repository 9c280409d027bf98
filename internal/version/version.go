package version

import (
	"fmt"
	"runtime/debug"

	"github.com/tbckr/fwver/internal/describe"
)

// Build-time variables injected via -ldflags:
//
//	-X github.com/tbckr/fwver/internal/version.Version=1.0.0
//	-X github.com/tbckr/fwver/internal/version.Commit=abc1234
//	-X github.com/tbckr/fwver/internal/version.Date=2024-01-01
var (
	Version = describe.DefaultSentinel
	Commit  = "none"
	Date    = "unknown"
)

// Modified is true when the binary was built from a worktree with local
// changes, as recorded by vcs.modified.
var Modified bool

// Info is the JSON shape printed by `fwver version -o json`.
type Info struct {
	Version  string `json:"version"`
	Commit   string `json:"commit"`
	Date     string `json:"date"`
	Modified bool   `json:"modified"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{Version: Version, Commit: Commit, Date: Date, Modified: Modified}
}

// String renders the metadata for `fwver --version`.
func (i Info) String() string {
	commit := i.Commit
	if i.Modified {
		commit += describe.DirtySuffix
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", i.Version, commit, i.Date)
}

func init() {
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	applyBuildInfo(bi)
}

// applyBuildInfo overwrites package vars from bi only when they still hold
// their default (ldflags-unset) values. ldflags always win.
func applyBuildInfo(bi *debug.BuildInfo) {
	if Version == describe.DefaultSentinel {
		v := bi.Main.Version
		if v != "" && v != "(devel)" {
			if n := describe.Normalize(v, describe.DefaultPrefix); n != "" {
				Version = n
			}
		}
	}

	var revision, vcsTime string
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			vcsTime = s.Value
		case "vcs.modified":
			Modified = s.Value == "true"
		}
	}

	if Commit == "none" && revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		Commit = revision
	}

	if Date == "unknown" && vcsTime != "" {
		Date = vcsTime
	}
}
