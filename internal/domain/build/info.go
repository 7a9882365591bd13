// Package build describes the running adshield binary.
package build

import "runtime"

const (
	devVersion = "dev"
	unknown    = "unknown"
	shortSHA   = 7
)

// Info holds build-time information injected via ldflags.
type Info struct {
	Version   string
	Commit    string
	BuildDate string
	GoVersion string
}

// Resolved returns a copy with unset fields filled: a dev version, an
// unknown commit and date, and the running Go version.
func (i Info) Resolved() Info {
	if i.Version == "" {
		i.Version = devVersion
	}
	if i.Commit == "" {
		i.Commit = unknown
	}
	if i.BuildDate == "" {
		i.BuildDate = unknown
	}
	if i.GoVersion == "" {
		i.GoVersion = runtime.Version()
	}
	return i
}

// Short is the one-line version, like "v0.3.1 (1a2b3c4)". The commit is
// omitted when unknown.
func (i Info) Short() string {
	r := i.Resolved()
	if r.Commit == unknown {
		return r.Version
	}
	commit := r.Commit
	if len(commit) > shortSHA {
		commit = commit[:shortSHA]
	}
	return r.Version + " (" + commit + ")"
}

// RepoURL returns the GitHub repository URL.
func RepoURL() string {
	return "https://github.com/bnema/adshield"
}
