package version

import (
	"fmt"
	"runtime/debug"
	"strings"
)

// Set at build time using -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	BuildTime = ""
)

// Info is the resolved build identity.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	IsDirty   bool   `json:"is_dirty"`
}

// Get resolves the build identity from link-time values, falling back to
// the embedded VCS settings.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "" {
				info.GitCommit = s.Value
			}
		case "vcs.modified":
			info.IsDirty = s.Value == "true"
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		}
	}
	return info
}

// IsRelease reports whether the binary carries a real version number.
func (i Info) IsRelease() bool {
	return i.Version != "dev" && !strings.Contains(i.Version, "dirty")
}

// String returns "version[-commit][-dirty]" with the commit shortened to
// seven characters.
func (i Info) String() string {
	parts := []string{i.Version}
	if i.GitCommit != "" {
		commit := i.GitCommit
		if len(commit) > 7 {
			commit = commit[:7]
		}
		parts = append(parts, commit)
	}
	if i.IsDirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// Short returns the String form of Get.
func Short() string {
	return Get().String()
}

// Full adds the build time to Short when it is known.
func Full() string {
	info := Get()
	if info.BuildTime == "" {
		return info.String()
	}
	return fmt.Sprintf("%s (built %s)", info.String(), info.BuildTime)
}
