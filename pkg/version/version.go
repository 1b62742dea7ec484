package version

import (
	"fmt"
	"runtime"
)

// Populated by -ldflags at build time.
var (
	GitVersion   = "v0.0.0-dev"
	GitCommit    = "unknown"
	GitTreeState = ""
	BuildDate    = "1970-01-01T00:00:00Z"
)

// Info carries the version details of a binary.
type Info struct {
	GitVersion   string `json:"gitVersion"`
	GitCommit    string `json:"gitCommit"`
	GitTreeState string `json:"gitTreeState"`
	BuildDate    string `json:"buildDate"`
	GoVersion    string `json:"goVersion"`
	Compiler     string `json:"compiler"`
	Platform     string `json:"platform"`
}

func (i Info) String() string {
	return i.GitVersion
}

// Text renders the detailed multi-line form printed by --version=raw.
func (i Info) Text() string {
	return fmt.Sprintf("gitVersion: %s\ngitCommit: %s\ngitTreeState: %s\nbuildDate: %s\ngoVersion: %s\ncompiler: %s\nplatform: %s\n",
		i.GitVersion, i.GitCommit, i.GitTreeState, i.BuildDate, i.GoVersion, i.Compiler, i.Platform)
}

func Get() Info {
	return Info{
		GitVersion:   GitVersion,
		GitCommit:    GitCommit,
		GitTreeState: GitTreeState,
		BuildDate:    BuildDate,
		GoVersion:    runtime.Version(),
		Compiler:     runtime.Compiler,
		Platform:     fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
	}
}
