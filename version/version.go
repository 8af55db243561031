package version

import (
	"fmt"
	"runtime/debug"
	"sync"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/kbukum/amalfi"

// Version is set at build time using
// -ldflags "-X github.com/kbukum/amalfi/version.Version=v1.2.3".
var Version = "dev"

// Info describes the running binary.
type Info struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	IsDirty   bool   `json:"is_dirty"`
	// Library is the version of this module linked into the binary.
	Library string `json:"library"`
}

// Get returns version information for the running binary.
func Get() Info {
	bi, ok := debug.ReadBuildInfo()
	return fromBuildInfo(bi, ok)
}

func fromBuildInfo(bi *debug.BuildInfo, ok bool) Info {
	info := Info{Version: Version, Library: Version}
	if !ok || bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			info.GitCommit = setting.Value
			if len(info.GitCommit) > 7 {
				info.GitCommit = info.GitCommit[:7]
			}
		case "vcs.modified":
			info.IsDirty = setting.Value == "true"
		}
	}
	if v := moduleVersion(bi); v != "" {
		info.Library = v
	}
	return info
}

// moduleVersion finds this module among the main module and its deps.
// "(devel)" means a local build and is ignored.
func moduleVersion(bi *debug.BuildInfo) string {
	if bi.Main.Path == ModulePath && bi.Main.Version != "(devel)" {
		return bi.Main.Version
	}
	for _, dep := range bi.Deps {
		if dep.Path != ModulePath {
			continue
		}
		if dep.Replace != nil {
			dep = dep.Replace
		}
		if dep.Version != "(devel)" {
			return dep.Version
		}
	}
	return ""
}

// Short returns version-commit, with a -dirty suffix for modified trees.
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	if i.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", i.Version, i.GitCommit)
	}
	return fmt.Sprintf("%s-%s", i.Version, i.GitCommit)
}

var library = sync.OnceValue(func() string { return Get().Library })

// Library returns the version of this module linked into the binary.
func Library() string {
	return library()
}
