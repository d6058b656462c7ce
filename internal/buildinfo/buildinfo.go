// Package buildinfo reports the version of the chward binary.
package buildinfo

import (
	"runtime/debug"
	"strings"
)

const (
	goOS        = "GOOS"
	goArch      = "GOARCH"
	vcsRevision = "vcs.revision"
	vcsTime     = "vcs.time"
	vcsModified = "vcs.modified"
)

// version is set by the linker, for instance,
// -ldflags "-X github.com/kakao/chward/internal/buildinfo.version=v0.1.0".
var version = "devel"

type Info struct {
	Version   string
	GoVersion string
	Revision  string
	Time      string
	Modified  bool
	OS        string
	Arch      string
}

func ReadVersionInfo() Info {
	info := Info{
		Version: version,
	}
	buildInfo, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	return newInfo(info.Version, buildInfo)
}

func newInfo(version string, buildInfo *debug.BuildInfo) Info {
	info := Info{
		Version:   version,
		GoVersion: buildInfo.GoVersion,
	}
	for _, kv := range buildInfo.Settings {
		switch kv.Key {
		case vcsRevision:
			info.Revision = kv.Value
		case vcsTime:
			info.Time = kv.Value
		case vcsModified:
			info.Modified = kv.Value == "true"
		case goOS:
			info.OS = kv.Value
		case goArch:
			info.Arch = kv.Value
		}
	}
	return info
}

func (info Info) String() string {
	revision := info.Revision
	if info.Modified {
		revision += "-dirty"
	}
	var sb strings.Builder
	sb.WriteString("Version:     " + info.Version + "\n")
	sb.WriteString("Go Version:  " + info.GoVersion + "\n")
	sb.WriteString("Git Commit:  " + revision + "\n")
	sb.WriteString("Built:       " + info.Time + "\n")
	sb.WriteString("OS/Arch:     " + info.OS + "/" + info.Arch)
	return sb.String()
}
