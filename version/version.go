package version

import "runtime"

// Version is overridden at build time with
// -ldflags "-X github.com/mumoshu/pipeline/version.Version=..."
var Version = "0.1.0-dev"

type Info struct {
	Version   string `json:"version" yaml:"version"`
	GoVersion string `json:"go_version" yaml:"go_version"`
}

func Get() Info {
	return Info{Version: Version, GoVersion: runtime.Version()}
}
