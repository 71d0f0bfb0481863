package version

import "runtime/debug"

// The version can be set at build time:
// go build -ldflags "-X github.com/fjl/dx7dump/internal/version.Version=$(git describe --dirty)"

var Version string

// Hash is the VCS revision the binary was built from, if known.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	modified := false
	for _, setting := range info.Settings {
		if setting.Key == "vcs.modified" && setting.Value == "true" {
			modified = true
			break
		}
	}
	for _, setting := range info.Settings {
		if setting.Key == "vcs.revision" && len(setting.Value) >= 7 {
			shortHash := setting.Value[:7]
			if modified {
				return shortHash + "-dirty"
			}
			return shortHash
		}
	}
	return ""
}()

// String returns Version, or the VCS hash if no version was set.
func String() string {
	switch {
	case Version != "":
		return Version
	case Hash != "":
		return Hash
	default:
		return "devel"
	}
}

// About is printed after the version number.
const About = `Yamaha DX7 Sysex Dump Analyzer
Copyright 2012, Ted Felix
Modifications 2023: Bernhard Lex
License GPLv3+`
