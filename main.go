package main

import (
	"runtime/debug"

	"github.com/ines/taskdeck/cmd"
)

// Version can be injected at build time via -ldflags "-X main.Version=...".
var Version = "dev"

func main() {
	cmd.SetVersion(effectiveVersion(Version))
	cmd.Execute()
}

func effectiveVersion(v string) string {
	if v != "" && v != "dev" {
		return v
	}
	// Installed via `go install module@vX.Y.Z` carries the module version.
	if info, ok := debug.ReadBuildInfo(); ok && info != nil {
		if mv := info.Main.Version; mv != "" && mv != "(devel)" {
			return mv
		}
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				return "devel+" + s.Value[:12]
			}
		}
	}
	return v
}
