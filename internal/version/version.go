package version

import (
	"fmt"
	"runtime/debug"
)

// Overridden at build time via -ldflags.
var (
	Version   = "dev"
	BuildDate = "unknown"
)

// String returns the version, falling back to module build info when no
// version was linked in.
func String() string {
	if Version != "dev" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" {
		return info.Main.Version
	}
	return Version
}

// ShowVersion prints version information to stdout.
func ShowVersion() {
	fmt.Printf("snaptap %s (built %s)\n", String(), BuildDate)
}
