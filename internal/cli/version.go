package cli

import "runtime/debug"

// appVersion is set with -ldflags "-X github.com/NielsdaWheelz/advent/internal/cli.appVersion=..."
var appVersion = ""

// Version returns the module version when installed with go install, the
// ldflags-injected version otherwise, or "dev".
func Version() string {
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}
	if appVersion != "" {
		return appVersion
	}
	return "dev"
}
