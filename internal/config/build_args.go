package config

import "fmt"

// ModuleName is the name of this service, shown by the root command.
const ModuleName = "go-relay"

// Build arguments, overridden via -ldflags at compile time.
var (
	Commit    = "unknown"
	BuildDate = "unknown"
)

// GetFormattedBuildArgs returns "<module> @ <commit> (<build date>)".
func GetFormattedBuildArgs() string {
	return fmt.Sprintf("%v @ %v (%v)", ModuleName, Commit, BuildDate)
}
