// SPDX-License-Identifier: MIT

// Package version exposes build metadata injected via ldflags.
package version

import "fmt"

var (
	Version   = "v0.3.0"
	Commit    = "none"
	BuildDate = "unknown"
)

// String returns the full version line printed by the version subcommand.
func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}
