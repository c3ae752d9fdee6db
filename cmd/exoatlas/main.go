// SPDX-License-Identifier: MIT

// Command exoatlas syncs the NASA Exoplanet Archive into a local SQLite
// catalog and serves the analytics dashboard.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
