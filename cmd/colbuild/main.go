// Colbuild - terminal client for the Colbuilder structure-generation service.
package main

import (
	"os"

	"github.com/colbuilder-dev/colbuild/internal/cli"
	"github.com/colbuilder-dev/colbuild/internal/version"
)

// Version information - overridden at link time by the release build.
var (
	Version   = "v0.3.0-dev"
	BuildTime = "2026-08-31"
)

func main() {
	// Set version in the version package (canonical source) and the CLI
	// package, which renders it in help output.
	version.Version = Version
	version.BuildTime = BuildTime
	cli.Version = Version
	cli.BuildTime = BuildTime

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
