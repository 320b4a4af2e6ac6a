package main

import (
	"os"

	"github.com/vaultenv/cipherlab/internal/cmd"
)

// These variables are populated by the build process
var (
	version   = "dev"     // Will be set by goreleaser
	commit    = "unknown" // Git commit hash for debugging
	buildTime = "unknown" // Build timestamp
	builtBy   = "unknown" // Build system identifier
)

func main() {
	buildInfo := cmd.BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		BuiltBy:   builtBy,
	}

	// Execute already printed the error with its help text
	if err := cmd.Execute(buildInfo); err != nil {
		os.Exit(1)
	}
}
