package main

import (
	"os"

	"github.com/autobrr/pwdigest/cmd"
)

// These variables will be set by ldflags during the build process
// They must be declared in the main package for ldflags to work.
var (
	version   string
	buildTime string
)

func main() {
	// If ldflags didn't set the values, provide defaults.
	if version == "" {
		version = "dev"
	}
	if buildTime == "" {
		buildTime = "unknown"
	}

	cmd.SetVersion(version, buildTime)
	cmd.SetAppName("pwdigest")
	if err := cmd.ExecuteCLI(); err != nil {
		os.Exit(1)
	}
}
