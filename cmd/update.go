package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

const repoSlug = "autobrr/pwdigest"

var updateCmd = &cobra.Command{
	Use:                   "update",
	Short:                 "Update to latest version",
	Long:                  `Update the binary to the latest release published on GitHub.`,
	RunE:                  runUpdate,
	DisableFlagsInUseLine: true,
	SilenceUsage:          true,
}

func init() {
	updateCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}}

Downloads and installs the latest release.
`)
}

func runUpdate(cmd *cobra.Command, args []string) error {
	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("could not parse version %q: %w", version, err)
	}

	latest, found, err := selfupdate.DetectLatest(cmd.Context(), selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s could not be found from github repository", repoSlug)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(cmd.OutOrStdout(), "Current binary is the latest version: %s\n", version)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("could not locate executable path: %w", err)
	}

	if err := selfupdate.UpdateTo(cmd.Context(), latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated to version: %s\n", latest.Version())
	return nil
}
