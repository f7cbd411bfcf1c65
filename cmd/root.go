package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pwdigest",
	Short: "A tool to compute and verify password digests",
	Long: `pwdigest computes and verifies 160-bit password digests.

The digest uses the SHA-1 round function over a modified message schedule and
is kept for compatibility with existing stored digests. It is not a general
purpose cryptographic hash and performs no salting or key stretching.`,
}

func init() {
	cobra.EnableCommandSorting = false
	rootCmd.AddCommand(hashCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

const commonUsageTemplate = `Usage:
  {{.CommandPath}} [command]

Available Commands:{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{rpad .Name .NamePadding }} {{.Short}}{{end}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}

Use "{{.CommandPath}} [command] --help" for more information about a command.
`

// setupCommon prepares the rootCmd with common settings.
func setupCommon() {
	rootCmd.Use = appName
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = false
	rootCmd.SetUsageTemplate(commonUsageTemplate)
}

// ExecuteCLI configures and executes the root command.
// Interrupts cancel the command's context, which stops batch processing.
func ExecuteCLI() error {
	setupCommon()
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return rootCmd.ExecuteContext(ctx)
}

// Execute runs the root command.
func Execute() error {
	return ExecuteCLI()
}
