package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/autobrr/pwdigest/internal/batch"
)

var (
	batchOpts    commonOptions
	batchWorkers int
)

var batchCmd = &cobra.Command{
	Use:   "batch <batch-file>",
	Short: "Hash or verify many passwords from a YAML file",
	Long: `Process every job of a YAML batch file. Each job names a password (inline or
from a file) and optionally an expected digest to verify against.

Example batch file:

  version: 1
  encoding: hex
  jobs:
    - name: admin
      password_file: secrets/admin.txt
      expect: 460e0af6c1828a93fe887cbe103d6ca6ab97a0e4
    - name: guest
      password: hunter2`,
	Args:                       cobra.ExactArgs(1),
	RunE:                       runBatch,
	DisableFlagsInUseLine:      true,
	SuggestionsMinimumDistance: 1,
	SilenceUsage:               true,
}

func init() {
	batchCmd.Flags().SortFlags = false
	batchOpts.register(batchCmd)
	batchCmd.Flags().IntVarP(&batchWorkers, "workers", "w", 0, "number of worker goroutines (0 = number of CPUs)")
	batchCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} <batch-file> [flags]

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)
}

func runBatch(cmd *cobra.Command, args []string) error {
	batchPath := args[0]
	if _, err := os.Stat(batchPath); err != nil {
		return fmt.Errorf("invalid batch file path %q: %w", batchPath, err)
	}

	opts, enc, err := batchOpts.resolve(cmd)
	if err != nil {
		return err
	}

	cfg, err := batch.LoadConfig(batchPath)
	if err != nil {
		return err
	}
	// the encoding flag, or a selected profile that sets one, overrides the batch file
	if cfg.Encoding == "" || cmd.Flags().Changed("encoding") || (batchOpts.profile != "" && opts.Encoding != "") {
		cfg.Encoding = string(enc)
	}

	workers := opts.Workers
	if cmd.Flags().Changed("workers") {
		workers = batchWorkers
	}

	d := newDisplay(cmd, opts)
	start := time.Now()
	results, err := batch.Process(cmd.Context(), cfg, workers, d)
	if err != nil {
		return fmt.Errorf("batch processing failed: %w", err)
	}
	d.ShowBatchResults(results, time.Since(start))

	failed := 0
	for _, r := range results {
		if !r.Success {
			failed++
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d jobs failed", failed, len(results))
	}
	return nil
}
