package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"

	"github.com/autobrr/pwdigest/internal/encoding"
	"github.com/autobrr/pwdigest/internal/pwhash"
	"github.com/autobrr/pwdigest/internal/utils"
)

var (
	inspectOpts  commonOptions
	outputFormat string
)

var outputFormats = []string{"text", "json"}

var inspectCmd = &cobra.Command{
	Use:   "inspect [password]",
	Short: "Show how a password is turned into a digest",
	Long: `Inspect the digest computation for a password: the normalized input, how many
bytes actually influence the digest, and the 80-word message schedule.
With --verbose the accumulator state after every round is shown as well.`,
	Args:                       cobra.MaximumNArgs(1),
	RunE:                       runInspect,
	DisableFlagsInUseLine:      true,
	SuggestionsMinimumDistance: 1,
	SilenceUsage:               true,
}

func init() {
	inspectCmd.Flags().SortFlags = false
	inspectOpts.register(inspectCmd)
	inspectCmd.Flags().StringVarP(&outputFormat, "output-format", "f", "text", "output format ('text' or 'json')")
	inspectCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} [password] [flags]

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)
}

// inspectReport is the JSON form of an inspection
type inspectReport struct {
	InputSize      int         `json:"input_size"`
	NormalizedSize int         `json:"normalized_size"`
	SeedBytes      int         `json:"seed_bytes"`
	IgnoredBytes   int         `json:"ignored_bytes"`
	Schedule       []string    `json:"schedule"`
	Rounds         [][5]string `json:"rounds,omitempty"`
	Encoding       string      `json:"encoding"`
	Digest         string      `json:"digest"`
}

func runInspect(cmd *cobra.Command, args []string) error {
	format := strings.ToLower(outputFormat)
	if !slices.Contains(outputFormats, format) {
		return fmt.Errorf("invalid output format %q (want %s)", outputFormat, strings.Join(outputFormats, " or "))
	}

	opts, enc, err := inspectOpts.resolve(cmd)
	if err != nil {
		return err
	}

	secrets, err := readSecrets(args, cmd.InOrStdin(), cmd.ErrOrStderr(), 1)
	if err != nil {
		return err
	}
	password := secrets[0].password

	tr, err := pwhash.TraceBytes(password)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}
	digest, err := encoding.Encode(tr.Digest[:], enc)
	if err != nil {
		return err
	}

	if format == "json" {
		return writeInspectJSON(cmd.OutOrStdout(), newInspectReport(len(password), tr, enc, digest, opts.Verbose))
	}

	d := newDisplay(cmd, opts)
	if opts.Quiet {
		d.ShowDigest(secrets[0].label, len(tr.Normalized), digest)
		return nil
	}
	d.ShowTrace(tr, digest)
	return nil
}

func newInspectReport(inputSize int, tr *pwhash.Trace, enc encoding.Encoding, digest string, rounds bool) *inspectReport {
	r := &inspectReport{
		InputSize:      inputSize,
		NormalizedSize: len(tr.Normalized),
		SeedBytes:      tr.SeedLen(),
		IgnoredBytes:   tr.IgnoredLen(),
		Schedule:       make([]string, len(tr.Schedule)),
		Encoding:       string(enc),
		Digest:         digest,
	}
	for i, w := range tr.Schedule {
		r.Schedule[i] = utils.FormatWord(w)
	}
	if rounds {
		r.Rounds = make([][5]string, len(tr.States))
		for i, s := range tr.States {
			for j, w := range s {
				r.Rounds[i][j] = utils.FormatWord(w)
			}
		}
	}
	return r
}

func writeInspectJSON(w io.Writer, r *inspectReport) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("could not marshal JSON data: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
