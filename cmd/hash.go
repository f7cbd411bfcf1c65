package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autobrr/pwdigest/internal/display"
	"github.com/autobrr/pwdigest/internal/encoding"
	"github.com/autobrr/pwdigest/internal/pwhash"
)

var hashOpts commonOptions

var hashCmd = &cobra.Command{
	Use:   "hash [password...]",
	Short: "Compute password digests",
	Long: `Compute the digest of each password given as an argument.
Without arguments, the password is prompted for on a terminal, or read one
per line from standard input.

Passwords are lowercased before hashing. Only the first 64 bytes of the
lowercased password affect the digest; passwords up to 1024 bytes are accepted.`,
	RunE:                       runHash,
	DisableFlagsInUseLine:      true,
	SuggestionsMinimumDistance: 1,
	SilenceUsage:               true,
}

func init() {
	hashCmd.Flags().SortFlags = false
	hashOpts.register(hashCmd)
	hashCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} [password...] [flags]

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)
}

func runHash(cmd *cobra.Command, args []string) error {
	opts, enc, err := hashOpts.resolve(cmd)
	if err != nil {
		return err
	}

	secrets, err := readSecrets(args, cmd.InOrStdin(), cmd.ErrOrStderr(), 0)
	if err != nil {
		return err
	}

	return hashSecrets(newDisplay(cmd, opts), secrets, enc)
}

// hashSecrets digests and prints each secret, stopping at the first failure
func hashSecrets(d display.DigestDisplayer, secrets []secret, enc encoding.Encoding) error {
	for _, s := range secrets {
		tr, err := pwhash.TraceBytes(s.password)
		if err != nil {
			return fmt.Errorf("could not hash password %s: %w", s.label, err)
		}
		text, err := encoding.Encode(tr.Digest[:], enc)
		if err != nil {
			return err
		}
		// sizes are reported after lowercasing, where the seed boundary applies
		d.ShowDigest(s.label, len(tr.Normalized), text)
	}
	return nil
}
