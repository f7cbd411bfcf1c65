package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/autobrr/pwdigest/internal/config"
	"github.com/autobrr/pwdigest/internal/encoding"
	"github.com/autobrr/pwdigest/internal/pwhash"
)

var (
	checkEncoding string
	checkVerbose  bool
	checkQuiet    bool
)

var errMismatch = errors.New("password does not match digest")

var checkCmd = &cobra.Command{
	Use:   "check <digest> [password]",
	Short: "Verify a password against a stored digest",
	Long: `Checks if the password hashes to the given digest. The digest encoding is
detected automatically unless --encoding is given. Without a password argument,
the password is prompted for on a terminal or read from standard input.`,
	Args:                       cobra.RangeArgs(1, 2),
	RunE:                       runCheck,
	DisableFlagsInUseLine:      true,
	SuggestionsMinimumDistance: 1,
	SilenceUsage:               true,
}

func init() {
	checkCmd.Flags().SortFlags = false
	checkCmd.Flags().BoolP("help", "h", false, "help for check")
	checkCmd.Flags().StringVarP(&checkEncoding, "encoding", "e", "", "digest encoding (detected if not specified)")
	checkCmd.Flags().BoolVarP(&checkVerbose, "verbose", "v", false, "show detected encoding")
	checkCmd.Flags().BoolVar(&checkQuiet, "quiet", false, "reduced output mode (prints only OK or FAILED)")
	checkCmd.SetUsageTemplate(`Usage:
  {{.CommandPath}} <digest> [password] [flags]

Arguments:
  digest     Stored digest (hex, base64, base58 or multihash)
  password   Password to verify (prompted for if omitted)

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}
`)
}

func runCheck(cmd *cobra.Command, args []string) error {
	enc, want, err := decodeDigest(args[0], checkEncoding)
	if err != nil {
		return err
	}

	secrets, err := readSecrets(args[1:], cmd.InOrStdin(), cmd.ErrOrStderr(), 1)
	if err != nil {
		return err
	}

	d := newDisplay(cmd, &config.Options{Verbose: checkVerbose, Quiet: checkQuiet})
	if checkVerbose && !checkQuiet {
		d.ShowMessage(fmt.Sprintf("digest encoding: %s", enc))
	}

	ok, err := pwhash.Verify(secrets[0].password, want)
	if err != nil {
		return fmt.Errorf("could not hash password: %w", err)
	}

	d.ShowCheckResult(ok)
	if !ok {
		return errMismatch
	}
	return nil
}

// decodeDigest parses s in the named encoding, or detects the encoding when
// name is empty
func decodeDigest(s, name string) (encoding.Encoding, []byte, error) {
	if name == "" {
		return encoding.Detect(s)
	}
	enc, err := encoding.Parse(name)
	if err != nil {
		return "", nil, err
	}
	digest, err := encoding.Decode(s, enc)
	if err != nil {
		return "", nil, err
	}
	return enc, digest, nil
}
