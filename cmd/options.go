package cmd

import (
	"github.com/spf13/cobra"

	"github.com/autobrr/pwdigest/internal/config"
	"github.com/autobrr/pwdigest/internal/display"
	"github.com/autobrr/pwdigest/internal/encoding"
)

// commonOptions holds the flags shared by commands that produce digests
type commonOptions struct {
	configPath string
	profile    string
	encoding   string
	verbose    bool
	quiet      bool
}

func (o *commonOptions) register(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.encoding, "encoding", "e", "hex", "digest encoding (hex, base64, base58, multihash)")
	cmd.Flags().StringVarP(&o.profile, "profile", "P", "", "use profile from config")
	cmd.Flags().StringVar(&o.configPath, "config", "", "config file (default ~/.config/pwdigest/config.yaml)")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "be verbose")
	cmd.Flags().BoolVar(&o.quiet, "quiet", false, "reduced output mode (prints only the result)")
}

// resolve merges the config profile with flags explicitly set on cmd.
// Flags win over the profile. The returned options keep an empty Encoding
// when neither the flag nor the config sets one.
func (o *commonOptions) resolve(cmd *cobra.Command) (*config.Options, encoding.Encoding, error) {
	opts, err := config.Resolve(o.configPath, o.profile)
	if err != nil {
		return nil, "", err
	}

	flags := cmd.Flags()
	if flags.Changed("encoding") {
		opts.Encoding = o.encoding
	}
	if flags.Changed("verbose") {
		opts.Verbose = o.verbose
	}
	if flags.Changed("quiet") {
		opts.Quiet = o.quiet
	}

	name := opts.Encoding
	if name == "" {
		name = o.encoding
	}
	enc, err := encoding.Parse(name)
	if err != nil {
		return nil, "", err
	}
	return opts, enc, nil
}

// newDisplay returns a display writing to the command's output
func newDisplay(cmd *cobra.Command, opts *config.Options) *display.Display {
	d := display.NewDisplay(display.NewFormatter(opts.Verbose))
	d.SetOutput(cmd.OutOrStdout())
	d.SetQuiet(opts.Quiet)
	return d
}
