package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StandardOptions are the flags every tool accepts.
type StandardOptions struct {
	Force   bool
	Silent  bool
	DryRun  bool
	Color   bool
	NoColor bool
}

// AddFlags registers the standard flags on fs.
func (o *StandardOptions) AddFlags(fs *pflag.FlagSet) {
	fs.BoolVarP(&o.Force, "force", "f", false, "Never ask for confirmation")
	fs.BoolVarP(&o.Silent, "silent", "s", false, "Do not print success messages, still print errors")
	fs.BoolVarP(&o.DryRun, "dry-run", "n", false, "Ask for confirmation, print success messages and errors, but do not perform any changes")
	fs.BoolVar(&o.Color, "color", false, "Always color output")
	fs.BoolVar(&o.NoColor, "no-color", false, "Never color output")
}

// addStandardFlags registers the standard flags on cmd and marks the color
// flags as mutually exclusive.
func addStandardFlags(cmd *cobra.Command, o *StandardOptions) {
	o.AddFlags(cmd.Flags())
	cmd.MarkFlagsMutuallyExclusive("color", "no-color")
}
