package commands

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/cobra"

	"github.com/vsinha/supplycover/pkg/interfaces/cli/output"
)

// RootOptions holds global flags for all commands
type RootOptions struct {
	ConfigFile string
	OwnPartner string
	Verbose    bool
	Format     string
	OutputDir  string

	// Now is the clock of every command; nil means time.Now
	Now func() time.Time
}

func (o *RootOptions) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

func (o *RootOptions) outputConfig() output.Config {
	return output.Config{Format: o.Format, OutputDir: o.OutputDir, Verbose: o.Verbose}
}

// NewRootCommand creates the supplycover command tree
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}

	cmd := &cobra.Command{
		Use:   "supplycover",
		Short: "Days-of-supply projections for exchanged supply chain records",
		Long: `supplycover loads demands, deliveries, productions and stocks exchanged
with partners, validates them and projects how many days of demand the
stock at a site covers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !slices.Contains(output.Formats, opts.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", opts.Format, output.Formats)
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.ConfigFile, "config", "", "path to YAML config file")
	cmd.PersistentFlags().StringVar(&opts.OwnPartner, "own-partner", "", "own partner BPNL (overrides config)")
	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", "text", "output format (text|json|csv|svg)")
	cmd.PersistentFlags().StringVarP(&opts.OutputDir, "output", "o", "", "write results to this directory")

	cmd.AddCommand(NewCoverageCommand(opts))
	cmd.AddCommand(NewQuantitiesCommand(opts))
	cmd.AddCommand(NewValidateCommand(opts))

	return cmd
}
