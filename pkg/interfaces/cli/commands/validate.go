package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/supplycover/pkg/interfaces/cli/output"
)

// ValidateOptions holds flags for the validate command
type ValidateOptions struct {
	Scenario string
}

// NewValidateCommand creates the validate command
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{}

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate every record of a scenario",
		Long: `Run the validation rules over every demand, delivery, production and
stock of a scenario and list the violations. Exits with a non-zero code
when any record is invalid.`,
		Example: `  supplycover validate --scenario ./data
  supplycover validate --scenario ./data --format json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "directory with scenario CSV files (defaults to data_dir)")

	return cmd
}

func runValidate(cmd *cobra.Command, rootOpts *RootOptions, opts *ValidateOptions) error {
	a, err := newApp(rootOpts, opts.Scenario)
	if err != nil {
		return err
	}
	defer a.close()

	results, err := a.validator.ValidateAll(cmd.Context(), a.scenario.Records())
	if err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	if err := output.WriteValidation(cmd.OutOrStdout(), results, rootOpts.outputConfig()); err != nil {
		return err
	}

	invalid := 0
	for _, result := range results {
		if !result.Valid() {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d records invalid", invalid, len(results))
	}
	return nil
}
