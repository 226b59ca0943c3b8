package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/supplycover/pkg/application/dto"
	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/interfaces/cli/output"
)

// CoverageOptions holds flags for the coverage command
type CoverageOptions struct {
	Scenario string
	Material string
	Partner  string
	Site     string
	Role     string
	Days     int
	Cached   bool
}

// NewCoverageCommand creates the coverage command
func NewCoverageCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CoverageOptions{}

	cmd := &cobra.Command{
		Use:   "coverage",
		Short: "Project the days of supply of a material",
		Long: `Project the days of supply of a material at a site for each day of the
horizon, starting today. The customer role covers own demand with material
stock and inbound deliveries; the supplier role covers outbound deliveries
with product stock and planned production.`,
		Example: `  supplycover coverage --scenario ./data --material MNR-7307 --role customer
  supplycover coverage --scenario ./data --material MNR-8101 --role supplier --days 14 --format svg -o ./out`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCoverage(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "directory with scenario CSV files (defaults to data_dir)")
	cmd.Flags().StringVar(&opts.Material, "material", "", "own material number (required)")
	cmd.Flags().StringVar(&opts.Partner, "partner", "", "restrict to one partner BPNL")
	cmd.Flags().StringVar(&opts.Site, "site", "", "restrict to one site BPNS")
	cmd.Flags().StringVar(&opts.Role, "role", "customer", "projection role (customer|supplier)")
	cmd.Flags().IntVar(&opts.Days, "days", 0, "horizon in days (defaults to horizon_days)")
	cmd.Flags().BoolVar(&opts.Cached, "cached", false, "serve results through the coverage cache, without input series")
	_ = cmd.MarkFlagRequired("material")

	return cmd
}

func runCoverage(cmd *cobra.Command, rootOpts *RootOptions, opts *CoverageOptions) error {
	role, err := entities.ParseSupplyRole(opts.Role)
	if err != nil {
		return err
	}

	a, err := newApp(rootOpts, opts.Scenario)
	if err != nil {
		return err
	}
	defer a.close()

	ctx := cmd.Context()
	if _, err := a.admit(ctx, rootOpts.now); err != nil {
		return fmt.Errorf("failed to admit scenario: %w", err)
	}

	days := opts.Days
	if days == 0 {
		days = a.cfg.HorizonDays
	}
	material := entities.MaterialNumber(opts.Material)
	partner := entities.BPNL(opts.Partner)
	site := entities.BPNS(opts.Site)

	var report *dto.CoverageReport
	if opts.Cached {
		results, err := a.supply.CalculateDaysOfSupply(ctx, role, material, partner, site, days)
		if err != nil {
			return fmt.Errorf("coverage projection failed: %w", err)
		}
		report = &dto.CoverageReport{
			Role:     role,
			Material: material,
			Partner:  partner,
			Site:     site,
			Start:    a.supply.Start(),
			Results:  results,
		}
	} else {
		report, err = a.supply.Report(ctx, role, material, partner, site, days)
		if err != nil {
			return fmt.Errorf("coverage projection failed: %w", err)
		}
	}

	return output.WriteCoverage(cmd.OutOrStdout(), report, rootOpts.outputConfig())
}
