package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vsinha/supplycover/pkg/application/dto"
	"github.com/vsinha/supplycover/pkg/application/services/filter"
	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/interfaces/cli/output"
)

// QuantitiesOptions holds flags for the quantities command
type QuantitiesOptions struct {
	Scenario   string
	Kind       string
	Material   string
	Partner    string
	Site       string
	Direction  string
	Provenance string
	Days       int
}

// NewQuantitiesCommand creates the quantities command
func NewQuantitiesCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QuantitiesOptions{}

	cmd := &cobra.Command{
		Use:   "quantities",
		Short: "Sum record quantities per day",
		Long: `Sum the quantities of demands, deliveries or productions per calendar day
of the horizon, starting today. Deliveries need a direction: inbound books
them on arrival, outbound on departure.`,
		Example: `  supplycover quantities --scenario ./data --kind demand --material MNR-7307
  supplycover quantities --scenario ./data --kind delivery --direction inbound --material MNR-7307`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuantities(cmd, rootOpts, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Scenario, "scenario", "", "directory with scenario CSV files (defaults to data_dir)")
	cmd.Flags().StringVar(&opts.Kind, "kind", "demand", "record kind (demand|delivery|production)")
	cmd.Flags().StringVar(&opts.Material, "material", "", "own material number")
	cmd.Flags().StringVar(&opts.Partner, "partner", "", "restrict to one partner BPNL")
	cmd.Flags().StringVar(&opts.Site, "site", "", "restrict to one site BPNS")
	cmd.Flags().StringVar(&opts.Direction, "direction", "", "flow direction (inbound|outbound)")
	cmd.Flags().StringVar(&opts.Provenance, "provenance", "", "record provenance (own|reported)")
	cmd.Flags().IntVar(&opts.Days, "days", 0, "horizon in days (defaults to horizon_days)")

	return cmd
}

func runQuantities(cmd *cobra.Command, rootOpts *RootOptions, opts *QuantitiesOptions) error {
	kind, err := entities.ParseRecordKind(opts.Kind)
	if err != nil {
		return err
	}
	f, err := opts.filter()
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
	quantities, err := a.supply.GetQuantityForDays(ctx, kind, f, days)
	if err != nil {
		return fmt.Errorf("quantity lookup failed: %w", err)
	}

	report := &dto.QuantityReport{
		Kind:       kind,
		Material:   f.Material,
		Start:      a.supply.Start(),
		Quantities: quantities,
	}
	return output.WriteQuantities(cmd.OutOrStdout(), report, rootOpts.outputConfig())
}

func (o *QuantitiesOptions) filter() (filter.Filter, error) {
	f := filter.Filter{Material: entities.MaterialNumber(o.Material)}
	if o.Partner != "" {
		partner := entities.BPNL(o.Partner)
		f.PartnerBPNL = &partner
	}
	if o.Site != "" {
		site := entities.BPNS(o.Site)
		f.SiteBPNS = &site
	}
	if o.Direction != "" {
		direction, err := entities.ParseDirection(o.Direction)
		if err != nil {
			return f, err
		}
		f.Direction = &direction
	}
	if o.Provenance != "" {
		provenance, err := entities.ParseProvenance(o.Provenance)
		if err != nil {
			return f, err
		}
		f.Provenance = &provenance
	}
	return f, nil
}
