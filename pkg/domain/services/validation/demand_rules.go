package validation

import (
	"context"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// Own demands are placed at an own site towards a supplier site; reported
// demands are placed by a customer at its site towards an own site.
func demandRules(provenance entities.Provenance) []Rule[*entities.Demand] {
	demandLocationMessage := "Demand location BPNS must match one of the own partner entity's site BPNS."
	supplierLocationMessage := "Supplier location BPNS must match one of the partner's site BPNS."
	if provenance == entities.Reported {
		demandLocationMessage = "Demand location BPNS must match one of the partner's site BPNS."
		supplierLocationMessage = "Supplier location BPNS must match one of the own partner entity's site BPNS."
	}

	return []Rule[*entities.Demand]{
		materialPresent[*entities.Demand]("Missing Material."),
		partnerPresent[*entities.Demand]("Missing Partner."),
		partnerTrades[*entities.Demand](provenance),
		quantityPositive[*entities.Demand](),
		unitPresent[*entities.Demand](),
		lastUpdatedPresent[*entities.Demand](),
		lastUpdatedNotInFuture[*entities.Demand](),
		{
			Name:    "day-present",
			Message: "Missing day.",
			Check: func(_ context.Context, _ *session, d *entities.Demand) (bool, error) {
				return d.Day != nil, nil
			},
		},
		{
			Name:    "category-present",
			Message: "Missing demand category code.",
			Check: func(_ context.Context, _ *session, d *entities.Demand) (bool, error) {
				return d.Category != "", nil
			},
		},
		{
			Name:    "demand-location-present",
			Message: "Missing demand location BPNS.",
			Check: func(_ context.Context, _ *session, d *entities.Demand) (bool, error) {
				return d.DemandLocation != "", nil
			},
		},
		{
			Name:    "demand-location-owned",
			Message: demandLocationMessage,
			Check: func(_ context.Context, s *session, d *entities.Demand) (bool, error) {
				return s.owns(siteOwner(s, provenance, d.Partner, false), d.DemandLocation)
			},
		},
		{
			Name:    "supplier-location-owned",
			Message: supplierLocationMessage,
			Check: func(_ context.Context, s *session, d *entities.Demand) (bool, error) {
				if d.SupplierLocation == "" {
					return true, nil
				}
				return s.owns(siteOwner(s, provenance, d.Partner, true), d.SupplierLocation)
			},
		},
		partnerNotOwn[*entities.Demand](),
	}
}
