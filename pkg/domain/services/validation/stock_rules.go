package validation

import (
	"context"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// Own stock lies at an own site; reported stock is a partner's stock at its site
func stockRules(provenance entities.Provenance) []Rule[*entities.Stock] {
	rules := []Rule[*entities.Stock]{
		materialPresent[*entities.Stock]("Missing material."),
		quantityNotNegative[*entities.Stock](),
		unitPresent[*entities.Stock](),
		lastUpdatedPresent[*entities.Stock](),
		lastUpdatedNotInFuture[*entities.Stock](),
		{
			Name:    "location-present",
			Message: "Missing location BPNS.",
			Check: func(_ context.Context, _ *session, st *entities.Stock) (bool, error) {
				return st.Location != "", nil
			},
		},
	}

	if provenance == entities.Reported {
		return append(rules,
			partnerPresent[*entities.Stock]("Missing partner."),
			Rule[*entities.Stock]{
				Name:    "location-owned",
				Message: "Location BPNS must match one of the partner's site BPNS.",
				Check: func(_ context.Context, s *session, st *entities.Stock) (bool, error) {
					return s.owns(st.Partner, st.Location)
				},
			},
			partnerNotOwn[*entities.Stock](),
		)
	}
	return append(rules, Rule[*entities.Stock]{
		Name:    "location-owned",
		Message: "Location BPNS must match one of the own partner entity's site BPNS.",
		Check: func(_ context.Context, s *session, st *entities.Stock) (bool, error) {
			return s.owns(s.own, st.Location)
		},
	})
}
