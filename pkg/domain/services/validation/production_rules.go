package validation

import (
	"context"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// Own productions happen at an own site, reported ones at a partner site
func productionRules(provenance entities.Provenance) []Rule[*entities.Production] {
	siteMessage := "Production site BPNS must match one of the own partner entity's site BPNS."
	if provenance == entities.Reported {
		siteMessage = "Production site BPNS must match one of the partner's site BPNS."
	}

	return []Rule[*entities.Production]{
		materialPresent[*entities.Production]("Missing material."),
		partnerPresent[*entities.Production]("Missing partner."),
		quantityPositive[*entities.Production](),
		unitPresent[*entities.Production](),
		{
			Name:    "estimated-completion-present",
			Message: "Missing estimated time of completion.",
			Check: func(_ context.Context, _ *session, p *entities.Production) (bool, error) {
				return p.EstimatedCompletion != nil, nil
			},
		},
		{
			Name:    "production-site-present",
			Message: "Missing production site BPNS.",
			Check: func(_ context.Context, _ *session, p *entities.Production) (bool, error) {
				return p.ProductionSite != "", nil
			},
		},
		{
			Name:    "production-site-owned",
			Message: siteMessage,
			Check: func(_ context.Context, s *session, p *entities.Production) (bool, error) {
				return s.owns(siteOwner(s, provenance, p.Partner, false), p.ProductionSite)
			},
		},
		partnerNotOwn[*entities.Production](),
		{
			Name:    "order-reference",
			Message: orderReferenceMessage,
			Check: func(_ context.Context, _ *session, p *entities.Production) (bool, error) {
				return p.OrderPositionReference.Consistent(), nil
			},
		},
	}
}
