package validation

import (
	"context"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// Reported days of supply only need to be complete enough to be attributed
func reportedCoverageRules() []Rule[*entities.ReportedCoverage] {
	return []Rule[*entities.ReportedCoverage]{
		partnerPresent[*entities.ReportedCoverage]("Missing partner."),
		materialPresent[*entities.ReportedCoverage]("Missing material."),
		{
			Name:    "day-present",
			Message: "Missing date.",
			Check: func(_ context.Context, _ *session, c *entities.ReportedCoverage) (bool, error) {
				return c.Day != nil, nil
			},
		},
		{
			Name:    "stock-location-bpna-present",
			Message: "Missing stock location BPNA.",
			Check: func(_ context.Context, _ *session, c *entities.ReportedCoverage) (bool, error) {
				return c.StockLocationBPNA != "", nil
			},
		},
		{
			Name:    "stock-location-bpns-present",
			Message: "Missing stock location BPNS.",
			Check: func(_ context.Context, _ *session, c *entities.ReportedCoverage) (bool, error) {
				return c.StockLocationBPNS != "", nil
			},
		},
	}
}
