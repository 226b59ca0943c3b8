package supply

import (
	"github.com/vsinha/supplycover/pkg/application/services/filter"
	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// plan names the records feeding one projection
type plan struct {
	demandKind        entities.RecordKind
	demand            filter.Filter
	replenishmentKind entities.RecordKind
	replenishment     filter.Filter
	stock             filter.Filter
}

// planFor selects the series of a role.
//
// A customer consumes its own demand and is refilled by inbound deliveries
// of both provenances, starting from its inbound stock. A supplier ships
// outbound deliveries of both provenances and is refilled by its own
// production, starting from its outbound stock. An empty partner or site
// covers every partner or site.
func planFor(role entities.SupplyRole, material entities.MaterialNumber, partner entities.BPNL, site entities.BPNS) plan {
	base := filter.Filter{Material: material}
	if partner != "" {
		base.PartnerBPNL = &partner
	}
	if site != "" {
		base.SiteBPNS = &site
	}
	with := func(direction entities.Direction, provenance *entities.Provenance) filter.Filter {
		f := base
		f.Direction = &direction
		f.Provenance = provenance
		return f
	}
	own := entities.Own

	if role == entities.SupplierRole {
		return plan{
			demandKind:        entities.KindDelivery,
			demand:            with(entities.Outbound, nil),
			replenishmentKind: entities.KindProduction,
			replenishment:     with(entities.Outbound, &own),
			stock:             with(entities.Outbound, &own),
		}
	}
	return plan{
		demandKind:        entities.KindDemand,
		demand:            with(entities.Inbound, &own),
		replenishmentKind: entities.KindDelivery,
		replenishment:     with(entities.Inbound, nil),
		stock:             with(entities.Inbound, &own),
	}
}
