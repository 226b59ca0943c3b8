package repositories

import (
	"context"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// PartnerDirectory resolves partners, including the own partner
type PartnerDirectory interface {
	OwnPartner(ctx context.Context) (*entities.Partner, error)
	BySite(ctx context.Context, bpns entities.BPNS) (*entities.Partner, error)
	ByBPNL(ctx context.Context, bpnl entities.BPNL) (*entities.Partner, error)
	All(ctx context.Context) ([]*entities.Partner, error)
}

// MaterialDirectory provides material master data
type MaterialDirectory interface {
	ByNumber(ctx context.Context, number entities.MaterialNumber) (*entities.Material, error)
	All(ctx context.Context) ([]*entities.Material, error)
}

// MaterialRelationDirectory answers which partner trades which material.
// PartnerSupplies means the partner sells the material to the own partner,
// PartnerOrders means the partner buys it from the own partner.
type MaterialRelationDirectory interface {
	PartnerSupplies(ctx context.Context, material entities.MaterialNumber, partner entities.BPNL) (bool, error)
	PartnerOrders(ctx context.Context, material entities.MaterialNumber, partner entities.BPNL) (bool, error)
}
