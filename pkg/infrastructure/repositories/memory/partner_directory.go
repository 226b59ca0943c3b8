package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
)

// PartnerDirectory provides in-memory partner master data
type PartnerDirectory struct {
	mu          sync.RWMutex
	ownBPNL     entities.BPNL
	partners    []*entities.Partner
	partnersMap map[entities.BPNL]int
	sitesMap    map[entities.BPNS]entities.BPNL
}

// NewPartnerDirectory creates a directory whose own partner is ownBPNL
func NewPartnerDirectory(ownBPNL entities.BPNL) *PartnerDirectory {
	return &PartnerDirectory{
		ownBPNL:     ownBPNL,
		partnersMap: make(map[entities.BPNL]int),
		sitesMap:    make(map[entities.BPNS]entities.BPNL),
	}
}

// Verify interface compliance
var _ repositories.PartnerDirectory = (*PartnerDirectory)(nil)

// LoadPartners loads partners into the directory
func (d *PartnerDirectory) LoadPartners(partners []*entities.Partner) error {
	for _, partner := range partners {
		if err := d.AddPartner(partner); err != nil {
			return err
		}
	}
	return nil
}

// AddPartner adds a partner; a site may belong to one partner only
func (d *PartnerDirectory) AddPartner(partner *entities.Partner) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.partnersMap[partner.BPNL]; exists {
		return fmt.Errorf("partner %s: %w", partner.BPNL, repositories.ErrAlreadyExists)
	}
	for _, site := range partner.Sites {
		if owner, taken := d.sitesMap[site.BPNS]; taken {
			return fmt.Errorf("site %s already belongs to partner %s", site.BPNS, owner)
		}
	}
	for _, site := range partner.Sites {
		d.sitesMap[site.BPNS] = partner.BPNL
	}
	d.partnersMap[partner.BPNL] = len(d.partners)
	d.partners = append(d.partners, partner)
	return nil
}

// OwnPartner returns the partner representing the own company
func (d *PartnerDirectory) OwnPartner(ctx context.Context) (*entities.Partner, error) {
	if d.ownBPNL == "" {
		return nil, fmt.Errorf("own partner: %w", repositories.ErrNotFound)
	}
	return d.ByBPNL(ctx, d.ownBPNL)
}

// BySite returns the partner owning a site
func (d *PartnerDirectory) BySite(ctx context.Context, bpns entities.BPNS) (*entities.Partner, error) {
	d.mu.RLock()
	bpnl, exists := d.sitesMap[bpns]
	d.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("site %s: %w", bpns, repositories.ErrNotFound)
	}
	return d.ByBPNL(ctx, bpnl)
}

// ByBPNL returns a partner by legal entity
func (d *PartnerDirectory) ByBPNL(_ context.Context, bpnl entities.BPNL) (*entities.Partner, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	index, exists := d.partnersMap[bpnl]
	if !exists {
		return nil, fmt.Errorf("partner %s: %w", bpnl, repositories.ErrNotFound)
	}
	return d.partners[index], nil
}

// All returns every partner in load order
func (d *PartnerDirectory) All(_ context.Context) ([]*entities.Partner, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make([]*entities.Partner, len(d.partners))
	copy(out, d.partners)
	return out, nil
}
