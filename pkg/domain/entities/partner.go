package entities

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/google/uuid"
)

// BPNL identifies a legal entity
type BPNL string

// BPNS identifies a site
type BPNS string

// BPNA identifies an address
type BPNA string

// Site is a physical location owned by a partner
type Site struct {
	BPNS      BPNS   `json:"bpns"`
	Name      string `json:"name"`
	Addresses []BPNA `json:"addresses,omitempty"`
}

// Partner is a business partner or the own company.
// Sites is kept sorted by BPNS without duplicates; a nil slice means the
// site set is unknown, which differs from an empty set.
type Partner struct {
	ID    uuid.UUID `json:"id"`
	BPNL  BPNL      `json:"bpnl"`
	Name  string    `json:"name"`
	Sites []Site    `json:"sites"`
}

// NewPartner creates a validated Partner with an ordered, unique site set
func NewPartner(bpnl BPNL, name string, sites []Site) (*Partner, error) {
	if bpnl == "" {
		return nil, fmt.Errorf("partner BPNL cannot be empty")
	}
	for _, site := range sites {
		if site.BPNS == "" {
			return nil, fmt.Errorf("site of partner %s has an empty BPNS", bpnl)
		}
	}

	return &Partner{
		ID:    uuid.New(),
		BPNL:  bpnl,
		Name:  name,
		Sites: normalizeSites(sites),
	}, nil
}

// AddSite inserts a site keeping the set ordered and unique
func (p *Partner) AddSite(site Site) {
	p.Sites = normalizeSites(append(p.Sites, site))
}

// OwnsSite reports whether bpns is one of the partner's sites
func (p *Partner) OwnsSite(bpns BPNS) bool {
	if p == nil || bpns == "" {
		return false
	}
	return slices.ContainsFunc(p.Sites, func(s Site) bool {
		return s.BPNS == bpns
	})
}

// SameAs compares partners by legal entity
func (p *Partner) SameAs(other *Partner) bool {
	if p == nil || other == nil {
		return false
	}
	return p.BPNL == other.BPNL
}

// SiteNumbers returns the BPNS of every site in order
func (p *Partner) SiteNumbers() []BPNS {
	numbers := make([]BPNS, 0, len(p.Sites))
	for _, site := range p.Sites {
		numbers = append(numbers, site.BPNS)
	}
	return numbers
}

func normalizeSites(sites []Site) []Site {
	if sites == nil {
		return nil
	}
	out := slices.Clone(sites)
	slices.SortStableFunc(out, func(a, b Site) int {
		return cmp.Compare(a.BPNS, b.BPNS)
	})
	return slices.CompactFunc(out, func(a, b Site) bool {
		return a.BPNS == b.BPNS
	})
}
