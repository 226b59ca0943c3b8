package validation

import (
	"context"
	"sync"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
)

// OwnPartnerSource supplies the own partner for a validation
type OwnPartnerSource interface {
	OwnPartner(ctx context.Context) (*entities.Partner, error)
}

type fixedOwnPartner struct {
	partner *entities.Partner
}

// FixedOwnPartner returns a source that always yields partner
func FixedOwnPartner(partner *entities.Partner) OwnPartnerSource {
	return fixedOwnPartner{partner: partner}
}

func (f fixedOwnPartner) OwnPartner(context.Context) (*entities.Partner, error) {
	if f.partner == nil {
		return nil, ErrOwnPartnerUnresolved
	}
	return f.partner, nil
}

// DirectoryOwnPartner resolves the own partner through a directory on first
// use and keeps it for the lifetime of the source. Failed lookups are not
// cached. Safe for concurrent use.
type DirectoryOwnPartner struct {
	directory repositories.PartnerDirectory

	mu      sync.Mutex
	partner *entities.Partner
}

// NewDirectoryOwnPartner creates a lazily resolving own partner source
func NewDirectoryOwnPartner(directory repositories.PartnerDirectory) *DirectoryOwnPartner {
	return &DirectoryOwnPartner{directory: directory}
}

func (d *DirectoryOwnPartner) OwnPartner(ctx context.Context) (*entities.Partner, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.partner != nil {
		return d.partner, nil
	}
	partner, err := d.directory.OwnPartner(ctx)
	if err != nil {
		return nil, err
	}
	if partner == nil {
		return nil, ErrOwnPartnerUnresolved
	}
	d.partner = partner
	return partner, nil
}
