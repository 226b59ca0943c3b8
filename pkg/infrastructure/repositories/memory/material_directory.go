package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
)

// MaterialDirectory provides in-memory material master data and
// material-partner relations
type MaterialDirectory struct {
	mu           sync.RWMutex
	materials    []entities.Material
	materialsMap map[entities.MaterialNumber]int
	relations    map[relationKey]entities.MaterialPartnerRelation
}

type relationKey struct {
	material entities.MaterialNumber
	partner  entities.BPNL
}

// NewMaterialDirectory creates a new in-memory material directory
func NewMaterialDirectory(expectedMaterials int) *MaterialDirectory {
	return &MaterialDirectory{
		materials:    make([]entities.Material, 0, expectedMaterials),
		materialsMap: make(map[entities.MaterialNumber]int, expectedMaterials),
		relations:    make(map[relationKey]entities.MaterialPartnerRelation),
	}
}

// Verify interface compliance
var (
	_ repositories.MaterialDirectory         = (*MaterialDirectory)(nil)
	_ repositories.MaterialRelationDirectory = (*MaterialDirectory)(nil)
)

// LoadMaterials loads materials into the directory
func (d *MaterialDirectory) LoadMaterials(materials []*entities.Material) error {
	for _, material := range materials {
		if err := d.AddMaterial(*material); err != nil {
			return err
		}
	}
	return nil
}

// AddMaterial adds a material to the directory
func (d *MaterialDirectory) AddMaterial(material entities.Material) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.materialsMap[material.Number]; exists {
		return fmt.Errorf("material %s: %w", material.Number, repositories.ErrAlreadyExists)
	}
	d.materialsMap[material.Number] = len(d.materials)
	d.materials = append(d.materials, material)
	return nil
}

// LoadRelations loads material-partner relations; later entries replace earlier ones
func (d *MaterialDirectory) LoadRelations(relations []*entities.MaterialPartnerRelation) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for _, relation := range relations {
		if _, exists := d.materialsMap[relation.Material]; !exists {
			return fmt.Errorf("relation for material %s: %w", relation.Material, repositories.ErrNotFound)
		}
		d.relations[relationKey{relation.Material, relation.Partner}] = *relation
	}
	return nil
}

// ByNumber returns a material by number
func (d *MaterialDirectory) ByNumber(_ context.Context, number entities.MaterialNumber) (*entities.Material, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	index, exists := d.materialsMap[number]
	if !exists {
		return nil, fmt.Errorf("material %s: %w", number, repositories.ErrNotFound)
	}
	return &d.materials[index], nil
}

// All returns every material in load order
func (d *MaterialDirectory) All(_ context.Context) ([]*entities.Material, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	var materials []*entities.Material
	for i := range d.materials {
		materials = append(materials, &d.materials[i])
	}
	return materials, nil
}

// PartnerSupplies reports whether the partner sells the material to the own partner
func (d *MaterialDirectory) PartnerSupplies(_ context.Context, material entities.MaterialNumber, partner entities.BPNL) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.relations[relationKey{material, partner}].Supplies, nil
}

// PartnerOrders reports whether the partner buys the material from the own partner
func (d *MaterialDirectory) PartnerOrders(_ context.Context, material entities.MaterialNumber, partner entities.BPNL) (bool, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.relations[relationKey{material, partner}].Orders, nil
}
