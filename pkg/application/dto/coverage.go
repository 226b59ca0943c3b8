package dto

import (
	"fmt"
	"time"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// CoverageReport contains a projection together with the series it was computed from
type CoverageReport struct {
	Role          entities.SupplyRole       `json:"role"`
	Material      entities.MaterialNumber   `json:"material"`
	Partner       entities.BPNL             `json:"partner"`
	Site          entities.BPNS             `json:"site"`
	Start         time.Time                 `json:"start"`
	InitialStock  float64                   `json:"initial_stock"`
	Demand        []float64                 `json:"demand"`
	Replenishment []float64                 `json:"replenishment"`
	Results       []entities.CoverageResult `json:"results"`
}

// QuantityReport contains per-day quantities of one record kind
type QuantityReport struct {
	Kind       entities.RecordKind     `json:"kind"`
	Material   entities.MaterialNumber `json:"material"`
	Start      time.Time               `json:"start"`
	Quantities []float64               `json:"quantities"`
}

// CoverageCacheKey is used for memoizing projections
type CoverageCacheKey struct {
	Role        entities.SupplyRole
	Material    entities.MaterialNumber
	Partner     entities.BPNL
	Site        entities.BPNS
	Start       time.Time
	HorizonDays int
}

func (k CoverageCacheKey) String() string {
	return fmt.Sprintf("%s:%s:%s:%s:%s:%d",
		k.Role, k.Material, k.Partner, k.Site, k.Start.Format("2006-01-02"), k.HorizonDays)
}
