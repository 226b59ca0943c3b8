package entities

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Stock is the quantity of a material on hand at a site.
// Inbound stock holds bought materials, outbound stock holds products
// waiting to be shipped.
type Stock struct {
	QuantityRecord
	Location     BPNS      `json:"location"`
	LocationBPNA BPNA      `json:"location_bpna,omitempty"`
	Direction    Direction `json:"direction"`
}

// Kind returns KindStock
func (s *Stock) Kind() RecordKind {
	return KindStock
}

// NewStock creates a validated Stock record
func NewStock(
	material *Material,
	partner *Partner,
	location BPNS,
	direction Direction,
	quantity decimal.Decimal,
	unit MeasurementUnit,
	lastUpdated time.Time,
) (*Stock, error) {
	if material == nil {
		return nil, fmt.Errorf("material cannot be empty")
	}
	if location == "" {
		return nil, fmt.Errorf("location cannot be empty")
	}
	if quantity.IsNegative() {
		return nil, fmt.Errorf("quantity cannot be negative, got %s", quantity)
	}
	if unit == "" {
		return nil, fmt.Errorf("measurement unit cannot be empty")
	}

	return &Stock{
		QuantityRecord: QuantityRecord{
			ID:          uuid.New(),
			Material:    material,
			Partner:     partner,
			Quantity:    quantity,
			Unit:        unit,
			LastUpdated: &lastUpdated,
			Provenance:  Own,
		},
		Location:  location,
		Direction: direction,
	}, nil
}
