package entities

import (
	"fmt"
	"time"
)

// DemandCategory classifies a demand
type DemandCategory string

const (
	DemandDefault        DemandCategory = "0001"
	DemandAfterSales     DemandCategory = "A1S1"
	DemandSeries         DemandCategory = "SR99"
	DemandPhaseInPeriod  DemandCategory = "PI01"
	DemandPhaseOutPeriod DemandCategory = "PO01"
	DemandSingleOrder    DemandCategory = "OS01"
	DemandSmallSeries    DemandCategory = "OI01"
	DemandExtraordinary  DemandCategory = "ED01"
)

var demandCategories = []DemandCategory{
	DemandDefault,
	DemandAfterSales,
	DemandSeries,
	DemandPhaseInPeriod,
	DemandPhaseOutPeriod,
	DemandSingleOrder,
	DemandSmallSeries,
	DemandExtraordinary,
}

// ParseDemandCategory parses a category code. An empty code yields the absent category.
func ParseDemandCategory(code string) (DemandCategory, error) {
	if code == "" {
		return "", nil
	}
	for _, category := range demandCategories {
		if string(category) == code {
			return category, nil
		}
	}
	return "", fmt.Errorf("invalid demand category code: %s", code)
}

// Demand is a material demand per calendar day.
// Own demands are placed by the own partner at its site towards a supplier;
// reported demands are placed by a customer at the customer's site.
type Demand struct {
	QuantityRecord
	Day              *time.Time     `json:"day,omitempty"`
	Category         DemandCategory `json:"category"`
	DemandLocation   BPNS           `json:"demand_location"`
	SupplierLocation BPNS           `json:"supplier_location,omitempty"`
}

// Kind returns KindDemand
func (d *Demand) Kind() RecordKind {
	return KindDemand
}
