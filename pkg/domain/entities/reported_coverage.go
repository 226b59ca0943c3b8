package entities

import "time"

// ReportedCoverage is the days of supply a partner reported for one day at
// one of its stock locations. CustomerRole values come from customers
// covering their demand of own products, SupplierRole values from suppliers
// covering their deliveries of own materials. Quantity and Unit stay unset.
type ReportedCoverage struct {
	QuantityRecord
	Role              SupplyRole `json:"role"`
	Day               *time.Time `json:"day,omitempty"`
	DaysOfSupply      float64    `json:"days_of_supply"`
	StockLocationBPNS BPNS       `json:"stock_location_bpns"`
	StockLocationBPNA BPNA       `json:"stock_location_bpna"`
}

// Kind returns KindReportedCoverage
func (c *ReportedCoverage) Kind() RecordKind {
	return KindReportedCoverage
}

// Direction returns the own material flow the report covers: inbound for
// supplier reports, outbound for customer reports
func (c *ReportedCoverage) Direction() Direction {
	if c.Role == SupplierRole {
		return Inbound
	}
	return Outbound
}
