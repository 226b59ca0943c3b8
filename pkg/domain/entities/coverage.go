package entities

import (
	"fmt"
	"strings"
	"time"
)

// SupplyRole selects which side of the supply relation a projection is computed for
type SupplyRole int

const (
	// CustomerRole projects material stock: own demand drains it, inbound deliveries refill it
	CustomerRole SupplyRole = iota
	// SupplierRole projects product stock: outbound deliveries drain it, production refills it
	SupplierRole
)

// String method for SupplyRole enum
func (r SupplyRole) String() string {
	switch r {
	case CustomerRole:
		return "customer"
	case SupplierRole:
		return "supplier"
	default:
		return "unknown"
	}
}

// ParseSupplyRole parses "customer" or "supplier"
func ParseSupplyRole(s string) (SupplyRole, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "customer":
		return CustomerRole, nil
	case "supplier":
		return SupplierRole, nil
	default:
		return CustomerRole, fmt.Errorf("invalid supply role: %s (expected: customer or supplier)", s)
	}
}

// CoverageResult is the days of supply of a material on one calendar day.
// It is recomputed per query and never the source of truth.
type CoverageResult struct {
	Material     MaterialNumber `json:"material"`
	Day          time.Time      `json:"day"`
	DaysOfSupply float64        `json:"days_of_supply"`
}

// MarshalText encodes the role by name
func (r SupplyRole) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText decodes a role name
func (r *SupplyRole) UnmarshalText(text []byte) error {
	parsed, err := ParseSupplyRole(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}
