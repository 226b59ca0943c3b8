package entities

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Direction is the material flow relative to the own partner
type Direction int

const (
	Inbound Direction = iota
	Outbound
)

// String method for Direction enum
func (d Direction) String() string {
	switch d {
	case Inbound:
		return "Inbound"
	case Outbound:
		return "Outbound"
	default:
		return "Unknown"
	}
}

// ParseDirection parses "inbound" or "outbound", case-insensitive
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "inbound":
		return Inbound, nil
	case "outbound":
		return Outbound, nil
	default:
		return Inbound, fmt.Errorf("invalid direction: %s (expected: inbound or outbound)", s)
	}
}

// Provenance tells whether a record was created by the own partner or
// received from a partner's report
type Provenance int

const (
	Own Provenance = iota
	Reported
)

// String method for Provenance enum
func (p Provenance) String() string {
	switch p {
	case Own:
		return "Own"
	case Reported:
		return "Reported"
	default:
		return "Unknown"
	}
}

// ParseProvenance parses "own" or "reported", case-insensitive
func ParseProvenance(s string) (Provenance, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "own":
		return Own, nil
	case "reported":
		return Reported, nil
	default:
		return Own, fmt.Errorf("invalid provenance: %s (expected: own or reported)", s)
	}
}

// RecordKind tags the concrete record type
type RecordKind int

const (
	KindDemand RecordKind = iota
	KindDelivery
	KindProduction
	KindStock
	KindReportedCoverage
)

// String method for RecordKind enum
func (k RecordKind) String() string {
	switch k {
	case KindDemand:
		return "demand"
	case KindDelivery:
		return "delivery"
	case KindProduction:
		return "production"
	case KindStock:
		return "stock"
	case KindReportedCoverage:
		return "reported-coverage"
	default:
		return "unknown"
	}
}

// ParseRecordKind parses a kind name as printed by String
func ParseRecordKind(s string) (RecordKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "demand":
		return KindDemand, nil
	case "delivery":
		return KindDelivery, nil
	case "production":
		return KindProduction, nil
	case "stock":
		return KindStock, nil
	case "reported-coverage":
		return KindReportedCoverage, nil
	default:
		return KindDemand, fmt.Errorf("invalid record kind: %s", s)
	}
}

// QuantityRecord holds the fields shared by every exchanged record.
// Records are replaced as a whole, never patched.
type QuantityRecord struct {
	ID          uuid.UUID       `json:"id"`
	Material    *Material       `json:"material"`
	Partner     *Partner        `json:"partner"`
	Quantity    decimal.Decimal `json:"quantity"`
	Unit        MeasurementUnit `json:"unit"`
	LastUpdated *time.Time      `json:"last_updated,omitempty"`
	Provenance  Provenance      `json:"provenance"`
}

// Record is implemented by *Demand, *Delivery, *Production, *Stock and
// *ReportedCoverage
type Record interface {
	RecordID() uuid.UUID
	Kind() RecordKind
	Base() *QuantityRecord
}

// RecordID returns the record identity
func (r *QuantityRecord) RecordID() uuid.UUID {
	return r.ID
}

// Base returns the shared record fields
func (r *QuantityRecord) Base() *QuantityRecord {
	return r
}

// MaterialNumber returns the material number or "" when no material is set
func (r *QuantityRecord) MaterialNumber() MaterialNumber {
	if r.Material == nil {
		return ""
	}
	return r.Material.Number
}

// PartnerBPNL returns the partner BPNL or "" when no partner is set
func (r *QuantityRecord) PartnerBPNL() BPNL {
	if r.Partner == nil {
		return ""
	}
	return r.Partner.BPNL
}

// MarshalText encodes the kind by name
func (k RecordKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText decodes a kind name
func (k *RecordKind) UnmarshalText(text []byte) error {
	parsed, err := ParseRecordKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
