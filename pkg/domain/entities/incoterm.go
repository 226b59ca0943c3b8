package entities

import (
	"fmt"
	"strings"
)

// Responsibility names the party bearing logistics responsibility for a shipment
type Responsibility int

const (
	SupplierResponsibility Responsibility = iota
	CustomerResponsibility
	PartialResponsibility
)

// String method for Responsibility enum
func (r Responsibility) String() string {
	switch r {
	case SupplierResponsibility:
		return "Supplier"
	case CustomerResponsibility:
		return "Customer"
	case PartialResponsibility:
		return "Partial"
	default:
		return "Unknown"
	}
}

// Incoterm is an Incoterms 2020 rule code. The empty value means absent.
type Incoterm string

const (
	EXW Incoterm = "EXW"
	FCA Incoterm = "FCA"
	FAS Incoterm = "FAS"
	FOB Incoterm = "FOB"
	CFR Incoterm = "CFR"
	CIF Incoterm = "CIF"
	CPT Incoterm = "CPT"
	CIP Incoterm = "CIP"
	DAP Incoterm = "DAP"
	DPU Incoterm = "DPU"
	DDP Incoterm = "DDP"
)

var incotermResponsibility = map[Incoterm]Responsibility{
	EXW: CustomerResponsibility,
	FCA: PartialResponsibility,
	FAS: PartialResponsibility,
	FOB: PartialResponsibility,
	CFR: PartialResponsibility,
	CIF: PartialResponsibility,
	CPT: PartialResponsibility,
	CIP: PartialResponsibility,
	DAP: SupplierResponsibility,
	DPU: SupplierResponsibility,
	DDP: SupplierResponsibility,
}

// ParseIncoterm parses an incoterm code, case-insensitive. An empty code yields the absent incoterm.
func ParseIncoterm(code string) (Incoterm, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return "", nil
	}
	incoterm := Incoterm(code)
	if _, ok := incotermResponsibility[incoterm]; !ok {
		return "", fmt.Errorf("invalid incoterm: %s", code)
	}
	return incoterm, nil
}

// Responsibility returns the responsibility classification; ok is false for
// an absent or unknown incoterm.
func (i Incoterm) Responsibility() (Responsibility, bool) {
	r, ok := incotermResponsibility[i]
	return r, ok
}
