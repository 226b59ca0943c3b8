package entities

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestStock_Validation(t *testing.T) {
	updated := time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC)
	material := &Material{Number: "MAT-001", MaterialFlag: true}

	validStock, err := NewStock(material, nil, "BPNS4444444444XX", Inbound, decimal.NewFromInt(10), UnitPiece, updated)
	if err != nil {
		t.Fatalf("Expected valid stock creation to succeed: %v", err)
	}
	if !validStock.Quantity.Equal(decimal.NewFromInt(10)) {
		t.Errorf("Expected quantity 10, got %s", validStock.Quantity)
	}
	if validStock.Kind() != KindStock {
		t.Errorf("Expected kind stock, got %s", validStock.Kind())
	}

	testCases := []struct {
		name        string
		material    *Material
		location    BPNS
		quantity    decimal.Decimal
		unit        MeasurementUnit
		expectError string
	}{
		{"missing material", nil, "BPNS4444444444XX", decimal.NewFromInt(10), UnitPiece, "material cannot be empty"},
		{"empty location", material, "", decimal.NewFromInt(10), UnitPiece, "location cannot be empty"},
		{"negative quantity", material, "BPNS4444444444XX", decimal.NewFromInt(-5), UnitPiece, "quantity cannot be negative, got -5"},
		{"missing unit", material, "BPNS4444444444XX", decimal.NewFromInt(5), "", "measurement unit cannot be empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStock(tc.material, nil, tc.location, Inbound, tc.quantity, tc.unit, updated)
			if err == nil {
				t.Fatalf("Expected error for %s, but got none", tc.name)
			}
			if err.Error() != tc.expectError {
				t.Errorf("Expected error %q, got %q", tc.expectError, err.Error())
			}
		})
	}
}

func TestDirection_String(t *testing.T) {
	if Inbound.String() != "Inbound" {
		t.Errorf("Expected Inbound, got %s", Inbound.String())
	}
	if Outbound.String() != "Outbound" {
		t.Errorf("Expected Outbound, got %s", Outbound.String())
	}

	direction, err := ParseDirection("OUTBOUND")
	if err != nil || direction != Outbound {
		t.Errorf("Expected Outbound, got %v (%v)", direction, err)
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Error("Expected error for unknown direction")
	}
}
