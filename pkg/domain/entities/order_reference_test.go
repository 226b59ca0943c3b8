package entities

import "testing"

func TestOrderPositionReference_Consistent(t *testing.T) {
	testCases := []struct {
		name       string
		ref        OrderPositionReference
		consistent bool
	}{
		{"all absent", OrderPositionReference{}, true},
		{"customer order and position", OrderPositionReference{CustomerOrderID: "C-1", CustomerOrderPositionID: "10"}, true},
		{"complete", OrderPositionReference{CustomerOrderID: "C-1", CustomerOrderPositionID: "10", SupplierOrderID: "S-1"}, true},
		{"customer order without position", OrderPositionReference{CustomerOrderID: "C-1"}, false},
		{"position without customer order", OrderPositionReference{CustomerOrderPositionID: "10"}, false},
		{"supplier order only", OrderPositionReference{SupplierOrderID: "S-1"}, false},
		{"supplier order and customer order", OrderPositionReference{CustomerOrderID: "C-1", SupplierOrderID: "S-1"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.ref.Consistent(); got != tc.consistent {
				t.Errorf("Expected Consistent() = %v, got %v", tc.consistent, got)
			}
		})
	}
}

func TestIncoterm_Responsibility(t *testing.T) {
	testCases := []struct {
		code     string
		expected Responsibility
	}{
		{"EXW", CustomerResponsibility},
		{"fca", PartialResponsibility},
		{"CIP", PartialResponsibility},
		{"DAP", SupplierResponsibility},
		{"DDP", SupplierResponsibility},
	}

	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			incoterm, err := ParseIncoterm(tc.code)
			if err != nil {
				t.Fatalf("Expected %s to parse: %v", tc.code, err)
			}
			responsibility, ok := incoterm.Responsibility()
			if !ok {
				t.Fatalf("Expected responsibility for %s", incoterm)
			}
			if responsibility != tc.expected {
				t.Errorf("Expected %s, got %s", tc.expected, responsibility)
			}
		})
	}

	if _, ok := Incoterm("").Responsibility(); ok {
		t.Error("Expected absent incoterm to have no responsibility")
	}
	if _, err := ParseIncoterm("XYZ"); err == nil {
		t.Error("Expected error for unknown incoterm")
	}
}
