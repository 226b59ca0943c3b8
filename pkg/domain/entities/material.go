package entities

import "fmt"

// MaterialNumber is the own material number identifying a material
type MaterialNumber string

// Material represents an item exchanged with partners.
// A material may be bought (MaterialFlag), sold (ProductFlag) or both.
type Material struct {
	Number       MaterialNumber `json:"number"`
	Name         string         `json:"name"`
	MaterialFlag bool           `json:"material_flag"`
	ProductFlag  bool           `json:"product_flag"`
}

// NewMaterial creates a validated Material
func NewMaterial(number MaterialNumber, name string, materialFlag, productFlag bool) (*Material, error) {
	if number == "" {
		return nil, fmt.Errorf("material number cannot be empty")
	}
	if !materialFlag && !productFlag {
		return nil, fmt.Errorf("material %s must be flagged as material or product", number)
	}

	return &Material{
		Number:       number,
		Name:         name,
		MaterialFlag: materialFlag,
		ProductFlag:  productFlag,
	}, nil
}

// MeasurementUnit is the unit a quantity is expressed in
type MeasurementUnit string

const (
	UnitPiece       MeasurementUnit = "unit:piece"
	UnitSet         MeasurementUnit = "unit:set"
	UnitPair        MeasurementUnit = "unit:pair"
	UnitPage        MeasurementUnit = "unit:page"
	UnitCycle       MeasurementUnit = "unit:cycle"
	UnitKilogram    MeasurementUnit = "unit:kilogram"
	UnitGram        MeasurementUnit = "unit:gram"
	UnitTonne       MeasurementUnit = "unit:tonneMetricTon"
	UnitLitre       MeasurementUnit = "unit:litre"
	UnitCubicMetre  MeasurementUnit = "unit:cubicMetre"
	UnitMetre       MeasurementUnit = "unit:metre"
	UnitSquareMetre MeasurementUnit = "unit:squareMetre"
	UnitKilowattHr  MeasurementUnit = "unit:kilowattHour"
)

var knownUnits = map[MeasurementUnit]struct{}{
	UnitPiece:       {},
	UnitSet:         {},
	UnitPair:        {},
	UnitPage:        {},
	UnitCycle:       {},
	UnitKilogram:    {},
	UnitGram:        {},
	UnitTonne:       {},
	UnitLitre:       {},
	UnitCubicMetre:  {},
	UnitMetre:       {},
	UnitSquareMetre: {},
	UnitKilowattHr:  {},
}

// ParseMeasurementUnit parses a unit code. An empty code yields the absent unit.
func ParseMeasurementUnit(code string) (MeasurementUnit, error) {
	if code == "" {
		return "", nil
	}
	unit := MeasurementUnit(code)
	if _, ok := knownUnits[unit]; !ok {
		return "", fmt.Errorf("invalid measurement unit: %s", code)
	}
	return unit, nil
}

// MaterialPartnerRelation states how a partner trades a material with the own partner
type MaterialPartnerRelation struct {
	Material MaterialNumber `json:"material"`
	Partner  BPNL           `json:"partner"`
	Supplies bool           `json:"supplies"`
	Orders   bool           `json:"orders"`
}
