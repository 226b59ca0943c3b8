package csv

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

const (
	PartnersFile    = "partners.csv"
	MaterialsFile   = "materials.csv"
	RelationsFile   = "relations.csv"
	DemandsFile     = "demands.csv"
	DeliveriesFile  = "deliveries.csv"
	ProductionsFile = "productions.csv"
	StocksFile      = "stocks.csv"
	CoveragesFile   = "reported_coverages.csv"
)

var (
	partnersHeader  = []string{"bpnl", "name", "site_bpns", "site_name"}
	materialsHeader = []string{"material_number", "name", "material_flag", "product_flag"}
	relationsHeader = []string{"material_number", "partner_bpnl", "supplies", "orders"}
	recordHeader    = []string{"id", "provenance", "material_number", "partner_bpnl", "quantity", "unit", "last_updated"}
	orderHeader     = []string{"customer_order_id", "customer_order_position_id", "supplier_order_id"}

	demandsHeader    = concat(recordHeader, []string{"day", "category", "demand_location", "supplier_location"})
	deliveriesHeader = concat(recordHeader, []string{
		"incoterm", "origin_bpns", "destination_bpns",
		"departure_type", "departure_time", "arrival_type", "arrival_time", "tracking_number",
	}, orderHeader)
	productionsHeader = concat(recordHeader, []string{"estimated_completion", "production_site"}, orderHeader)
	stocksHeader      = concat(recordHeader, []string{"direction", "location"})
	coveragesHeader   = []string{
		"id", "material_number", "partner_bpnl", "last_updated",
		"role", "day", "days_of_supply", "stock_location_bpns", "stock_location_bpna",
	}
)

// Scenario is the content of a scenario directory
type Scenario struct {
	Partners    []*entities.Partner
	Materials   []*entities.Material
	Relations   []*entities.MaterialPartnerRelation
	Demands     []*entities.Demand
	Deliveries  []*entities.Delivery
	Productions []*entities.Production
	Stocks      []*entities.Stock
	Coverages   []*entities.ReportedCoverage
}

// Records returns every record of the scenario
func (s *Scenario) Records() []entities.Record {
	records := make([]entities.Record, 0, len(s.Demands)+len(s.Deliveries)+len(s.Productions)+len(s.Stocks)+len(s.Coverages))
	for _, d := range s.Demands {
		records = append(records, d)
	}
	for _, d := range s.Deliveries {
		records = append(records, d)
	}
	for _, p := range s.Productions {
		records = append(records, p)
	}
	for _, st := range s.Stocks {
		records = append(records, st)
	}
	for _, c := range s.Coverages {
		records = append(records, c)
	}
	return records
}

// Loader handles loading scenario data from CSV files.
// Dates without a time are read as midnight in the calendar zone.
type Loader struct {
	calendar entities.Calendar
}

// NewLoader creates a new CSV loader
func NewLoader(calendar entities.Calendar) *Loader {
	return &Loader{calendar: calendar}
}

// LoadScenario loads a scenario directory. Partners and materials are
// required; record files may be missing.
func (l *Loader) LoadScenario(dir string) (*Scenario, error) {
	s := &Scenario{}
	var err error

	if s.Partners, err = l.LoadPartners(filepath.Join(dir, PartnersFile)); err != nil {
		return nil, err
	}
	if s.Materials, err = l.LoadMaterials(filepath.Join(dir, MaterialsFile)); err != nil {
		return nil, err
	}
	ref := NewLookup(s.Partners, s.Materials)

	if s.Relations, err = optional(l.LoadRelations(filepath.Join(dir, RelationsFile))); err != nil {
		return nil, err
	}
	if s.Demands, err = optional(l.LoadDemands(filepath.Join(dir, DemandsFile), ref)); err != nil {
		return nil, err
	}
	if s.Deliveries, err = optional(l.LoadDeliveries(filepath.Join(dir, DeliveriesFile), ref)); err != nil {
		return nil, err
	}
	if s.Productions, err = optional(l.LoadProductions(filepath.Join(dir, ProductionsFile), ref)); err != nil {
		return nil, err
	}
	if s.Stocks, err = optional(l.LoadStocks(filepath.Join(dir, StocksFile), ref)); err != nil {
		return nil, err
	}
	if s.Coverages, err = optional(l.LoadReportedCoverages(filepath.Join(dir, CoveragesFile), ref)); err != nil {
		return nil, err
	}
	return s, nil
}

// LoadPartners loads partners, one row per site. Rows of the same BPNL are
// merged; a row without site BPNS declares a partner without sites.
func (l *Loader) LoadPartners(filename string) ([]*entities.Partner, error) {
	rows, err := readTable(filename, "partners", partnersHeader)
	if err != nil {
		return nil, err
	}

	var partners []*entities.Partner
	byBPNL := make(map[entities.BPNL]*entities.Partner)
	for i, row := range rows {
		bpnl := entities.BPNL(row[0])
		partner, exists := byBPNL[bpnl]
		if !exists {
			partner, err = entities.NewPartner(bpnl, row[1], []entities.Site{})
			if err != nil {
				return nil, fmt.Errorf("partners CSV row %d: %w", i+2, err)
			}
			byBPNL[bpnl] = partner
			partners = append(partners, partner)
		}
		if row[2] != "" {
			partner.AddSite(entities.Site{BPNS: entities.BPNS(row[2]), Name: row[3]})
		}
	}
	return partners, nil
}

// LoadMaterials loads materials from a CSV file
func (l *Loader) LoadMaterials(filename string) ([]*entities.Material, error) {
	rows, err := readTable(filename, "materials", materialsHeader)
	if err != nil {
		return nil, err
	}

	materials := make([]*entities.Material, 0, len(rows))
	for i, row := range rows {
		materialFlag, err := parseBool(row[2])
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: invalid material_flag: %w", i+2, err)
		}
		productFlag, err := parseBool(row[3])
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: invalid product_flag: %w", i+2, err)
		}
		material, err := entities.NewMaterial(entities.MaterialNumber(row[0]), row[1], materialFlag, productFlag)
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		materials = append(materials, material)
	}
	return materials, nil
}

// LoadRelations loads material partner relations from a CSV file
func (l *Loader) LoadRelations(filename string) ([]*entities.MaterialPartnerRelation, error) {
	rows, err := readTable(filename, "relations", relationsHeader)
	if err != nil {
		return nil, err
	}

	relations := make([]*entities.MaterialPartnerRelation, 0, len(rows))
	for i, row := range rows {
		supplies, err := parseBool(row[2])
		if err != nil {
			return nil, fmt.Errorf("relations CSV row %d: invalid supplies: %w", i+2, err)
		}
		orders, err := parseBool(row[3])
		if err != nil {
			return nil, fmt.Errorf("relations CSV row %d: invalid orders: %w", i+2, err)
		}
		relations = append(relations, &entities.MaterialPartnerRelation{
			Material: entities.MaterialNumber(row[0]),
			Partner:  entities.BPNL(row[1]),
			Supplies: supplies,
			Orders:   orders,
		})
	}
	return relations, nil
}

// LoadDemands loads demands from a CSV file
func (l *Loader) LoadDemands(filename string, ref *Lookup) ([]*entities.Demand, error) {
	return loadRecords(filename, "demands", demandsHeader, func(row []string) (*entities.Demand, error) {
		base, err := l.parseBase(row, ref)
		if err != nil {
			return nil, err
		}
		day, err := l.parseTime("day", row[7])
		if err != nil {
			return nil, err
		}
		category, err := entities.ParseDemandCategory(row[8])
		if err != nil {
			return nil, err
		}
		return &entities.Demand{
			QuantityRecord:   base,
			Day:              day,
			Category:         category,
			DemandLocation:   entities.BPNS(row[9]),
			SupplierLocation: entities.BPNS(row[10]),
		}, nil
	})
}

// LoadDeliveries loads deliveries from a CSV file
func (l *Loader) LoadDeliveries(filename string, ref *Lookup) ([]*entities.Delivery, error) {
	return loadRecords(filename, "deliveries", deliveriesHeader, func(row []string) (*entities.Delivery, error) {
		base, err := l.parseBase(row, ref)
		if err != nil {
			return nil, err
		}
		incoterm, err := entities.ParseIncoterm(row[7])
		if err != nil {
			return nil, err
		}
		departureType, err := entities.ParseEventType(row[10])
		if err != nil {
			return nil, err
		}
		departureTime, err := l.parseTime("departure_time", row[11])
		if err != nil {
			return nil, err
		}
		arrivalType, err := entities.ParseEventType(row[12])
		if err != nil {
			return nil, err
		}
		arrivalTime, err := l.parseTime("arrival_time", row[13])
		if err != nil {
			return nil, err
		}
		return &entities.Delivery{
			QuantityRecord:         base,
			OrderPositionReference: parseOrderReference(row[15:18]),
			TrackingNumber:         row[14],
			Incoterm:               incoterm,
			OriginBPNS:             entities.BPNS(row[8]),
			DestinationBPNS:        entities.BPNS(row[9]),
			DepartureType:          departureType,
			DepartureTime:          departureTime,
			ArrivalType:            arrivalType,
			ArrivalTime:            arrivalTime,
		}, nil
	})
}

// LoadProductions loads productions from a CSV file
func (l *Loader) LoadProductions(filename string, ref *Lookup) ([]*entities.Production, error) {
	return loadRecords(filename, "productions", productionsHeader, func(row []string) (*entities.Production, error) {
		base, err := l.parseBase(row, ref)
		if err != nil {
			return nil, err
		}
		completion, err := l.parseTime("estimated_completion", row[7])
		if err != nil {
			return nil, err
		}
		return &entities.Production{
			QuantityRecord:         base,
			OrderPositionReference: parseOrderReference(row[9:12]),
			EstimatedCompletion:    completion,
			ProductionSite:         entities.BPNS(row[8]),
		}, nil
	})
}

// LoadStocks loads stocks from a CSV file
func (l *Loader) LoadStocks(filename string, ref *Lookup) ([]*entities.Stock, error) {
	return loadRecords(filename, "stocks", stocksHeader, func(row []string) (*entities.Stock, error) {
		base, err := l.parseBase(row, ref)
		if err != nil {
			return nil, err
		}
		direction, err := entities.ParseDirection(row[7])
		if err != nil {
			return nil, err
		}
		return &entities.Stock{
			QuantityRecord: base,
			Direction:      direction,
			Location:       entities.BPNS(row[8]),
		}, nil
	})
}

// LoadReportedCoverages loads days of supply reported by partners. The rows
// carry no provenance, quantity or unit.
func (l *Loader) LoadReportedCoverages(filename string, ref *Lookup) ([]*entities.ReportedCoverage, error) {
	return loadRecords(filename, "reported coverages", coveragesHeader, func(row []string) (*entities.ReportedCoverage, error) {
		base, err := l.parseBase([]string{row[0], entities.Reported.String(), row[1], row[2], "0", "", row[3]}, ref)
		if err != nil {
			return nil, err
		}
		role, err := entities.ParseSupplyRole(row[4])
		if err != nil {
			return nil, err
		}
		day, err := l.parseTime("day", row[5])
		if err != nil {
			return nil, err
		}
		days, err := strconv.ParseFloat(row[6], 64)
		if err != nil {
			return nil, fmt.Errorf("invalid days_of_supply: %s", row[6])
		}
		return &entities.ReportedCoverage{
			QuantityRecord:    base,
			Role:              role,
			Day:               day,
			DaysOfSupply:      days,
			StockLocationBPNS: entities.BPNS(row[7]),
			StockLocationBPNA: entities.BPNA(row[8]),
		}, nil
	})
}

// Lookup resolves material numbers and BPNLs referenced by record rows
type Lookup struct {
	partners  map[entities.BPNL]*entities.Partner
	materials map[entities.MaterialNumber]*entities.Material
}

// NewLookup builds a Lookup over loaded master data
func NewLookup(partners []*entities.Partner, materials []*entities.Material) *Lookup {
	ref := &Lookup{
		partners:  make(map[entities.BPNL]*entities.Partner, len(partners)),
		materials: make(map[entities.MaterialNumber]*entities.Material, len(materials)),
	}
	for _, p := range partners {
		ref.partners[p.BPNL] = p
	}
	for _, m := range materials {
		ref.materials[m.Number] = m
	}
	return ref
}

// parseBase reads the shared leading columns. Empty material or partner
// columns leave the reference unset so validation can report them.
func (l *Loader) parseBase(row []string, ref *Lookup) (entities.QuantityRecord, error) {
	var base entities.QuantityRecord

	base.ID = uuid.New()
	if row[0] != "" {
		id, err := uuid.Parse(row[0])
		if err != nil {
			return base, fmt.Errorf("invalid id: %s", row[0])
		}
		base.ID = id
	}

	provenance, err := entities.ParseProvenance(row[1])
	if err != nil {
		return base, err
	}
	base.Provenance = provenance

	if row[2] != "" {
		material, ok := ref.materials[entities.MaterialNumber(row[2])]
		if !ok {
			return base, fmt.Errorf("unknown material: %s", row[2])
		}
		base.Material = material
	}
	if row[3] != "" {
		partner, ok := ref.partners[entities.BPNL(row[3])]
		if !ok {
			return base, fmt.Errorf("unknown partner: %s", row[3])
		}
		base.Partner = partner
	}

	base.Quantity, err = decimal.NewFromString(row[4])
	if err != nil {
		return base, fmt.Errorf("invalid quantity: %s", row[4])
	}
	if base.Unit, err = entities.ParseMeasurementUnit(row[5]); err != nil {
		return base, err
	}
	if base.LastUpdated, err = l.parseTime("last_updated", row[6]); err != nil {
		return base, err
	}
	return base, nil
}

// parseTime accepts RFC 3339 timestamps and YYYY-MM-DD dates; empty means absent
func (l *Loader) parseTime(column, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, l.calendar.Location())
	if err != nil {
		return nil, fmt.Errorf("invalid %s format: %s (expected YYYY-MM-DD or RFC 3339)", column, value)
	}
	return &t, nil
}

// Helper functions for parsing CSV records

func loadRecords[T any](filename, name string, header []string, parse func([]string) (T, error)) ([]T, error) {
	rows, err := readTable(filename, name, header)
	if err != nil {
		return nil, err
	}
	records := make([]T, 0, len(rows))
	for i, row := range rows {
		record, err := parse(row)
		if err != nil {
			return nil, fmt.Errorf("%s CSV row %d: %w", name, i+2, err)
		}
		records = append(records, record)
	}
	return records, nil
}

// readTable returns the data rows of a CSV file after checking its header
func readTable(filename, name string, expectedHeader []string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s file %s: %w", name, filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.TrimLeadingSpace = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s CSV: %w", name, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%s CSV must have a header", name)
	}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("%s CSV header mismatch. Expected: %v, Got: %v", name, expectedHeader, records[0])
	}

	rows := records[1:]
	for i, row := range rows {
		if len(row) != len(expectedHeader) {
			return nil, fmt.Errorf("%s CSV row %d: expected %d columns, got %d", name, i+2, len(expectedHeader), len(row))
		}
		for j := range row {
			row[j] = strings.TrimSpace(row[j])
		}
	}
	return rows, nil
}

// optional turns a missing file into an empty result
func optional[T any](values []T, err error) ([]T, error) {
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	return values, err
}

func validateHeader(actual, expected []string) bool {
	if len(actual) != len(expected) {
		return false
	}

	for i, col := range expected {
		if strings.ToLower(strings.TrimSpace(actual[i])) != col {
			return false
		}
	}

	return true
}

func parseBool(s string) (bool, error) {
	if s == "" {
		return false, nil
	}
	return strconv.ParseBool(s)
}

func parseOrderReference(cols []string) entities.OrderPositionReference {
	return entities.OrderPositionReference{
		CustomerOrderID:         cols[0],
		CustomerOrderPositionID: cols[1],
		SupplierOrderID:         cols[2],
	}
}

func concat(parts ...[]string) []string {
	var out []string
	for _, p := range parts {
		out = append(out, p...)
	}
	return out
}
