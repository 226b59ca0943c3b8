package testing

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/infrastructure/repositories/memory"
)

const (
	OwnBPNL      entities.BPNL = "BPNL1234567890ZZ"
	OwnSite      entities.BPNS = "BPNS1234567890ZZ"
	SupplierBPNL entities.BPNL = "BPNL4444444444XX"
	SupplierSite entities.BPNS = "BPNS4444444444XX"
	CustomerBPNL entities.BPNL = "BPNL5555555555XX"
	CustomerSite entities.BPNS = "BPNS5555555555XX"

	SemiconductorNumber entities.MaterialNumber = "MNR-7307-AU340474.002"
	CentralUnitNumber   entities.MaterialNumber = "MNR-4177-S"
)

// Scenario is a small supply network: the own partner buys semiconductors
// from a supplier and sells central units to a customer
type Scenario struct {
	Now      time.Time
	Calendar entities.Calendar

	Own, Supplier, Customer    *entities.Partner
	Semiconductor, CentralUnit *entities.Material
	Partners                   *memory.PartnerDirectory
	Materials                  *memory.MaterialDirectory
	Store                      *memory.RecordStore
}

// BuildSupplyScenario builds master data around now with an empty record store
func BuildSupplyScenario(now time.Time) *Scenario {
	s := &Scenario{
		Now:      now,
		Calendar: entities.NewCalendar(time.UTC),
		Store:    memory.NewRecordStore(),
	}

	s.Own = mustPartner(OwnBPNL, "Control Unit Creator Inc.", OwnSite)
	s.Supplier = mustPartner(SupplierBPNL, "Semiconductor Supplier Inc.", SupplierSite)
	s.Customer = mustPartner(CustomerBPNL, "Central Unit Customer Inc.", CustomerSite)
	s.Partners = memory.NewPartnerDirectory(OwnBPNL)
	if err := s.Partners.LoadPartners([]*entities.Partner{s.Own, s.Supplier, s.Customer}); err != nil {
		panic(err)
	}

	var err error
	if s.Semiconductor, err = entities.NewMaterial(SemiconductorNumber, "Semiconductor", true, false); err != nil {
		panic(err)
	}
	if s.CentralUnit, err = entities.NewMaterial(CentralUnitNumber, "Central Control Unit", false, true); err != nil {
		panic(err)
	}
	s.Materials = memory.NewMaterialDirectory(2)
	if err := s.Materials.LoadMaterials([]*entities.Material{s.Semiconductor, s.CentralUnit}); err != nil {
		panic(err)
	}
	err = s.Materials.LoadRelations([]*entities.MaterialPartnerRelation{
		{Material: SemiconductorNumber, Partner: SupplierBPNL, Supplies: true},
		{Material: CentralUnitNumber, Partner: CustomerBPNL, Orders: true},
	})
	if err != nil {
		panic(err)
	}
	return s
}

func mustPartner(bpnl entities.BPNL, name string, site entities.BPNS) *entities.Partner {
	partner, err := entities.NewPartner(bpnl, name, []entities.Site{{BPNS: site, Name: name + " Site"}})
	if err != nil {
		panic(err)
	}
	return partner
}

// At returns 10:00 on the day offset days after Now
func (s *Scenario) At(offset int) *time.Time {
	t := s.Calendar.AddDays(s.Now, offset).Add(10 * time.Hour)
	return &t
}

func (s *Scenario) base(material *entities.Material, partner *entities.Partner, provenance entities.Provenance, qty float64) entities.QuantityRecord {
	updated := s.Now.Add(-time.Hour)
	return entities.QuantityRecord{
		ID:          uuid.New(),
		Material:    material,
		Partner:     partner,
		Quantity:    decimal.NewFromFloat(qty),
		Unit:        entities.UnitPiece,
		LastUpdated: &updated,
		Provenance:  provenance,
	}
}

// OwnDemand is a semiconductor demand at the own site towards the supplier
func (s *Scenario) OwnDemand(offset int, qty float64) *entities.Demand {
	return &entities.Demand{
		QuantityRecord:   s.base(s.Semiconductor, s.Supplier, entities.Own, qty),
		Day:              s.At(offset),
		Category:         entities.DemandDefault,
		DemandLocation:   OwnSite,
		SupplierLocation: SupplierSite,
	}
}

// ReportedDemand is the customer's central unit demand towards the own site
func (s *Scenario) ReportedDemand(offset int, qty float64) *entities.Demand {
	return &entities.Demand{
		QuantityRecord:   s.base(s.CentralUnit, s.Customer, entities.Reported, qty),
		Day:              s.At(offset),
		Category:         entities.DemandSeries,
		DemandLocation:   CustomerSite,
		SupplierLocation: OwnSite,
	}
}

// InboundDelivery brings semiconductors from the supplier, arriving offset days from Now
func (s *Scenario) InboundDelivery(provenance entities.Provenance, offset int, qty float64) *entities.Delivery {
	return &entities.Delivery{
		QuantityRecord:  s.base(s.Semiconductor, s.Supplier, provenance, qty),
		Incoterm:        entities.EXW,
		OriginBPNS:      SupplierSite,
		DestinationBPNS: OwnSite,
		DepartureType:   entities.EstimatedDeparture,
		DepartureTime:   s.At(offset - 1),
		ArrivalType:     entities.EstimatedArrival,
		ArrivalTime:     s.At(offset),
	}
}

// OutboundDelivery ships central units to the customer, departing offset days from Now
func (s *Scenario) OutboundDelivery(provenance entities.Provenance, offset int, qty float64) *entities.Delivery {
	return &entities.Delivery{
		QuantityRecord:  s.base(s.CentralUnit, s.Customer, provenance, qty),
		Incoterm:        entities.DAP,
		OriginBPNS:      OwnSite,
		DestinationBPNS: CustomerSite,
		DepartureType:   entities.EstimatedDeparture,
		DepartureTime:   s.At(offset),
		ArrivalType:     entities.EstimatedArrival,
		ArrivalTime:     s.At(offset + 1),
	}
}

// OwnProduction produces central units for the customer at the own site
func (s *Scenario) OwnProduction(offset int, qty float64) *entities.Production {
	return &entities.Production{
		QuantityRecord:      s.base(s.CentralUnit, s.Customer, entities.Own, qty),
		EstimatedCompletion: s.At(offset),
		ProductionSite:      OwnSite,
	}
}

// Stock is inbound semiconductor stock or outbound central unit stock at the own site
func (s *Scenario) Stock(direction entities.Direction, qty float64) *entities.Stock {
	material, partner := s.Semiconductor, s.Supplier
	if direction == entities.Outbound {
		material, partner = s.CentralUnit, s.Customer
	}
	return &entities.Stock{
		QuantityRecord: s.base(material, partner, entities.Own, qty),
		Location:       OwnSite,
		Direction:      direction,
	}
}

// ReportedCoverage is a partner's reported days of supply: the customer's
// central unit coverage or the supplier's semiconductor coverage
func (s *Scenario) ReportedCoverage(role entities.SupplyRole, offset int, days float64) *entities.ReportedCoverage {
	material, partner, site := s.CentralUnit, s.Customer, CustomerSite
	if role == entities.SupplierRole {
		material, partner, site = s.Semiconductor, s.Supplier, SupplierSite
	}
	base := s.base(material, partner, entities.Reported, 0)
	base.Unit = ""
	return &entities.ReportedCoverage{
		QuantityRecord:    base,
		Role:              role,
		Day:               s.At(offset),
		DaysOfSupply:      days,
		StockLocationBPNS: site,
		StockLocationBPNA: entities.BPNA(strings.Replace(string(site), "BPNS", "BPNA", 1)),
	}
}

// Populate saves records into the store by kind
func (s *Scenario) Populate(records ...entities.Record) {
	ctx := context.Background()
	for _, record := range records {
		var err error
		switch r := record.(type) {
		case *entities.Demand:
			err = s.Store.Demands().Save(ctx, r)
		case *entities.Delivery:
			err = s.Store.Deliveries().Save(ctx, r)
		case *entities.Production:
			err = s.Store.Productions().Save(ctx, r)
		case *entities.Stock:
			err = s.Store.Stocks().Save(ctx, r)
		case *entities.ReportedCoverage:
			err = s.Store.ReportedCoverages().Save(ctx, r)
		}
		if err != nil {
			panic(err)
		}
	}
}
