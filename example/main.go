package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vsinha/supplycover/pkg/application/services/filter"
	"github.com/vsinha/supplycover/pkg/application/services/records"
	"github.com/vsinha/supplycover/pkg/application/services/supply"
	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/services/validation"
	"github.com/vsinha/supplycover/pkg/infrastructure/repositories/memory"
)

const (
	ownBPNL      entities.BPNL = "BPNL1234567890ZZ"
	ownSite      entities.BPNS = "BPNS1234567890ZZ"
	supplierBPNL entities.BPNL = "BPNL4444444444XX"
	supplierSite entities.BPNS = "BPNS4444444444XX"

	semiconductor entities.MaterialNumber = "MNR-7307-AU340474.002"
)

func main() {
	ctx := context.Background()
	calendar := entities.NewCalendar(time.UTC)
	now := time.Now()

	// Master data
	own, err := entities.NewPartner(ownBPNL, "Control Unit Creator Inc.", []entities.Site{{BPNS: ownSite, Name: "Plant"}})
	if err != nil {
		log.Fatal(err)
	}
	supplier, err := entities.NewPartner(supplierBPNL, "Semiconductor Supplier Inc.", []entities.Site{{BPNS: supplierSite, Name: "Supplier Plant"}})
	if err != nil {
		log.Fatal(err)
	}
	material, err := entities.NewMaterial(semiconductor, "Semiconductor", true, false)
	if err != nil {
		log.Fatal(err)
	}

	partners := memory.NewPartnerDirectory(ownBPNL)
	if err := partners.LoadPartners([]*entities.Partner{own, supplier}); err != nil {
		log.Fatal(err)
	}
	materials := memory.NewMaterialDirectory(1)
	if err := materials.LoadMaterials([]*entities.Material{material}); err != nil {
		log.Fatal(err)
	}
	if err := materials.LoadRelations([]*entities.MaterialPartnerRelation{
		{Material: semiconductor, Partner: supplierBPNL, Supplies: true},
	}); err != nil {
		log.Fatal(err)
	}

	store := memory.NewRecordStore()
	validator := validation.NewEngine(validation.NewDirectoryOwnPartner(partners), materials)
	filterEngine := filter.NewEngine(store, calendar)

	demands := records.NewDemandService(store, validator, filterEngine)
	stocks := records.NewStockService(store, validator, filterEngine)

	// 40 pieces in stock against 15 pieces of demand per day
	stock, err := entities.NewStock(material, supplier, ownSite, entities.Inbound,
		decimal.NewFromInt(40), entities.UnitPiece, now.Add(-time.Hour))
	if err != nil {
		log.Fatal(err)
	}
	if _, err := stocks.Create(ctx, stock); err != nil {
		log.Fatal(err)
	}

	updated := now.Add(-time.Hour)
	for offset := 0; offset < 5; offset++ {
		day := calendar.AddDays(now, offset)
		demand := &entities.Demand{
			QuantityRecord: entities.QuantityRecord{
				Material:    material,
				Partner:     supplier,
				Quantity:    decimal.NewFromInt(15),
				Unit:        entities.UnitPiece,
				LastUpdated: &updated,
				Provenance:  entities.Own,
			},
			Day:              &day,
			Category:         entities.DemandSeries,
			DemandLocation:   ownSite,
			SupplierLocation: supplierSite,
		}
		if _, err := demands.Create(ctx, demand); err != nil {
			log.Fatal(err)
		}
	}

	service := supply.NewService(filterEngine)
	results, err := service.CalculateDaysOfSupply(ctx, entities.CustomerRole, semiconductor, supplierBPNL, ownSite, 5)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("📦 Days of supply for %s at %s\n", semiconductor, ownSite)
	for _, result := range results {
		fmt.Printf("  %s  %.2f\n", result.Day.Format("2006-01-02"), result.DaysOfSupply)
	}
}
