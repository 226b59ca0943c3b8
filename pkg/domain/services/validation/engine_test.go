package validation

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vsinha/supplycover/pkg/domain/entities"
)

const (
	ownSite      entities.BPNS = "BPNS1234567890ZZ"
	supplierSite entities.BPNS = "BPNS4444444444XX"
	customerSite entities.BPNS = "BPNS5555555555XX"
)

var now = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type relationKey struct {
	material entities.MaterialNumber
	partner  entities.BPNL
}

type fakeRelations struct {
	supplies map[relationKey]bool
	orders   map[relationKey]bool
	err      error
}

func (f *fakeRelations) PartnerSupplies(_ context.Context, m entities.MaterialNumber, p entities.BPNL) (bool, error) {
	return f.supplies[relationKey{m, p}], f.err
}

func (f *fakeRelations) PartnerOrders(_ context.Context, m entities.MaterialNumber, p entities.BPNL) (bool, error) {
	return f.orders[relationKey{m, p}], f.err
}

type fixture struct {
	own, supplier, customer *entities.Partner
	semiconductor, product  *entities.Material
	engine                  *Engine
}

func newFixture() *fixture {
	f := &fixture{
		own:           &entities.Partner{BPNL: "BPNL1234567890ZZ", Name: "Own", Sites: []entities.Site{{BPNS: ownSite}}},
		supplier:      &entities.Partner{BPNL: "BPNL4444444444XX", Name: "Supplier", Sites: []entities.Site{{BPNS: supplierSite}}},
		customer:      &entities.Partner{BPNL: "BPNL5555555555XX", Name: "Customer", Sites: []entities.Site{{BPNS: customerSite}}},
		semiconductor: &entities.Material{Number: "MNR-7307-AU340474.002", MaterialFlag: true},
		product:       &entities.Material{Number: "MNR-4177-S", ProductFlag: true},
	}
	relations := &fakeRelations{
		supplies: map[relationKey]bool{{f.semiconductor.Number, f.supplier.BPNL}: true},
		orders:   map[relationKey]bool{{f.product.Number, f.customer.BPNL}: true},
	}
	f.engine = NewEngine(FixedOwnPartner(f.own), relations, WithClock(func() time.Time { return now }))
	return f
}

func ptr(t time.Time) *time.Time {
	return &t
}

func (f *fixture) ownDemand() *entities.Demand {
	return &entities.Demand{
		QuantityRecord: entities.QuantityRecord{
			ID:          uuid.New(),
			Material:    f.semiconductor,
			Partner:     f.supplier,
			Quantity:    decimal.NewFromInt(40),
			Unit:        entities.UnitPiece,
			LastUpdated: ptr(now.Add(-time.Hour)),
			Provenance:  entities.Own,
		},
		Day:              ptr(now.AddDate(0, 0, 2)),
		Category:         entities.DemandDefault,
		DemandLocation:   ownSite,
		SupplierLocation: supplierSite,
	}
}

func (f *fixture) ownDelivery() *entities.Delivery {
	return &entities.Delivery{
		QuantityRecord: entities.QuantityRecord{
			ID:          uuid.New(),
			Material:    f.semiconductor,
			Partner:     f.supplier,
			Quantity:    decimal.NewFromInt(20),
			Unit:        entities.UnitPiece,
			LastUpdated: ptr(now.Add(-time.Hour)),
			Provenance:  entities.Own,
		},
		Incoterm:        entities.EXW,
		OriginBPNS:      supplierSite,
		DestinationBPNS: ownSite,
		DepartureType:   entities.EstimatedDeparture,
		DepartureTime:   ptr(now.AddDate(0, 0, 1)),
		ArrivalType:     entities.EstimatedArrival,
		ArrivalTime:     ptr(now.AddDate(0, 0, 3)),
	}
}

func (f *fixture) ownProduction() *entities.Production {
	return &entities.Production{
		QuantityRecord: entities.QuantityRecord{
			ID:         uuid.New(),
			Material:   f.product,
			Partner:    f.customer,
			Quantity:   decimal.NewFromInt(100),
			Unit:       entities.UnitPiece,
			Provenance: entities.Own,
		},
		EstimatedCompletion: ptr(now.AddDate(0, 0, 5)),
		ProductionSite:      ownSite,
	}
}

func TestEngine_ValidRecords(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	stock, err := entities.NewStock(f.semiconductor, nil, ownSite, entities.Inbound, decimal.NewFromInt(5), entities.UnitPiece, now.Add(-time.Minute))
	require.NoError(t, err)

	for _, record := range []entities.Record{f.ownDemand(), f.ownDelivery(), f.ownProduction(), stock} {
		t.Run(record.Kind().String(), func(t *testing.T) {
			violations, err := f.engine.Validate(ctx, record)
			require.NoError(t, err)
			assert.Empty(t, violations)

			valid, err := f.engine.IsValid(ctx, record)
			require.NoError(t, err)
			assert.True(t, valid)
		})
	}
}

func TestEngine_DemandViolationsInRuleOrder(t *testing.T) {
	f := newFixture()
	demand := f.ownDemand()
	demand.Material = nil
	demand.Partner = nil
	demand.Quantity = decimal.NewFromInt(-1)
	demand.SupplierLocation = ""

	violations, err := f.engine.Validate(context.Background(), demand)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Missing Material.",
		"Missing Partner.",
		"Partner does not supply the specified material.",
		"Quantity must be greater than 0.",
	}, violations)
}

func TestEngine_DemandFieldRules(t *testing.T) {
	f := newFixture()

	testCases := []struct {
		name     string
		mutate   func(d *entities.Demand)
		expected string
	}{
		{"missing unit", func(d *entities.Demand) { d.Unit = "" }, "Missing measurement unit."},
		{"missing last updated", func(d *entities.Demand) { d.LastUpdated = nil }, "Missing lastUpdatedOnTime."},
		{"last updated in future", func(d *entities.Demand) { d.LastUpdated = ptr(now.Add(time.Minute)) }, "lastUpdatedOnDateTime cannot be in the future."},
		{"missing day", func(d *entities.Demand) { d.Day = nil }, "Missing day."},
		{"missing category", func(d *entities.Demand) { d.Category = "" }, "Missing demand category code."},
		{"foreign demand location", func(d *entities.Demand) { d.DemandLocation = supplierSite }, "Demand location BPNS must match one of the own partner entity's site BPNS."},
		{"foreign supplier location", func(d *entities.Demand) { d.SupplierLocation = customerSite }, "Supplier location BPNS must match one of the partner's site BPNS."},
		{"unrelated partner", func(d *entities.Demand) { d.Partner = f.customer; d.SupplierLocation = "" }, "Partner does not supply the specified material."},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			demand := f.ownDemand()
			tc.mutate(demand)

			violations, err := f.engine.Validate(context.Background(), demand)
			require.NoError(t, err)
			assert.Equal(t, []string{tc.expected}, violations)
		})
	}
}

func TestEngine_MissingDemandLocationReportsBothRules(t *testing.T) {
	f := newFixture()
	demand := f.ownDemand()
	demand.DemandLocation = ""

	violations, err := f.engine.Validate(context.Background(), demand)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Missing demand location BPNS.",
		"Demand location BPNS must match one of the own partner entity's site BPNS.",
	}, violations)
}

func TestEngine_ReportedDemandSwapsSiteOwners(t *testing.T) {
	f := newFixture()
	demand := &entities.Demand{
		QuantityRecord: entities.QuantityRecord{
			ID:          uuid.New(),
			Material:    f.product,
			Partner:     f.customer,
			Quantity:    decimal.NewFromInt(12),
			Unit:        entities.UnitPiece,
			LastUpdated: ptr(now.Add(-time.Hour)),
			Provenance:  entities.Reported,
		},
		Day:              ptr(now),
		Category:         entities.DemandSeries,
		DemandLocation:   customerSite,
		SupplierLocation: ownSite,
	}

	violations, err := f.engine.Validate(context.Background(), demand)
	require.NoError(t, err)
	assert.Empty(t, violations)

	demand.DemandLocation = ownSite
	demand.SupplierLocation = customerSite
	demand.Material = f.semiconductor
	violations, err = f.engine.Validate(context.Background(), demand)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Partner does not order the specified material.",
		"Demand location BPNS must match one of the partner's site BPNS.",
		"Supplier location BPNS must match one of the own partner entity's site BPNS.",
	}, violations)
}

func TestEngine_SelfDealingIsAlwaysInvalid(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	demand := f.ownDemand()
	demand.Partner = &entities.Partner{BPNL: f.own.BPNL, Sites: f.own.Sites}
	demand.SupplierLocation = ""
	violations, err := f.engine.Validate(ctx, demand)
	require.NoError(t, err)
	assert.Contains(t, violations, "Partner cannot be the same as own partner entity.")

	production := f.ownProduction()
	production.Partner = f.own
	valid, err := f.engine.IsValid(ctx, production)
	require.NoError(t, err)
	assert.False(t, valid)
}

func TestEngine_OrderReferenceCoRequirement(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	testCases := []struct {
		name  string
		ref   entities.OrderPositionReference
		valid bool
	}{
		{"all absent", entities.OrderPositionReference{}, true},
		{"customer order with position", entities.OrderPositionReference{CustomerOrderID: "C-1", CustomerOrderPositionID: "1"}, true},
		{"customer order without position", entities.OrderPositionReference{CustomerOrderID: "C-1"}, false},
		{"supplier order alone", entities.OrderPositionReference{SupplierOrderID: "S-1"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			delivery := f.ownDelivery()
			delivery.OrderPositionReference = tc.ref
			production := f.ownProduction()
			production.OrderPositionReference = tc.ref

			for _, record := range []entities.Record{delivery, production} {
				valid, err := f.engine.IsValid(ctx, record)
				require.NoError(t, err)
				assert.Equal(t, tc.valid, valid, record.Kind().String())
			}
		})
	}
}

func TestEngine_DeliveryTransitEvents(t *testing.T) {
	f := newFixture()

	testCases := []struct {
		name     string
		mutate   func(d *entities.Delivery)
		expected []string
	}{
		{
			"estimated departure with actual arrival",
			func(d *entities.Delivery) {
				d.ArrivalType = entities.ActualArrival
				d.DepartureTime = ptr(now.AddDate(0, 0, -3))
				d.ArrivalTime = ptr(now.AddDate(0, 0, -1))
			},
			[]string{"Estimated departure cannot be combined with actual arrival."},
		},
		{
			"departure after arrival",
			func(d *entities.Delivery) { d.DepartureTime = ptr(now.AddDate(0, 0, 4)) },
			[]string{"Departure time must be before arrival time."},
		},
		{
			"actual departure in the future",
			func(d *entities.Delivery) { d.DepartureType = entities.ActualDeparture },
			[]string{"Actual departure cannot be in the future."},
		},
		{
			"actual arrival in the future",
			func(d *entities.Delivery) {
				d.DepartureType = entities.ActualDeparture
				d.DepartureTime = ptr(now.AddDate(0, 0, -1))
				d.ArrivalType = entities.ActualArrival
			},
			[]string{"Actual arrival cannot be in the future."},
		},
		{
			"actual departure at validation time",
			func(d *entities.Delivery) {
				d.DepartureType = entities.ActualDeparture
				d.DepartureTime = ptr(now)
			},
			[]string{"Actual departure cannot be in the future."},
		},
		{
			"actual arrival at validation time",
			func(d *entities.Delivery) {
				d.DepartureType = entities.ActualDeparture
				d.DepartureTime = ptr(now.AddDate(0, 0, -1))
				d.ArrivalType = entities.ActualArrival
				d.ArrivalTime = ptr(now)
			},
			[]string{"Actual arrival cannot be in the future."},
		},
		{
			"swapped event types",
			func(d *entities.Delivery) {
				d.DepartureType = entities.EstimatedArrival
				d.ArrivalType = entities.EstimatedDeparture
			},
			[]string{
				"Departure type must be estimated-departure or actual-departure.",
				"Arrival type must be estimated-arrival or actual-arrival.",
			},
		},
		{
			"missing incoterm",
			func(d *entities.Delivery) { d.Incoterm = "" },
			[]string{"Missing incoterm.", "Origin and destination BPNS do not match the incoterm responsibility."},
		},
		{
			"supplier responsibility for inbound material",
			func(d *entities.Delivery) { d.Incoterm = entities.DDP },
			[]string{"Origin and destination BPNS do not match the incoterm responsibility."},
		},
		{
			"zero quantity is accepted",
			func(d *entities.Delivery) { d.Quantity = decimal.Zero },
			nil,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			delivery := f.ownDelivery()
			tc.mutate(delivery)

			violations, err := f.engine.Validate(context.Background(), delivery)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, violations)
		})
	}
}

func TestEngine_ReportedDeliveryBasicChecks(t *testing.T) {
	f := newFixture()
	delivery := f.ownDelivery()
	delivery.Provenance = entities.Reported
	delivery.Incoterm = ""
	delivery.Quantity = decimal.Zero

	violations, err := f.engine.Validate(context.Background(), delivery)
	require.NoError(t, err)
	assert.Equal(t, []string{"Quantity must be greater than 0."}, violations)
}

func TestEngine_ProductionRules(t *testing.T) {
	f := newFixture()
	production := f.ownProduction()
	production.EstimatedCompletion = nil
	production.ProductionSite = customerSite

	violations, err := f.engine.Validate(context.Background(), production)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Missing estimated time of completion.",
		"Production site BPNS must match one of the own partner entity's site BPNS.",
	}, violations)

	production.Provenance = entities.Reported
	production.EstimatedCompletion = ptr(now)
	violations, err = f.engine.Validate(context.Background(), production)
	require.NoError(t, err)
	assert.Empty(t, violations)
}

func TestEngine_ReportedCoverageRules(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	coverage := &entities.ReportedCoverage{
		QuantityRecord: entities.QuantityRecord{
			ID:         uuid.New(),
			Material:   f.product,
			Partner:    f.customer,
			Provenance: entities.Reported,
		},
		Role:              entities.CustomerRole,
		Day:               ptr(now),
		DaysOfSupply:      3.5,
		StockLocationBPNS: customerSite,
		StockLocationBPNA: "BPNA5555555555XX",
	}

	valid, err := f.engine.IsValid(ctx, coverage)
	require.NoError(t, err)
	assert.True(t, valid)

	empty := &entities.ReportedCoverage{QuantityRecord: entities.QuantityRecord{Provenance: entities.Reported}}
	violations, err := f.engine.Validate(ctx, empty)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Missing partner.",
		"Missing material.",
		"Missing date.",
		"Missing stock location BPNA.",
		"Missing stock location BPNS.",
	}, violations)

	coverage.Provenance = entities.Own
	_, err = f.engine.Validate(ctx, coverage)
	assert.ErrorIs(t, err, ErrUnsupportedRecord)
}

func TestEngine_FailFastMatchesDiagnostic(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	invalidDemand := f.ownDemand()
	invalidDemand.Quantity = decimal.Zero
	emptyDemand := &entities.Demand{}
	emptyDelivery := &entities.Delivery{}
	emptyProduction := &entities.Production{}
	futureDelivery := f.ownDelivery()
	futureDelivery.LastUpdated = ptr(now.AddDate(1, 0, 0))

	records := []entities.Record{
		f.ownDemand(), invalidDemand, emptyDemand,
		f.ownDelivery(), futureDelivery, emptyDelivery,
		f.ownProduction(), emptyProduction,
	}
	for _, record := range records {
		valid, err := f.engine.IsValid(ctx, record)
		require.NoError(t, err)
		violations, err := f.engine.Validate(ctx, record)
		require.NoError(t, err)
		assert.Equal(t, len(violations) == 0, valid, "%s %v", record.Kind(), violations)
	}
}

func TestEngine_Preconditions(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	t.Run("partner without site set", func(t *testing.T) {
		demand := f.ownDemand()
		demand.Partner = &entities.Partner{BPNL: f.supplier.BPNL}
		_, err := f.engine.Validate(ctx, demand)
		assert.ErrorIs(t, err, ErrPartnerSitesUnknown)
	})

	t.Run("own partner unresolved", func(t *testing.T) {
		engine := NewEngine(FixedOwnPartner(nil), &fakeRelations{})
		_, err := engine.IsValid(ctx, f.ownDemand())
		assert.ErrorIs(t, err, ErrOwnPartnerUnresolved)
	})

	t.Run("relation lookup fails", func(t *testing.T) {
		engine := NewEngine(FixedOwnPartner(f.own), &fakeRelations{err: errors.New("connection refused")})
		_, err := engine.Validate(ctx, f.ownDemand())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("nil record", func(t *testing.T) {
		_, err := f.engine.Validate(ctx, nil)
		assert.ErrorIs(t, err, ErrUnsupportedRecord)
	})
}

func TestEngine_ValidateAll(t *testing.T) {
	f := newFixture()
	invalid := f.ownProduction()
	invalid.Unit = ""

	results, err := f.engine.ValidateAll(context.Background(), []entities.Record{f.ownDemand(), invalid})
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[0].Valid())
	assert.False(t, results[1].Valid())
	assert.Equal(t, invalid.ID, results[1].RecordID)
	assert.Equal(t, entities.KindProduction, results[1].Kind)
	assert.Equal(t, []string{"Missing measurement unit."}, results[1].Errors)
}

type countingDirectory struct {
	own   *entities.Partner
	calls atomic.Int32
}

func (c *countingDirectory) OwnPartner(context.Context) (*entities.Partner, error) {
	c.calls.Add(1)
	return c.own, nil
}

func (c *countingDirectory) BySite(context.Context, entities.BPNS) (*entities.Partner, error) {
	return nil, nil
}

func (c *countingDirectory) ByBPNL(context.Context, entities.BPNL) (*entities.Partner, error) {
	return nil, nil
}

func (c *countingDirectory) All(context.Context) ([]*entities.Partner, error) {
	return nil, nil
}

func TestDirectoryOwnPartner_ResolvesOnce(t *testing.T) {
	f := newFixture()
	directory := &countingDirectory{own: f.own}
	source := NewDirectoryOwnPartner(directory)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			partner, err := source.OwnPartner(context.Background())
			assert.NoError(t, err)
			assert.Same(t, f.own, partner)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), directory.calls.Load())
}
