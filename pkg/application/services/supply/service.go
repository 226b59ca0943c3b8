package supply

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/vsinha/supplycover/pkg/application/dto"
	"github.com/vsinha/supplycover/pkg/application/services/coverage"
	"github.com/vsinha/supplycover/pkg/application/services/filter"
	"github.com/vsinha/supplycover/pkg/application/services/timeseries"
	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/infrastructure/logging"
	"github.com/vsinha/supplycover/pkg/infrastructure/metrics"
)

var (
	// ErrDirectionRequired is returned for delivery quantities without a direction
	ErrDirectionRequired = errors.New("direction is required for delivery quantities")
	// ErrInvalidHorizon is returned for a non-positive horizon
	ErrInvalidHorizon = errors.New("horizon must be at least one day")
)

// CoverageCache memoizes projections. It is never authoritative.
type CoverageCache interface {
	Get(ctx context.Context, key string) ([]entities.CoverageResult, bool, error)
	Set(ctx context.Context, key string, results []entities.CoverageResult) error
}

// Service derives per-day quantities and days of supply from stored records
type Service struct {
	filter   *filter.Engine
	calendar entities.Calendar
	now      func() time.Time
	cache    CoverageCache
	metrics  *metrics.Registry
	logger   *logging.Logger
}

// Option configures a Service
type Option func(*Service)

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCache(cache CoverageCache) Option {
	return func(s *Service) { s.cache = cache }
}

func WithMetrics(registry *metrics.Registry) Option {
	return func(s *Service) { s.metrics = registry }
}

func WithLogger(logger *logging.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// NewService creates a supply service on top of a filter engine
func NewService(filterEngine *filter.Engine, opts ...Option) *Service {
	s := &Service{
		filter:   filterEngine,
		calendar: filterEngine.Calendar(),
		now:      time.Now,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = logging.OrNop(s.logger)
	return s
}

// Start returns the first day of every horizon computed now
func (s *Service) Start() time.Time {
	return s.calendar.Day(s.now())
}

// GetQuantityForDays sums the quantities of matching records per day,
// starting today. Deliveries are booked on their arrival day for inbound
// and their departure day for outbound flow, so f.Direction is required
// for them. f.Day is ignored.
func (s *Service) GetQuantityForDays(ctx context.Context, kind entities.RecordKind, f filter.Filter, horizonDays int) ([]float64, error) {
	if horizonDays < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizonDays)
	}
	return s.series(ctx, kind, f, s.Start(), horizonDays)
}

// CalculateDaysOfSupply projects the days of supply of a material at a site
// for each day of the horizon, starting today
func (s *Service) CalculateDaysOfSupply(
	ctx context.Context,
	role entities.SupplyRole,
	material entities.MaterialNumber,
	partnerBPNL entities.BPNL,
	siteBPNS entities.BPNS,
	horizonDays int,
) ([]entities.CoverageResult, error) {
	start := s.Start()
	key := dto.CoverageCacheKey{
		Role:        role,
		Material:    material,
		Partner:     partnerBPNL,
		Site:        siteBPNS,
		Start:       start,
		HorizonDays: horizonDays,
	}.String()

	if s.cache != nil {
		cached, ok, err := s.cache.Get(ctx, key)
		if err != nil {
			s.logger.Warn("coverage cache lookup failed", "key", key, "error", err)
		}
		s.metrics.ObserveCache(ok)
		if ok {
			return cached, nil
		}
	}

	report, err := s.report(ctx, start, role, material, partnerBPNL, siteBPNS, horizonDays)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, report.Results); err != nil {
			s.logger.Warn("coverage cache store failed", "key", key, "error", err)
		}
	}
	return report.Results, nil
}

// Report projects the days of supply like CalculateDaysOfSupply, bypassing
// the cache, and returns the input series alongside the result
func (s *Service) Report(
	ctx context.Context,
	role entities.SupplyRole,
	material entities.MaterialNumber,
	partnerBPNL entities.BPNL,
	siteBPNS entities.BPNS,
	horizonDays int,
) (*dto.CoverageReport, error) {
	return s.report(ctx, s.Start(), role, material, partnerBPNL, siteBPNS, horizonDays)
}

func (s *Service) report(
	ctx context.Context,
	start time.Time,
	role entities.SupplyRole,
	material entities.MaterialNumber,
	partnerBPNL entities.BPNL,
	siteBPNS entities.BPNS,
	horizonDays int,
) (*dto.CoverageReport, error) {
	if horizonDays <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidHorizon, horizonDays)
	}
	if material == "" {
		return nil, fmt.Errorf("material cannot be empty")
	}
	began := time.Now()

	var (
		demand, replenishment []float64
		stock                 decimal.Decimal
	)
	plan := planFor(role, material, partnerBPNL, siteBPNS)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		demand, err = s.series(gctx, plan.demandKind, plan.demand, start, horizonDays)
		return err
	})
	g.Go(func() error {
		var err error
		replenishment, err = s.series(gctx, plan.replenishmentKind, plan.replenishment, start, horizonDays)
		return err
	})
	g.Go(func() error {
		stocks, err := s.filter.SelectStocks(gctx, plan.stock)
		if err != nil {
			return err
		}
		for _, st := range stocks {
			stock = stock.Add(st.Quantity)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect %s series for %s: %w", role, material, err)
	}

	daysOfSupply, err := coverage.Project(stock.InexactFloat64(), demand, replenishment)
	if err != nil {
		return nil, fmt.Errorf("failed to project days of supply for %s: %w", material, err)
	}

	results := make([]entities.CoverageResult, len(daysOfSupply))
	for i, days := range daysOfSupply {
		results[i] = entities.CoverageResult{
			Material:     material,
			Day:          s.calendar.AddDays(start, i),
			DaysOfSupply: days,
		}
	}

	s.metrics.ObserveProjection(role.String(), time.Since(began).Seconds())
	s.logger.Debug("projected days of supply",
		"role", role.String(),
		"material", material,
		"partner", partnerBPNL,
		"site", siteBPNS,
		"initial_stock", stock.String(),
		"days", horizonDays,
	)

	return &dto.CoverageReport{
		Role:          role,
		Material:      material,
		Partner:       partnerBPNL,
		Site:          siteBPNS,
		Start:         start,
		InitialStock:  stock.InexactFloat64(),
		Demand:        demand,
		Replenishment: replenishment,
		Results:       results,
	}, nil
}

func (s *Service) series(ctx context.Context, kind entities.RecordKind, f filter.Filter, start time.Time, days int) ([]float64, error) {
	f.Day = nil

	var dated []timeseries.DatedQuantity
	switch kind {
	case entities.KindDemand:
		demands, err := s.filter.SelectDemands(ctx, f)
		if err != nil {
			return nil, err
		}
		dated = timeseries.Dated(demands, func(d *entities.Demand) *time.Time { return d.Day }, quantityOf[*entities.Demand])
	case entities.KindDelivery:
		if f.Direction == nil {
			return nil, ErrDirectionRequired
		}
		direction := *f.Direction
		deliveries, err := s.filter.SelectDeliveries(ctx, f)
		if err != nil {
			return nil, err
		}
		dated = timeseries.Dated(deliveries, func(d *entities.Delivery) *time.Time { return d.TimeFor(direction) }, quantityOf[*entities.Delivery])
	case entities.KindProduction:
		productions, err := s.filter.SelectProductions(ctx, f)
		if err != nil {
			return nil, err
		}
		dated = timeseries.Dated(productions, func(p *entities.Production) *time.Time { return p.EstimatedCompletion }, quantityOf[*entities.Production])
	default:
		return nil, fmt.Errorf("no per-day quantities for %s records", kind)
	}

	return timeseries.QuantityPerDay(dated, start, days, s.calendar), nil
}

func quantityOf[T entities.Record](r T) decimal.Decimal {
	return r.Base().Quantity
}
