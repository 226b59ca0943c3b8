package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vsinha/supplycover/pkg/application/services/filter"
	"github.com/vsinha/supplycover/pkg/application/services/records"
	"github.com/vsinha/supplycover/pkg/application/services/supply"
	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
	"github.com/vsinha/supplycover/pkg/domain/services/validation"
	"github.com/vsinha/supplycover/pkg/infrastructure/cache"
	"github.com/vsinha/supplycover/pkg/infrastructure/config"
	"github.com/vsinha/supplycover/pkg/infrastructure/events"
	"github.com/vsinha/supplycover/pkg/infrastructure/logging"
	"github.com/vsinha/supplycover/pkg/infrastructure/metrics"
	csvrepo "github.com/vsinha/supplycover/pkg/infrastructure/repositories/csv"
	"github.com/vsinha/supplycover/pkg/infrastructure/repositories/memory"
	"github.com/vsinha/supplycover/pkg/infrastructure/repositories/sqlite"
)

type coverageCache interface {
	supply.CoverageCache
	records.Clearer
}

// app wires one command run from config and a scenario directory
type app struct {
	cfg       *config.Config
	logger    *logging.Logger
	calendar  entities.Calendar
	metrics   *metrics.Registry
	events    *events.InMemoryEventStore
	scenario  *csvrepo.Scenario
	partners  *memory.PartnerDirectory
	materials *memory.MaterialDirectory
	store     repositories.RecordStore
	validator *validation.Engine
	filter    *filter.Engine
	supply    *supply.Service
	closers   []func() error
}

func newApp(opts *RootOptions, scenarioDir string) (*app, error) {
	cfg, err := config.Load(opts.ConfigFile, func(c *config.Config) {
		if opts.OwnPartner != "" {
			c.OwnPartnerBPNL = opts.OwnPartner
		}
	})
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(cfg.LogMode, opts.Verbose)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	calendar, err := cfg.Calendar()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		logger:   logger,
		calendar: calendar,
		metrics:  metrics.NewRegistry(),
		events:   events.NewInMemoryEventStore(logger),
	}

	if scenarioDir == "" {
		scenarioDir = cfg.DataDir
	}
	if scenarioDir == "" {
		return nil, fmt.Errorf("scenario directory is required (--scenario or data_dir)")
	}
	a.scenario, err = csvrepo.NewLoader(calendar).LoadScenario(scenarioDir)
	if err != nil {
		return nil, fmt.Errorf("error loading scenario: %w", err)
	}
	logger.Debug("scenario loaded",
		"dir", scenarioDir,
		"partners", len(a.scenario.Partners),
		"materials", len(a.scenario.Materials),
		"records", len(a.scenario.Records()),
	)

	a.partners = memory.NewPartnerDirectory(cfg.OwnPartner())
	if err := a.partners.LoadPartners(a.scenario.Partners); err != nil {
		return nil, fmt.Errorf("failed to load partners into directory: %w", err)
	}
	a.materials = memory.NewMaterialDirectory(len(a.scenario.Materials))
	if err := a.materials.LoadMaterials(a.scenario.Materials); err != nil {
		return nil, fmt.Errorf("failed to load materials into directory: %w", err)
	}
	if err := a.materials.LoadRelations(a.scenario.Relations); err != nil {
		return nil, fmt.Errorf("failed to load material relations: %w", err)
	}

	switch cfg.Store.Driver {
	case "sqlite":
		store, err := sqlite.Open(cfg.Store.DSN)
		if err != nil {
			return nil, err
		}
		a.store = store
		a.closers = append(a.closers, store.Close)
	default:
		a.store = memory.NewRecordStore()
	}

	a.validator = validation.NewEngine(
		validation.NewDirectoryOwnPartner(a.partners),
		a.materials,
		validation.WithClock(opts.now),
	)
	a.filter = filter.NewEngine(a.store, calendar)

	supplyOpts := []supply.Option{
		supply.WithClock(opts.now),
		supply.WithMetrics(a.metrics),
		supply.WithLogger(logger),
	}
	if c := a.newCache(); c != nil {
		supplyOpts = append(supplyOpts, supply.WithCache(c))
		if err := records.InvalidateOnChange(a.events, c); err != nil {
			a.close()
			return nil, err
		}
	}
	a.supply = supply.NewService(a.filter, supplyOpts...)
	return a, nil
}

func (a *app) newCache() coverageCache {
	switch a.cfg.Cache.Driver {
	case "memory":
		return cache.NewMemoryCache(a.cfg.Cache.TTL)
	case "redis":
		c := cache.NewRedisCache(cache.NewRedisClient(a.cfg.Cache.Addr), a.cfg.Cache.TTL)
		a.closers = append(a.closers, c.Close)
		return c
	default:
		return nil
	}
}

// admit stores every valid scenario record. Rejected records are logged
// and skipped; records already stored are replaced.
func (a *app) admit(ctx context.Context, now func() time.Time) (admission, error) {
	opts := []records.Option{
		records.WithEvents(a.events),
		records.WithMetrics(a.metrics),
		records.WithLogger(a.logger),
		records.WithClock(now),
	}

	var total admission
	steps := []func() (admission, error){
		func() (admission, error) {
			return admitAll(ctx, records.NewDemandService(a.store, a.validator, a.filter, opts...), a.scenario.Demands)
		},
		func() (admission, error) {
			return admitAll(ctx, records.NewDeliveryService(a.store, a.validator, a.filter, opts...), a.scenario.Deliveries)
		},
		func() (admission, error) {
			return admitAll(ctx, records.NewProductionService(a.store, a.validator, a.filter, opts...), a.scenario.Productions)
		},
		func() (admission, error) {
			return admitAll(ctx, records.NewStockService(a.store, a.validator, a.filter, opts...), a.scenario.Stocks)
		},
		func() (admission, error) {
			return admitAll(ctx, records.NewReportedCoverageService(a.store, a.validator, a.filter, opts...), a.scenario.Coverages)
		},
	}
	for _, step := range steps {
		n, err := step()
		if err != nil {
			return total, err
		}
		total.Admitted += n.Admitted
		total.Rejected += n.Rejected
	}

	a.logger.Info("scenario admitted", "admitted", total.Admitted, "rejected", total.Rejected)
	return total, nil
}

// admission counts the outcome of loading a scenario
type admission struct {
	Admitted int
	Rejected int
}

func admitAll[T entities.Record](ctx context.Context, service *records.Service[T], batch []T) (admission, error) {
	var result admission
	for _, record := range batch {
		_, err := service.Create(ctx, record)
		if errors.Is(err, repositories.ErrAlreadyExists) {
			_, err = service.Update(ctx, record)
		}

		var rejected *records.AdmissionError
		switch {
		case err == nil:
			result.Admitted++
		case errors.As(err, &rejected):
			result.Rejected++
		default:
			return result, err
		}
	}
	return result, nil
}

func (a *app) close() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.logger.Warn("failed to close resource", "error", err)
		}
	}
	if totals, err := a.metrics.Totals(); err == nil {
		a.logger.Debug("run metrics", "totals", totals)
	}
	a.logger.Sync()
}
