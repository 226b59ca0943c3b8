package filter

import (
	"context"
	"fmt"
	"time"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
)

// Filter selects records. Every set field constrains the result and all of
// them must hold; an unset field places no constraint.
type Filter struct {
	Material    entities.MaterialNumber
	PartnerBPNL *entities.BPNL
	SiteBPNS    *entities.BPNS
	// Direction picks which site and day field of a record is compared.
	// Only stock and reported coverage records are also filtered by it.
	Direction  *entities.Direction
	Day        *time.Time
	Provenance *entities.Provenance
}

// Engine selects records from a RecordStore
type Engine struct {
	store    repositories.RecordStore
	calendar entities.Calendar
}

// NewEngine creates a filter engine comparing days in the calendar's zone
func NewEngine(store repositories.RecordStore, calendar entities.Calendar) *Engine {
	return &Engine{store: store, calendar: calendar}
}

// Calendar returns the calendar used for day matching
func (e *Engine) Calendar() entities.Calendar {
	return e.calendar
}

func (e *Engine) SelectDemands(ctx context.Context, f Filter) ([]*entities.Demand, error) {
	return selectRecords(ctx, e.store.Demands(), func(d *entities.Demand) bool {
		return e.MatchDemand(f, d)
	})
}

func (e *Engine) SelectDeliveries(ctx context.Context, f Filter) ([]*entities.Delivery, error) {
	return selectRecords(ctx, e.store.Deliveries(), func(d *entities.Delivery) bool {
		return e.MatchDelivery(f, d)
	})
}

func (e *Engine) SelectProductions(ctx context.Context, f Filter) ([]*entities.Production, error) {
	return selectRecords(ctx, e.store.Productions(), func(p *entities.Production) bool {
		return e.MatchProduction(f, p)
	})
}

func (e *Engine) SelectStocks(ctx context.Context, f Filter) ([]*entities.Stock, error) {
	return selectRecords(ctx, e.store.Stocks(), func(s *entities.Stock) bool {
		return e.MatchStock(f, s)
	})
}

func (e *Engine) SelectReportedCoverages(ctx context.Context, f Filter) ([]*entities.ReportedCoverage, error) {
	return selectRecords(ctx, e.store.ReportedCoverages(), func(c *entities.ReportedCoverage) bool {
		return e.MatchReportedCoverage(f, c)
	})
}

func selectRecords[T entities.Record](ctx context.Context, repo repositories.RecordRepository[T], match func(T) bool) ([]T, error) {
	all, err := repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list records: %w", err)
	}
	selected := make([]T, 0, len(all))
	for _, record := range all {
		if match(record) {
			selected = append(selected, record)
		}
	}
	return selected, nil
}

// MatchDemand compares the demand location for inbound and the supplier
// location for outbound flow
func (e *Engine) MatchDemand(f Filter, d *entities.Demand) bool {
	if !matchBase(f, &d.QuantityRecord) {
		return false
	}
	if f.SiteBPNS != nil {
		site := *f.SiteBPNS
		switch {
		case f.Direction == nil:
			if d.DemandLocation != site && d.SupplierLocation != site {
				return false
			}
		case *f.Direction == entities.Inbound:
			if d.DemandLocation != site {
				return false
			}
		default:
			if d.SupplierLocation != site {
				return false
			}
		}
	}
	return f.Day == nil || e.sameDay(d.Day, *f.Day)
}

// MatchDelivery compares destination and arrival for inbound, origin and
// departure for outbound flow, and either of them without a direction
func (e *Engine) MatchDelivery(f Filter, d *entities.Delivery) bool {
	if !matchBase(f, &d.QuantityRecord) {
		return false
	}
	if f.Direction != nil {
		if f.SiteBPNS != nil && d.SiteFor(*f.Direction) != *f.SiteBPNS {
			return false
		}
		return f.Day == nil || e.sameDay(d.TimeFor(*f.Direction), *f.Day)
	}
	if f.SiteBPNS != nil && d.OriginBPNS != *f.SiteBPNS && d.DestinationBPNS != *f.SiteBPNS {
		return false
	}
	return f.Day == nil || e.sameDay(d.ArrivalTime, *f.Day) || e.sameDay(d.DepartureTime, *f.Day)
}

func (e *Engine) MatchProduction(f Filter, p *entities.Production) bool {
	if !matchBase(f, &p.QuantityRecord) {
		return false
	}
	if f.SiteBPNS != nil && p.ProductionSite != *f.SiteBPNS {
		return false
	}
	return f.Day == nil || e.sameDay(p.EstimatedCompletion, *f.Day)
}

// MatchStock compares the stock location and, when given, the stock
// direction. The day is compared against the last update.
func (e *Engine) MatchStock(f Filter, s *entities.Stock) bool {
	if !matchBase(f, &s.QuantityRecord) {
		return false
	}
	if f.Direction != nil && s.Direction != *f.Direction {
		return false
	}
	if f.SiteBPNS != nil && s.Location != *f.SiteBPNS {
		return false
	}
	return f.Day == nil || e.sameDay(s.LastUpdated, *f.Day)
}

// MatchReportedCoverage compares the stock location and the reported day.
// Supplier reports cover inbound flow, customer reports outbound flow.
func (e *Engine) MatchReportedCoverage(f Filter, c *entities.ReportedCoverage) bool {
	if !matchBase(f, &c.QuantityRecord) {
		return false
	}
	if f.Direction != nil && c.Direction() != *f.Direction {
		return false
	}
	if f.SiteBPNS != nil && c.StockLocationBPNS != *f.SiteBPNS {
		return false
	}
	return f.Day == nil || e.sameDay(c.Day, *f.Day)
}

func matchBase(f Filter, r *entities.QuantityRecord) bool {
	if f.Material != "" && r.MaterialNumber() != f.Material {
		return false
	}
	if f.PartnerBPNL != nil && r.PartnerBPNL() != *f.PartnerBPNL {
		return false
	}
	if f.Provenance != nil && r.Provenance != *f.Provenance {
		return false
	}
	return true
}

func (e *Engine) sameDay(t *time.Time, day time.Time) bool {
	return t != nil && e.calendar.SameDay(*t, day)
}
