package records

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vsinha/supplycover/pkg/application/services/filter"
	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
	"github.com/vsinha/supplycover/pkg/infrastructure/events"
	"github.com/vsinha/supplycover/pkg/infrastructure/logging"
	"github.com/vsinha/supplycover/pkg/infrastructure/metrics"
)

// Validator decides whether a record may be stored
type Validator interface {
	IsValid(ctx context.Context, record entities.Record) (bool, error)
	Validate(ctx context.Context, record entities.Record) ([]string, error)
}

// AdmissionError is returned when a record violates validation rules
type AdmissionError struct {
	Kind       entities.RecordKind
	RecordID   uuid.UUID
	Violations []string
}

func (e *AdmissionError) Error() string {
	return fmt.Sprintf("%s record %s rejected: %s", e.Kind, e.RecordID, strings.Join(e.Violations, " "))
}

type settings struct {
	events  events.EventStore
	metrics *metrics.Registry
	logger  *logging.Logger
	now     func() time.Time
}

// Option configures a Service
type Option func(*settings)

// WithEvents appends admission outcomes to store
func WithEvents(store events.EventStore) Option {
	return func(s *settings) { s.events = store }
}

func WithMetrics(registry *metrics.Registry) Option {
	return func(s *settings) { s.metrics = registry }
}

func WithLogger(logger *logging.Logger) Option {
	return func(s *settings) { s.logger = logger }
}

// WithClock sets the event timestamps
func WithClock(now func() time.Time) Option {
	return func(s *settings) { s.now = now }
}

// Service admits records of one kind into a repository. Invalid records
// are never stored and stored records are only ever replaced whole.
type Service[T entities.Record] struct {
	kind      entities.RecordKind
	repo      repositories.RecordRepository[T]
	validator Validator
	selectFn  func(context.Context, filter.Filter) ([]T, error)
	settings
}

func NewDemandService(store repositories.RecordStore, validator Validator, filterEngine *filter.Engine, opts ...Option) *Service[*entities.Demand] {
	return newService(entities.KindDemand, store.Demands(), validator, filterEngine.SelectDemands, opts)
}

func NewDeliveryService(store repositories.RecordStore, validator Validator, filterEngine *filter.Engine, opts ...Option) *Service[*entities.Delivery] {
	return newService(entities.KindDelivery, store.Deliveries(), validator, filterEngine.SelectDeliveries, opts)
}

func NewProductionService(store repositories.RecordStore, validator Validator, filterEngine *filter.Engine, opts ...Option) *Service[*entities.Production] {
	return newService(entities.KindProduction, store.Productions(), validator, filterEngine.SelectProductions, opts)
}

func NewStockService(store repositories.RecordStore, validator Validator, filterEngine *filter.Engine, opts ...Option) *Service[*entities.Stock] {
	return newService(entities.KindStock, store.Stocks(), validator, filterEngine.SelectStocks, opts)
}

// NewReportedCoverageService stores days of supply reported by partners
func NewReportedCoverageService(store repositories.RecordStore, validator Validator, filterEngine *filter.Engine, opts ...Option) *Service[*entities.ReportedCoverage] {
	return newService(entities.KindReportedCoverage, store.ReportedCoverages(), validator, filterEngine.SelectReportedCoverages, opts)
}

func newService[T entities.Record](
	kind entities.RecordKind,
	repo repositories.RecordRepository[T],
	validator Validator,
	selectFn func(context.Context, filter.Filter) ([]T, error),
	opts []Option,
) *Service[T] {
	s := &Service[T]{
		kind:      kind,
		repo:      repo,
		validator: validator,
		selectFn:  selectFn,
		settings:  settings{now: time.Now},
	}
	for _, opt := range opts {
		opt(&s.settings)
	}
	s.logger = logging.OrNop(s.logger).With("kind", kind.String())
	return s
}

// Create stores a new record. A record without id gets a fresh one.
func (s *Service[T]) Create(ctx context.Context, record T) (T, error) {
	var zero T
	base := record.Base()
	if base.ID == uuid.Nil {
		base.ID = uuid.New()
	}
	if err := s.ensureAbsent(ctx, base.ID); err != nil {
		return zero, err
	}
	if err := s.admit(ctx, record); err != nil {
		return zero, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return zero, fmt.Errorf("failed to save %s %s: %w", s.kind, base.ID, err)
	}

	s.logger.Debug("record admitted", "id", base.ID)
	s.metrics.ObserveAdmission(s.kind.String(), "admitted")
	s.publish(events.NewRecordAdmittedEvent(record, s.now()))
	return record, nil
}

// CreateAll stores every record or none of them
func (s *Service[T]) CreateAll(ctx context.Context, records []T) ([]T, error) {
	seen := make(map[uuid.UUID]struct{}, len(records))
	for _, record := range records {
		base := record.Base()
		if base.ID == uuid.Nil {
			base.ID = uuid.New()
		}
		if _, dup := seen[base.ID]; dup {
			return nil, fmt.Errorf("%s %s appears twice: %w", s.kind, base.ID, repositories.ErrAlreadyExists)
		}
		seen[base.ID] = struct{}{}
		if err := s.ensureAbsent(ctx, base.ID); err != nil {
			return nil, err
		}
	}

	var rejected []error
	for _, record := range records {
		if err := s.admit(ctx, record); err != nil {
			var admission *AdmissionError
			if !errors.As(err, &admission) {
				return nil, err
			}
			rejected = append(rejected, err)
		}
	}
	if len(rejected) > 0 {
		return nil, errors.Join(rejected...)
	}

	if err := s.repo.SaveAll(ctx, records); err != nil {
		return nil, fmt.Errorf("failed to save %d %s records: %w", len(records), s.kind, err)
	}
	for _, record := range records {
		s.metrics.ObserveAdmission(s.kind.String(), "admitted")
		s.publish(events.NewRecordAdmittedEvent(record, s.now()))
	}
	s.logger.Debug("records admitted", "count", len(records))
	return records, nil
}

// Update replaces a stored record with the same id
func (s *Service[T]) Update(ctx context.Context, record T) (T, error) {
	var zero T
	id := record.RecordID()
	old, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return zero, fmt.Errorf("cannot update %s %s: %w", s.kind, id, err)
	}
	if err := s.admit(ctx, record); err != nil {
		return zero, err
	}
	if err := s.repo.Save(ctx, record); err != nil {
		return zero, fmt.Errorf("failed to save %s %s: %w", s.kind, id, err)
	}

	s.metrics.ObserveAdmission(s.kind.String(), "replaced")
	s.publish(events.NewRecordReplacedEvent(old, record, s.now()))
	return record, nil
}

func (s *Service[T]) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", s.kind, id, err)
	}
	s.metrics.ObserveAdmission(s.kind.String(), "deleted")
	s.publish(events.NewRecordDeletedEvent(s.kind, id, s.now()))
	return nil
}

func (s *Service[T]) FindAll(ctx context.Context) ([]T, error) {
	return s.repo.FindAll(ctx)
}

func (s *Service[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *Service[T]) FindAllByFilters(ctx context.Context, f filter.Filter) ([]T, error) {
	return s.selectFn(ctx, f)
}

// SumOfQuantities adds the quantities of every record matching f
func (s *Service[T]) SumOfQuantities(ctx context.Context, f filter.Filter) (decimal.Decimal, error) {
	records, err := s.selectFn(ctx, f)
	if err != nil {
		return decimal.Zero, err
	}
	sum := decimal.Zero
	for _, record := range records {
		sum = sum.Add(record.Base().Quantity)
	}
	return sum, nil
}

func (s *Service[T]) ensureAbsent(ctx context.Context, id uuid.UUID) error {
	_, err := s.repo.FindByID(ctx, id)
	switch {
	case err == nil:
		return fmt.Errorf("%s %s: %w", s.kind, id, repositories.ErrAlreadyExists)
	case errors.Is(err, repositories.ErrNotFound):
		return nil
	default:
		return fmt.Errorf("failed to look up %s %s: %w", s.kind, id, err)
	}
}

func (s *Service[T]) admit(ctx context.Context, record T) error {
	valid, err := s.validator.IsValid(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to validate %s %s: %w", s.kind, record.RecordID(), err)
	}
	if valid {
		return nil
	}

	violations, err := s.validator.Validate(ctx, record)
	if err != nil {
		return fmt.Errorf("failed to validate %s %s: %w", s.kind, record.RecordID(), err)
	}
	s.logger.Info("record rejected", "id", record.RecordID(), "violations", violations)
	s.metrics.ObserveAdmission(s.kind.String(), "rejected")
	s.publish(events.NewRecordRejectedEvent(record, violations, s.now()))
	return &AdmissionError{Kind: s.kind, RecordID: record.RecordID(), Violations: violations}
}

func (s *Service[T]) publish(event events.Event) {
	if s.events == nil {
		return
	}
	if err := s.events.AppendEvent(event.StreamID(), event); err != nil {
		s.logger.Warn("failed to append event", "type", event.Type(), "error", err)
	}
}
