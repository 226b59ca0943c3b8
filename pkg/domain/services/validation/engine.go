package validation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
)

var (
	// ErrOwnPartnerUnresolved means no own partner could be resolved
	ErrOwnPartnerUnresolved = errors.New("own partner unresolved")
	// ErrPartnerSitesUnknown means a partner's site set was never loaded
	ErrPartnerSitesUnknown = errors.New("partner site set unknown")
	// ErrUnsupportedRecord is returned for record kinds without a rule list
	ErrUnsupportedRecord = errors.New("unsupported record")
)

// Rule is one named check of a record. Check returns false for a violation
// and an error only when a collaborator is broken.
type Rule[T entities.Record] struct {
	Name    string
	Message string
	Check   func(ctx context.Context, s *session, record T) (bool, error)
}

// Result contains the violations found for one record
type Result struct {
	RecordID uuid.UUID           `json:"record_id"`
	Kind     entities.RecordKind `json:"kind"`
	Errors   []string            `json:"errors"`
}

// Valid reports whether no rule failed
func (r *Result) Valid() bool {
	return len(r.Errors) == 0
}

type ruleSet[T entities.Record] map[entities.Provenance][]Rule[T]

// Engine runs the ordered rule list matching a record's kind and provenance
type Engine struct {
	ownPartner OwnPartnerSource
	relations  repositories.MaterialRelationDirectory
	now        func() time.Time

	demandRules     ruleSet[*entities.Demand]
	deliveryRules   ruleSet[*entities.Delivery]
	productionRules ruleSet[*entities.Production]
	stockRules      ruleSet[*entities.Stock]
	coverageRules   ruleSet[*entities.ReportedCoverage]
}

// Option configures an Engine
type Option func(*Engine)

// WithClock replaces the clock used for "not in the future" rules
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine creates a validation engine
func NewEngine(ownPartner OwnPartnerSource, relations repositories.MaterialRelationDirectory, opts ...Option) *Engine {
	e := &Engine{
		ownPartner: ownPartner,
		relations:  relations,
		now:        time.Now,
		demandRules: ruleSet[*entities.Demand]{
			entities.Own:      demandRules(entities.Own),
			entities.Reported: demandRules(entities.Reported),
		},
		deliveryRules: ruleSet[*entities.Delivery]{
			entities.Own:      ownDeliveryRules(),
			entities.Reported: reportedDeliveryRules(),
		},
		productionRules: ruleSet[*entities.Production]{
			entities.Own:      productionRules(entities.Own),
			entities.Reported: productionRules(entities.Reported),
		},
		stockRules: ruleSet[*entities.Stock]{
			entities.Own:      stockRules(entities.Own),
			entities.Reported: stockRules(entities.Reported),
		},
		coverageRules: ruleSet[*entities.ReportedCoverage]{
			entities.Reported: reportedCoverageRules(),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// IsValid stops at the first failing rule
func (e *Engine) IsValid(ctx context.Context, record entities.Record) (bool, error) {
	violations, err := e.run(ctx, record, true)
	if err != nil {
		return false, err
	}
	return len(violations) == 0, nil
}

// Validate evaluates every rule and returns all violation messages in rule order
func (e *Engine) Validate(ctx context.Context, record entities.Record) ([]string, error) {
	return e.run(ctx, record, false)
}

// ValidateAll validates every record in diagnostic mode
func (e *Engine) ValidateAll(ctx context.Context, records []entities.Record) ([]Result, error) {
	results := make([]Result, 0, len(records))
	for _, record := range records {
		violations, err := e.Validate(ctx, record)
		if err != nil {
			return nil, err
		}
		results = append(results, Result{
			RecordID: record.RecordID(),
			Kind:     record.Kind(),
			Errors:   violations,
		})
	}
	return results, nil
}

func (e *Engine) run(ctx context.Context, record entities.Record, failFast bool) ([]string, error) {
	if record == nil {
		return nil, fmt.Errorf("%w: nil record", ErrUnsupportedRecord)
	}
	s, err := e.session(ctx)
	if err != nil {
		return nil, err
	}
	provenance := record.Base().Provenance

	switch record.Kind() {
	case entities.KindDemand:
		if r, ok := record.(*entities.Demand); ok {
			return evaluate(ctx, s, e.demandRules[provenance], r, failFast)
		}
	case entities.KindDelivery:
		if r, ok := record.(*entities.Delivery); ok {
			return evaluate(ctx, s, e.deliveryRules[provenance], r, failFast)
		}
	case entities.KindProduction:
		if r, ok := record.(*entities.Production); ok {
			return evaluate(ctx, s, e.productionRules[provenance], r, failFast)
		}
	case entities.KindStock:
		if r, ok := record.(*entities.Stock); ok {
			return evaluate(ctx, s, e.stockRules[provenance], r, failFast)
		}
	case entities.KindReportedCoverage:
		// only reported days of supply have rules
		if r, ok := record.(*entities.ReportedCoverage); ok {
			return evaluate(ctx, s, e.coverageRules[provenance], r, failFast)
		}
	}
	return nil, fmt.Errorf("%w: %T", ErrUnsupportedRecord, record)
}

func (e *Engine) session(ctx context.Context) (*session, error) {
	if e.ownPartner == nil {
		return nil, ErrOwnPartnerUnresolved
	}
	own, err := e.ownPartner.OwnPartner(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOwnPartnerUnresolved, err)
	}
	if own == nil {
		return nil, ErrOwnPartnerUnresolved
	}
	return &session{
		own:       own,
		relations: e.relations,
		now:       e.now(),
	}, nil
}

func evaluate[T entities.Record](ctx context.Context, s *session, rules []Rule[T], record T, failFast bool) ([]string, error) {
	if len(rules) == 0 {
		return nil, fmt.Errorf("%w: no rules for %s", ErrUnsupportedRecord, record.Kind())
	}
	var violations []string
	for _, rule := range rules {
		ok, err := rule.Check(ctx, s, record)
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", rule.Name, err)
		}
		if ok {
			continue
		}
		violations = append(violations, rule.Message)
		if failFast {
			break
		}
	}
	return violations, nil
}

// session carries what the rules of one evaluation share
type session struct {
	own       *entities.Partner
	relations repositories.MaterialRelationDirectory
	now       time.Time
}

// owns reports whether partner owns bpns. A nil partner or empty bpns owns
// nothing; a partner whose site set was never loaded is a precondition error.
func (s *session) owns(partner *entities.Partner, bpns entities.BPNS) (bool, error) {
	if partner == nil || bpns == "" {
		return false, nil
	}
	if err := s.sitesKnown(partner); err != nil {
		return false, err
	}
	return partner.OwnsSite(bpns), nil
}

func (s *session) sitesKnown(partners ...*entities.Partner) error {
	for _, partner := range partners {
		if partner != nil && partner.Sites == nil {
			return fmt.Errorf("%w: %s", ErrPartnerSitesUnknown, partner.BPNL)
		}
	}
	return nil
}

func (s *session) inFuture(t *time.Time) bool {
	return t != nil && t.After(s.now)
}
