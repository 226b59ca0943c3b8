package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
)

// RecordRepository provides in-memory storage for records of one kind.
// Records are listed in insertion order.
type RecordRepository[T entities.Record] struct {
	mu         sync.RWMutex
	records    []T
	recordsMap map[uuid.UUID]int
}

// NewRecordRepository creates a new in-memory record repository
func NewRecordRepository[T entities.Record](expectedRecords int) *RecordRepository[T] {
	return &RecordRepository[T]{
		records:    make([]T, 0, expectedRecords),
		recordsMap: make(map[uuid.UUID]int, expectedRecords),
	}
}

// Verify interface compliance
var (
	_ repositories.RecordRepository[*entities.Demand]     = (*RecordRepository[*entities.Demand])(nil)
	_ repositories.RecordRepository[*entities.Delivery]   = (*RecordRepository[*entities.Delivery])(nil)
	_ repositories.RecordRepository[*entities.Production] = (*RecordRepository[*entities.Production])(nil)
	_ repositories.RecordRepository[*entities.Stock]      = (*RecordRepository[*entities.Stock])(nil)

	_ repositories.RecordRepository[*entities.ReportedCoverage] = (*RecordRepository[*entities.ReportedCoverage])(nil)
)

// FindAll returns all records
func (r *RecordRepository[T]) FindAll(_ context.Context) ([]T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.records), nil
}

// FindByID returns the record with the given ID
func (r *RecordRepository[T]) FindByID(_ context.Context, id uuid.UUID) (T, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index, exists := r.recordsMap[id]
	if !exists {
		var zero T
		return zero, fmt.Errorf("record %s: %w", id, repositories.ErrNotFound)
	}
	return r.records[index], nil
}

// Save inserts a record or replaces the record with the same ID
func (r *RecordRepository[T]) Save(_ context.Context, record T) error {
	if record.RecordID() == uuid.Nil {
		return fmt.Errorf("record id cannot be empty")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.put(record)
	return nil
}

// SaveAll saves every record, rejecting the batch if any ID is empty
func (r *RecordRepository[T]) SaveAll(_ context.Context, records []T) error {
	for _, record := range records {
		if record.RecordID() == uuid.Nil {
			return fmt.Errorf("record id cannot be empty")
		}
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, record := range records {
		r.put(record)
	}
	return nil
}

// Delete removes the record with the given ID
func (r *RecordRepository[T]) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	index, exists := r.recordsMap[id]
	if !exists {
		return fmt.Errorf("record %s: %w", id, repositories.ErrNotFound)
	}
	r.records = slices.Delete(r.records, index, index+1)
	delete(r.recordsMap, id)
	for i := index; i < len(r.records); i++ {
		r.recordsMap[r.records[i].RecordID()] = i
	}
	return nil
}

func (r *RecordRepository[T]) put(record T) {
	if index, exists := r.recordsMap[record.RecordID()]; exists {
		r.records[index] = record
		return
	}
	r.recordsMap[record.RecordID()] = len(r.records)
	r.records = append(r.records, record)
}

// RecordStore groups in-memory repositories of every record kind
type RecordStore struct {
	demands     *RecordRepository[*entities.Demand]
	deliveries  *RecordRepository[*entities.Delivery]
	productions *RecordRepository[*entities.Production]
	stocks      *RecordRepository[*entities.Stock]
	coverages   *RecordRepository[*entities.ReportedCoverage]
}

// NewRecordStore creates an empty in-memory record store
func NewRecordStore() *RecordStore {
	return &RecordStore{
		demands:     NewRecordRepository[*entities.Demand](0),
		deliveries:  NewRecordRepository[*entities.Delivery](0),
		productions: NewRecordRepository[*entities.Production](0),
		stocks:      NewRecordRepository[*entities.Stock](0),
		coverages:   NewRecordRepository[*entities.ReportedCoverage](0),
	}
}

var _ repositories.RecordStore = (*RecordStore)(nil)

func (s *RecordStore) Demands() repositories.RecordRepository[*entities.Demand] { return s.demands }
func (s *RecordStore) Deliveries() repositories.RecordRepository[*entities.Delivery] {
	return s.deliveries
}
func (s *RecordStore) Productions() repositories.RecordRepository[*entities.Production] {
	return s.productions
}
func (s *RecordStore) Stocks() repositories.RecordRepository[*entities.Stock] { return s.stocks }
func (s *RecordStore) ReportedCoverages() repositories.RecordRepository[*entities.ReportedCoverage] {
	return s.coverages
}
