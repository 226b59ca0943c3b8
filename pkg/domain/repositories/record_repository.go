package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/vsinha/supplycover/pkg/domain/entities"
)

// RecordRepository provides access to records of one kind.
// Save replaces a stored record with the same ID as a whole.
type RecordRepository[T entities.Record] interface {
	FindAll(ctx context.Context) ([]T, error)
	FindByID(ctx context.Context, id uuid.UUID) (T, error)
	Save(ctx context.Context, record T) error
	SaveAll(ctx context.Context, records []T) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RecordStore groups the record repositories of every kind
type RecordStore interface {
	Demands() RecordRepository[*entities.Demand]
	Deliveries() RecordRepository[*entities.Delivery]
	Productions() RecordRepository[*entities.Production]
	Stocks() RecordRepository[*entities.Stock]
	ReportedCoverages() RecordRepository[*entities.ReportedCoverage]
}
