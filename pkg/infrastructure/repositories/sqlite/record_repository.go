package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormLogger "gorm.io/gorm/logger"

	"github.com/vsinha/supplycover/pkg/domain/entities"
	"github.com/vsinha/supplycover/pkg/domain/repositories"
)

// recordRow stores one record of any kind. Filterable columns are kept
// next to the JSON payload holding the full record.
type recordRow struct {
	Kind           string         `gorm:"primaryKey;size:16"`
	ID             string         `gorm:"primaryKey;size:36"`
	Provenance     string         `gorm:"size:16;not null"`
	MaterialNumber string         `gorm:"index"`
	PartnerBPNL    string         `gorm:"index"`
	Payload        datatypes.JSON `gorm:"not null"`
	UpdatedAt      time.Time
}

func (recordRow) TableName() string {
	return "records"
}

var upsertColumns = []string{"provenance", "material_number", "partner_bpnl", "payload", "updated_at"}

// RecordRepository stores records of one kind in the records table
type RecordRepository[T entities.Record] struct {
	db        *gorm.DB
	kind      entities.RecordKind
	newRecord func() T
}

// Verify interface compliance
var (
	_ repositories.RecordRepository[*entities.Demand] = (*RecordRepository[*entities.Demand])(nil)
	_ repositories.RecordRepository[*entities.Stock]  = (*RecordRepository[*entities.Stock])(nil)
)

// FindAll returns every record of the kind in insertion order
func (r *RecordRepository[T]) FindAll(ctx context.Context) ([]T, error) {
	var rows []recordRow
	err := r.db.WithContext(ctx).
		Where("kind = ?", r.kind.String()).
		Order("rowid").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list %s records: %w", r.kind, err)
	}

	records := make([]T, 0, len(rows))
	for _, row := range rows {
		record, err := r.decode(row)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, nil
}

func (r *RecordRepository[T]) FindByID(ctx context.Context, id uuid.UUID) (T, error) {
	var zero T
	var row recordRow
	err := r.db.WithContext(ctx).
		Where("kind = ? AND id = ?", r.kind.String(), id.String()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return zero, fmt.Errorf("record %s: %w", id, repositories.ErrNotFound)
	}
	if err != nil {
		return zero, fmt.Errorf("failed to load %s %s: %w", r.kind, id, err)
	}
	return r.decode(row)
}

// Save inserts a record or replaces the record with the same ID
func (r *RecordRepository[T]) Save(ctx context.Context, record T) error {
	return r.SaveAll(ctx, []T{record})
}

// SaveAll upserts every record in one transaction
func (r *RecordRepository[T]) SaveAll(ctx context.Context, records []T) error {
	if len(records) == 0 {
		return nil
	}
	rows := make([]recordRow, 0, len(records))
	for _, record := range records {
		row, err := r.encode(record)
		if err != nil {
			return err
		}
		rows = append(rows, row)
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "kind"}, {Name: "id"}},
			DoUpdates: clause.AssignmentColumns(upsertColumns),
		}).Create(&rows).Error
	})
}

func (r *RecordRepository[T]) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("kind = ? AND id = ?", r.kind.String(), id.String()).
		Delete(&recordRow{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete %s %s: %w", r.kind, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("record %s: %w", id, repositories.ErrNotFound)
	}
	return nil
}

func (r *RecordRepository[T]) encode(record T) (recordRow, error) {
	base := record.Base()
	if base.ID == uuid.Nil {
		return recordRow{}, fmt.Errorf("record id cannot be empty")
	}
	payload, err := json.Marshal(record)
	if err != nil {
		return recordRow{}, fmt.Errorf("failed to encode %s %s: %w", r.kind, base.ID, err)
	}
	return recordRow{
		Kind:           r.kind.String(),
		ID:             base.ID.String(),
		Provenance:     base.Provenance.String(),
		MaterialNumber: string(base.MaterialNumber()),
		PartnerBPNL:    string(base.PartnerBPNL()),
		Payload:        datatypes.JSON(payload),
	}, nil
}

func (r *RecordRepository[T]) decode(row recordRow) (T, error) {
	record := r.newRecord()
	if err := json.Unmarshal(row.Payload, record); err != nil {
		var zero T
		return zero, fmt.Errorf("failed to decode %s %s: %w", r.kind, row.ID, err)
	}
	return record, nil
}

// Store is a RecordStore persisted in a SQLite database
type Store struct {
	db          *gorm.DB
	demands     *RecordRepository[*entities.Demand]
	deliveries  *RecordRepository[*entities.Delivery]
	productions *RecordRepository[*entities.Production]
	stocks      *RecordRepository[*entities.Stock]
	coverages   *RecordRepository[*entities.ReportedCoverage]
}

var _ repositories.RecordStore = (*Store)(nil)

// Open opens or creates the SQLite database at dsn and migrates the schema
func Open(dsn string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database %s: %w", dsn, err)
	}
	return NewStore(db)
}

// NewStore migrates the records table on db
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&recordRow{}); err != nil {
		return nil, fmt.Errorf("failed to migrate records table: %w", err)
	}
	return &Store{
		db:          db,
		demands:     newRepository(db, entities.KindDemand, func() *entities.Demand { return new(entities.Demand) }),
		deliveries:  newRepository(db, entities.KindDelivery, func() *entities.Delivery { return new(entities.Delivery) }),
		productions: newRepository(db, entities.KindProduction, func() *entities.Production { return new(entities.Production) }),
		stocks:      newRepository(db, entities.KindStock, func() *entities.Stock { return new(entities.Stock) }),
		coverages: newRepository(db, entities.KindReportedCoverage, func() *entities.ReportedCoverage {
			return new(entities.ReportedCoverage)
		}),
	}, nil
}

func newRepository[T entities.Record](db *gorm.DB, kind entities.RecordKind, newRecord func() T) *RecordRepository[T] {
	return &RecordRepository[T]{db: db, kind: kind, newRecord: newRecord}
}

func (s *Store) Demands() repositories.RecordRepository[*entities.Demand] { return s.demands }
func (s *Store) Deliveries() repositories.RecordRepository[*entities.Delivery] {
	return s.deliveries
}
func (s *Store) Productions() repositories.RecordRepository[*entities.Production] {
	return s.productions
}
func (s *Store) Stocks() repositories.RecordRepository[*entities.Stock] { return s.stocks }
func (s *Store) ReportedCoverages() repositories.RecordRepository[*entities.ReportedCoverage] {
	return s.coverages
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
