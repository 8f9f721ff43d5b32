package legacy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrRecordNotFound is returned when a legacy record does not exist
var ErrRecordNotFound = errors.New("legacy record not found")

// gormRepository implements the Repository interface using gorm
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new legacy record repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// GetByID retrieves a legacy record by its ID
func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Record, error) {
	var record Record
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return &record, nil
}

// ListPending retrieves all records that have not been migrated yet, in
// creation order
func (r *gormRepository) ListPending(ctx context.Context) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).
		Where("migrated = ?", false).
		Order("created_at").
		Find(&records).Error
	return records, err
}

// ListAll retrieves every legacy record
func (r *gormRepository) ListAll(ctx context.Context) ([]Record, error) {
	var records []Record
	err := r.db.WithContext(ctx).Order("created_at").Find(&records).Error
	return records, err
}

// Create inserts a new legacy record
func (r *gormRepository) Create(ctx context.Context, record *Record) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// MarkMigrated flags a record as migrated and stores its target resource
func (r *gormRepository) MarkMigrated(ctx context.Context, id uuid.UUID, targetResourceID uuid.UUID) error {
	result := r.db.WithContext(ctx).Model(&Record{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"migrated":           true,
			"target_resource_id": targetResourceID,
			"updated_at":         time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}

// Upsert writes a record, overwriting an existing row with the same id.
// Used by backup restore.
func (r *gormRepository) Upsert(ctx context.Context, record *Record) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(record).Error
}

// CountPending returns the number of records awaiting migration
func (r *gormRepository) CountPending(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Record{}).Where("migrated = ?", false).Count(&count).Error
	return count, err
}

// CountMigrated returns the number of records already migrated
func (r *gormRepository) CountMigrated(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&Record{}).Where("migrated = ?", true).Count(&count).Error
	return count, err
}
