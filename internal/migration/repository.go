package migration

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormStore implements the Store interface using GORM
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed migration store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// SavePlan persists a plan as a JSON document alongside its listing columns
func (s *GormStore) SavePlan(ctx context.Context, plan *MigrationPlan) error {
	payload, err := json.Marshal(plan)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %v", err)
	}
	row := &PlanRecord{
		ID:           plan.ID,
		TotalRecords: plan.TotalRecords,
		Payload:      payload,
		CreatedAt:    plan.CreatedAt,
	}
	return s.db.WithContext(ctx).Create(row).Error
}

// GetPlan loads a plan by id. Returns ErrPlanNotFound when no row exists.
func (s *GormStore) GetPlan(ctx context.Context, id uuid.UUID) (*MigrationPlan, error) {
	var row PlanRecord
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	var plan MigrationPlan
	if err := json.Unmarshal(row.Payload, &plan); err != nil {
		return nil, fmt.Errorf("failed to deserialize plan %s: %v", id, err)
	}
	return &plan, nil
}

// ListPlans returns all plans, newest first
func (s *GormStore) ListPlans(ctx context.Context) ([]MigrationPlan, error) {
	var rows []PlanRecord
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	plans := make([]MigrationPlan, 0, len(rows))
	for _, row := range rows {
		var plan MigrationPlan
		if err := json.Unmarshal(row.Payload, &plan); err != nil {
			return nil, fmt.Errorf("failed to deserialize plan %s: %v", row.ID, err)
		}
		plans = append(plans, plan)
	}
	return plans, nil
}

// SaveResult appends one execution attempt for a plan
func (s *GormStore) SaveResult(ctx context.Context, result *MigrationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to serialize result: %v", err)
	}
	row := &ResultRecord{
		PlanID:    result.PlanID,
		Success:   result.Success,
		Payload:   payload,
		CreatedAt: time.Now().UTC(),
	}
	return s.db.WithContext(ctx).Create(row).Error
}

// ListResults returns all execution attempts for a plan, newest first
func (s *GormStore) ListResults(ctx context.Context, planID uuid.UUID) ([]MigrationResult, error) {
	var rows []ResultRecord
	if err := s.db.WithContext(ctx).Where("plan_id = ?", planID).Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	results := make([]MigrationResult, 0, len(rows))
	for _, row := range rows {
		var result MigrationResult
		if err := json.Unmarshal(row.Payload, &result); err != nil {
			return nil, fmt.Errorf("failed to deserialize result %d: %v", row.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// SaveBackup writes the backup header and its entries in one transaction so
// a partial snapshot is never visible
func (s *GormStore) SaveBackup(ctx context.Context, backup *BackupRecord, entries []BackupEntry) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(backup).Error; err != nil {
			return err
		}
		if len(entries) == 0 {
			return nil
		}
		for i := range entries {
			entries[i].BackupID = backup.ID
		}
		return tx.CreateInBatches(entries, 100).Error
	})
}

// LatestBackup returns the most recent backup for a plan, or nil when the
// plan has never been backed up
func (s *GormStore) LatestBackup(ctx context.Context, planID uuid.UUID) (*BackupRecord, error) {
	var row BackupRecord
	err := s.db.WithContext(ctx).Where("plan_id = ?", planID).Order("created_at DESC").First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// GetBackupEntries returns every snapshot entry belonging to a backup
func (s *GormStore) GetBackupEntries(ctx context.Context, backupID uuid.UUID) ([]BackupEntry, error) {
	var entries []BackupEntry
	if err := s.db.WithContext(ctx).Where("backup_id = ?", backupID).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// MarkBackupConsumed flags a backup as used by a rollback
func (s *GormStore) MarkBackupConsumed(ctx context.Context, backupID uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&BackupRecord{}).Where("id = ?", backupID).Update("consumed", true).Error
}
