package migration

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/promptdeck/platform/backend/internal/errors"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/logger"
)

// BackupManager snapshots pending records before mutation and restores them
// on rollback. Restore and cleanup are best-effort: per-item failures are
// collected into the RollbackOutcome, never raised.
type BackupManager struct {
	records  RecordSource
	registry Registry
	store    Store
	exporter SnapshotExporter
	logger   logger.Logger
}

// NewBackupManager creates a new backup manager. exporter may be nil, in
// which case snapshots stay database-only.
func NewBackupManager(records RecordSource, registry Registry, store Store, exporter SnapshotExporter, log logger.Logger) *BackupManager {
	return &BackupManager{
		records:  records,
		registry: registry,
		store:    store,
		exporter: exporter,
		logger:   log,
	}
}

// Backup snapshots all currently-pending records under a fresh backup id and
// records the snapshot location against the plan. A partial backup is never
// usable: any failure aborts and nothing is recorded.
func (m *BackupManager) Backup(ctx context.Context, planID uuid.UUID) (*RollbackInfo, error) {
	pending, err := m.records.ListPending(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError("failed to list records for backup", err)
	}

	backup := &BackupRecord{
		ID:        uuid.New(),
		PlanID:    planID,
		CreatedAt: time.Now().UTC(),
	}
	backup.Location = fmt.Sprintf("db://migration_backup_entries/%s", backup.ID)

	entries := make([]BackupEntry, 0, len(pending))
	for i := range pending {
		payload, err := json.Marshal(&pending[i])
		if err != nil {
			return nil, fmt.Errorf("failed to serialize record %s for backup: %v", pending[i].ID, err)
		}
		entries = append(entries, BackupEntry{
			BackupID: backup.ID,
			RecordID: pending[i].ID,
			Payload:  payload,
		})
	}

	if m.exporter != nil {
		snapshot, err := json.Marshal(pending)
		if err != nil {
			return nil, fmt.Errorf("failed to serialize backup snapshot: %v", err)
		}
		location, err := m.exporter.Export(ctx, backup.ID, snapshot)
		if err != nil {
			return nil, apperrors.NewStorageError("failed to export backup snapshot", err)
		}
		backup.Location = location
	}

	if err := m.store.SaveBackup(ctx, backup, entries); err != nil {
		return nil, apperrors.NewStorageError("failed to persist backup", err)
	}

	m.logger.LogInfo("Backup created", map[string]interface{}{
		"planId":   planID.String(),
		"backupId": backup.ID.String(),
		"records":  len(entries),
		"location": backup.Location,
	})

	return &RollbackInfo{
		BackupID:    backup.ID,
		Location:    backup.Location,
		CreatedAt:   backup.CreatedAt,
		CanRollback: true,
	}, nil
}

// Restore re-inserts every record from the plan's latest backup with upsert
// semantics, then undoes resources the given result created. The backup is
// consumed afterwards and cannot serve a second rollback. result may be nil
// when no execution result exists; created-resource cleanup is skipped then.
func (m *BackupManager) Restore(ctx context.Context, planID uuid.UUID, result *MigrationResult) (*RollbackOutcome, error) {
	backup, err := m.store.LatestBackup(ctx, planID)
	if err != nil {
		return nil, apperrors.NewRollbackError(apperrors.ErrMsgLoadBackup, err)
	}
	if backup == nil {
		return nil, ErrNoBackup
	}
	if backup.Consumed {
		return nil, ErrBackupConsumed
	}

	entries, err := m.store.GetBackupEntries(ctx, backup.ID)
	if err != nil {
		return nil, apperrors.NewRollbackError(apperrors.ErrMsgBackupEntries, err)
	}

	outcome := &RollbackOutcome{}
	for _, entry := range entries {
		var record legacy.Record
		if err := json.Unmarshal(entry.Payload, &record); err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("record %s: corrupt snapshot entry: %v", entry.RecordID, err))
			continue
		}
		if err := m.records.Upsert(ctx, &record); err != nil {
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("record %s: restore failed: %v", entry.RecordID, err))
			continue
		}
		outcome.Restored++
	}

	if result != nil {
		m.cleanupCreated(ctx, result, outcome)
	}

	if err := m.store.MarkBackupConsumed(ctx, backup.ID); err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("backup %s: failed to mark consumed: %v", backup.ID, err))
	}

	m.logger.LogInfo("Rollback finished", map[string]interface{}{
		"planId":   planID.String(),
		"backupId": backup.ID.String(),
		"restored": outcome.Restored,
		"errors":   len(outcome.Errors),
	})
	return outcome, nil
}

// cleanupCreated deletes every target and sub-resource the result recorded as
// created. Models go first so provider deletion never races its children.
func (m *BackupManager) cleanupCreated(ctx context.Context, result *MigrationResult, outcome *RollbackOutcome) {
	for _, id := range result.CreatedModelIDs {
		if err := m.registry.DeleteModel(ctx, id); err != nil {
			m.logger.LogWarn("Failed to delete created model during rollback", map[string]interface{}{
				"modelId": id.String(),
				"error":   err.Error(),
			})
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("model %s: delete failed: %v", id, err))
			continue
		}
		outcome.DeletedModels++
	}
	for _, id := range result.CreatedTargetIDs {
		if err := m.registry.DeleteProvider(ctx, id); err != nil {
			m.logger.LogWarn("Failed to delete created provider during rollback", map[string]interface{}{
				"providerId": id.String(),
				"error":      err.Error(),
			})
			outcome.Errors = append(outcome.Errors, fmt.Sprintf("provider %s: delete failed: %v", id, err))
			continue
		}
		outcome.DeletedTargets++
	}
}
