package migration

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/provider"
)

var (
	// ErrPlanNotFound indicates the referenced plan does not exist
	ErrPlanNotFound = errors.New("migration plan not found")
	// ErrPlanRunning indicates an execution for the plan is already in flight
	ErrPlanRunning = errors.New("migration already running for this plan")
	// ErrNoBackup indicates no backup exists for the plan
	ErrNoBackup = errors.New("no backup available for this plan")
	// ErrBackupConsumed indicates the plan's backup was already used by a
	// previous rollback
	ErrBackupConsumed = errors.New("backup already consumed by a previous rollback")
)

// RecordSource is the orchestrator's view of the legacy config store.
// Satisfied by legacy.Repository.
type RecordSource interface {
	GetByID(ctx context.Context, id uuid.UUID) (*legacy.Record, error)
	ListPending(ctx context.Context) ([]legacy.Record, error)
	MarkMigrated(ctx context.Context, id uuid.UUID, targetResourceID uuid.UUID) error
	Upsert(ctx context.Context, record *legacy.Record) error
	CountMigrated(ctx context.Context) (int64, error)
}

// Registry is the orchestrator's view of the canonical provider store.
// Satisfied by provider.Service.
type Registry interface {
	GetProvider(ctx context.Context, id uuid.UUID) (*provider.Provider, error)
	GetProviderByName(ctx context.Context, name string) (*provider.Provider, error)
	CreateProvider(ctx context.Context, p *provider.Provider) error
	UpdateProvider(ctx context.Context, p *provider.Provider) error
	DeleteProvider(ctx context.Context, id uuid.UUID) error

	GetModel(ctx context.Context, id uuid.UUID) (*provider.Model, error)
	CreateModel(ctx context.Context, m *provider.Model) error
	DeleteModel(ctx context.Context, id uuid.UUID) error
}

// Store persists plans, execution results, and backups
type Store interface {
	SavePlan(ctx context.Context, plan *MigrationPlan) error
	GetPlan(ctx context.Context, id uuid.UUID) (*MigrationPlan, error)
	ListPlans(ctx context.Context) ([]MigrationPlan, error)

	SaveResult(ctx context.Context, result *MigrationResult) error
	ListResults(ctx context.Context, planID uuid.UUID) ([]MigrationResult, error)

	SaveBackup(ctx context.Context, backup *BackupRecord, entries []BackupEntry) error
	// LatestBackup returns the most recent backup for the plan regardless of
	// its consumed flag; callers decide whether a consumed backup is usable.
	LatestBackup(ctx context.Context, planID uuid.UUID) (*BackupRecord, error)
	GetBackupEntries(ctx context.Context, backupID uuid.UUID) ([]BackupEntry, error)
	MarkBackupConsumed(ctx context.Context, backupID uuid.UUID) error
}

// SnapshotExporter writes a serialized backup snapshot to external storage
// and returns its location. A nil exporter keeps snapshots database-only.
type SnapshotExporter interface {
	Export(ctx context.Context, backupID uuid.UUID, payload []byte) (string, error)
}
