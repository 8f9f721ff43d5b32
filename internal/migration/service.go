package migration

import (
	"context"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/catalog"
	"github.com/promptdeck/platform/backend/internal/config"
	"github.com/promptdeck/platform/backend/internal/events"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/logger"
)

// Service is the orchestrator's programmatic boundary, consumed by the
// administrative API layer
type Service interface {
	CreatePlan(ctx context.Context) (*MigrationPlan, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*MigrationPlan, error)
	ListPlans(ctx context.Context) ([]MigrationPlan, error)
	ExecutePlan(ctx context.Context, planID uuid.UUID, opts ExecuteOptions) (*MigrationResult, error)
	ListResults(ctx context.Context, planID uuid.UUID) ([]MigrationResult, error)
	GetProgress(ctx context.Context, planID uuid.UUID) *MigrationProgress
	Rollback(ctx context.Context, planID uuid.UUID) (*RollbackOutcome, error)
	CheckCompatibility(ctx context.Context, record *legacy.Record) *CompatibilityReport
}

// Orchestrator wires the planner, executor, and backup manager behind the
// Service interface
type Orchestrator struct {
	planner  *Planner
	executor *Executor
	backup   *BackupManager
	progress *ProgressTracker
	catalog  catalog.Registry
	store    Store
	events   events.Publisher
	logger   logger.Logger
}

// NewOrchestrator assembles the migration subsystem from its collaborators
func NewOrchestrator(records RecordSource, registry Registry, store Store, cat catalog.Registry, exporter SnapshotExporter, publisher events.Publisher, cfg *config.MigrationConfig, log logger.Logger) *Orchestrator {
	progress := NewProgressTracker()
	backup := NewBackupManager(records, registry, store, exporter, log)
	return &Orchestrator{
		planner:  NewPlanner(records, NewSpecBuilder(cat), store, cfg, log),
		executor: NewExecutor(records, registry, store, backup, progress, publisher, cfg, log),
		backup:   backup,
		progress: progress,
		catalog:  cat,
		store:    store,
		events:   publisher,
		logger:   log,
	}
}

// CreatePlan analyzes pending records and persists a new migration plan
func (o *Orchestrator) CreatePlan(ctx context.Context) (*MigrationPlan, error) {
	plan, err := o.planner.CreatePlan(ctx)
	if err != nil {
		return nil, err
	}
	if o.events != nil {
		_ = o.events.Publish(ctx, &events.MigrationEvent{
			PlanID:  plan.ID,
			Type:    events.EventPlanCreated,
			Message: "migration plan created",
		})
	}
	return plan, nil
}

// GetPlan loads a persisted plan
func (o *Orchestrator) GetPlan(ctx context.Context, id uuid.UUID) (*MigrationPlan, error) {
	return o.store.GetPlan(ctx, id)
}

// ListPlans returns all persisted plans, newest first
func (o *Orchestrator) ListPlans(ctx context.Context) ([]MigrationPlan, error) {
	return o.store.ListPlans(ctx)
}

// ExecutePlan runs a persisted plan. Returns ErrPlanNotFound for unknown ids
// and ErrPlanRunning when an execution for the plan is already in flight.
func (o *Orchestrator) ExecutePlan(ctx context.Context, planID uuid.UUID, opts ExecuteOptions) (*MigrationResult, error) {
	plan, err := o.store.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	return o.executor.Execute(ctx, plan, opts)
}

// ListResults returns all execution attempts for a plan, newest first
func (o *Orchestrator) ListResults(ctx context.Context, planID uuid.UUID) ([]MigrationResult, error) {
	return o.store.ListResults(ctx, planID)
}

// GetProgress returns the in-flight progress for a plan, or nil when no
// execution is running
func (o *Orchestrator) GetProgress(ctx context.Context, planID uuid.UUID) *MigrationProgress {
	return o.progress.Get(planID)
}

// Rollback restores the plan's latest backup and undoes resources created by
// the plan's most recent real execution attempt. The backup is consumed; a second
// rollback for the same backup returns ErrBackupConsumed.
func (o *Orchestrator) Rollback(ctx context.Context, planID uuid.UUID) (*RollbackOutcome, error) {
	if o.progress.Get(planID) != nil {
		return nil, ErrPlanRunning
	}

	results, err := o.store.ListResults(ctx, planID)
	if err != nil {
		return nil, err
	}
	// Dry runs create nothing; cleanup tracks the newest real attempt.
	var latest *MigrationResult
	for i := range results {
		if !results[i].DryRun {
			latest = &results[i]
			break
		}
	}

	outcome, err := o.backup.Restore(ctx, planID, latest)
	if err != nil {
		return nil, err
	}
	if o.events != nil {
		_ = o.events.Publish(ctx, &events.MigrationEvent{
			PlanID:  planID,
			Type:    events.EventRollbackCompleted,
			Message: "rollback finished",
		})
	}
	return outcome, nil
}

// CheckCompatibility runs the advisory pre-flight check for one record
func (o *Orchestrator) CheckCompatibility(ctx context.Context, record *legacy.Record) *CompatibilityReport {
	return CheckCompatibility(o.catalog, record)
}
