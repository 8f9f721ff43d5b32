package migration

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/config"
	apperrors "github.com/promptdeck/platform/backend/internal/errors"
	"github.com/promptdeck/platform/backend/internal/events"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/logger"
	"github.com/promptdeck/platform/backend/internal/provider"
	"gorm.io/datatypes"
)

// Executor runs the phased migration state machine: validation, backup,
// migration, verification, then complete or failed. Phases are strictly
// linear; rollback is reachable only through the standalone Rollback
// operation or the automatic failure path.
type Executor struct {
	records  RecordSource
	registry Registry
	store    Store
	backup   *BackupManager
	progress *ProgressTracker
	events   events.Publisher
	config   *config.MigrationConfig
	logger   logger.Logger
}

// NewExecutor creates a new executor
func NewExecutor(records RecordSource, registry Registry, store Store, backup *BackupManager, progress *ProgressTracker, publisher events.Publisher, cfg *config.MigrationConfig, log logger.Logger) *Executor {
	return &Executor{
		records:  records,
		registry: registry,
		store:    store,
		backup:   backup,
		progress: progress,
		events:   publisher,
		config:   cfg,
		logger:   log,
	}
}

// resultSuccessful is the run completion policy: a run succeeds when it
// recorded no errors at all, or when at least one record migrated despite
// errors. A run with nothing to migrate and no errors counts as successful.
func resultSuccessful(result *MigrationResult) bool {
	return len(result.Errors) == 0 || result.MigratedCount > 0
}

// Execute runs the plan. Per-record and per-spec failures are captured into
// the result and never abort the run; only validation failures and
// infrastructure failures do. The returned result is populated even when err
// is non-nil.
func (e *Executor) Execute(ctx context.Context, plan *MigrationPlan, opts ExecuteOptions) (*MigrationResult, error) {
	if err := e.progress.Begin(plan.ID, plan.EstimatedDuration); err != nil {
		return nil, err
	}
	defer e.progress.End(plan.ID)

	started := time.Now()
	result := &MigrationResult{
		PlanID:           plan.ID,
		DryRun:           opts.DryRun,
		CreatedTargetIDs: []uuid.UUID{},
		CreatedModelIDs:  []uuid.UUID{},
		Errors:           []ItemError{},
		Warnings:         []ItemWarning{},
	}

	e.publish(ctx, plan.ID, events.EventExecutionStarted, PhaseValidation, 0, "execution started")

	e.setPhase(ctx, plan.ID, PhaseValidation, 0, "validating plan")
	if err := e.validate(plan, opts); err != nil {
		return e.fail(ctx, plan, result, nil, opts, started, err)
	}

	var rollbackInfo *RollbackInfo
	if opts.CreateBackup && !opts.DryRun {
		e.setPhase(ctx, plan.ID, PhaseBackup, 10, "snapshotting pending records")
		info, err := e.backup.Backup(ctx, plan.ID)
		if err != nil {
			return e.fail(ctx, plan, result, nil, opts, started, err)
		}
		rollbackInfo = info
		result.Rollback = info
	}

	e.setPhase(ctx, plan.ID, PhaseMigration, 20, "resolving migration targets")

	pending, err := e.records.ListPending(ctx)
	if err != nil {
		return e.fail(ctx, plan, result, rollbackInfo, opts, started, apperrors.NewStorageError(apperrors.ErrMsgListPending, err))
	}

	if opts.DryRun {
		if err := e.dryRun(ctx, plan, opts, result, pending); err != nil {
			return e.fail(ctx, plan, result, nil, opts, started, err)
		}
		return e.finish(ctx, plan, result, started)
	}

	migratedBefore, err := e.records.CountMigrated(ctx)
	if err != nil {
		migratedBefore = -1
		result.Warnings = append(result.Warnings, ItemWarning{
			Message: "could not capture pre-migration count; count verification will be skipped",
			Details: err.Error(),
		})
	}

	targets, err := e.resolveTargets(ctx, plan, opts, result)
	if err != nil {
		return e.fail(ctx, plan, result, rollbackInfo, opts, started, err)
	}

	if err := e.migrateRecords(ctx, plan, opts, result, targets, pending); err != nil {
		return e.fail(ctx, plan, result, rollbackInfo, opts, started, err)
	}

	e.setPhase(ctx, plan.ID, PhaseVerification, 90, "verifying migrated records")
	e.verify(ctx, result, migratedBefore)

	return e.finish(ctx, plan, result, started)
}

// validate structurally checks every target spec and applies the critical
// risk gate. This is the single hard gate before any mutation.
func (e *Executor) validate(plan *MigrationPlan, opts ExecuteOptions) error {
	for _, spec := range plan.TargetSpecs {
		if spec.Target.Name == "" || spec.Target.Type == "" {
			return apperrors.NewValidationError("targetSpecs", fmt.Sprintf("target spec for category %q is missing a name or type", spec.Category))
		}
	}
	if plan.HasCriticalRisk() && !opts.Force {
		return apperrors.NewValidationError("risks", apperrors.ErrMsgCriticalRisks)
	}
	return nil
}

// resolveTargets creates or reuses the canonical provider for every target
// spec. A spec whose target exists with no policy to proceed records a
// conflict error and is skipped; the run continues with the remaining specs.
func (e *Executor) resolveTargets(ctx context.Context, plan *MigrationPlan, opts ExecuteOptions, result *MigrationResult) (map[string]uuid.UUID, error) {
	targets := make(map[string]uuid.UUID, len(plan.TargetSpecs))

	for _, spec := range plan.TargetSpecs {
		existing, err := e.registry.GetProviderByName(ctx, spec.Target.Name)
		if err != nil && !errors.Is(err, provider.ErrProviderNotFound) {
			return nil, apperrors.NewStorageError(fmt.Sprintf("failed to look up provider %q", spec.Target.Name), err)
		}

		if existing != nil {
			switch {
			case opts.Force:
				existing.Type = spec.Target.Type
				existing.BaseURL = spec.Target.BaseURL
				existing.Settings = datatypes.JSONMap(spec.Target.DefaultSettings)
				if err := e.registry.UpdateProvider(ctx, existing); err != nil {
					result.Errors = append(result.Errors, ItemError{
						Category: spec.Category,
						Message:  fmt.Sprintf("failed to update existing provider %q", spec.Target.Name),
						Details:  err.Error(),
					})
					continue
				}
				targets[spec.Category] = existing.ID
			case opts.SkipExisting:
				targets[spec.Category] = existing.ID
			default:
				conflict := apperrors.NewConflictError("provider", spec.Target.Name)
				result.Errors = append(result.Errors, ItemError{
					Category: spec.Category,
					Message:  conflict.Error(),
					Details:  "set skipExisting to reuse the existing provider or force to overwrite it",
				})
			}
			continue
		}

		created := &provider.Provider{
			Name:     spec.Target.Name,
			Type:     spec.Target.Type,
			BaseURL:  spec.Target.BaseURL,
			Settings: datatypes.JSONMap(spec.Target.DefaultSettings),
			Enabled:  true,
		}
		if err := e.registry.CreateProvider(ctx, created); err != nil {
			result.Errors = append(result.Errors, ItemError{
				Category: spec.Category,
				Message:  fmt.Sprintf("failed to create provider %q", spec.Target.Name),
				Details:  err.Error(),
			})
			continue
		}
		result.CreatedTargetIDs = append(result.CreatedTargetIDs, created.ID)
		targets[spec.Category] = created.ID

		for _, def := range spec.SubResources {
			model := &provider.Model{
				ProviderID:      created.ID,
				Name:            def.Name,
				ContextWindow:   def.ContextWindow,
				MaxOutputTokens: def.MaxOutputTokens,
				Capabilities:    strings.Join(def.Capabilities, ","),
			}
			if err := e.registry.CreateModel(ctx, model); err != nil {
				result.Warnings = append(result.Warnings, ItemWarning{
					Category: spec.Category,
					Message:  fmt.Sprintf("failed to create model %q for provider %q", def.Name, spec.Target.Name),
					Details:  err.Error(),
				})
				continue
			}
			result.CreatedModelIDs = append(result.CreatedModelIDs, model.ID)
		}
	}

	return targets, nil
}

// dryRun computes what a real run would create and migrate without touching
// the registry or any legacy record. Conflicts surface exactly as they would
// in a real run.
func (e *Executor) dryRun(ctx context.Context, plan *MigrationPlan, opts ExecuteOptions, result *MigrationResult, pending []legacy.Record) error {
	resolvable := make(map[string]bool, len(plan.TargetSpecs))

	for _, spec := range plan.TargetSpecs {
		existing, err := e.registry.GetProviderByName(ctx, spec.Target.Name)
		if err != nil && !errors.Is(err, provider.ErrProviderNotFound) {
			return apperrors.NewStorageError(fmt.Sprintf("failed to look up provider %q", spec.Target.Name), err)
		}

		if existing != nil {
			if opts.Force || opts.SkipExisting {
				resolvable[spec.Category] = true
			} else {
				conflict := apperrors.NewConflictError("provider", spec.Target.Name)
				result.Errors = append(result.Errors, ItemError{
					Category: spec.Category,
					Message:  conflict.Error(),
					Details:  "set skipExisting to reuse the existing provider or force to overwrite it",
				})
			}
			continue
		}

		result.WouldCreate += 1 + len(spec.SubResources)
		resolvable[spec.Category] = true
	}

	for _, record := range pending {
		if resolvable[record.Category] {
			result.WouldMigrate++
		}
	}

	e.logger.LogInfo("Dry run complete", map[string]interface{}{
		"planId":       plan.ID.String(),
		"wouldCreate":  result.WouldCreate,
		"wouldMigrate": result.WouldMigrate,
	})
	return nil
}

// migrateRecords runs the batch runner over all pending records, marking each
// one migrated against its category's resolved target. Batch failures are
// per-record errors, never whole-batch aborts.
func (e *Executor) migrateRecords(ctx context.Context, plan *MigrationPlan, opts ExecuteOptions, result *MigrationResult, targets map[string]uuid.UUID, pending []legacy.Record) error {
	batchSize := opts.BatchSize
	if batchSize <= 0 {
		batchSize = e.config.BatchSize
	}

	perRecord := func(ctx context.Context, record legacy.Record) error {
		targetID, ok := targets[record.Category]
		if !ok {
			return fmt.Errorf("no migration target for category %q", record.Category)
		}
		if err := e.records.MarkMigrated(ctx, record.ID, targetID); err != nil {
			return fmt.Errorf("failed to mark record migrated: %v", err)
		}
		return nil
	}

	onBatch := func(done, total int) {
		percent := 30.0
		if total > 0 {
			percent += 60.0 * float64(done) / float64(total)
		}
		item := fmt.Sprintf("%d/%d records", done, total)
		e.progress.Update(plan.ID, PhaseMigration, percent, "migrating records", item)
		e.publish(ctx, plan.ID, events.EventBatchCompleted, PhaseMigration, percent, item)
	}

	e.progress.Update(plan.ID, PhaseMigration, 30, "migrating records", "")
	outcome, err := RunBatches(ctx, pending, batchSize, e.config.Concurrency, perRecord, onBatch)

	result.MigratedCount = len(outcome.Succeeded)
	result.FailedCount = len(outcome.Failed)
	for _, failure := range outcome.Failed {
		result.Errors = append(result.Errors, ItemError{
			RecordID: failure.Item.ID,
			Category: failure.Item.Category,
			Message:  failure.Err.Error(),
		})
	}
	if err != nil {
		return fmt.Errorf("migration interrupted: %v", err)
	}
	return nil
}

// verify rechecks the store after migration. Mismatches become warnings;
// verification never flips success by itself.
func (e *Executor) verify(ctx context.Context, result *MigrationResult, migratedBefore int64) {
	if migratedBefore >= 0 {
		migratedAfter, err := e.records.CountMigrated(ctx)
		if err != nil {
			result.Warnings = append(result.Warnings, ItemWarning{
				Message: "could not recount migrated records",
				Details: err.Error(),
			})
		} else if delta := int(migratedAfter - migratedBefore); delta != result.MigratedCount {
			result.Warnings = append(result.Warnings, ItemWarning{
				Message: fmt.Sprintf("store reports %d newly migrated record(s), expected %d", delta, result.MigratedCount),
			})
		}
	}

	for _, id := range result.CreatedTargetIDs {
		if _, err := e.registry.GetProvider(ctx, id); err != nil {
			result.Warnings = append(result.Warnings, ItemWarning{
				Message: fmt.Sprintf("created provider %s is no longer retrievable", id),
				Details: err.Error(),
			})
		}
	}
	for _, id := range result.CreatedModelIDs {
		if _, err := e.registry.GetModel(ctx, id); err != nil {
			result.Warnings = append(result.Warnings, ItemWarning{
				Message: fmt.Sprintf("created model %s is no longer retrievable", id),
				Details: err.Error(),
			})
		}
	}
}

// finish applies the completion policy, persists the result, and publishes
// the terminal event
func (e *Executor) finish(ctx context.Context, plan *MigrationPlan, result *MigrationResult, started time.Time) (*MigrationResult, error) {
	result.Success = resultSuccessful(result)
	result.Duration = time.Since(started)

	phase := PhaseComplete
	eventType := events.EventExecutionCompleted
	if !result.Success {
		phase = PhaseFailed
		eventType = events.EventExecutionFailed
	}
	e.setPhase(ctx, plan.ID, phase, 100, string(phase))

	if err := e.store.SaveResult(ctx, result); err != nil {
		e.logger.LogErrorf(err, "failed to persist result for plan %s", plan.ID)
	}
	e.publish(ctx, plan.ID, eventType, phase, 100, fmt.Sprintf("migrated %d, failed %d", result.MigratedCount, result.FailedCount))

	e.logger.LogInfo("Migration execution finished", map[string]interface{}{
		"planId":   plan.ID.String(),
		"success":  result.Success,
		"dryRun":   result.DryRun,
		"migrated": result.MigratedCount,
		"failed":   result.FailedCount,
	})
	return result, nil
}

// fail finalizes a run that hit a validation or infrastructure failure. When
// a backup exists and rollback is enabled, it restores automatically before
// propagating the original failure; the partially-built result is returned
// alongside the error.
func (e *Executor) fail(ctx context.Context, plan *MigrationPlan, result *MigrationResult, rollbackInfo *RollbackInfo, opts ExecuteOptions, started time.Time, cause error) (*MigrationResult, error) {
	result.Success = false
	result.Duration = time.Since(started)

	if rollbackInfo != nil && opts.EnableRollback {
		outcome, err := e.backup.Restore(ctx, plan.ID, result)
		if err != nil {
			result.Errors = append(result.Errors, ItemError{
				Message: "automatic rollback failed",
				Details: err.Error(),
			})
		} else {
			warning := ItemWarning{
				Message: fmt.Sprintf("automatic rollback restored %d record(s)", outcome.Restored),
			}
			if len(outcome.Errors) > 0 {
				warning.Details = strings.Join(outcome.Errors, "; ")
			}
			result.Warnings = append(result.Warnings, warning)
			rollbackInfo.CanRollback = false
			e.publish(ctx, plan.ID, events.EventRollbackCompleted, PhaseFailed, 100, warning.Message)
		}
	}

	e.setPhase(ctx, plan.ID, PhaseFailed, 100, cause.Error())
	if err := e.store.SaveResult(ctx, result); err != nil {
		e.logger.LogErrorf(err, "failed to persist result for plan %s", plan.ID)
	}
	e.publish(ctx, plan.ID, events.EventExecutionFailed, PhaseFailed, 100, cause.Error())

	e.logger.LogError(cause, "Migration execution failed")
	return result, cause
}

func (e *Executor) setPhase(ctx context.Context, planID uuid.UUID, phase Phase, percent float64, message string) {
	e.progress.Update(planID, phase, percent, message, "")
	e.publish(ctx, planID, events.EventPhaseChanged, phase, percent, message)
}

func (e *Executor) publish(ctx context.Context, planID uuid.UUID, eventType events.EventType, phase Phase, percent float64, message string) {
	if e.events == nil {
		return
	}
	// Publish logs its own failures; event loss never affects the run.
	_ = e.events.Publish(ctx, &events.MigrationEvent{
		PlanID:  planID,
		Type:    eventType,
		Phase:   string(phase),
		Percent: percent,
		Message: message,
	})
}
