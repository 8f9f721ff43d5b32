package migration

import (
	"context"
	"testing"

	apperrors "github.com/promptdeck/platform/backend/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupAndRollback(t *testing.T) {
	ctx := context.Background()

	t.Run("backup snapshots every pending record", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 2, "beta": 1})
		orchestrator, _, _, store, plan := planFixture(t, records...)

		info, err := orchestrator.backup.Backup(ctx, plan.ID)
		require.NoError(t, err)

		assert.True(t, info.CanRollback)
		assert.Contains(t, info.Location, info.BackupID.String())

		entries, err := store.GetBackupEntries(ctx, info.BackupID)
		require.NoError(t, err)
		assert.Len(t, entries, 3)
	})

	t.Run("rollback restores records and undoes created resources", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 2, "beta": 1})
		orchestrator, source, registry, _, plan := planFixture(t, records...)

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.NoError(t, err)
		require.True(t, result.Success)
		require.Len(t, source.migratedIDs(), 3)
		require.Equal(t, 2, registry.providerCount())

		outcome, err := orchestrator.Rollback(ctx, plan.ID)
		require.NoError(t, err)

		assert.Equal(t, 3, outcome.Restored)
		assert.Equal(t, 2, outcome.DeletedTargets)
		assert.Equal(t, 3, outcome.DeletedModels)
		assert.Empty(t, outcome.Errors)
		assert.Empty(t, source.migratedIDs(), "migrated flags return to their pre-execution values")
		assert.Equal(t, 0, registry.providerCount())
		assert.Equal(t, 0, registry.modelCount())
	})

	t.Run("a backup serves exactly one rollback", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1})
		orchestrator, _, _, _, plan := planFixture(t, records...)

		_, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.NoError(t, err)

		_, err = orchestrator.Rollback(ctx, plan.ID)
		require.NoError(t, err)

		_, err = orchestrator.Rollback(ctx, plan.ID)
		assert.ErrorIs(t, err, ErrBackupConsumed)
	})

	t.Run("rollback without a backup is rejected", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1})
		orchestrator, _, _, _, plan := planFixture(t, records...)

		_, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{})
		require.NoError(t, err)

		_, err = orchestrator.Rollback(ctx, plan.ID)
		assert.ErrorIs(t, err, ErrNoBackup)
	})

	t.Run("rollback is rejected while an execution is running", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1})
		orchestrator, _, _, _, plan := planFixture(t, records...)

		require.NoError(t, orchestrator.progress.Begin(plan.ID, 0))
		defer orchestrator.progress.End(plan.ID)

		_, err := orchestrator.Rollback(ctx, plan.ID)
		assert.ErrorIs(t, err, ErrPlanRunning)
	})

	t.Run("cleanup failures are collected, not raised", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1, "beta": 1})
		orchestrator, source, registry, _, plan := planFixture(t, records...)

		_, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.NoError(t, err)

		registry.deleteErr = errSimulatedOutage

		outcome, err := orchestrator.Rollback(ctx, plan.ID)
		require.NoError(t, err, "best-effort rollback never raises per-item failures")

		assert.Equal(t, 2, outcome.Restored)
		assert.Equal(t, 0, outcome.DeletedTargets)
		assert.Len(t, outcome.Errors, 2, "one entry per failed provider deletion")
		assert.Empty(t, source.migratedIDs(), "restore still ran despite cleanup failures")
	})

	t.Run("restore failures are reported per record", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 2})
		orchestrator, source, _, _, plan := planFixture(t, records...)

		_, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.NoError(t, err)

		source.upsertErr = errSimulatedOutage

		outcome, err := orchestrator.Rollback(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, outcome.Restored)
		assert.Len(t, outcome.Errors, 2)
	})

	t.Run("rollback after a dry run undoes the newest real attempt", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 2, "beta": 1})
		orchestrator, source, registry, store, plan := planFixture(t, records...)

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.NoError(t, err)
		require.Len(t, result.CreatedTargetIDs, 2)

		// A later dry run persists its own result on top of the real one.
		dry, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{DryRun: true})
		require.NoError(t, err)
		require.True(t, dry.DryRun)

		results, err := store.ListResults(ctx, plan.ID)
		require.NoError(t, err)
		require.True(t, results[0].DryRun, "dry run is the newest persisted result")

		outcome, err := orchestrator.Rollback(ctx, plan.ID)
		require.NoError(t, err)
		assert.Equal(t, 3, outcome.Restored)
		assert.Equal(t, 2, outcome.DeletedTargets)
		assert.Equal(t, 3, outcome.DeletedModels)
		assert.Equal(t, 0, registry.providerCount())
		assert.Empty(t, source.migratedIDs())
	})

	t.Run("store failures during rollback surface as rollback errors", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1})
		orchestrator, _, _, store, plan := planFixture(t, records...)

		_, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.NoError(t, err)

		store.entriesErr = errSimulatedOutage
		_, err = orchestrator.Rollback(ctx, plan.ID)
		var rollbackErr *apperrors.RollbackError
		require.ErrorAs(t, err, &rollbackErr)
		assert.ErrorIs(t, err, errSimulatedOutage)

		store.entriesErr = nil
		store.backupErr = errSimulatedOutage
		_, err = orchestrator.Rollback(ctx, plan.ID)
		require.ErrorAs(t, err, &rollbackErr)
	})

	t.Run("backup aborts the whole execution when it fails", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1})
		orchestrator, source, registry, _, plan := planFixture(t, records...)

		// Plan creation consumed the only allowed listing; the backup's
		// listing fails.
		source.failListAfter = 1

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.Error(t, err)
		require.NotNil(t, result)
		assert.False(t, result.Success)
		assert.Nil(t, result.Rollback, "no partial backup is considered usable")
		assert.Equal(t, 0, registry.providerCount(), "no mutation happened")
	})
}
