package migration

import (
	"context"
	"testing"

	"github.com/google/uuid"
	apperrors "github.com/promptdeck/platform/backend/internal/errors"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planFixture seeds records, creates a plan, and returns the wired
// orchestrator with its collaborators
func planFixture(t *testing.T, records ...*legacy.Record) (*Orchestrator, *mockRecordSource, *mockRegistry, *mockStore, *MigrationPlan) {
	t.Helper()
	source := newMockRecordSource(records...)
	registry := newMockRegistry()
	store := newMockStore()
	orchestrator := newTestOrchestrator(source, registry, store)

	plan, err := orchestrator.CreatePlan(context.Background())
	require.NoError(t, err)
	return orchestrator, source, registry, store, plan
}

func TestExecutePlan(t *testing.T) {
	ctx := context.Background()

	t.Run("migrates every record and creates targets with their models", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 3, "beta": 2})
		orchestrator, source, registry, store, plan := planFixture(t, records...)

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 5, result.MigratedCount)
		assert.Equal(t, 0, result.FailedCount)
		assert.Empty(t, result.Errors)
		assert.Len(t, result.CreatedTargetIDs, 2)
		assert.Len(t, result.CreatedModelIDs, 3)
		assert.Equal(t, 2, registry.providerCount())
		assert.Equal(t, 3, registry.modelCount())
		assert.Len(t, source.migratedIDs(), 5)

		attempts, err := store.ListResults(ctx, plan.ID)
		require.NoError(t, err)
		require.Len(t, attempts, 1)
		assert.True(t, attempts[0].Success)
	})

	t.Run("existing target without a policy records a conflict and the run continues", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 3, "beta": 2})
		records = append(records, newRecord("gamma"))
		orchestrator, source, registry, _, plan := planFixture(t, records...)
		registry.seedProvider("Alpha", "alpha")

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true})
		require.NoError(t, err)

		assert.Equal(t, 2, result.MigratedCount, "only beta records migrate")
		assert.Equal(t, 4, result.FailedCount, "alpha and gamma records fail")

		var conflict *ItemError
		for i := range result.Errors {
			if result.Errors[i].Category == "alpha" && result.Errors[i].RecordID == uuid.Nil {
				conflict = &result.Errors[i]
			}
		}
		require.NotNil(t, conflict, "expected a spec-level conflict entry for alpha")
		assert.Contains(t, conflict.Message, "already exists")

		// Beta was still created normally alongside the pre-existing Alpha.
		assert.Equal(t, 2, registry.providerCount())
		assert.Len(t, result.CreatedTargetIDs, 1)
		assert.Len(t, source.migratedIDs(), 2)
		assert.True(t, result.Success, "partial success with migrated records is still a success")
	})

	t.Run("skipExisting reuses the existing target", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 2})
		orchestrator, source, registry, _, plan := planFixture(t, records...)
		existing := registry.seedProvider("Alpha", "alpha")

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{SkipExisting: true})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Equal(t, 2, result.MigratedCount)
		assert.Empty(t, result.Errors)
		assert.Empty(t, result.CreatedTargetIDs)
		assert.Equal(t, 1, registry.providerCount())

		for _, id := range source.migratedIDs() {
			record, err := source.GetByID(ctx, id)
			require.NoError(t, err)
			require.NotNil(t, record.TargetResourceID)
			assert.Equal(t, existing.ID, *record.TargetResourceID)
		}
	})

	t.Run("force overwrites the existing target", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1})
		orchestrator, _, registry, _, plan := planFixture(t, records...)
		existing := registry.seedProvider("Alpha", "stale-type")

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{Force: true})
		require.NoError(t, err)

		assert.True(t, result.Success)
		assert.Empty(t, result.CreatedTargetIDs, "an updated provider is not a created one")

		updated, err := registry.GetProvider(ctx, existing.ID)
		require.NoError(t, err)
		assert.Equal(t, "alpha", updated.Type)
	})

	t.Run("dry run computes counts without touching anything", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 3, "beta": 2})
		records = append(records, newRecord("gamma"))
		orchestrator, source, registry, _, plan := planFixture(t, records...)
		registry.seedProvider("Alpha", "alpha")

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{DryRun: true})
		require.NoError(t, err)

		assert.True(t, result.DryRun)
		assert.Empty(t, result.CreatedTargetIDs)
		assert.Equal(t, 0, result.MigratedCount)
		assert.Equal(t, 3, result.WouldCreate, "beta provider plus its two models")
		assert.Equal(t, 2, result.WouldMigrate, "only beta records are resolvable")
		assert.Equal(t, 1, registry.providerCount(), "registry unchanged")
		assert.Empty(t, source.migratedIDs(), "no record flipped to migrated")

		// The alpha conflict surfaces exactly as a real run would report it.
		require.NotEmpty(t, result.Errors)
		assert.Contains(t, result.Errors[0].Message, "already exists")
	})

	t.Run("critical risk blocks execution unless forced", func(t *testing.T) {
		source := newMockRecordSource(newRecord("alpha"))
		registry := newMockRegistry()
		store := newMockStore()
		orchestrator := newTestOrchestrator(source, registry, store)

		plan, err := orchestrator.CreatePlan(ctx)
		require.NoError(t, err)
		plan.Risks = append(plan.Risks, Risk{
			Kind:        RiskDataLoss,
			Severity:    SeverityCritical,
			Description: "irreversible settings conversion",
		})
		store.plans[plan.ID] = plan

		_, err = orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{})
		var validationErr *apperrors.ValidationError
		require.ErrorAs(t, err, &validationErr)
		assert.Empty(t, source.migratedIDs(), "gate fires before any mutation")
		assert.Equal(t, 0, registry.providerCount())

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{Force: true})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 1, result.MigratedCount)
	})

	t.Run("second execution of a running plan is rejected", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 1})
		orchestrator, _, _, _, plan := planFixture(t, records...)

		require.NoError(t, orchestrator.progress.Begin(plan.ID, 0))
		defer orchestrator.progress.End(plan.ID)

		_, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{})
		assert.ErrorIs(t, err, ErrPlanRunning)
	})

	t.Run("per-record failures never abort the run and ids never overlap", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 4})
		orchestrator, source, _, _, plan := planFixture(t, records...)
		source.failMarkIDs = map[uuid.UUID]bool{
			records[0].ID: true,
			records[2].ID: true,
		}

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{})
		require.NoError(t, err)

		assert.Equal(t, 2, result.MigratedCount)
		assert.Equal(t, 2, result.FailedCount)
		assert.Equal(t, 4, result.MigratedCount+result.FailedCount)
		assert.True(t, result.Success, "errors plus at least one migrated record is still a success")

		failed := map[uuid.UUID]bool{}
		for _, itemErr := range result.Errors {
			failed[itemErr.RecordID] = true
		}
		for _, id := range source.migratedIDs() {
			assert.False(t, failed[id], "record %s appears in both sets", id)
		}
	})

	t.Run("store outage after backup rolls back automatically", func(t *testing.T) {
		records := seedRecords(map[string]int{"alpha": 3, "beta": 2})
		records = append(records, newRecord("gamma"))
		orchestrator, source, _, store, plan := planFixture(t, records...)

		// Plan creation and the backup each list once; the executor's own
		// listing is the third call and hits the outage.
		source.failListAfter = 2

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{CreateBackup: true, EnableRollback: true})
		require.Error(t, err)
		require.NotNil(t, result, "a failed run still returns its partial result")

		assert.False(t, result.Success)
		require.NotNil(t, result.Rollback)

		var rollbackNote *ItemWarning
		for i := range result.Warnings {
			if result.Warnings[i].Message == "automatic rollback restored 6 record(s)" {
				rollbackNote = &result.Warnings[i]
			}
		}
		require.NotNil(t, rollbackNote, "expected a rollback-succeeded warning")

		backup, berr := store.LatestBackup(ctx, plan.ID)
		require.NoError(t, berr)
		require.NotNil(t, backup)
		assert.True(t, backup.Consumed)

		attempts, aerr := store.ListResults(ctx, plan.ID)
		require.NoError(t, aerr)
		require.Len(t, attempts, 1)
		assert.False(t, attempts[0].Success)
	})

	t.Run("nothing to migrate is a successful run", func(t *testing.T) {
		orchestrator, _, _, _, plan := planFixture(t)

		result, err := orchestrator.ExecutePlan(ctx, plan.ID, ExecuteOptions{})
		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 0, result.MigratedCount)
		assert.Empty(t, result.Errors)
	})

	t.Run("unknown plan id returns not found", func(t *testing.T) {
		orchestrator := newTestOrchestrator(newMockRecordSource(), newMockRegistry(), newMockStore())

		_, err := orchestrator.ExecutePlan(ctx, uuid.New(), ExecuteOptions{})
		assert.ErrorIs(t, err, ErrPlanNotFound)
	})
}

func TestResultSuccessful(t *testing.T) {
	tests := []struct {
		name     string
		result   MigrationResult
		expected bool
	}{
		{"no errors and no work", MigrationResult{}, true},
		{"no errors with migrations", MigrationResult{MigratedCount: 5}, true},
		{"errors with at least one migration", MigrationResult{MigratedCount: 1, Errors: []ItemError{{Message: "x"}}}, true},
		{"errors and nothing migrated", MigrationResult{Errors: []ItemError{{Message: "x"}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, resultSuccessful(&tt.result))
		})
	}
}

func TestGetProgress(t *testing.T) {
	orchestrator := newTestOrchestrator(newMockRecordSource(), newMockRegistry(), newMockStore())
	planID := uuid.New()

	assert.Nil(t, orchestrator.GetProgress(context.Background(), planID))

	require.NoError(t, orchestrator.progress.Begin(planID, 0))
	defer orchestrator.progress.End(planID)

	progress := orchestrator.GetProgress(context.Background(), planID)
	require.NotNil(t, progress)
	assert.Equal(t, planID, progress.PlanID)
}
