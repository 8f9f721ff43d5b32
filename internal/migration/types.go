package migration

import (
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/catalog"
)

// RiskKind categorizes a migration risk
type RiskKind string

const (
	RiskCompatibility RiskKind = "compatibility"
	RiskDataLoss      RiskKind = "data_loss"
	RiskPerformance   RiskKind = "performance"
	RiskConfiguration RiskKind = "configuration"
)

// RiskSeverity grades a migration risk
type RiskSeverity string

const (
	SeverityLow      RiskSeverity = "low"
	SeverityMedium   RiskSeverity = "medium"
	SeverityHigh     RiskSeverity = "high"
	SeverityCritical RiskSeverity = "critical"
)

// Phase identifies one step of the executor's linear state machine
type Phase string

const (
	PhaseValidation   Phase = "validation"
	PhaseBackup       Phase = "backup"
	PhaseMigration    Phase = "migration"
	PhaseVerification Phase = "verification"
	PhaseComplete     Phase = "complete"
	PhaseFailed       Phase = "failed"
)

// TargetSpec maps a legacy category to the canonical provider it migrates
// into. Specs are derived fresh for every plan and immutable afterwards.
type TargetSpec struct {
	Category        string                    `json:"category"`
	Target          catalog.Definition        `json:"target"`
	SubResources    []catalog.ModelDefinition `json:"subResources"`
	AffectedRecords int                       `json:"affectedRecords"`
}

// Risk describes a categorized risk discovered during planning
type Risk struct {
	Kind              RiskKind     `json:"kind"`
	Severity          RiskSeverity `json:"severity"`
	Description       string       `json:"description"`
	Mitigation        string       `json:"mitigation"`
	AffectedRecordIDs []uuid.UUID  `json:"affectedRecordIds,omitempty"`
}

// MigrationPlan is the read-only analysis artifact produced before any
// mutation. Executing a plan never mutates the plan itself.
type MigrationPlan struct {
	ID                uuid.UUID      `json:"id"`
	TotalRecords      int            `json:"totalRecords"`
	CountsByCategory  map[string]int `json:"countsByCategory"`
	TargetSpecs       []TargetSpec   `json:"targetSpecs"`
	Risks             []Risk         `json:"risks"`
	EstimatedDuration time.Duration  `json:"estimatedDuration"`
	CreatedAt         time.Time      `json:"createdAt"`
}

// HasCriticalRisk reports whether the plan contains a critical severity risk
func (p *MigrationPlan) HasCriticalRisk() bool {
	for _, risk := range p.Risks {
		if risk.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// MigrationProgress is the ephemeral, in-memory view of a running execution.
// It disappears when the execution ends; the persisted MigrationResult is the
// durable record.
type MigrationProgress struct {
	PlanID              uuid.UUID  `json:"planId"`
	Phase               Phase      `json:"phase"`
	Percent             float64    `json:"percent"`
	CurrentItem         string     `json:"currentItem,omitempty"`
	Message             string     `json:"message"`
	StartedAt           time.Time  `json:"startedAt"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion,omitempty"`
}

// ItemError captures a per-record or per-spec failure without aborting the run
type ItemError struct {
	RecordID uuid.UUID `json:"recordId,omitempty"`
	Category string    `json:"category,omitempty"`
	Message  string    `json:"error"`
	Details  string    `json:"details,omitempty"`
}

// ItemWarning captures a non-fatal irregularity observed during a run
type ItemWarning struct {
	RecordID uuid.UUID `json:"recordId,omitempty"`
	Category string    `json:"category,omitempty"`
	Message  string    `json:"warning"`
	Details  string    `json:"details,omitempty"`
}

// MigrationResult is the durable outcome of one execution attempt. Retried
// executions append new results; history is never overwritten.
type MigrationResult struct {
	PlanID           uuid.UUID     `json:"planId"`
	Success          bool          `json:"success"`
	DryRun           bool          `json:"dryRun"`
	MigratedCount    int           `json:"migratedCount"`
	FailedCount      int           `json:"failedCount"`
	CreatedTargetIDs []uuid.UUID   `json:"createdTargetIds"`
	CreatedModelIDs  []uuid.UUID   `json:"createdModelIds"`
	WouldCreate      int           `json:"wouldCreate,omitempty"`
	WouldMigrate     int           `json:"wouldMigrate,omitempty"`
	Errors           []ItemError   `json:"errors"`
	Warnings         []ItemWarning `json:"warnings"`
	Duration         time.Duration `json:"duration"`
	Rollback         *RollbackInfo `json:"rollbackInfo,omitempty"`
}

// RollbackInfo records where a pre-migration backup lives. It is consumed by
// exactly one rollback; CanRollback flips to false afterwards.
type RollbackInfo struct {
	BackupID    uuid.UUID `json:"backupId"`
	Location    string    `json:"backupLocation"`
	CreatedAt   time.Time `json:"createdAt"`
	CanRollback bool      `json:"canRollback"`
}

// RollbackOutcome makes the best-effort nature of rollback explicit: partial
// failures are reported here instead of raised.
type RollbackOutcome struct {
	Restored        int      `json:"restored"`
	DeletedTargets  int      `json:"deletedTargets"`
	DeletedModels   int      `json:"deletedModels"`
	Errors          []string `json:"errors"`
}

// ExecuteOptions controls a single execution attempt
type ExecuteOptions struct {
	DryRun       bool `json:"dryRun"`
	SkipExisting bool `json:"skipExisting"`
	CreateBackup bool `json:"createBackup"`
	// EnableRollback triggers an automatic restore when the run fails at the
	// infrastructure level after a backup was taken.
	EnableRollback bool `json:"enableRollback"`
	Force          bool `json:"force"`
	BatchSize      int  `json:"batchSize,omitempty"`
}

// CompatibilityReport is the advisory result of a single-record pre-check
type CompatibilityReport struct {
	Compatible      bool     `json:"compatible"`
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
}
