package migration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/config"
	apperrors "github.com/promptdeck/platform/backend/internal/errors"
	"github.com/promptdeck/platform/backend/internal/logger"
)

// Planner analyzes pending legacy records and produces persisted migration
// plans. Planning never mutates legacy records.
type Planner struct {
	records RecordSource
	specs   *SpecBuilder
	store   Store
	config  *config.MigrationConfig
	logger  logger.Logger
}

// NewPlanner creates a new planner
func NewPlanner(records RecordSource, specs *SpecBuilder, store Store, cfg *config.MigrationConfig, log logger.Logger) *Planner {
	return &Planner{
		records: records,
		specs:   specs,
		store:   store,
		config:  cfg,
		logger:  log,
	}
}

// CreatePlan lists pending records, derives target specs and risks, estimates
// duration, and persists the resulting plan.
func (p *Planner) CreatePlan(ctx context.Context) (*MigrationPlan, error) {
	pending, err := p.records.ListPending(ctx)
	if err != nil {
		return nil, apperrors.NewStorageError(apperrors.ErrMsgListPending, err)
	}

	countsByCategory := make(map[string]int)
	for _, record := range pending {
		countsByCategory[record.Category]++
	}

	specs, unsupported := p.specs.Build(countsByCategory)
	if len(unsupported) > 0 {
		p.logger.LogWarn("Plan contains unsupported categories", map[string]interface{}{
			"categories": unsupported,
		})
	}

	risks := AnalyzeRisks(pending, specs, p.config.RecordThreshold)

	plan := &MigrationPlan{
		ID:                uuid.New(),
		TotalRecords:      len(pending),
		CountsByCategory:  countsByCategory,
		TargetSpecs:       specs,
		Risks:             risks,
		EstimatedDuration: p.config.BaseDuration + time.Duration(len(pending))*p.config.PerRecordDuration,
		CreatedAt:         time.Now().UTC(),
	}

	if err := p.store.SavePlan(ctx, plan); err != nil {
		return nil, apperrors.NewStorageError(apperrors.ErrMsgPersistPlan, err)
	}

	p.logger.LogInfo("Migration plan created", map[string]interface{}{
		"planId":       plan.ID.String(),
		"totalRecords": plan.TotalRecords,
		"specs":        len(plan.TargetSpecs),
		"risks":        len(plan.Risks),
	})
	return plan, nil
}
