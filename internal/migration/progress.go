package migration

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// ProgressTracker holds the in-memory progress of running executions, keyed
// by plan id. An entry doubles as the single-flight lock for its plan:
// Begin fails while an entry exists. Entries are removed when execution ends
// and do not survive a process restart.
type ProgressTracker struct {
	mu     sync.Mutex
	active map[uuid.UUID]*MigrationProgress
}

// NewProgressTracker creates an empty tracker
func NewProgressTracker() *ProgressTracker {
	return &ProgressTracker{
		active: make(map[uuid.UUID]*MigrationProgress),
	}
}

// Begin registers a new execution for the plan. Returns ErrPlanRunning if an
// execution for the same plan id is already in flight.
func (t *ProgressTracker) Begin(planID uuid.UUID, estimated time.Duration) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, exists := t.active[planID]; exists {
		return ErrPlanRunning
	}

	now := time.Now().UTC()
	progress := &MigrationProgress{
		PlanID:    planID,
		Phase:     PhaseValidation,
		Percent:   0,
		Message:   "execution started",
		StartedAt: now,
	}
	if estimated > 0 {
		eta := now.Add(estimated)
		progress.EstimatedCompletion = &eta
	}
	t.active[planID] = progress
	return nil
}

// Update advances the plan's progress. Percent never decreases; stale updates
// are clamped to the current value. Unknown plan ids are ignored.
func (t *ProgressTracker) Update(planID uuid.UUID, phase Phase, percent float64, message, currentItem string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	progress, exists := t.active[planID]
	if !exists {
		return
	}
	progress.Phase = phase
	if percent > progress.Percent {
		progress.Percent = percent
	}
	if message != "" {
		progress.Message = message
	}
	progress.CurrentItem = currentItem
}

// Get returns a copy of the plan's progress, or nil when no execution is in
// flight for that plan id.
func (t *ProgressTracker) Get(planID uuid.UUID) *MigrationProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	progress, exists := t.active[planID]
	if !exists {
		return nil
	}
	copied := *progress
	return &copied
}

// End removes the plan's entry, releasing the single-flight lock
func (t *ProgressTracker) End(planID uuid.UUID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.active, planID)
}
