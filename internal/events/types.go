package events

import (
	"time"

	"github.com/google/uuid"
)

// EventType identifies the kind of migration lifecycle event
type EventType string

const (
	EventPlanCreated        EventType = "PLAN_CREATED"
	EventExecutionStarted   EventType = "EXECUTION_STARTED"
	EventPhaseChanged       EventType = "PHASE_CHANGED"
	EventBatchCompleted     EventType = "BATCH_COMPLETED"
	EventExecutionCompleted EventType = "EXECUTION_COMPLETED"
	EventExecutionFailed    EventType = "EXECUTION_FAILED"
	EventRollbackCompleted  EventType = "ROLLBACK_COMPLETED"
)

// MigrationEvent is the payload published for every migration lifecycle change
type MigrationEvent struct {
	EventID   uuid.UUID `json:"eventId"`
	PlanID    uuid.UUID `json:"planId"`
	Type      EventType `json:"type"`
	Phase     string    `json:"phase,omitempty"`
	Percent   float64   `json:"percent,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Config holds event publisher settings
type Config struct {
	Enabled           bool
	PulsarURL         string
	Topic             string
	OperationTimeout  time.Duration
	ConnectionTimeout time.Duration
}
