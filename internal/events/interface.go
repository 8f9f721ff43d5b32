package events

import "context"

// Publisher defines the interface for publishing migration lifecycle events
type Publisher interface {
	Publish(ctx context.Context, event *MigrationEvent) error
	Close() error
}
