package legacy

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for legacy record data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Record, error)
	ListPending(ctx context.Context) ([]Record, error)
	ListAll(ctx context.Context) ([]Record, error)
	Create(ctx context.Context, record *Record) error
	MarkMigrated(ctx context.Context, id uuid.UUID, targetResourceID uuid.UUID) error
	Upsert(ctx context.Context, record *Record) error
	CountPending(ctx context.Context) (int64, error)
	CountMigrated(ctx context.Context) (int64, error)
}
