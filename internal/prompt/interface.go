package prompt

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for prompt data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Prompt, error)
	List(ctx context.Context, options FilterOptions) (PaginatedPrompts, error)
	Create(ctx context.Context, prompt *Prompt) error
	Update(ctx context.Context, prompt *Prompt) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the business logic interface for prompt operations
type Service interface {
	GetPrompt(ctx context.Context, id uuid.UUID) (*Prompt, error)
	ListPrompts(ctx context.Context, options FilterOptions) (PaginatedPrompts, error)
	CreatePrompt(ctx context.Context, prompt *Prompt) error
	UpdatePrompt(ctx context.Context, prompt *Prompt) error
	DeletePrompt(ctx context.Context, id uuid.UUID) error
}
