package template

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for template data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Template, error)
	List(ctx context.Context) ([]Template, error)
	Create(ctx context.Context, template *Template) error
	Update(ctx context.Context, template *Template) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// Service defines the business logic interface for template operations
type Service interface {
	GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error)
	ListTemplates(ctx context.Context) ([]Template, error)
	CreateTemplate(ctx context.Context, template *Template) error
	UpdateTemplate(ctx context.Context, template *Template) error
	DeleteTemplate(ctx context.Context, id uuid.UUID) error

	// Render substitutes variables into the template body. Rendered output is
	// cached; the cache entry is invalidated when the template changes.
	Render(ctx context.Context, id uuid.UUID, variables map[string]string) (string, error)
}
