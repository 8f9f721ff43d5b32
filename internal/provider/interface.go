package provider

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines the interface for provider data access
type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Provider, error)
	GetByName(ctx context.Context, name string) (*Provider, error)
	List(ctx context.Context) ([]Provider, error)
	Create(ctx context.Context, provider *Provider) error
	Update(ctx context.Context, provider *Provider) error
	Delete(ctx context.Context, id uuid.UUID) error

	GetModelByID(ctx context.Context, id uuid.UUID) (*Model, error)
	ListModels(ctx context.Context, providerID uuid.UUID) ([]Model, error)
	CreateModel(ctx context.Context, model *Model) error
	DeleteModel(ctx context.Context, id uuid.UUID) error
}

// Service defines the business logic interface for provider operations. The
// migration orchestrator consumes this as its resource registry.
type Service interface {
	GetProvider(ctx context.Context, id uuid.UUID) (*Provider, error)
	GetProviderByName(ctx context.Context, name string) (*Provider, error)
	ListProviders(ctx context.Context) ([]Provider, error)
	CreateProvider(ctx context.Context, provider *Provider) error
	UpdateProvider(ctx context.Context, provider *Provider) error
	DeleteProvider(ctx context.Context, id uuid.UUID) error

	GetModel(ctx context.Context, id uuid.UUID) (*Model, error)
	ListModels(ctx context.Context, providerID uuid.UUID) ([]Model, error)
	CreateModel(ctx context.Context, model *Model) error
	DeleteModel(ctx context.Context, id uuid.UUID) error
}
