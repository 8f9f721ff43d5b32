package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Validation errors
var (
	ErrNameRequired = errors.New("provider name is required")
	ErrTypeRequired = errors.New("provider type is required")
)

// serviceImpl implements the Service interface
type serviceImpl struct {
	repo Repository
}

// NewService creates a new provider service
func NewService(repo Repository) Service {
	return &serviceImpl{repo: repo}
}

// GetProvider retrieves a provider by ID
func (s *serviceImpl) GetProvider(ctx context.Context, id uuid.UUID) (*Provider, error) {
	return s.repo.GetByID(ctx, id)
}

// GetProviderByName retrieves a provider by its unique name
func (s *serviceImpl) GetProviderByName(ctx context.Context, name string) (*Provider, error) {
	return s.repo.GetByName(ctx, name)
}

// ListProviders retrieves all providers
func (s *serviceImpl) ListProviders(ctx context.Context) ([]Provider, error) {
	return s.repo.List(ctx)
}

// CreateProvider validates and creates a provider
func (s *serviceImpl) CreateProvider(ctx context.Context, provider *Provider) error {
	if provider.Name == "" {
		return ErrNameRequired
	}
	if provider.Type == "" {
		return ErrTypeRequired
	}
	if provider.ID == uuid.Nil {
		provider.ID = uuid.New()
	}
	return s.repo.Create(ctx, provider)
}

// UpdateProvider validates and updates a provider
func (s *serviceImpl) UpdateProvider(ctx context.Context, provider *Provider) error {
	if provider.Name == "" {
		return ErrNameRequired
	}
	if _, err := s.repo.GetByID(ctx, provider.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, provider)
}

// DeleteProvider removes a provider and its models
func (s *serviceImpl) DeleteProvider(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// GetModel retrieves a model by ID
func (s *serviceImpl) GetModel(ctx context.Context, id uuid.UUID) (*Model, error) {
	return s.repo.GetModelByID(ctx, id)
}

// ListModels retrieves all models for a provider
func (s *serviceImpl) ListModels(ctx context.Context, providerID uuid.UUID) ([]Model, error) {
	return s.repo.ListModels(ctx, providerID)
}

// CreateModel validates and creates a model
func (s *serviceImpl) CreateModel(ctx context.Context, model *Model) error {
	if model.Name == "" {
		return ErrNameRequired
	}
	if model.ProviderID == uuid.Nil {
		return errors.New("provider ID is required")
	}
	if model.ID == uuid.Nil {
		model.ID = uuid.New()
	}
	return s.repo.CreateModel(ctx, model)
}

// DeleteModel removes a model
func (s *serviceImpl) DeleteModel(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteModel(ctx, id)
}
