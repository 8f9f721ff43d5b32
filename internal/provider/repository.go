package provider

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Common errors
var (
	ErrProviderNotFound = errors.New("provider not found")
	ErrModelNotFound    = errors.New("model not found")
)

// gormRepository implements the Repository interface using gorm
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new provider repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// GetByID retrieves a provider by its ID
func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	var provider Provider
	err := r.db.WithContext(ctx).Preload("Models").First(&provider, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// GetByName retrieves a provider by its unique name
func (r *gormRepository) GetByName(ctx context.Context, name string) (*Provider, error) {
	var provider Provider
	err := r.db.WithContext(ctx).Preload("Models").First(&provider, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProviderNotFound
		}
		return nil, err
	}
	return &provider, nil
}

// List retrieves all providers
func (r *gormRepository) List(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	err := r.db.WithContext(ctx).Order("name").Find(&providers).Error
	return providers, err
}

// Create inserts a new provider
func (r *gormRepository) Create(ctx context.Context, provider *Provider) error {
	return r.db.WithContext(ctx).Create(provider).Error
}

// Update writes the full provider row
func (r *gormRepository) Update(ctx context.Context, provider *Provider) error {
	return r.db.WithContext(ctx).Save(provider).Error
}

// Delete removes a provider and its models
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("provider_id = ?", id).Delete(&Model{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&Provider{}, "id = ?", id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrProviderNotFound
		}
		return nil
	})
}

// GetModelByID retrieves a model by its ID
func (r *gormRepository) GetModelByID(ctx context.Context, id uuid.UUID) (*Model, error) {
	var model Model
	err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrModelNotFound
		}
		return nil, err
	}
	return &model, nil
}

// ListModels retrieves all models for a provider
func (r *gormRepository) ListModels(ctx context.Context, providerID uuid.UUID) ([]Model, error) {
	var models []Model
	err := r.db.WithContext(ctx).Where("provider_id = ?", providerID).Order("name").Find(&models).Error
	return models, err
}

// CreateModel inserts a new model
func (r *gormRepository) CreateModel(ctx context.Context, model *Model) error {
	return r.db.WithContext(ctx).Create(model).Error
}

// DeleteModel removes a model
func (r *gormRepository) DeleteModel(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Model{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrModelNotFound
	}
	return nil
}
