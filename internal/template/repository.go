package template

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrTemplateNotFound is returned when a template does not exist
var ErrTemplateNotFound = errors.New("template not found")

// gormRepository implements the Repository interface using gorm
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new template repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// GetByID retrieves a template by its ID
func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Template, error) {
	var template Template
	if err := r.db.WithContext(ctx).First(&template, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	return &template, nil
}

// List retrieves all templates
func (r *gormRepository) List(ctx context.Context) ([]Template, error) {
	var templates []Template
	err := r.db.WithContext(ctx).Order("name").Find(&templates).Error
	return templates, err
}

// Create inserts a new template
func (r *gormRepository) Create(ctx context.Context, template *Template) error {
	return r.db.WithContext(ctx).Create(template).Error
}

// Update writes the full template row
func (r *gormRepository) Update(ctx context.Context, template *Template) error {
	return r.db.WithContext(ctx).Save(template).Error
}

// Delete removes a template
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&Template{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
