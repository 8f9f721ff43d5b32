package prompt

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrPromptNotFound is returned when a prompt does not exist
var ErrPromptNotFound = errors.New("prompt not found")

// gormRepository implements the Repository interface using gorm
type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a new prompt repository
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

// GetByID retrieves a prompt by its ID
func (r *gormRepository) GetByID(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	var prompt Prompt
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL").
		First(&prompt, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPromptNotFound
		}
		return nil, err
	}
	return &prompt, nil
}

// List retrieves prompts with pagination and optional label filtering
func (r *gormRepository) List(ctx context.Context, options FilterOptions) (PaginatedPrompts, error) {
	query := r.db.WithContext(ctx).Model(&Prompt{}).Where("deleted_at IS NULL")
	if options.Label != "" {
		query = query.Where("labels LIKE ?", "%"+options.Label+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return PaginatedPrompts{}, err
	}

	var prompts []Prompt
	offset := (options.Page - 1) * options.Limit
	err := query.Order("updated_at DESC").Offset(offset).Limit(options.Limit).Find(&prompts).Error
	if err != nil {
		return PaginatedPrompts{}, err
	}

	totalPages := int(total) / options.Limit
	if int(total)%options.Limit > 0 {
		totalPages++
	}

	return PaginatedPrompts{
		Prompts:     prompts,
		TotalCount:  int(total),
		CurrentPage: options.Page,
		TotalPages:  totalPages,
	}, nil
}

// Create inserts a new prompt
func (r *gormRepository) Create(ctx context.Context, prompt *Prompt) error {
	return r.db.WithContext(ctx).Create(prompt).Error
}

// Update writes the full prompt row
func (r *gormRepository) Update(ctx context.Context, prompt *Prompt) error {
	return r.db.WithContext(ctx).Save(prompt).Error
}

// Delete soft-deletes a prompt
func (r *gormRepository) Delete(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	result := r.db.WithContext(ctx).Model(&Prompt{}).
		Where("id = ? AND deleted_at IS NULL", id).
		Update("deleted_at", now)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrPromptNotFound
	}
	return nil
}
