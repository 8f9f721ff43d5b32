package prompt

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/config"
)

// Common errors
var (
	ErrNameRequired    = errors.New("prompt name is required")
	ErrContentRequired = errors.New("prompt content is required")
	ErrNameLength      = errors.New("prompt name length is out of range")
	ErrContentTooLarge = errors.New("prompt content exceeds maximum allowed length")
)

// serviceImpl implements the Service interface
type serviceImpl struct {
	repo Repository
	cfg  *config.PromptConfig
}

// NewService creates a new prompt service
func NewService(repo Repository, cfg *config.PromptConfig) Service {
	return &serviceImpl{
		repo: repo,
		cfg:  cfg,
	}
}

// GetPrompt retrieves a prompt by ID
func (s *serviceImpl) GetPrompt(ctx context.Context, id uuid.UUID) (*Prompt, error) {
	return s.repo.GetByID(ctx, id)
}

// ListPrompts retrieves prompts with pagination
func (s *serviceImpl) ListPrompts(ctx context.Context, options FilterOptions) (PaginatedPrompts, error) {
	if options.Page < 1 {
		options.Page = 1
	}
	if options.Limit < 1 {
		options.Limit = 20
	} else if options.Limit > 100 {
		options.Limit = 100
	}
	return s.repo.List(ctx, options)
}

// CreatePrompt validates and creates a prompt
func (s *serviceImpl) CreatePrompt(ctx context.Context, prompt *Prompt) error {
	if err := s.validate(prompt); err != nil {
		return err
	}
	if prompt.ID == uuid.Nil {
		prompt.ID = uuid.New()
	}
	return s.repo.Create(ctx, prompt)
}

// UpdatePrompt validates and updates an existing prompt
func (s *serviceImpl) UpdatePrompt(ctx context.Context, prompt *Prompt) error {
	if err := s.validate(prompt); err != nil {
		return err
	}
	if _, err := s.repo.GetByID(ctx, prompt.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, prompt)
}

// DeletePrompt soft-deletes a prompt
func (s *serviceImpl) DeletePrompt(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

func (s *serviceImpl) validate(prompt *Prompt) error {
	if prompt.Name == "" {
		return ErrNameRequired
	}
	if prompt.Content == "" {
		return ErrContentRequired
	}
	if len(prompt.Name) < s.cfg.MinNameLength || len(prompt.Name) > s.cfg.MaxNameLength {
		return ErrNameLength
	}
	if len(prompt.Content) > s.cfg.MaxContentLength {
		return ErrContentTooLarge
	}
	return nil
}
