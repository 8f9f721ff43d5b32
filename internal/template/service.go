package template

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/promptdeck/platform/backend/internal/cache"
	"github.com/promptdeck/platform/backend/internal/logger"
)

// Common errors
var (
	ErrNameRequired = errors.New("template name is required")
	ErrBodyRequired = errors.New("template body is required")
)

// serviceImpl implements the Service interface
type serviceImpl struct {
	repo     Repository
	cache    cache.Service
	logger   logger.Logger
	cacheTTL time.Duration
}

// NewService creates a new template service
func NewService(repo Repository, cacheService cache.Service, log logger.Logger, cacheTTL time.Duration) Service {
	return &serviceImpl{
		repo:     repo,
		cache:    cacheService,
		logger:   log,
		cacheTTL: cacheTTL,
	}
}

// GetTemplate retrieves a template by ID
func (s *serviceImpl) GetTemplate(ctx context.Context, id uuid.UUID) (*Template, error) {
	return s.repo.GetByID(ctx, id)
}

// ListTemplates retrieves all templates
func (s *serviceImpl) ListTemplates(ctx context.Context) ([]Template, error) {
	return s.repo.List(ctx)
}

// CreateTemplate validates and creates a template
func (s *serviceImpl) CreateTemplate(ctx context.Context, template *Template) error {
	if template.Name == "" {
		return ErrNameRequired
	}
	if template.Body == "" {
		return ErrBodyRequired
	}
	if template.ID == uuid.Nil {
		template.ID = uuid.New()
	}
	return s.repo.Create(ctx, template)
}

// UpdateTemplate validates and updates a template
func (s *serviceImpl) UpdateTemplate(ctx context.Context, template *Template) error {
	if template.Name == "" {
		return ErrNameRequired
	}
	if template.Body == "" {
		return ErrBodyRequired
	}
	if _, err := s.repo.GetByID(ctx, template.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, template)
}

// DeleteTemplate removes a template
func (s *serviceImpl) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}

// Render substitutes {{variable}} placeholders into the template body.
// Rendered output is cached keyed by template revision and variable set, so
// an update invalidates by changing the key rather than by deletion; stale
// entries age out via TTL.
func (s *serviceImpl) Render(ctx context.Context, id uuid.UUID, variables map[string]string) (string, error) {
	template, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return "", err
	}

	key := renderCacheKey(template, variables)

	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, key); err == nil {
			return cached, nil
		}
	}

	rendered := template.Body
	for name, value := range variables {
		rendered = strings.ReplaceAll(rendered, "{{"+name+"}}", value)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, rendered, s.cacheTTL); err != nil {
			s.logger.LogWarn("Failed to cache rendered template", map[string]interface{}{
				"templateId": id.String(),
				"error":      err.Error(),
			})
		}
	}

	return rendered, nil
}

func renderCacheKey(template *Template, variables map[string]string) string {
	payload, _ := json.Marshal(variables)
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("template:render:%s:%d:%s",
		template.ID, template.UpdatedAt.UnixNano(), hex.EncodeToString(sum[:8]))
}
