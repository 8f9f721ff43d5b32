package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
)

// mockRepository provides an in-memory Repository for service tests
type mockRepository struct {
	providers map[uuid.UUID]*Provider
	models    map[uuid.UUID]*Model
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		providers: make(map[uuid.UUID]*Provider),
		models:    make(map[uuid.UUID]*Model),
	}
}

func (m *mockRepository) GetByID(ctx context.Context, id uuid.UUID) (*Provider, error) {
	if p, ok := m.providers[id]; ok {
		return p, nil
	}
	return nil, ErrProviderNotFound
}

func (m *mockRepository) GetByName(ctx context.Context, name string) (*Provider, error) {
	for _, p := range m.providers {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, ErrProviderNotFound
}

func (m *mockRepository) List(ctx context.Context) ([]Provider, error) {
	var providers []Provider
	for _, p := range m.providers {
		providers = append(providers, *p)
	}
	return providers, nil
}

func (m *mockRepository) Create(ctx context.Context, provider *Provider) error {
	m.providers[provider.ID] = provider
	return nil
}

func (m *mockRepository) Update(ctx context.Context, provider *Provider) error {
	m.providers[provider.ID] = provider
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.providers[id]; !ok {
		return ErrProviderNotFound
	}
	delete(m.providers, id)
	return nil
}

func (m *mockRepository) GetModelByID(ctx context.Context, id uuid.UUID) (*Model, error) {
	if model, ok := m.models[id]; ok {
		return model, nil
	}
	return nil, ErrModelNotFound
}

func (m *mockRepository) ListModels(ctx context.Context, providerID uuid.UUID) ([]Model, error) {
	var models []Model
	for _, model := range m.models {
		if model.ProviderID == providerID {
			models = append(models, *model)
		}
	}
	return models, nil
}

func (m *mockRepository) CreateModel(ctx context.Context, model *Model) error {
	m.models[model.ID] = model
	return nil
}

func (m *mockRepository) DeleteModel(ctx context.Context, id uuid.UUID) error {
	if _, ok := m.models[id]; !ok {
		return ErrModelNotFound
	}
	delete(m.models, id)
	return nil
}

func TestCreateProviderValidation(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	tests := []struct {
		name     string
		provider Provider
		wantErr  error
	}{
		{"valid provider", Provider{Name: "OpenAI", Type: "openai"}, nil},
		{"missing name", Provider{Type: "openai"}, ErrNameRequired},
		{"missing type", Provider{Name: "OpenAI"}, ErrTypeRequired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := service.CreateProvider(ctx, &tt.provider)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CreateProvider() error = %v, want %v", err, tt.wantErr)
			}
			if err == nil && tt.provider.ID == uuid.Nil {
				t.Error("CreateProvider() should assign an id")
			}
		})
	}
}

func TestGetProviderByName(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	created := &Provider{Name: "Anthropic", Type: "anthropic"}
	if err := service.CreateProvider(ctx, created); err != nil {
		t.Fatalf("CreateProvider() error = %v", err)
	}

	found, err := service.GetProviderByName(ctx, "Anthropic")
	if err != nil {
		t.Fatalf("GetProviderByName() error = %v", err)
	}
	if found.ID != created.ID {
		t.Errorf("GetProviderByName() returned id %v, want %v", found.ID, created.ID)
	}

	if _, err := service.GetProviderByName(ctx, "missing"); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("GetProviderByName() error = %v, want ErrProviderNotFound", err)
	}
}

func TestUpdateProviderRequiresExisting(t *testing.T) {
	service := NewService(newMockRepository())
	ctx := context.Background()

	missing := &Provider{ID: uuid.New(), Name: "Ghost", Type: "openai"}
	if err := service.UpdateProvider(ctx, missing); !errors.Is(err, ErrProviderNotFound) {
		t.Errorf("UpdateProvider() error = %v, want ErrProviderNotFound", err)
	}
}

func TestCreateModelValidation(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	parent := &Provider{Name: "OpenAI", Type: "openai"}
	if err := service.CreateProvider(ctx, parent); err != nil {
		t.Fatalf("CreateProvider() error = %v", err)
	}

	if err := service.CreateModel(ctx, &Model{ProviderID: parent.ID}); !errors.Is(err, ErrNameRequired) {
		t.Errorf("CreateModel() error = %v, want ErrNameRequired", err)
	}

	model := &Model{ProviderID: parent.ID, Name: "gpt-4o", ContextWindow: 128000}
	if err := service.CreateModel(ctx, model); err != nil {
		t.Fatalf("CreateModel() error = %v", err)
	}

	models, err := service.ListModels(ctx, parent.ID)
	if err != nil {
		t.Fatalf("ListModels() error = %v", err)
	}
	if len(models) != 1 {
		t.Errorf("ListModels() returned %d models, want 1", len(models))
	}
}

func TestDeleteModel(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	ctx := context.Background()

	parent := &Provider{Name: "OpenAI", Type: "openai"}
	if err := service.CreateProvider(ctx, parent); err != nil {
		t.Fatalf("CreateProvider() error = %v", err)
	}
	model := &Model{ProviderID: parent.ID, Name: "gpt-4o"}
	if err := service.CreateModel(ctx, model); err != nil {
		t.Fatalf("CreateModel() error = %v", err)
	}

	if err := service.DeleteModel(ctx, model.ID); err != nil {
		t.Fatalf("DeleteModel() error = %v", err)
	}
	if err := service.DeleteModel(ctx, model.ID); !errors.Is(err, ErrModelNotFound) {
		t.Errorf("DeleteModel() error = %v, want ErrModelNotFound", err)
	}
}
