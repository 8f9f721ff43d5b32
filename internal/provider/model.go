package provider

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Provider represents a canonical LLM provider configuration
type Provider struct {
	ID        uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string            `gorm:"uniqueIndex;not null" json:"name"`
	Type      string            `gorm:"not null" json:"type"`
	BaseURL   string            `json:"baseUrl"`
	Settings  datatypes.JSONMap `gorm:"type:jsonb" json:"settings"`
	Enabled   bool              `gorm:"default:true" json:"enabled"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
	Models    []Model           `gorm:"foreignKey:ProviderID" json:"models,omitempty"`
}

// Model represents a model offered by a provider
type Model struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ProviderID      uuid.UUID `gorm:"type:uuid;not null;index" json:"providerId"`
	Name            string    `gorm:"not null" json:"name"`
	ContextWindow   int       `json:"contextWindow"`
	MaxOutputTokens int       `json:"maxOutputTokens"`
	Capabilities    string    `json:"capabilities"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// TableName specifies the table name for providers
func (Provider) TableName() string {
	return "providers"
}

// TableName specifies the table name for models
func (Model) TableName() string {
	return "provider_models"
}

// BeforeCreate hook for Provider model
func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	now := time.Now().UTC()
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}
	if p.UpdatedAt.IsZero() {
		p.UpdatedAt = now
	}
	return nil
}

// BeforeUpdate hook for Provider model
func (p *Provider) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// BeforeCreate hook for Model model
func (m *Model) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	if m.UpdatedAt.IsZero() {
		m.UpdatedAt = now
	}
	return nil
}
