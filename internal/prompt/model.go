package prompt

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Prompt represents a managed LLM prompt
type Prompt struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"uniqueIndex;not null" json:"name"`
	Description string     `json:"description"`
	Content     string     `gorm:"not null" json:"content"`
	Labels      string     `json:"labels"`
	ProviderID  *uuid.UUID `gorm:"type:uuid" json:"providerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `gorm:"index" json:"deletedAt,omitempty"`
}

// TableName specifies the table name for prompts
func (Prompt) TableName() string {
	return "prompts"
}

// BeforeCreate hook for Prompt model
func (p *Prompt) BeforeCreate(tx *gorm.DB) error {
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

// BeforeUpdate hook for Prompt model
func (p *Prompt) BeforeUpdate(tx *gorm.DB) error {
	p.UpdatedAt = time.Now().UTC()
	return nil
}

// FilterOptions provides filtering options for prompt queries
type FilterOptions struct {
	Page  int
	Limit int
	Label string
}

// PaginatedPrompts represents a paginated list of prompts
type PaginatedPrompts struct {
	Prompts     []Prompt `json:"prompts"`
	TotalCount  int      `json:"total_count"`
	CurrentPage int      `json:"current_page"`
	TotalPages  int      `json:"total_pages"`
}
