package legacy

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Record represents a pre-migration provider configuration entry. Records
// name a category and hold opaque settings; the migration orchestrator reads
// them and marks them migrated, but never deletes them.
type Record struct {
	ID               uuid.UUID         `gorm:"type:uuid;primaryKey" json:"id"`
	Category         string            `gorm:"not null;index" json:"category"`
	RawConfig        datatypes.JSONMap `gorm:"type:jsonb" json:"rawConfig"`
	OwnerRef         string            `json:"ownerRef"`
	Migrated         bool              `gorm:"default:false;index" json:"migrated"`
	TargetResourceID *uuid.UUID        `gorm:"type:uuid" json:"targetResourceId,omitempty"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// TableName specifies the table name for legacy records
func (Record) TableName() string {
	return "legacy_configs"
}

// BeforeCreate hook for Record model
func (r *Record) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}
	if r.UpdatedAt.IsZero() {
		r.UpdatedAt = time.Now().UTC()
	}
	return nil
}

// BeforeUpdate hook for Record model
func (r *Record) BeforeUpdate(tx *gorm.DB) error {
	r.UpdatedAt = time.Now().UTC()
	return nil
}
