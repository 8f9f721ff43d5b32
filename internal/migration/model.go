package migration

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// PlanRecord is the persisted form of a MigrationPlan. The analysis payload
// is stored as a JSON document; relational columns exist only for listing.
type PlanRecord struct {
	ID           uuid.UUID      `gorm:"type:uuid;primaryKey"`
	TotalRecords int            `gorm:"not null"`
	Payload      datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt    time.Time      `gorm:"not null"`
}

// TableName specifies the table name for the PlanRecord model
func (PlanRecord) TableName() string {
	return "migration_plans"
}

// BeforeCreate is a GORM hook that assigns an id when missing
func (p *PlanRecord) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// ResultRecord is one execution attempt for a plan. Attempts accumulate;
// rows are never updated after insert.
type ResultRecord struct {
	ID        uint           `gorm:"primaryKey;autoIncrement"`
	PlanID    uuid.UUID      `gorm:"type:uuid;index;not null"`
	Success   bool           `gorm:"not null"`
	Payload   datatypes.JSON `gorm:"type:jsonb;not null"`
	CreatedAt time.Time      `gorm:"not null"`
}

// TableName specifies the table name for the ResultRecord model
func (ResultRecord) TableName() string {
	return "migration_results"
}

// BackupRecord is the header row of a pre-migration snapshot. Consumed flips
// to true once a rollback has restored from it.
type BackupRecord struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlanID    uuid.UUID `gorm:"type:uuid;index;not null"`
	Location  string    `gorm:"size:512;not null"`
	Consumed  bool      `gorm:"not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName specifies the table name for the BackupRecord model
func (BackupRecord) TableName() string {
	return "migration_backups"
}

// BeforeCreate is a GORM hook that assigns an id when missing
func (b *BackupRecord) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// BackupEntry holds one legacy record snapshot belonging to a backup
type BackupEntry struct {
	ID       uint           `gorm:"primaryKey;autoIncrement"`
	BackupID uuid.UUID      `gorm:"type:uuid;index;not null"`
	RecordID uuid.UUID      `gorm:"type:uuid;not null"`
	Payload  datatypes.JSON `gorm:"type:jsonb;not null"`
}

// TableName specifies the table name for the BackupEntry model
func (BackupEntry) TableName() string {
	return "migration_backup_entries"
}
