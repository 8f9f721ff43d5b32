package database

import (
	"fmt"
	"os"

	"github.com/promptdeck/platform/backend/internal/config"
	"github.com/promptdeck/platform/backend/internal/legacy"
	"github.com/promptdeck/platform/backend/internal/migration"
	"github.com/promptdeck/platform/backend/internal/prompt"
	"github.com/promptdeck/platform/backend/internal/provider"
	"github.com/promptdeck/platform/backend/internal/template"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// DatabaseService implements the Service interface
type DatabaseService struct {
	config *config.DatabaseConfig
	logger Logger
	db     *gorm.DB
}

// NewDatabaseService creates a new database service instance
func NewDatabaseService(config *config.DatabaseConfig, logger Logger) *DatabaseService {
	return &DatabaseService{
		config: config,
		logger: logger,
	}
}

// Connect establishes a connection to the database
func (s *DatabaseService) Connect() (*gorm.DB, error) {
	s.logger.LogInfo(fmt.Sprintf("Attempting to connect to database: %s", s.config.Dbname), nil)

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		s.config.Host,
		s.config.User,
		s.config.Password,
		s.config.Dbname,
		s.config.Port,
		s.config.Sslmode,
		s.config.Timezone,
	)

	gormConfig := &gorm.Config{
		PrepareStmt: true,
		Logger:      newGormLoggerAdapter(s.logger),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %v", err)
	}

	sqlDB.SetMaxOpenConns(s.config.Pool.MaxOpen)
	sqlDB.SetMaxIdleConns(s.config.Pool.MaxIdle)

	if s.shouldAutoMigrate() {
		if err := db.AutoMigrate(
			&legacy.Record{},
			&provider.Provider{},
			&provider.Model{},
			&prompt.Prompt{},
			&template.Template{},
			&migration.PlanRecord{},
			&migration.ResultRecord{},
			&migration.BackupRecord{},
			&migration.BackupEntry{},
		); err != nil {
			return nil, fmt.Errorf("auto migration failed: %v", err)
		}
		s.logger.LogInfo("Auto-migration completed successfully", nil)
	} else {
		s.logger.LogInfo("Skipping auto-migration based on environment configuration", nil)
	}

	s.db = db
	return db, nil
}

// shouldAutoMigrate reports whether schema auto-migration should run.
// Defaults to true in development and test, and requires AUTO_MIGRATE=true
// everywhere else.
func (s *DatabaseService) shouldAutoMigrate() bool {
	if v := os.Getenv("AUTO_MIGRATE"); v != "" {
		return v == "true"
	}
	env := os.Getenv("ENV")
	if env == "" {
		env = "development"
	}
	return env == "development" || env == "test"
}

// Ping checks the database connection
func (s *DatabaseService) Ping() error {
	if s.db == nil {
		return fmt.Errorf("database not connected")
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the database connection
func (s *DatabaseService) Close() error {
	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return fmt.Errorf("failed to get database instance: %v", err)
		}
		if err := sqlDB.Close(); err != nil {
			return fmt.Errorf("failed to close database connection: %v", err)
		}
	}
	return nil
}
