package database

import "gorm.io/gorm"

// Logger defines the minimal logging interface needed by the database service
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogWarn(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}

// Service defines the interface for database operations
type Service interface {
	Connect() (*gorm.DB, error)
	Close() error
	Ping() error
}
