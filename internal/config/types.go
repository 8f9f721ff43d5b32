package config

import "time"

// Config represents the application configuration
type Config struct {
	Environment string          `mapstructure:"environment" yaml:"environment"`
	Server      ServerConfig    `mapstructure:"server" yaml:"server"`
	Database    DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Redis       RedisConfig     `mapstructure:"redis" yaml:"redis"`
	Logging     LoggingConfig   `mapstructure:"logging" yaml:"logging"`
	Events      EventsConfig    `mapstructure:"events" yaml:"events"`
	Backup      BackupConfig    `mapstructure:"backup" yaml:"backup"`
	Prompt      PromptConfig    `mapstructure:"prompt" yaml:"prompt"`
	Template    TemplateConfig  `mapstructure:"template" yaml:"template"`
	Migration   MigrationConfig `mapstructure:"migration" yaml:"migration"`
}

// ServerConfig represents server configuration settings
type ServerConfig struct {
	Port int `mapstructure:"port"`
}

// DatabaseConfig represents database configuration settings
type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Dbname   string `mapstructure:"dbname"`
	Port     int    `mapstructure:"port"`
	Sslmode  string `mapstructure:"sslmode"`
	Timezone string `mapstructure:"timezone"`
	Pool     struct {
		MaxOpen int `mapstructure:"maxOpen"`
		MaxIdle int `mapstructure:"maxIdle"`
	} `mapstructure:"pool"`
}

// RedisConfig represents Redis configuration settings
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	Output      string `mapstructure:"output" yaml:"output"`
	Development bool   `mapstructure:"development" yaml:"development"`

	File struct {
		Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
		Path    string `mapstructure:"path" yaml:"path"`
	} `mapstructure:"file" yaml:"file"`
}

// EventsConfig represents event publishing configuration settings
type EventsConfig struct {
	Enabled           bool          `mapstructure:"enabled" yaml:"enabled"`
	PulsarURL         string        `mapstructure:"pulsarUrl" yaml:"pulsarUrl"`
	Topic             string        `mapstructure:"topic" yaml:"topic"`
	OperationTimeout  time.Duration `mapstructure:"operationTimeout" yaml:"operationTimeout"`
	ConnectionTimeout time.Duration `mapstructure:"connectionTimeout" yaml:"connectionTimeout"`
}

// BackupConfig represents object storage settings for migration backup exports
type BackupConfig struct {
	Enabled         bool   `mapstructure:"enabled" yaml:"enabled"`
	Endpoint        string `mapstructure:"endpoint" yaml:"endpoint"`
	AccessKeyID     string `mapstructure:"accessKeyId" yaml:"accessKeyId"`
	SecretAccessKey string `mapstructure:"secretAccessKey" yaml:"secretAccessKey"`
	UseSSL          bool   `mapstructure:"useSSL" yaml:"useSSL"`
	Region          string `mapstructure:"region" yaml:"region"`
	Bucket          string `mapstructure:"bucket" yaml:"bucket"`
}

// PromptConfig represents prompt validation settings
type PromptConfig struct {
	MinNameLength    int `mapstructure:"minNameLength"`
	MaxNameLength    int `mapstructure:"maxNameLength"`
	MaxContentLength int `mapstructure:"maxContentLength"`
}

// TemplateConfig represents template rendering settings
type TemplateConfig struct {
	CacheTTL time.Duration `mapstructure:"cacheTTL"`
}

// MigrationConfig represents migration orchestrator settings
type MigrationConfig struct {
	BatchSize         int           `mapstructure:"batchSize"`
	Concurrency       int           `mapstructure:"concurrency"`
	RecordThreshold   int           `mapstructure:"recordThreshold"`
	BaseDuration      time.Duration `mapstructure:"baseDuration"`
	PerRecordDuration time.Duration `mapstructure:"perRecordDuration"`
}
