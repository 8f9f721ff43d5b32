package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

// ConfigService implements the Service interface
type ConfigService struct {
	logger Logger
}

// NewConfigService creates a new configuration service
func NewConfigService(logger Logger) *ConfigService {
	return &ConfigService{
		logger: logger,
	}
}

// Load loads the configuration from the specified path
func (s *ConfigService) Load(path string) (*Config, error) {
	viper.AddConfigPath(path)
	// Use test configuration file if ENV is set to test
	if os.Getenv("ENV") == "test" {
		viper.SetConfigName("config_test")
	} else {
		viper.SetConfigName("config")
	}
	viper.SetConfigType("yaml")

	s.setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %v", err)
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %v", err)
	}

	if err := s.validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %v", err)
	}

	s.logger.LogInfo("Configuration loaded successfully", nil)
	return &config, nil
}

// setDefaults sets default values for configuration
func (s *ConfigService) setDefaults() {
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("database.sslmode", "disable")
	viper.SetDefault("database.timezone", "UTC")
	viper.SetDefault("database.pool.maxOpen", 100)
	viper.SetDefault("database.pool.maxIdle", 10)
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("events.enabled", false)
	viper.SetDefault("events.topic", "persistent://public/default/migration-events")
	viper.SetDefault("events.operationTimeout", 30*time.Second)
	viper.SetDefault("events.connectionTimeout", 30*time.Second)
	viper.SetDefault("backup.enabled", false)
	viper.SetDefault("backup.bucket", "promptdeck-backups")
	viper.SetDefault("prompt.minNameLength", 3)
	viper.SetDefault("prompt.maxNameLength", 100)
	viper.SetDefault("prompt.maxContentLength", 100000)
	viper.SetDefault("template.cacheTTL", 10*time.Minute)
	viper.SetDefault("migration.batchSize", 10)
	viper.SetDefault("migration.concurrency", 5)
	viper.SetDefault("migration.recordThreshold", 100)
	viper.SetDefault("migration.baseDuration", 30*time.Second)
	viper.SetDefault("migration.perRecordDuration", 500*time.Millisecond)
}

// validate performs validation on the configuration
func (s *ConfigService) validate(config *Config) error {
	if config.Server.Port <= 0 {
		return fmt.Errorf("invalid server port")
	}

	if config.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}

	if config.Database.User == "" {
		return fmt.Errorf("database user is required")
	}

	if config.Database.Dbname == "" {
		return fmt.Errorf("database name is required")
	}

	if config.Database.Port <= 0 {
		return fmt.Errorf("invalid database port")
	}

	if config.Migration.BatchSize <= 0 {
		return fmt.Errorf("migration batch size must be positive")
	}

	if config.Migration.Concurrency <= 0 {
		return fmt.Errorf("migration concurrency must be positive")
	}

	if config.Backup.Enabled && config.Backup.Endpoint == "" {
		return fmt.Errorf("backup endpoint is required when backup export is enabled")
	}

	if config.Events.Enabled && config.Events.PulsarURL == "" {
		return fmt.Errorf("pulsar URL is required when events are enabled")
	}

	return nil
}
