package config

// Logger defines the minimal logging interface needed by the config service
type Logger interface {
	LogInfo(msg string, fields map[string]interface{})
	LogError(err error, msg string) error
}

// Service defines the interface for configuration operations
type Service interface {
	Load(path string) (*Config, error)
}
