package errors

// ValidationError represents a validation error with a field and message
type ValidationError struct {
	Field   string
	Message string
}

// ConflictError represents an attempt to create a resource that already exists
type ConflictError struct {
	Resource string
	Name     string
}

// StorageError represents an error during storage operations
type StorageError struct {
	Message string
	Cause   error
}

// RollbackError represents a failure while restoring a backup or undoing
// created resources
type RollbackError struct {
	Message string
	Cause   error
}
