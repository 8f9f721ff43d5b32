package testhelper

import (
	"fmt"
	"strings"
	"sync"
)

// TestLogger provides a logger implementation for testing with debug capabilities
type TestLogger struct {
	mu            sync.RWMutex
	infoMessages  []LogEntry
	warnMessages  []LogEntry
	errorMessages []LogEntry
	debugMessages []LogEntry
	debugEnabled  bool
}

// LogEntry represents a log entry with its message and fields
type LogEntry struct {
	Message string
	Fields  map[string]interface{}
}

// NewTestLogger creates a new test logger instance
func NewTestLogger(debugEnabled bool) *TestLogger {
	return &TestLogger{
		debugEnabled: debugEnabled,
	}
}

// LogInfo implements logger.Logger
func (t *TestLogger) LogInfo(msg string, fields map[string]interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.infoMessages = append(t.infoMessages, LogEntry{Message: msg, Fields: fields})
}

// LogError implements logger.Logger
func (t *TestLogger) LogError(err error, msg string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fields := map[string]interface{}{}
	if err != nil {
		fields["error"] = err.Error()
	}
	t.errorMessages = append(t.errorMessages, LogEntry{Message: msg, Fields: fields})
	return err
}

// LogErrorf implements logger.Logger
func (t *TestLogger) LogErrorf(err error, format string, args ...interface{}) error {
	return t.LogError(err, fmt.Sprintf(format, args...))
}

// LogFatal implements logger.Logger. In test mode it records instead of exiting.
func (t *TestLogger) LogFatal(err error, context string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	fields := map[string]interface{}{"context": context}
	if err != nil {
		fields["error"] = err.Error()
	}
	t.errorMessages = append(t.errorMessages, LogEntry{Message: "FATAL: " + context, Fields: fields})
}

// LogDebug implements logger.Logger
func (t *TestLogger) LogDebug(message string, fields map[string]interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.debugEnabled {
		return
	}
	t.debugMessages = append(t.debugMessages, LogEntry{Message: message, Fields: fields})
}

// LogWarn implements logger.Logger
func (t *TestLogger) LogWarn(message string, fields map[string]interface{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.warnMessages = append(t.warnMessages, LogEntry{Message: message, Fields: fields})
}

// GetInfoMessages returns all info level messages
func (t *TestLogger) GetInfoMessages() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.infoMessages
}

// GetWarnMessages returns all warn level messages
func (t *TestLogger) GetWarnMessages() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.warnMessages
}

// GetErrorMessages returns all error level messages
func (t *TestLogger) GetErrorMessages() []LogEntry {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.errorMessages
}

// HasWarnContaining reports whether any warn message contains the substring
func (t *TestLogger) HasWarnContaining(substring string) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	for _, entry := range t.warnMessages {
		if strings.Contains(entry.Message, substring) {
			return true
		}
	}
	return false
}
