package database

import (
	"context"
	"time"

	gormlogger "gorm.io/gorm/logger"
)

// gormLoggerAdapter routes gorm's logger output through the application logger
type gormLoggerAdapter struct {
	logger        Logger
	slowThreshold time.Duration
}

func newGormLoggerAdapter(logger Logger) *gormLoggerAdapter {
	return &gormLoggerAdapter{
		logger:        logger,
		slowThreshold: 200 * time.Millisecond,
	}
}

func (l *gormLoggerAdapter) LogMode(gormlogger.LogLevel) gormlogger.Interface {
	return l
}

func (l *gormLoggerAdapter) Info(ctx context.Context, msg string, data ...interface{}) {
	l.logger.LogInfo(msg, map[string]interface{}{"args": data})
}

func (l *gormLoggerAdapter) Warn(ctx context.Context, msg string, data ...interface{}) {
	l.logger.LogWarn(msg, map[string]interface{}{"args": data})
}

func (l *gormLoggerAdapter) Error(ctx context.Context, msg string, data ...interface{}) {
	l.logger.LogError(nil, msg)
}

func (l *gormLoggerAdapter) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	if err != nil {
		sql, rows := fc()
		l.logger.LogWarn("Query failed", map[string]interface{}{
			"sql":     sql,
			"rows":    rows,
			"elapsed": elapsed.String(),
			"error":   err.Error(),
		})
		return
	}
	if elapsed > l.slowThreshold {
		sql, rows := fc()
		l.logger.LogWarn("Slow query", map[string]interface{}{
			"sql":     sql,
			"rows":    rows,
			"elapsed": elapsed.String(),
		})
	}
}
