package audit

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of audit event
type EventType string

const (
	EventLoginSuccess       EventType = "login_success"
	EventLoginFailed        EventType = "login_failed"
	EventRegistered         EventType = "registered"
	EventPasswordChanged    EventType = "password_changed"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
	EventUnauthorizedAccess EventType = "unauthorized_access"
	EventUserCreated        EventType = "user_created"
	EventAdminBootstrap     EventType = "admin_bootstrap"
	EventReportExported     EventType = "report_exported"
)

// Event is a security-relevant occurrence worth keeping outside the
// application log stream.
type Event struct {
	Timestamp   time.Time      `json:"timestamp"`
	Service     string         `json:"service"`
	Environment string         `json:"env"`
	Event       EventType      `json:"event"`
	UserID      string         `json:"user_id,omitempty"`
	Email       string         `json:"email,omitempty"`
	IP          string         `json:"ip,omitempty"`
	RequestID   string         `json:"request_id,omitempty"`
	Details     map[string]any `json:"details,omitempty"`
}

// Logger writes audit events through Zap and optionally persists them.
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
	persistFunc func(ctx context.Context, event Event) error
}

var defaultLogger *Logger

// Init initializes the audit logger with Zap.
func Init(serviceName, environment string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build()
	if err != nil {
		logger, _ = zap.NewProduction()
	}

	l := &Logger{
		zapLogger:   logger,
		serviceName: serviceName,
		environment: environment,
	}
	defaultLogger = l
	return l
}

// Default returns the default audit logger, initializing a basic one if Init
// was never called.
func Default() *Logger {
	if defaultLogger == nil {
		env := os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
		}
		return Init("insight-report-hub", env)
	}
	return defaultLogger
}

// SetPersistFunc sets the function used to persist events to the database.
func (l *Logger) SetPersistFunc(f func(ctx context.Context, event Event) error) {
	l.persistFunc = f
}

// Log records an audit event.
func (l *Logger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment

	level := zapcore.InfoLevel
	switch event.Event {
	case EventLoginFailed, EventRateLimitTriggered:
		level = zapcore.WarnLevel
	case EventUnauthorizedAccess:
		level = zapcore.ErrorLevel
	}

	fields := []zap.Field{
		zap.String("event", string(event.Event)),
		zap.String("user_id", event.UserID),
		zap.String("email", event.Email),
		zap.String("ip", event.IP),
		zap.String("request_id", event.RequestID),
	}
	if event.Details != nil {
		fields = append(fields, zap.Any("details", event.Details))
	}

	switch level {
	case zapcore.WarnLevel:
		l.zapLogger.Warn("audit_event", fields...)
	case zapcore.ErrorLevel:
		l.zapLogger.Error("audit_event", fields...)
	default:
		l.zapLogger.Info("audit_event", fields...)
	}

	if l.persistFunc != nil {
		// Persistence is best-effort; never fail the operation that raised
		// the event.
		if err := l.persistFunc(ctx, event); err != nil {
			l.zapLogger.Warn("audit_persist_failed", zap.Error(err))
		}
	}
}

// Sync flushes buffered log entries.
func (l *Logger) Sync() {
	_ = l.zapLogger.Sync()
}
