// Package observability provides structured logging for the application.
package observability

import (
	"context"
	"log/slog"
	"os"

	"github.com/google/uuid"
)

// Logger wraps slog.Logger to provide specialized logging methods.
type Logger struct {
	*slog.Logger
}

// GlobalLogger is the default logger instance for the application.
var GlobalLogger *Logger

func init() {
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	GlobalLogger = &Logger{Logger: slog.New(handler)}
}

// LogContextKey is a type for context keys used by the logging package.
type LogContextKey string

// CorrelationID keys a per-interaction identifier carried through contexts.
const CorrelationID LogContextKey = "correlation_id"

// GenerateCorrelationID creates a new unique correlation ID.
func GenerateCorrelationID() string {
	return uuid.NewString()
}

// WithCorrelationID returns a new context with the given correlation ID.
func WithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, CorrelationID, id)
}

// ExtractCorrelationID retrieves the correlation ID from the context.
func ExtractCorrelationID(ctx context.Context) string {
	if id := ctx.Value(CorrelationID); id != nil {
		return id.(string)
	}
	return ""
}

// StoreLogger provides structured logging for storage operations.
type StoreLogger struct {
	backend string
	logger  *Logger
}

// NewStoreLogger creates a new StoreLogger for the given backend.
func NewStoreLogger(backend string) *StoreLogger {
	return &StoreLogger{backend: backend, logger: GlobalLogger}
}

// LogWrite logs a storage write.
func (l *StoreLogger) LogWrite(ctx context.Context, key string) {
	l.logger.InfoContext(ctx, "store write",
		slog.String("backend", l.backend),
		slog.String("key", key),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogCorrupt logs a persisted value that failed to decode and is being
// treated as absent.
func (l *StoreLogger) LogCorrupt(ctx context.Context, key string, err error) {
	l.logger.WarnContext(ctx, "store value corrupt, treating as absent",
		slog.String("backend", l.backend),
		slog.String("key", key),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogError logs a storage error.
func (l *StoreLogger) LogError(ctx context.Context, key string, operation string, err error) {
	l.logger.ErrorContext(ctx, "store error",
		slog.String("backend", l.backend),
		slog.String("key", key),
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// GatewayLogger provides structured logging for generative assistant calls.
type GatewayLogger struct {
	logger *Logger
}

// NewGatewayLogger creates a new GatewayLogger.
func NewGatewayLogger() *GatewayLogger {
	return &GatewayLogger{logger: GlobalLogger}
}

// LogCall logs an outbound assistant request.
func (l *GatewayLogger) LogCall(ctx context.Context, operation, model string) {
	l.logger.InfoContext(ctx, "assistant call",
		slog.String("operation", operation),
		slog.String("model", model),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}

// LogFallback logs an assistant failure that was recovered with a local
// fallback value.
func (l *GatewayLogger) LogFallback(ctx context.Context, operation string, err error) {
	l.logger.WarnContext(ctx, "assistant unavailable, using fallback",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
		slog.String("correlation_id", ExtractCorrelationID(ctx)),
	)
}
