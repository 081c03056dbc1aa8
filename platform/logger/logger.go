// Package logger provides structured logging infrastructure for the application.
// This is part of the platform layer and contains no business logic.
package logger

import (
	"context"
	"log/slog"
	"os"
	"strings"
)

// Context key types for storing values in context
type contextKey string

const (
	// RequestIDKey is the context key for request ID
	RequestIDKey contextKey = "request_id"
	// ActorKey is the context key for the acting identifier
	ActorKey contextKey = "actor"
)

// Logger wraps slog.Logger for structured logging
type Logger struct {
	*slog.Logger
}

// New creates a new logger based on environment
func New(env string) *Logger {
	var handler slog.Handler

	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}

	if strings.EqualFold(env, "development") {
		opts.Level = slog.LevelDebug
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	return &Logger{
		Logger: slog.New(handler),
	}
}

// WithContext returns a logger with context values extracted.
func (l *Logger) WithContext(ctx context.Context) *Logger {
	if ctx == nil {
		return l
	}

	newLogger := l

	if requestID, ok := ctx.Value(RequestIDKey).(string); ok && requestID != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("request_id", requestID))}
	}

	if actor, ok := ctx.Value(ActorKey).(string); ok && actor != "" {
		newLogger = &Logger{Logger: newLogger.With(slog.String("actor", actor))}
	}

	return newLogger
}

// HTTPRequest logs an HTTP request
func (l *Logger) HTTPRequest(method, path string, status int, latencyMs float64, clientIP string) {
	l.Info("http_request",
		slog.String("method", method),
		slog.String("path", path),
		slog.Int("status", status),
		slog.Float64("latency_ms", latencyMs),
		slog.String("client_ip", clientIP),
	)
}

// AuthzDenied logs a rejected authorization check.
func (l *Logger) AuthzDenied(identifier, role string, required []string) {
	l.Warn("authz_denied",
		slog.String("identifier", identifier),
		slog.String("role", role),
		slog.Any("required", required),
	)
}

// NotifyFailure logs a failed best-effort notification dispatch.
// Notification failures never propagate to the triggering operation.
func (l *Logger) NotifyFailure(template string, recipients int, err error) {
	l.Error("notify_failure",
		slog.String("template", template),
		slog.Int("recipients", recipients),
		slog.String("error", err.Error()),
	)
}

// EnrichFailure logs a failed best-effort attribution enrichment.
func (l *Logger) EnrichFailure(leadID string, err error) {
	l.Error("enrich_failure",
		slog.String("lead_id", leadID),
		slog.String("error", err.Error()),
	)
}

// SpendPull logs the outcome of an ad-spend provider pull.
func (l *Logger) SpendPull(provider, day string, spend float64, err error) {
	if err != nil {
		l.Error("spend_pull_failed",
			slog.String("provider", provider),
			slog.String("day", day),
			slog.String("error", err.Error()),
		)
		return
	}
	l.Info("spend_pull",
		slog.String("provider", provider),
		slog.String("day", day),
		slog.Float64("spend", spend),
	)
}

// DatabaseError logs database errors
func (l *Logger) DatabaseError(operation string, err error) {
	l.Error("database_error",
		slog.String("operation", operation),
		slog.String("error", err.Error()),
	)
}

// RateLimitExceeded logs rate limit events
func (l *Logger) RateLimitExceeded(clientIP, path string) {
	l.Warn("rate_limit_exceeded",
		slog.String("client_ip", clientIP),
		slog.String("path", path),
	)
}
