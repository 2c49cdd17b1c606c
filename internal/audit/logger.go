package audit

import (
	"context"
	"errors"
	"sort"
	"time"

	"go.uber.org/zap"

	"salon/internal/domain"
)

// Logger writes the audit trail as structured records on a dedicated zap logger.
type Logger struct {
	logger *zap.Logger
}

func NewLogger(logger *zap.Logger) *Logger {
	return &Logger{logger: logger.Named("audit")}
}

func (l *Logger) LogAction(ctx context.Context, actor domain.Actor, action string, metadata map[string]any) error {
	if action == "" {
		return errors.New("пустое действие аудита")
	}

	fields := make([]zap.Field, 0, len(metadata)+4)
	fields = append(fields,
		zap.String("action", action),
		zap.Int64("actorID", actor.UserID),
		zap.String("actorRole", string(actor.Role)),
	)
	if requestID, ok := ctx.Value(RequestIDKey{}).(string); ok && requestID != "" {
		fields = append(fields, zap.String("requestID", requestID))
	}

	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		switch v := metadata[k].(type) {
		case time.Time:
			fields = append(fields, zap.Time(k, v))
		default:
			fields = append(fields, zap.Any(k, v))
		}
	}

	l.logger.Info("аудит", fields...)
	return nil
}

// RequestIDKey carries the HTTP request id into audit records.
type RequestIDKey struct{}

func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, RequestIDKey{}, requestID)
}
