package contextutil

import (
	"context"

	"go.uber.org/zap"
)

// private key type so values never collide with other packages
type contextKey string

const (
	requestIDKey  contextKey = "request_id"
	employeeIDKey contextKey = "employee_id"
	roleKey       contextKey = "role"
	loggerKey     contextKey = "logger"
)

// --- Request ID ---

func WithRequestID(ctx context.Context, rid string) context.Context {
	return context.WithValue(ctx, requestIDKey, rid)
}

func GetRequestID(ctx context.Context) string {
	if rid, ok := ctx.Value(requestIDKey).(string); ok {
		return rid
	}
	return ""
}

// --- Actor ---

// WithActor stores the authenticated employee id and role.
func WithActor(ctx context.Context, employeeID, role string) context.Context {
	ctx = context.WithValue(ctx, employeeIDKey, employeeID)
	return context.WithValue(ctx, roleKey, role)
}

func GetEmployeeID(ctx context.Context) string {
	if id, ok := ctx.Value(employeeIDKey).(string); ok {
		return id
	}
	return ""
}

func GetRole(ctx context.Context) string {
	if role, ok := ctx.Value(roleKey).(string); ok {
		return role
	}
	return ""
}

// Actor is the authenticated caller as seen by the service layer.
type Actor struct {
	ID   string
	Role string
}

// --- Logger ---

// WithLogger stores a request-scoped (usually decorated) zap logger.
func WithLogger(ctx context.Context, logger *zap.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

// LoggerFromContext reports the request-scoped logger, if one was stored.
func LoggerFromContext(ctx context.Context) (*zap.Logger, bool) {
	if ctx == nil {
		return nil, false
	}
	l, ok := ctx.Value(loggerKey).(*zap.Logger)
	return l, ok && l != nil
}

// GetLogger returns the request-scoped logger, falling back to defaultLogger
// and finally to a no-op logger. It never returns nil.
func GetLogger(ctx context.Context, defaultLogger *zap.Logger) *zap.Logger {
	if l, ok := LoggerFromContext(ctx); ok {
		return l
	}

	if defaultLogger != nil {
		return defaultLogger
	}

	return zap.NewNop()
}

// ServiceLogger picks the logger a service should use for ctx: the
// request-scoped logger named after the service, or base tagged with the
// request metadata when ctx carries no logger (workers, the CLI, tests).
func ServiceLogger(ctx context.Context, base *zap.Logger, name string) *zap.Logger {
	if l, ok := LoggerFromContext(ctx); ok {
		return l.Named(name)
	}
	if base == nil {
		base = zap.NewNop()
	}
	return base.With(ExtractMetadata(ctx).Fields()...)
}

type Metadata struct {
	RequestID  string
	EmployeeID string
	Role       string
}

// ExtractMetadata collects tracing info for manual logging.
func ExtractMetadata(ctx context.Context) Metadata {
	return Metadata{
		RequestID:  GetRequestID(ctx),
		EmployeeID: GetEmployeeID(ctx),
		Role:       GetRole(ctx),
	}
}

// Fields renders the metadata as zap fields, skipping empty values.
func (m Metadata) Fields() []zap.Field {
	fields := make([]zap.Field, 0, 3)
	if m.RequestID != "" {
		fields = append(fields, zap.String("request_id", m.RequestID))
	}
	if m.EmployeeID != "" {
		fields = append(fields, zap.String("actor_id", m.EmployeeID))
	}
	if m.Role != "" {
		fields = append(fields, zap.String("actor_role", m.Role))
	}
	return fields
}
