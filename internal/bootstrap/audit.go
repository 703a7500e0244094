package bootstrap

import "context"

// AuditLog is a security-relevant event: who did what, with free-form meta.
type AuditLog struct {
	Action  string
	ActorID string
	Message string
	Meta    map[string]any
}

type AuditLogger interface {
	Log(ctx context.Context, entry AuditLog)
}
