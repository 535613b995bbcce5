package logging

import (
	"context"

	"go.uber.org/zap"
)

// AuditResult describes the outcome of an audited store mutation.
type AuditResult string

const (
	AuditSuccess AuditResult = "success"
	AuditFailure AuditResult = "failure"
)

// LogAuditEvent records a structured audit entry for a directory mutation.
// The action names the operation performed ("upsert", "delete", ...) and the
// resource pair identifies what was touched, e.g. "profile"/"Alice" or
// "photo"/"/uploads/photo-1700000000000-ab12cd34.png".
func LogAuditEvent(
	ctx context.Context,
	action, resourceType, resourceID string,
	result AuditResult,
	details map[string]any,
) {
	logger := LoggerFromContext(ctx)

	logger.Info("audit event",
		zap.String("audit.action", action),
		zap.String("audit.resource_type", resourceType),
		zap.String("audit.resource_id", resourceID),
		zap.String("audit.result", string(result)),
		zap.Any("audit.details", details),
	)
}
