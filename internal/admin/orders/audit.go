package orders

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ZapAuditLogger writes audit entries to the structured log. Entries without
// an id are assigned one so downstream log pipelines can deduplicate.
type ZapAuditLogger struct {
	logger *zap.Logger
}

// NewZapAuditLogger constructs an AuditLogger over the given zap logger.
func NewZapAuditLogger(logger *zap.Logger) *ZapAuditLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ZapAuditLogger{logger: logger}
}

// Record implements AuditLogger.
func (l *ZapAuditLogger) Record(_ context.Context, entry AuditLogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	l.logger.Info("order status audit",
		zap.String("auditId", entry.ID),
		zap.String("orderId", entry.OrderID),
		zap.String("orderCode", entry.OrderCode),
		zap.String("from", string(entry.From)),
		zap.String("to", string(entry.To)),
		zap.String("actorId", entry.ActorID),
		zap.String("actorEmail", entry.ActorEmail),
		zap.Time("occurredAt", entry.OccurredAt),
	)
	return nil
}
