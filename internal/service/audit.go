package service

import (
	"context"
	"encoding/json"
	"time"

	"github.com/challengerucars/backoffice-go/internal/domain"
	"github.com/challengerucars/backoffice-go/internal/infra/observability"
	"github.com/challengerucars/backoffice-go/internal/port"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

var auditTracer = otel.Tracer("service/audit")

// AuditRecorder appends audit entries after mutations. Appends are
// fire-and-forget: a failed write is logged and counted, never
// surfaced to the operation that triggered it.
type AuditRecorder struct {
	sink    port.AuditSink
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAuditRecorder creates an audit recorder.
func NewAuditRecorder(sink port.AuditSink, metrics *observability.Metrics, logger *zap.Logger) *AuditRecorder {
	return &AuditRecorder{sink: sink, metrics: metrics, logger: logger}
}

// Record appends an audit entry, swallowing any error. The write uses
// its own timeout detached from the request context so an entry still
// lands after the response is sent.
func (a *AuditRecorder) Record(ctx context.Context, entry *domain.AuditEntry) {
	userID, _ := ctx.Value(ctxKeyUserID).(string)
	if entry.UserID == "" {
		entry.UserID = userID
	}

	go func() {
		writeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		writeCtx, span := auditTracer.Start(writeCtx, "AuditRecorder.Record")
		defer span.End()

		if err := a.sink.Append(writeCtx, entry); err != nil {
			a.metrics.IncrAuditDropped()
			a.logger.Warn("audit entry dropped",
				zap.String("action", entry.ActionType),
				zap.String("entity", entry.EntityType),
				zap.String("entity_id", entry.EntityID),
				zap.Error(err),
			)
		}
	}()
}

// ListEntries returns recent audit entries, newest first.
func (a *AuditRecorder) ListEntries(ctx context.Context) ([]domain.AuditEntry, error) {
	ctx, span := auditTracer.Start(ctx, "AuditRecorder.ListEntries")
	defer span.End()

	return a.sink.ListEntries(ctx)
}

// mustJSON marshals v for audit old/new snapshots. Marshal failures
// degrade to null rather than aborting the audit write.
func mustJSON(v any) json.RawMessage {
	b, err := json.Marshal(v)
	if err != nil {
		return json.RawMessage("null")
	}
	return b
}
