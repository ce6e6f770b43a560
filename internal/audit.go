package internal

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DrGermanius/Reconciler/internal/model"
)

const DefaultMaxPayloadBytes = 4096

type AuditMetadata struct {
	OrderID string
	Source  string
	Error   string
	Extra   map[string]string
}

// AuditLog appends webhook events. It never fails the caller: write errors are logged
// and dropped.
type AuditLog struct {
	repo       IRepository
	logger     *zap.SugaredLogger
	clock      Clock
	maxPayload int
}

func NewAuditLog(repo IRepository, logger *zap.SugaredLogger, clock Clock, maxPayload int) *AuditLog {
	if maxPayload <= 0 {
		maxPayload = DefaultMaxPayloadBytes
	}
	return &AuditLog{repo: repo, logger: logger, clock: clock, maxPayload: maxPayload}
}

// Record stores one event. The payload is redacted before it is truncated so a cut can
// never leave part of a card number behind.
func (a *AuditLog) Record(ctx context.Context, eventType string, payload interface{}, status string, result model.ResultClass, meta AuditMetadata) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Errorf("audit record panicked: %v", r)
		}
	}()

	e := model.WebhookEvent{
		ID:        uuid.NewString(),
		EventType: eventType,
		Source:    meta.Source,
		Payload:   Truncate(Redact(payload), a.maxPayload),
		OrderID:   meta.OrderID,
		Status:    status,
		Result:    result,
		Error:     meta.Error,
		Metadata:  meta.Extra,
		CreatedAt: a.clock.Now(),
	}

	if err := a.repo.AddWebhookEvent(ctx, e); err != nil {
		a.logger.Errorw("failed to write audit record",
			"eventType", eventType, "orderId", meta.OrderID, "status", status, "error", err)
	}
}
