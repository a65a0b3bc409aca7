package service

import (
	"context"
	"log/slog"

	"shoplist/internal/observability"
	"shoplist/internal/ownership"
)

// EventPublisher delivers owner-scoped live sync events.
type EventPublisher interface {
	PublishUser(ctx context.Context, userID, eventType string, payload interface{}) error
}

// publish sends an event about a row owned by owner to recipient. Events only
// go out when recipient owns the row, so global rows and other users' rows
// are never announced. Publishing is best-effort: a failed event never fails
// the write that caused it.
func publish(ctx context.Context, events EventPublisher, recipient string, owner *string, eventType string, payload interface{}) {
	if events == nil {
		return
	}
	if !ownership.For(recipient, false).Allows(owner) {
		observability.GlobalLogger.WarnContext(ctx, "dropped live sync event for non-owner",
			slog.String("event", eventType),
			slog.String("user_id", recipient),
		)
		return
	}
	if err := events.PublishUser(ctx, recipient, eventType, payload); err != nil {
		observability.GlobalLogger.WarnContext(ctx, "failed to publish live sync event",
			slog.String("event", eventType),
			slog.String("user_id", recipient),
			slog.String("error", err.Error()),
		)
	}
}
