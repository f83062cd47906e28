package registry

import (
	"context"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/feral-file/ff-ip-registry/internal/domain"
	"github.com/feral-file/ff-ip-registry/internal/logger"
)

// publish signals a committed change to observers.
// The change is already durable in the journal, so a publish failure is only logged.
func (r *registry) publish(ctx context.Context, event *domain.RegistryEvent) {
	if r.publisher == nil {
		return
	}

	event.EventID = ulid.MustNewDefault(event.Timestamp).String()
	if err := r.publisher.PublishEvent(ctx, event); err != nil {
		logger.ErrorCtx(ctx, err,
			zap.String("message", "Failed to publish registry event"),
			zap.String("eventType", string(event.EventType)),
			zap.String("eventID", event.EventID))
	}
}
