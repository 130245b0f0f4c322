package usecase

import (
	"context"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"go.uber.org/zap"
)

// publishEvent delivers evt and only logs failures. Callers publish after
// their transaction has committed.
func publishEvent(ctx context.Context, publisher event.Publisher, logger *zap.Logger, evt event.Event) {
	if publisher == nil {
		return
	}
	if err := publisher.Publish(ctx, evt); err != nil {
		logger.Warn("Failed to publish event",
			zap.String("event_type", string(evt.Type)),
			zap.Uint("workspace_id", evt.WorkspaceID),
			zap.Error(err))
	}
}
