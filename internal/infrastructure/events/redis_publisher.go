package events

import (
	"context"
	"fmt"

	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"github.com/Manishsonibwr/saas-task-manager/pkg/messaging"
	"go.uber.org/zap"
)

// RedisPublisher appends events to a capped redis stream keyed by the topic.
type RedisPublisher struct {
	writer messaging.StreamWriter
	stream string
	logger *zap.Logger
}

func NewRedisPublisher(writer messaging.StreamWriter, stream string, logger *zap.Logger) *RedisPublisher {
	return &RedisPublisher{
		writer: writer,
		stream: stream,
		logger: logger,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, evt event.Event) error {
	entryID, err := p.writer.Append(ctx, p.stream, string(evt.Type), evt)
	if err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Type, err)
	}

	p.logger.Debug("Published event to redis",
		zap.String("stream", p.stream),
		zap.String("entry_id", entryID),
		zap.String("event_type", string(evt.Type)),
		zap.String("event_id", evt.ID))
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.writer.Close()
}
