package events

import (
	"context"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"github.com/Manishsonibwr/saas-task-manager/pkg/messaging"
	"go.uber.org/zap"
)

// NopPublisher drops events after logging them.
type NopPublisher struct {
	logger *zap.Logger
}

func NewNopPublisher(logger *zap.Logger) *NopPublisher {
	return &NopPublisher{logger: logger}
}

func (p *NopPublisher) Publish(ctx context.Context, evt event.Event) error {
	p.logger.Debug("Event dropped, no publisher configured",
		zap.String("event_type", string(evt.Type)),
		zap.Uint("workspace_id", evt.WorkspaceID))
	return nil
}

func (p *NopPublisher) Close() error { return nil }

// NewPublisher builds the publisher selected by cfg.Driver.
func NewPublisher(cfg config.EventsConfig, logger *zap.Logger) (event.Publisher, error) {
	switch cfg.Driver {
	case config.EventsDriverRedis:
		writer, err := messaging.NewRedisStreamWriter(messaging.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			MaxLen:   cfg.Redis.MaxLen,
		})
		if err != nil {
			return nil, err
		}
		logger.Info("Publishing billing events to redis",
			zap.String("addr", cfg.Redis.Addr),
			zap.String("stream", cfg.Topic),
			zap.Int64("max_len", cfg.Redis.MaxLen))
		return NewRedisPublisher(writer, cfg.Topic, logger), nil

	case config.EventsDriverKafka:
		producer, err := sarama.NewSyncProducer(cfg.Kafka.Brokers, NewSaramaConfig())
		if err != nil {
			return nil, fmt.Errorf("failed to create kafka producer: %w", err)
		}
		logger.Info("Publishing billing events to kafka",
			zap.Strings("brokers", cfg.Kafka.Brokers),
			zap.String("topic", cfg.Topic))
		return NewKafkaPublisher(producer, cfg.Topic, logger), nil

	case config.EventsDriverNone, "":
		return NewNopPublisher(logger), nil

	default:
		return nil, fmt.Errorf("unsupported events driver: %q", cfg.Driver)
	}
}
