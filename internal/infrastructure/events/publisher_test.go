package events

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/Manishsonibwr/saas-task-manager/internal/config"
	"github.com/Manishsonibwr/saas-task-manager/internal/domain/event"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRedisPublisher_Publish(t *testing.T) {
	mr := miniredis.RunT(t)

	publisher, err := NewPublisher(config.EventsConfig{
		Driver: config.EventsDriverRedis,
		Topic:  "billing.events",
		Redis:  config.RedisConfig{Addr: mr.Addr(), MaxLen: 100},
	}, zap.NewNop())
	require.NoError(t, err)
	defer publisher.Close()

	evt := event.New(event.TypeSubscriptionActivated, 42, map[string]interface{}{"plan": "Pro"})
	require.NoError(t, publisher.Publish(context.Background(), evt))

	entries, err := mr.Stream("billing.events")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, string(event.TypeSubscriptionActivated), entries[0].Values[1])

	var got event.Event
	require.NoError(t, json.Unmarshal([]byte(entries[0].Values[3]), &got))
	assert.Equal(t, evt.ID, got.ID)
	assert.Equal(t, event.TypeSubscriptionActivated, got.Type)
	assert.Equal(t, uint(42), got.WorkspaceID)
	assert.Equal(t, "Pro", got.Data["plan"])
}

func TestRedisPublisher_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewPublisher(config.EventsConfig{
		Driver: config.EventsDriverRedis,
		Topic:  "billing.events",
		Redis:  config.RedisConfig{Addr: addr},
	}, zap.NewNop())
	assert.Error(t, err)
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, "billing.events", msg.Topic)

		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "7", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got event.Event
		require.NoError(t, json.Unmarshal(value, &got))
		assert.Equal(t, event.TypeOrderCreated, got.Type)
		return nil
	})

	publisher := NewKafkaPublisher(producer, "billing.events", zap.NewNop())
	err := publisher.Publish(context.Background(), event.New(event.TypeOrderCreated, 7, nil))
	require.NoError(t, err)
	require.NoError(t, publisher.Close())
}

func TestKafkaPublisher_PublishError(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	producer.ExpectSendMessageAndFail(sarama.ErrOutOfBrokers)

	publisher := NewKafkaPublisher(producer, "billing.events", zap.NewNop())
	err := publisher.Publish(context.Background(), event.New(event.TypeQuotaExceeded, 1, nil))
	assert.ErrorIs(t, err, sarama.ErrOutOfBrokers)
	require.NoError(t, publisher.Close())
}

func TestNewPublisher_Drivers(t *testing.T) {
	publisher, err := NewPublisher(config.EventsConfig{Driver: config.EventsDriverNone}, zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, &NopPublisher{}, publisher)
	assert.NoError(t, publisher.Publish(context.Background(), event.New(event.TypeQuotaExceeded, 1, nil)))

	_, err = NewPublisher(config.EventsConfig{Driver: "nats"}, zap.NewNop())
	assert.Error(t, err)
}

func TestNewSaramaConfig_Valid(t *testing.T) {
	assert.NoError(t, NewSaramaConfig().Validate())
}
