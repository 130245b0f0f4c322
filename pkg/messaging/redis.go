// Package messaging appends JSON messages to capped redis streams.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// Stream entry fields.
const (
	FieldKind    = "kind"
	FieldPayload = "payload"
)

// StreamWriter appends messages to redis streams.
type StreamWriter interface {
	// Append stores message as JSON tagged with kind and returns the entry id.
	Append(ctx context.Context, stream, kind string, message interface{}) (string, error)
	Close() error
}

// RedisOptions configures NewRedisStreamWriter.
type RedisOptions struct {
	Addr     string
	Password string
	DB       int
	// MaxLen trims each stream to its newest entries. Zero keeps everything.
	MaxLen int64
}

type redisStreamWriter struct {
	client *redis.Client
	maxLen int64
}

// NewRedisStreamWriter connects to redis and verifies the connection with PING.
func NewRedisStreamWriter(opts RedisOptions) (StreamWriter, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr,
		Password: opts.Password,
		DB:       opts.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisStreamWriter{
		client: client,
		maxLen: opts.MaxLen,
	}, nil
}

func (w *redisStreamWriter) Append(ctx context.Context, stream, kind string, message interface{}) (string, error) {
	payload, err := json.Marshal(message)
	if err != nil {
		return "", fmt.Errorf("failed to marshal message: %w", err)
	}

	args := &redis.XAddArgs{
		Stream: stream,
		MaxLen: w.maxLen,
		Values: []interface{}{FieldKind, kind, FieldPayload, payload},
	}

	id, err := w.client.XAdd(ctx, args).Result()
	if err != nil {
		return "", fmt.Errorf("failed to append to stream %s: %w", stream, err)
	}
	return id, nil
}

func (w *redisStreamWriter) Close() error {
	return w.client.Close()
}
