package notification

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// ChannelPrefix is prepended to the user id to form the per-user Redis channel.
const ChannelPrefix = "loans:notifications:"

// ErrPublishingFailed is returned when Redis rejects a publish.
var ErrPublishingFailed = errors.New("publishing notification failed")

// Publisher is the part of *redis.Client the RedisEmitter uses.
type Publisher interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// RedisEmitter publishes each event as JSON on the channel of its user.
type RedisEmitter struct {
	publisher Publisher
}

// NewRedisEmitter creates a RedisEmitter.
func NewRedisEmitter(publisher Publisher) *RedisEmitter {
	return &RedisEmitter{publisher: publisher}
}

// NewRedisClient creates a go-redis client for addr.
func NewRedisClient(addr string, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

// ChannelFor returns the channel notifications of userID are published on.
func ChannelFor(userID string) string {
	return ChannelPrefix + userID
}

// Emit publishes the event. Having no subscribers is not an error.
func (e *RedisEmitter) Emit(ctx context.Context, event Event) error {
	payloadJSON, err := MarshalPayload(event)
	if err != nil {
		return err
	}

	if err := e.publisher.Publish(ctx, ChannelFor(event.UserID), payloadJSON).Err(); err != nil {
		return errors.Join(ErrPublishingFailed, err)
	}

	return nil
}

var _ Emitter = (*RedisEmitter)(nil)
