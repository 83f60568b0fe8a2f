package realtime

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/go-redis/redis/v8"
)

// RedisPublisher fans events out over redis pub/sub. Publishing runs
// in a detached goroutine with its own timeout so a slow or dead redis
// never delays the request that triggered the event.
type RedisPublisher struct {
	client  *redis.Client
	timeout time.Duration
}

// NewRedisPublisher creates a publisher on top of an existing client
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		client:  client,
		timeout: 2 * time.Second,
	}
}

// Publish marshals the event and pushes it to the channel without
// blocking the caller. Failures are logged and swallowed.
func (p *RedisPublisher) Publish(ctx context.Context, channel string, event Event) {
	payload, err := json.Marshal(event)
	if err != nil {
		log.Printf("realtime: failed to marshal %s event: %v", event.Type, err)
		return
	}

	go func() {
		pubCtx, cancel := context.WithTimeout(context.Background(), p.timeout)
		defer cancel()

		if err := p.client.Publish(pubCtx, channel, payload).Err(); err != nil {
			log.Printf("realtime: failed to publish %s to %s: %v", event.Type, channel, err)
		}
	}()
}
