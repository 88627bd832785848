package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

//go:generate mockgen -source=publisher.go -destination=mocks/mock_publisher.go -package=mocks

const (
	statusEventQueueKey = "status_events"

	EventUpdatePosted  = "update_posted"
	EventUpdateRemoved = "update_removed"
)

// Event describes a change to an incident's current status. Queued on every
// update create/delete and delivered to the configured webhook endpoint.
type Event struct {
	Type         string    `json:"type"`
	IncidentID   int64     `json:"incident_id"`
	IncidentName string    `json:"incident_name"`
	Status       string    `json:"status,omitempty"`
	Username     string    `json:"username,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
}

// Publisher queues status change events for asynchronous delivery.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher pushes events onto a Redis list consumed by the Worker.
type RedisPublisher struct {
	redisClient *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish appends the event to the queue.
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal status event: %w", err)
	}

	if err := p.redisClient.LPush(ctx, statusEventQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish status event to Redis: %w", err)
	}
	return nil
}
