package monitoring

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	nuts "github.com/vaudience/go-nuts"
)

const publishTimeout = 2 * time.Second

// Publisher delivers an encoded event to a channel
type Publisher interface {
	Publish(ctx context.Context, channel string, payload []byte) error
}

// Config holds monitoring configuration
type Config struct {
	Channel string
}

// Service provides monitoring functionality
type Service struct {
	config    Config
	publisher Publisher
	now       func() time.Time
}

// Event is the envelope published for every recorded event
type Event struct {
	Name       string            `json:"event"`
	Labels     map[string]string `json:"labels"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// NewService creates a new monitoring service. publisher may be nil.
func NewService(config Config, publisher Publisher) *Service {
	return &Service{
		config:    config,
		publisher: publisher,
		now:       time.Now,
	}
}

// RecordEvent logs the event and forwards it to the publisher, if any.
// Publish failures are logged and otherwise ignored.
func (s *Service) RecordEvent(eventName string, labels map[string]string) {
	ev := Event{Name: eventName, Labels: labels, RecordedAt: s.now().UTC()}
	nuts.L.Infof("[Monitoring] Event %s recorded at %v with labels: %v", eventName, ev.RecordedAt, labels)

	if s.publisher == nil {
		return
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		nuts.L.Errorf("[Monitoring] Failed to encode event %s: %v", eventName, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := s.publisher.Publish(ctx, s.config.Channel, payload); err != nil {
		nuts.L.Warnf("[Monitoring] Failed to publish event %s: %v", eventName, err)
	}
}

// RedisPublisher publishes events on a redis pub/sub channel
type RedisPublisher struct {
	client *redis.Client
}

func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{client: client}
}

func (p *RedisPublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	return p.client.Publish(ctx, channel, payload).Err()
}

// Close releases the underlying redis client
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
