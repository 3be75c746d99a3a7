package monitoring

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturePublisher struct {
	channel string
	payload []byte
	err     error
}

func (c *capturePublisher) Publish(ctx context.Context, channel string, payload []byte) error {
	c.channel = channel
	c.payload = payload
	return c.err
}

func TestRecordEventPublishes(t *testing.T) {
	pub := &capturePublisher{}
	svc := NewService(Config{Channel: "stations.events"}, pub)
	fixed := time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	svc.RecordEvent("station_deletion", map[string]string{"station_id": "abc"})

	assert.Equal(t, "stations.events", pub.channel)
	var ev Event
	require.NoError(t, json.Unmarshal(pub.payload, &ev))
	assert.Equal(t, "station_deletion", ev.Name)
	assert.Equal(t, "abc", ev.Labels["station_id"])
	assert.True(t, fixed.Equal(ev.RecordedAt))
}

func TestRecordEventIgnoresPublishFailure(t *testing.T) {
	pub := &capturePublisher{err: errors.New("redis down")}
	svc := NewService(Config{Channel: "c"}, pub)

	assert.NotPanics(t, func() { svc.RecordEvent("x", nil) })
	assert.NotEmpty(t, pub.payload)
}

func TestRecordEventWithoutPublisher(t *testing.T) {
	svc := NewService(Config{}, nil)
	assert.NotPanics(t, func() { svc.RecordEvent("x", map[string]string{"a": "b"}) })
}

func TestRedisPublisherUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	pub := NewRedisPublisher(client)
	defer pub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	assert.Error(t, pub.Publish(ctx, "c", []byte("{}")))
}
