package notify

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	portssvc "github.com/fitiavana-dev/treasury_app/internal/core/ports/services"
	"github.com/redis/go-redis/v9"
)

// throttle tracks the last publish time per event and enforces a minimum
// interval between publishes of the same event.
type throttle struct {
	mu       sync.Mutex
	interval time.Duration
	last     map[string]time.Time
	now      func() time.Time
}

func newThrottle(interval time.Duration) *throttle {
	return &throttle{
		interval: interval,
		last:     make(map[string]time.Time),
		now:      time.Now,
	}
}

// allow reports whether the event may be published now, recording the publish
// time when it is.
func (t *throttle) allow(event string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if last, ok := t.last[event]; ok && now.Sub(last) < t.interval {
		return false
	}
	t.last[event] = now
	return true
}

// eventsChannel is the single pub/sub channel all notifications go out on.
const eventsChannel = "treasury.events"

// RedisPublisher publishes change notifications on a redis pub/sub channel.
// Payloads carry identifiers only; subscribers re-fetch the record. Publish
// failures are logged and swallowed, notification delivery is best effort.
type RedisPublisher struct {
	client   *redis.Client
	throttle *throttle
	logger   *slog.Logger
}

var _ portssvc.NotificationPublisher = (*RedisPublisher)(nil)

// NewRedisPublisher connects to redis and returns a publisher that drops
// repeat publishes of the same event within minInterval.
func NewRedisPublisher(addr string, minInterval time.Duration, logger *slog.Logger) *RedisPublisher {
	client := redis.NewClient(&redis.Options{Addr: addr})
	return &RedisPublisher{
		client:   client,
		throttle: newThrottle(minInterval),
		logger:   logger,
	}
}

func (p *RedisPublisher) Publish(ctx context.Context, event string, payload map[string]string) {
	if !p.throttle.allow(event) {
		return
	}
	message := map[string]any{"event": event, "payload": payload}
	raw, err := json.Marshal(message)
	if err != nil {
		p.logger.Error("failed to marshal notification payload", slog.String("event", event), slog.String("error", err.Error()))
		return
	}
	if err := p.client.Publish(ctx, eventsChannel, raw).Err(); err != nil {
		p.logger.Warn("failed to publish notification", slog.String("event", event), slog.String("error", err.Error()))
	}
}

// Close releases the underlying redis connection.
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// NopPublisher drops every notification. Used when no redis address is
// configured.
type NopPublisher struct{}

var _ portssvc.NotificationPublisher = (*NopPublisher)(nil)

func (NopPublisher) Publish(ctx context.Context, event string, payload map[string]string) {}
