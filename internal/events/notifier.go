package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	rediscommon "github.com/gabrielwysoczanski31/aurora-sub001/common/redis"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Event types published by the service.
const (
	SnapshotRefreshed = "snapshot.refreshed"
	CeebSubmitted     = "ceeb.submitted"
	SettingsSaved     = "settings.saved"
	ExportCompleted   = "export.completed"
)

// Notifier publishes domain events to an external channel.
type Notifier interface {
	Publish(ctx context.Context, eventType string, payload any) error
}

// Nop drops every event.
type Nop struct{}

func (Nop) Publish(context.Context, string, any) error { return nil }

// StreamNotifier appends events to a Redis stream.
type StreamNotifier struct {
	client *redis.Client
	stream string
	maxLen int64
}

func NewStreamNotifier(client *redis.Client, stream string, maxLen int64) *StreamNotifier {
	return &StreamNotifier{client: client, stream: stream, maxLen: maxLen}
}

func (n *StreamNotifier) Publish(ctx context.Context, eventType string, payload any) error {
	if _, err := rediscommon.PublishJSONToStream(ctx, n.client, n.stream, n.maxLen, eventType, payload); err != nil {
		return fmt.Errorf("failed to publish %s to stream %s: %w", eventType, n.stream, err)
	}
	return nil
}

// Publisher is the subset of the MQTT client used for events.
type Publisher interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
}

// MQTTNotifier publishes each event as JSON to <prefix>/<event type with dots as slashes>.
type MQTTNotifier struct {
	pub    Publisher
	prefix string
	qos    byte
}

func NewMQTTNotifier(pub Publisher, prefix string, qos byte) *MQTTNotifier {
	return &MQTTNotifier{pub: pub, prefix: strings.TrimSuffix(prefix, "/"), qos: qos}
}

type envelope struct {
	Type      string `json:"type"`
	Timestamp int64  `json:"timestamp"`
	Data      any    `json:"data"`
}

// Topic returns the MQTT topic for eventType.
func (n *MQTTNotifier) Topic(eventType string) string {
	return n.prefix + "/" + strings.ReplaceAll(eventType, ".", "/")
}

func (n *MQTTNotifier) Publish(_ context.Context, eventType string, payload any) error {
	body, err := json.Marshal(envelope{Type: eventType, Timestamp: time.Now().Unix(), Data: payload})
	if err != nil {
		return fmt.Errorf("failed to marshal event %s: %w", eventType, err)
	}
	return n.pub.Publish(n.Topic(eventType), n.qos, false, body)
}

// Multi fans out to every notifier. Failures are logged, not returned.
type Multi struct {
	notifiers []Notifier
	logger    *zap.Logger
}

func NewMulti(logger *zap.Logger, notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers, logger: logger}
}

func (m *Multi) Publish(ctx context.Context, eventType string, payload any) error {
	for _, n := range m.notifiers {
		if err := n.Publish(ctx, eventType, payload); err != nil {
			m.logger.Warn("Failed to publish event",
				zap.String("event_type", eventType),
				zap.Error(err),
			)
		}
	}
	return nil
}
