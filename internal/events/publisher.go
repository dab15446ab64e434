// Package events publishes client lifecycle events for downstream consumers.
// Publishing is fail-open: a broker outage is logged and otherwise ignored,
// it never affects the write path.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"
)

// Event types for the client lifecycle.
const (
	TypeClientCreated = "client.created"
	TypeClientUpdated = "client.updated"
	TypeClientDeleted = "client.deleted"
)

// Event is the wire shape published to the events topic.
type Event struct {
	Type       string    `json:"type"`
	ClientID   string    `json:"client_id"`
	Country    string    `json:"country,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher emits client lifecycle events.
type Publisher interface {
	Publish(ctx context.Context, event Event)
	Close()
}

// Noop is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) {}
func (Noop) Close()                         {}

// Kafka publishes events to a Kafka topic using franz-go. Produces are
// asynchronous; delivery failures are logged, never returned.
type Kafka struct {
	client *kgo.Client
	topic  string
	logger *slog.Logger
}

func NewKafka(brokers []string, topic string, logger *slog.Logger) (*Kafka, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerLinger(50*time.Millisecond),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Kafka{client: client, topic: topic, logger: logger}, nil
}

func (k *Kafka) Publish(ctx context.Context, event Event) {
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		k.logger.ErrorContext(ctx, "marshal lifecycle event",
			"type", event.Type,
			"error", err.Error(),
		)
		return
	}

	record := &kgo.Record{
		Topic: k.topic,
		Key:   []byte(event.ClientID),
		Value: payload,
	}
	k.client.Produce(ctx, record, func(_ *kgo.Record, err error) {
		if err != nil {
			k.logger.Error("publish lifecycle event",
				"type", event.Type,
				"error", err.Error(),
			)
		}
	})
}

// Close flushes buffered records and releases the client.
func (k *Kafka) Close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = k.client.Flush(ctx)
	k.client.Close()
}
