package sink

import (
	"context"
	"encoding/json"
	"fmt"

	"permis/internal/platform/kafka/producer"
	"permis/pkg/platform/audit"
)

// Kafka publishes audit events to a Kafka topic as JSON records keyed by
// event ID so replays stay idempotent for downstream consumers.
type Kafka struct {
	producer *producer.Producer
	topic    string
}

func NewKafka(p *producer.Producer, topic string) *Kafka {
	return &Kafka{producer: p, topic: topic}
}

func (k *Kafka) Append(ctx context.Context, event audit.Event) error {
	value, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal audit event: %w", err)
	}
	return k.producer.Produce(ctx, &producer.Message{
		Topic: k.topic,
		Key:   []byte(event.ID),
		Value: value,
		Headers: map[string]string{
			"action": event.Action,
		},
	})
}
