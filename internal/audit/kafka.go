package audit

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"registru/internal/platform/kafka/producer"
	"registru/pkg/requestcontext"
)

// KafkaPublisher writes audit events to a Kafka topic. Events are produced
// asynchronously so registry mutations never wait on the broker.
type KafkaPublisher struct {
	producer *producer.Producer
	topic    string
	logger   *slog.Logger
}

// NewKafkaPublisher creates a publisher bound to one topic.
func NewKafkaPublisher(p *producer.Producer, topic string, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic, logger: logger}
}

func (k *KafkaPublisher) Emit(ctx context.Context, e Event) {
	if e.Timestamp.IsZero() {
		e.Timestamp = time.Now()
	}
	if e.RequestID == "" {
		e.RequestID = requestcontext.RequestID(ctx)
	}

	value, err := json.Marshal(e)
	if err != nil {
		k.logger.Error("marshal audit event", "action", e.Action, "error", err)
		return
	}

	msg := &producer.Message{
		Topic: k.topic,
		Key:   []byte(e.PersonID.String()),
		Value: value,
		Headers: map[string]string{
			"action": e.Action,
		},
	}
	if err := k.producer.ProduceAsync(msg); err != nil {
		k.logger.Error("publish audit event", "action", e.Action, "error", err)
	}
}
