// Package event publishes payment state-change events to a broker for
// downstream consumers (reporting, webhooks). Publishing is best-effort and
// never gates the transition itself.
package event

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
)

// StateChange is the payload emitted after every committed transition.
type StateChange struct {
	PaymentID     string    `json:"payment_id"`
	MerchantID    uint      `json:"merchant_id"`
	State         string    `json:"state"`
	PreviousState string    `json:"previous_state"`
	Timestamp     time.Time `json:"timestamp"`
}

// Publisher emits payment state-change events.
type Publisher interface {
	PublishStateChange(ctx context.Context, change StateChange) error
	Close() error
}

// KafkaPublisher writes state changes to a Kafka topic.
type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
	}
}

func (p *KafkaPublisher) PublishStateChange(ctx context.Context, change StateChange) error {
	if change.Timestamp.IsZero() {
		change.Timestamp = time.Now()
	}
	payload, err := json.Marshal(change)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(change.PaymentID),
		Value: payload,
	})
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NoopPublisher drops events. Used when no broker is configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishStateChange(context.Context, StateChange) error { return nil }
func (NoopPublisher) Close() error                                          { return nil }
