// Package notify delivers outbox messages to the notification collaborator.
package notify

import (
	"context"
	"strings"

	"ordering/internal/core/ports"
	"ordering/internal/pkg/errs"

	"github.com/segmentio/kafka-go"
)

var _ ports.NotificationPublisher = &KafkaPublisher{}

// ErrNoBrokers is returned when the broker list is empty.
var ErrNoBrokers = errs.NewValueIsRequiredError("brokers")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes one Kafka message per outbox message, keyed by the aggregate
// id so events of one order stay on one partition.
type KafkaPublisher struct {
	writer messageWriter
}

// NewKafkaPublisher parses a comma separated broker list and creates a writer for topic.
func NewKafkaPublisher(brokersCSV string, topic string) (*KafkaPublisher, error) {
	brokers := ParseBrokers(brokersCSV)
	if len(brokers) == 0 {
		return nil, ErrNoBrokers
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireOne,
		},
	}, nil
}

func newKafkaPublisherWithWriter(writer messageWriter) *KafkaPublisher {
	return &KafkaPublisher{writer: writer}
}

func (p *KafkaPublisher) Publish(ctx context.Context, message ports.OutboxMessage) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(message.AggregateID.String()),
		Value: message.Payload,
		Time:  message.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(message.ID.String())},
			{Key: "event_type", Value: []byte(message.EventType)},
		},
	})
	if err != nil {
		return errs.NewUnavailableError("publish notification", err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// ParseBrokers splits a comma separated list, dropping blanks.
func ParseBrokers(brokersCSV string) []string {
	brokers := []string{}
	for _, b := range strings.Split(brokersCSV, ",") {
		b = strings.TrimSpace(b)
		if b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}
