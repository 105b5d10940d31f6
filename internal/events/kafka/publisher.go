// Package kafka publishes ledger events to a Kafka topic. Delivery is
// best-effort: the posting engine treats publish failures as log-only.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	portssvc "github.com/clubworks/ledger_service/internal/core/ports/services"
)

const eventJournalCreated = "journal.created"

// envelope is the wire shape of every published event.
type envelope struct {
	EventType string    `json:"eventType"`
	EmittedAt time.Time `json:"emittedAt"`
	Data      any       `json:"data"`
}

// Publisher writes ledger events to a single Kafka topic, keyed by docNo so
// replays of the same document land on the same partition.
type Publisher struct {
	writer *kafkago.Writer
}

// NewPublisher creates a Kafka publisher for the given brokers and topic.
func NewPublisher(brokers []string, topic string) *Publisher {
	return &Publisher{
		writer: &kafkago.Writer{
			Addr:         kafkago.TCP(brokers...),
			Topic:        topic,
			Balancer:     &kafkago.Hash{},
			RequiredAcks: kafkago.RequireOne,
			WriteTimeout: 10 * time.Second,
		},
	}
}

var _ portssvc.EventPublisher = (*Publisher)(nil)

// PublishJournalCreated implements portssvc.EventPublisher.
func (p *Publisher) PublishJournalCreated(ctx context.Context, evt portssvc.JournalCreatedEvent) error {
	data, err := json.Marshal(envelope{
		EventType: eventJournalCreated,
		EmittedAt: time.Now().UTC(),
		Data:      evt,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", eventJournalCreated, err)
	}
	msg := kafkago.Message{
		Key:   []byte(evt.DocNo),
		Value: data,
		Time:  time.Now(),
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s event for %s: %w", eventJournalCreated, evt.DocNo, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
