// Package kafka publishes wizard outcome events to Kafka.
package kafka

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"bikerental/internal/core/ports"
	"bikerental/internal/pkg/errs"

	kafkago "github.com/segmentio/kafka-go"
)

const eventTypeHeader = "event-type"

// messageWriter is the part of *kafkago.Writer the notifier uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Notifier implements ports.Notifier. Events are JSON encoded and keyed by
// wizard id so all events of a session land on one partition.
type Notifier struct {
	writer messageWriter
	logger *slog.Logger
}

// NewNotifier creates a notifier writing to topic on brokers.
func NewNotifier(brokers []string, topic string, logger *slog.Logger) (*Notifier, error) {
	if len(brokers) == 0 {
		return nil, errs.NewValueIsRequiredError("brokers")
	}
	if strings.TrimSpace(topic) == "" {
		return nil, errs.NewValueIsRequiredError("topic")
	}

	writer := &kafkago.Writer{
		Addr:                   kafkago.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafkago.Hash{},
		RequiredAcks:           kafkago.RequireOne,
		BatchTimeout:           50 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}
	return newNotifier(writer, logger), nil
}

func newNotifier(writer messageWriter, logger *slog.Logger) *Notifier {
	return &Notifier{
		writer: writer,
		logger: logger.With("component", "kafka_notifier"),
	}
}

// BookingCreated publishes the event synchronously.
func (n *Notifier) BookingCreated(ctx context.Context, event ports.BookingCreatedEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	msg := kafkago.Message{
		Key:   []byte(event.WizardID),
		Value: data,
		Headers: []kafkago.Header{
			{Key: eventTypeHeader, Value: []byte("booking.created")},
		},
		Time: event.OccurredAt,
	}
	if err = n.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}

	n.logger.InfoContext(ctx, "Booking created event published",
		"wizard_id", event.WizardID, "booking_id", event.BookingID)
	return nil
}

// Close flushes pending messages and releases the writer.
func (n *Notifier) Close() error {
	return n.writer.Close()
}
