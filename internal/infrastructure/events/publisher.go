// internal/infrastructure/events/publisher.go
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
)

// messageWriter is the part of kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// OrderEvent is the message published for every order change
type OrderEvent struct {
	Type        store.EventType     `json:"type"`
	SessionID   string              `json:"session_id"`
	OrderID     string              `json:"order_id"`
	Status      store.OrderStatus   `json:"status"`
	AccountType pricing.AccountType `json:"account_type"`
	Total       string              `json:"total"`
	ItemCount   int                 `json:"item_count"`
	At          time.Time           `json:"at"`
}

// Publisher writes order events to a Kafka topic. It implements
// store.Listener.
type Publisher struct {
	writer messageWriter
	log    logrus.FieldLogger
}

// NewPublisher creates an asynchronous publisher for topic
func NewPublisher(brokers []string, topic string, log logrus.FieldLogger) *Publisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		Async:        true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				log.WithError(err).WithField("messages", len(messages)).Warn("Failed to publish order events")
			}
		},
	}
	return &Publisher{writer: writer, log: log}
}

// OnEvent publishes the event keyed by order id so one order's events stay
// on one partition.
func (p *Publisher) OnEvent(ctx context.Context, event store.Event) {
	if err := p.Publish(ctx, event); err != nil {
		p.log.WithError(err).WithField("order_id", event.OrderID).Warn("Failed to queue order event")
	}
}

// Publish encodes and writes one event
func (p *Publisher) Publish(ctx context.Context, event store.Event) error {
	data, err := json.Marshal(OrderEvent{
		Type:        event.Type,
		SessionID:   event.SessionID,
		OrderID:     event.OrderID,
		Status:      event.Status,
		AccountType: event.Order.AccountType,
		Total:       pricing.Format(event.Order.Total),
		ItemCount:   event.Order.ItemCount(),
		At:          event.At,
	})
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(context.WithoutCancel(ctx), kafka.Message{
		Key:   []byte(event.OrderID),
		Value: data,
		Time:  event.At,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(event.Type)},
		},
	})
}

// Close flushes pending messages and closes the writer
func (p *Publisher) Close() error {
	return p.writer.Close()
}
