package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/catalog"
	"github.com/your-org/storefront/internal/domain/pricing"
	"github.com/your-org/storefront/internal/domain/store"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.messages = append(f.messages, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func testEvent() store.Event {
	at := time.Date(2024, 7, 1, 8, 0, 0, 0, time.UTC)
	desk := catalog.Product{ID: "1", Price: decimal.NewFromInt(100), GovernmentPrice: decimal.NewFromInt(80)}
	return store.Event{
		Type:      store.EventOrderPlaced,
		SessionID: "s1",
		OrderID:   "ORD-1719820800000-000",
		Status:    store.OrderStatusPending,
		Order: store.Order{
			ID:          "ORD-1719820800000-000",
			AccountType: pricing.AccountIndividual,
			Items:       []store.CartLine{{Product: desk, Quantity: 1}},
			Total:       decimal.RequireFromString("108"),
		},
		At: at,
	}
}

func TestPublisher_Publish(t *testing.T) {
	writer := &fakeWriter{}
	log, _ := test.NewNullLogger()
	p := &Publisher{writer: writer, log: log}

	require.NoError(t, p.Publish(context.Background(), testEvent()))
	require.Len(t, writer.messages, 1)

	msg := writer.messages[0]
	assert.Equal(t, "ORD-1719820800000-000", string(msg.Key))
	assert.Equal(t, []kafka.Header{{Key: "event_type", Value: []byte("order.placed")}}, msg.Headers)

	var decoded OrderEvent
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, store.EventOrderPlaced, decoded.Type)
	assert.Equal(t, "s1", decoded.SessionID)
	assert.Equal(t, "108.00", decoded.Total)
	assert.Equal(t, 1, decoded.ItemCount)
	assert.Equal(t, pricing.AccountIndividual, decoded.AccountType)

	require.NoError(t, p.Close())
	assert.True(t, writer.closed)
}

func TestPublisher_OnEventLogsFailures(t *testing.T) {
	writer := &fakeWriter{err: errors.New("broker unavailable")}
	log, hook := test.NewNullLogger()
	p := &Publisher{writer: writer, log: log}

	p.OnEvent(context.Background(), testEvent())

	require.NotNil(t, hook.LastEntry())
	assert.Equal(t, logrus.WarnLevel, hook.LastEntry().Level)
	assert.Equal(t, "ORD-1719820800000-000", hook.LastEntry().Data["order_id"])
}
