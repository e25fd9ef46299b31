package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{OrderStatusPending, OrderStatusConfirmed, true},
		{OrderStatusPending, OrderStatusShipped, true},
		{OrderStatusPending, OrderStatusDelivered, true},
		{OrderStatusPending, OrderStatusCancelled, true},
		{OrderStatusConfirmed, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusShipped, true},
		{OrderStatusShipped, OrderStatusDelivered, true},
		{OrderStatusShipped, OrderStatusCancelled, true},
		{OrderStatusPending, OrderStatusPending, false},
		{OrderStatusShipped, OrderStatusConfirmed, false},
		{OrderStatusProcessing, OrderStatusPending, false},
		{OrderStatusDelivered, OrderStatusCancelled, false},
		{OrderStatusDelivered, OrderStatusShipped, false},
		{OrderStatusCancelled, OrderStatusPending, false},
		{OrderStatusCancelled, OrderStatusDelivered, false},
		{OrderStatusPending, OrderStatus("lost"), false},
		{OrderStatus("lost"), OrderStatusConfirmed, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestOrderStatus_Step(t *testing.T) {
	assert.Equal(t, 0, OrderStatusPending.Step())
	assert.Equal(t, 4, OrderStatusDelivered.Step())
	assert.Equal(t, -1, OrderStatusCancelled.Step())
	assert.Equal(t, -1, OrderStatus("").Step())

	assert.True(t, OrderStatusCancelled.Valid())
	assert.False(t, OrderStatus("").Valid())
	assert.True(t, OrderStatusDelivered.IsTerminal())
	assert.False(t, OrderStatusShipped.IsTerminal())
}

func TestFulfillmentSteps_ReturnsCopy(t *testing.T) {
	steps := FulfillmentSteps()
	steps[0] = OrderStatusCancelled

	assert.Equal(t, OrderStatusPending, FulfillmentSteps()[0])
	assert.Len(t, FulfillmentSteps(), 5)
}
