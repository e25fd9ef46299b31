package store

// fulfillmentSteps is the forward path an order travels
var fulfillmentSteps = []OrderStatus{
	OrderStatusPending,
	OrderStatusConfirmed,
	OrderStatusProcessing,
	OrderStatusShipped,
	OrderStatusDelivered,
}

// Valid reports whether s is a known status
func (s OrderStatus) Valid() bool {
	return s == OrderStatusCancelled || s.Step() >= 0
}

// Step returns the position of s on the fulfillment path, or -1 for
// cancelled and unknown statuses.
func (s OrderStatus) Step() int {
	for i, step := range fulfillmentSteps {
		if step == s {
			return i
		}
	}
	return -1
}

// IsTerminal reports whether no further transition is possible
func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusDelivered || s == OrderStatusCancelled
}

// CanTransitionTo reports whether an order may move from s to target. Orders
// only move forward (skipping steps is allowed) and can be cancelled until
// they are delivered.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	if !s.Valid() || !target.Valid() || s.IsTerminal() || s == target {
		return false
	}
	if target == OrderStatusCancelled {
		return true
	}
	return target.Step() > s.Step()
}

// FulfillmentSteps returns the ordered statuses shown on the tracking page
func FulfillmentSteps() []OrderStatus {
	steps := make([]OrderStatus, len(fulfillmentSteps))
	copy(steps, fulfillmentSteps)
	return steps
}
