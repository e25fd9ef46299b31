package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// IDGenerator hands out order ids and tracking numbers that are unique within
// the process. Both combine the current millisecond with a sequence number that
// restarts whenever the clock moves forward.
type IDGenerator struct {
	mu         sync.Mutex
	now        func() time.Time
	lastMillis int64
	seq        int
}

// NewIDGenerator creates a generator reading the given clock
func NewIDGenerator(now func() time.Time) *IDGenerator {
	if now == nil {
		now = time.Now
	}
	return &IDGenerator{now: now}
}

// Next returns a new order id in the form ORD-<millis>-<seq> and the
// tracking number TRK<millis><seq> drawn from the same sequence slot.
func (g *IDGenerator) Next() (orderID, trackingNumber string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	millis := g.now().UnixMilli()
	if millis <= g.lastMillis {
		// Clock did not advance (or went backwards); stay on the last millisecond.
		millis = g.lastMillis
		g.seq++
	} else {
		g.lastMillis = millis
		g.seq = 0
	}

	return fmt.Sprintf("ORD-%d-%03d", millis, g.seq), fmt.Sprintf("TRK%d%03d", millis, g.seq)
}

// CustomerID returns a new customer id
func CustomerID() string {
	return "CUST-" + uuid.NewString()
}
