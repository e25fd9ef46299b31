package store

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIDGenerator_Next(t *testing.T) {
	current := time.UnixMilli(1700000000000)
	g := NewIDGenerator(func() time.Time { return current })

	id, tracking := g.Next()
	assert.Equal(t, "ORD-1700000000000-000", id)
	assert.Equal(t, "TRK1700000000000000", tracking)

	id, tracking = g.Next()
	assert.Equal(t, "ORD-1700000000000-001", id)
	assert.Equal(t, "TRK1700000000000001", tracking)

	current = current.Add(time.Millisecond)
	id, _ = g.Next()
	assert.Equal(t, "ORD-1700000000001-000", id)

	// A clock that steps backwards keeps ids increasing
	current = current.Add(-time.Second)
	id, tracking = g.Next()
	assert.Equal(t, "ORD-1700000000001-001", id)
	assert.Equal(t, "TRK1700000000001001", tracking)
}

func TestIDGenerator_Concurrent(t *testing.T) {
	// A frozen clock puts every id in the same millisecond
	g := NewIDGenerator(func() time.Time { return time.UnixMilli(1712345678901) })

	const n = 500
	type pair struct{ id, tracking string }
	pairs := make(chan pair, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, tracking := g.Next()
			pairs <- pair{id, tracking}
		}()
	}
	wg.Wait()
	close(pairs)

	ids := make(map[string]bool, n)
	trackings := make(map[string]bool, n)
	for p := range pairs {
		require.False(t, ids[p.id], "duplicate id %s", p.id)
		require.False(t, trackings[p.tracking], "duplicate tracking number %s", p.tracking)
		ids[p.id] = true
		trackings[p.tracking] = true
	}
	assert.Len(t, ids, n)
	assert.Len(t, trackings, n)
}

func TestCustomerID(t *testing.T) {
	a, b := CustomerID(), CustomerID()
	assert.Regexp(t, `^CUST-[0-9a-f-]{36}$`, a)
	assert.NotEqual(t, a, b)
}
