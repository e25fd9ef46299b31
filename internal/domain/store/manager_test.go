package store

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/your-org/storefront/internal/domain/pricing"
)

func TestManager_Get(t *testing.T) {
	ctx := context.Background()
	m := NewManager(ManagerConfig{Catalog: testCatalog(t), Logger: quietLogger()})

	_, err := m.Get(ctx, "  ")
	assert.ErrorIs(t, err, ErrInvalidSession)

	a, err := m.Get(ctx, "alpha")
	require.NoError(t, err)
	again, err := m.Get(ctx, "alpha")
	require.NoError(t, err)
	b, err := m.Get(ctx, "beta")
	require.NoError(t, err)

	assert.Same(t, a, again)
	assert.NotSame(t, a, b)
	assert.Equal(t, 2, m.Len())
	assert.ElementsMatch(t, []string{"alpha", "beta"}, m.Sessions())
}

func TestManager_Key(t *testing.T) {
	assert.Equal(t, "ecommerce-store:abc", NewManager(ManagerConfig{}).Key("abc"))
	assert.Equal(t, "shop:abc", NewManager(ManagerConfig{KeyPrefix: "shop"}).Key("abc"))
}

func TestManager_RestoresFromPersister(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	mem := newMemoryPersister()

	first := NewManager(ManagerConfig{Catalog: cat, Persister: mem, Logger: quietLogger()})
	s, err := first.Get(ctx, "alpha")
	require.NoError(t, err)
	require.NoError(t, s.SetAccountType(ctx, pricing.AccountGovernment))
	require.NoError(t, s.AddToCart(ctx, product(t, cat, "p1"), 2))

	_, err = mem.Load(ctx, "ecommerce-store:alpha")
	require.NoError(t, err)

	second := NewManager(ManagerConfig{Catalog: cat, Persister: mem, Logger: quietLogger()})
	restored, err := second.Get(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, pricing.AccountGovernment, restored.AccountType())
	assert.Equal(t, 2, restored.CartCount())

	other, err := second.Get(ctx, "beta")
	require.NoError(t, err)
	assert.Equal(t, 0, other.CartCount())
}

func TestManager_SharesIDGenerator(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	m := NewManager(ManagerConfig{Catalog: cat, Logger: quietLogger()})
	desk := product(t, cat, "p1")

	var wg sync.WaitGroup
	ids := make(chan string, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(session string) {
			defer wg.Done()
			s, err := m.Get(ctx, session)
			if err != nil {
				return
			}
			_ = s.AddToCart(ctx, desk, 1)
			order, err := s.PlaceOrder(ctx, validForm())
			if err == nil {
				ids <- order.ID
			}
		}(string(rune('a' + i)))
	}
	wg.Wait()
	close(ids)

	seen := make(map[string]bool)
	for id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
	assert.Len(t, seen, 10)
}

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestManager_MaxSessions(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	mem := newMemoryPersister()
	m := NewManager(ManagerConfig{
		Catalog:     cat,
		Persister:   mem,
		Clock:       clock.Now,
		Logger:      quietLogger(),
		MaxSessions: 3,
	})

	for i := 0; i < 1000; i++ {
		clock.Advance(time.Millisecond)
		_, err := m.Get(ctx, fmt.Sprintf("visitor-%d", i))
		require.NoError(t, err)
		require.LessOrEqual(t, m.Len(), 3)
	}
	assert.ElementsMatch(t, []string{"visitor-997", "visitor-998", "visitor-999"}, m.Sessions())

	t.Run("evicts the least recently used session", func(t *testing.T) {
		clock.Advance(time.Millisecond)
		_, err := m.Get(ctx, "visitor-997")
		require.NoError(t, err)

		clock.Advance(time.Millisecond)
		_, err = m.Get(ctx, "newcomer")
		require.NoError(t, err)

		assert.ElementsMatch(t, []string{"visitor-997", "visitor-999", "newcomer"}, m.Sessions())
	})

	t.Run("evicted sessions are restored on return", func(t *testing.T) {
		s, err := m.Get(ctx, "visitor-999")
		require.NoError(t, err)
		require.NoError(t, s.AddToCart(ctx, product(t, cat, "p1"), 2))

		for i := 0; i < 3; i++ {
			clock.Advance(time.Millisecond)
			_, err := m.Get(ctx, fmt.Sprintf("later-%d", i))
			require.NoError(t, err)
		}
		assert.NotContains(t, m.Sessions(), "visitor-999")

		back, err := m.Get(ctx, "visitor-999")
		require.NoError(t, err)
		assert.NotSame(t, s, back)
		assert.Equal(t, 2, back.CartCount())
	})
}

func TestManager_MaxSessionsPrefersPersistedSessions(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	persister := &failingPersister{err: errors.New("connection refused")}
	m := NewManager(ManagerConfig{
		Catalog:     cat,
		Persister:   persister,
		Clock:       clock.Now,
		Logger:      quietLogger(),
		MaxSessions: 2,
	})

	broken, err := m.Get(ctx, "broken")
	require.NoError(t, err)
	require.Error(t, broken.PersistenceErr())

	persister.err = nil
	clock.Advance(time.Second)
	healthy, err := m.Get(ctx, "healthy")
	require.NoError(t, err)
	require.NoError(t, healthy.AddToCart(ctx, product(t, cat, "p1"), 1))
	require.NoError(t, healthy.PersistenceErr())

	clock.Advance(time.Second)
	_, err = m.Get(ctx, "third")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"broken", "third"}, m.Sessions())
}

func TestManager_EvictIdle(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	clock := &manualClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	persister := &failingPersister{}
	m := NewManager(ManagerConfig{
		Catalog:     cat,
		Persister:   persister,
		Clock:       clock.Now,
		Logger:      quietLogger(),
		IdleTimeout: 30 * time.Minute,
	})

	_, err := m.Get(ctx, "stale")
	require.NoError(t, err)

	persister.err = errors.New("connection refused")
	unsaved, err := m.Get(ctx, "unsaved")
	require.NoError(t, err)
	require.Error(t, unsaved.PersistenceErr())
	persister.err = nil

	clock.Advance(20 * time.Minute)
	_, err = m.Get(ctx, "active")
	require.NoError(t, err)

	assert.Zero(t, m.EvictIdle(clock.Now()), "nothing is idle yet")

	clock.Advance(15 * time.Minute)
	assert.Equal(t, 1, m.EvictIdle(clock.Now()))
	assert.ElementsMatch(t, []string{"unsaved", "active"}, m.Sessions())

	off := NewManager(ManagerConfig{Catalog: cat, Logger: quietLogger()})
	_, err = off.Get(ctx, "kept")
	require.NoError(t, err)
	assert.Zero(t, off.EvictIdle(time.Now().Add(24*time.Hour)))
}

func TestManager_RunStopsWithContext(t *testing.T) {
	m := NewManager(ManagerConfig{Catalog: testCatalog(t), Logger: quietLogger(), IdleTimeout: time.Nanosecond})
	_, err := m.Get(context.Background(), "alpha")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		m.Run(ctx, time.Millisecond)
		close(done)
	}()

	assert.Eventually(t, func() bool { return m.Len() == 0 }, time.Second, 5*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestManager_Transient(t *testing.T) {
	ctx := context.Background()
	cat := testCatalog(t)
	mem := newMemoryPersister()
	m := NewManager(ManagerConfig{Catalog: cat, Persister: mem, Logger: quietLogger()})

	s := m.Transient()
	assert.Equal(t, pricing.AccountIndividual, s.AccountType())
	assert.Empty(t, s.Cart())
	require.NoError(t, s.AddToCart(ctx, product(t, cat, "p1"), 1))

	assert.Zero(t, m.Len())
	assert.NotSame(t, s, m.Transient())
	assert.Empty(t, mem.records)
}
