// internal/domain/store/manager.go
package store

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/catalog"
)

// DefaultKeyPrefix namespaces persisted session records
const DefaultKeyPrefix = "ecommerce-store"

// ManagerConfig configures a Manager
type ManagerConfig struct {
	KeyPrefix string
	Catalog   *catalog.Catalog
	Persister Persister
	Listeners []Listener
	Clock     func() time.Time
	Logger    logrus.FieldLogger

	// IdleTimeout drops sessions unused for this long on each sweep; zero
	// keeps them until MaxSessions forces them out.
	IdleTimeout time.Duration
	// MaxSessions caps the sessions held in memory; zero means no cap.
	MaxSessions int
}

type session struct {
	store    *Store
	lastUsed time.Time
}

// Manager hands out one Store per session, restoring it on first use.
// Evicted sessions are restored from the Persister on their next request.
type Manager struct {
	mu     sync.Mutex
	cfg    ManagerConfig
	ids    *IDGenerator
	stores map[string]*session
}

// NewManager creates a new session manager
func NewManager(cfg ManagerConfig) *Manager {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = DefaultKeyPrefix
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	if cfg.Logger == nil {
		cfg.Logger = logrus.StandardLogger()
	}

	return &Manager{
		cfg:    cfg,
		ids:    NewIDGenerator(cfg.Clock),
		stores: make(map[string]*session),
	}
}

// Key returns the persistence key for a session
func (m *Manager) Key(sessionID string) string {
	return m.cfg.KeyPrefix + ":" + sessionID
}

// Get returns the Store for sessionID, creating and restoring it if needed.
// All stores share one id generator so order ids stay unique process-wide.
func (m *Manager) Get(ctx context.Context, sessionID string) (*Store, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil, ErrInvalidSession
	}

	m.mu.Lock()
	now := m.cfg.Clock()
	if sess, ok := m.stores[sessionID]; ok {
		sess.lastUsed = now
		m.mu.Unlock()
		return sess.store, nil
	}

	if m.cfg.MaxSessions > 0 && len(m.stores) >= m.cfg.MaxSessions {
		m.evictOldestLocked()
	}

	s := New(Options{
		SessionID: sessionID,
		Key:       m.Key(sessionID),
		Catalog:   m.cfg.Catalog,
		Persister: m.cfg.Persister,
		Listeners: m.cfg.Listeners,
		IDs:       m.ids,
		Clock:     m.cfg.Clock,
		Logger:    m.cfg.Logger,
	})

	// Hold the store lock across the map insert so concurrent callers for the
	// same session wait for the restore to finish.
	s.mu.Lock()
	m.stores[sessionID] = &session{store: s, lastUsed: now}
	m.mu.Unlock()

	s.restoreLocked(ctx)
	s.mu.Unlock()

	return s, nil
}

// Transient returns an unregistered Store with default state and no
// persistence. It serves read-only requests that carry no session.
func (m *Manager) Transient() *Store {
	return New(Options{
		Catalog: m.cfg.Catalog,
		IDs:     m.ids,
		Clock:   m.cfg.Clock,
		Logger:  m.cfg.Logger,
	})
}

// EvictIdle drops sessions unused since IdleTimeout before now and returns
// how many were dropped. Sessions whose last write failed are kept so their
// in-memory state is not lost.
func (m *Manager) EvictIdle(now time.Time) int {
	if m.cfg.IdleTimeout <= 0 {
		return 0
	}
	cutoff := now.Add(-m.cfg.IdleTimeout)

	m.mu.Lock()
	defer m.mu.Unlock()

	evicted := 0
	for id, sess := range m.stores {
		if !sess.lastUsed.Before(cutoff) || sess.store.hasUnsavedState() {
			continue
		}
		delete(m.stores, id)
		evicted++
	}
	return evicted
}

// Run sweeps idle sessions every interval until ctx is done
func (m *Manager) Run(ctx context.Context, interval time.Duration) {
	if m.cfg.IdleTimeout <= 0 || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := m.EvictIdle(m.cfg.Clock()); n > 0 {
				m.cfg.Logger.WithFields(logrus.Fields{
					"evicted":   n,
					"remaining": m.Len(),
				}).Debug("Evicted idle sessions")
			}
		}
	}
}

// evictOldestLocked drops the least recently used session, preferring ones
// whose state is safely persisted.
func (m *Manager) evictOldestLocked() {
	var oldestID, degradedID string
	var oldest, degraded time.Time

	for id, sess := range m.stores {
		if sess.store.hasUnsavedState() {
			if degradedID == "" || sess.lastUsed.Before(degraded) {
				degradedID, degraded = id, sess.lastUsed
			}
			continue
		}
		if oldestID == "" || sess.lastUsed.Before(oldest) {
			oldestID, oldest = id, sess.lastUsed
		}
	}

	if oldestID == "" {
		oldestID = degradedID
		m.cfg.Logger.WithField("session_id", oldestID).Warn("Session cap reached, dropping unpersisted session")
	}
	delete(m.stores, oldestID)
}

// Len returns the number of sessions currently held in memory
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.stores)
}

// Sessions returns the ids of the sessions currently held in memory
func (m *Manager) Sessions() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	ids := make([]string, 0, len(m.stores))
	for id := range m.stores {
		ids = append(ids, id)
	}
	return ids
}
