package session

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cart"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/checkout"
	"github.com/google/uuid"
)

// Manager hands out live sessions and mirrors them to the snapshot store.
type Manager struct {
	mu    sync.Mutex
	live  map[string]*Session
	store SnapshotStore // nil means memory-only sessions
	cfg   checkout.Config
}

func NewManager(store SnapshotStore, cfg checkout.Config) *Manager {
	return &Manager{
		live:  make(map[string]*Session),
		store: store,
		cfg:   cfg,
	}
}

// Resolve returns the session for the given id, restoring it from the
// snapshot store if it is not live. An empty or unknown id yields a fresh
// session; isNew tells the HTTP layer to set the cookie.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (s *Session, isNew bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID != "" {
		if s, ok := m.live[sessionID]; ok {
			return s, false
		}
		if s := m.restore(ctx, sessionID); s != nil {
			m.live[sessionID] = s
			return s, false
		}
	}

	s = m.newSession()
	m.live[s.ID] = s
	return s, true
}

// Persist mirrors the session to the snapshot store. Persistence failures
// are logged, not returned: the live session keeps working either way.
func (m *Manager) Persist(ctx context.Context, s *Session) {
	if m.store == nil {
		return
	}
	if err := m.store.Set(ctx, s.ID, s.snapshot()); err != nil {
		log.Printf("Failed to persist session %s: %v", s.ID, err)
	}
}

// Drop forgets the session everywhere.
func (m *Manager) Drop(ctx context.Context, sessionID string) {
	m.mu.Lock()
	delete(m.live, sessionID)
	m.mu.Unlock()

	if m.store == nil {
		return
	}
	if err := m.store.Delete(ctx, sessionID); err != nil {
		log.Printf("Failed to delete session %s: %v", sessionID, err)
	}
}

func (m *Manager) restore(ctx context.Context, sessionID string) *Session {
	if m.store == nil {
		return nil
	}

	snap, err := m.store.Get(ctx, sessionID)
	if errors.Is(err, ErrCacheMiss) {
		return nil
	}
	if err != nil {
		log.Printf("Failed to restore session %s: %v", sessionID, err)
		return nil
	}

	c := cart.Restore(snap.Cart)
	return &Session{
		ID:   sessionID,
		Cart: c,
		Flow: checkout.RestoreFlow(c, m.cfg, snap.Checkout),
	}
}

func (m *Manager) newSession() *Session {
	c := cart.New()
	return &Session{
		ID:   uuid.New().String(),
		Cart: c,
		Flow: checkout.NewFlow(c, m.cfg),
	}
}
