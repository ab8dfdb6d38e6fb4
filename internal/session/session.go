// Package session ties a browser cookie to a server-side cart and
// checkout flow. Live sessions sit in memory; every mutation is mirrored
// to a snapshot store so a restarted process (or another instance behind
// the same Redis) can pick the session back up.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/cart"
	"github.com/aluminiucasa-lang/aluminiucasa-lang-game-planet-store/internal/checkout"
)

// CookieName is the browser cookie carrying the session id.
const CookieName = "gp_session"

var ErrCacheMiss = errors.New("cache miss")

// Snapshot is the persisted form of a session.
type Snapshot struct {
	Cart      cart.State     `json:"cart"`
	Checkout  checkout.State `json:"checkout"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// SnapshotStore persists session snapshots between requests.
type SnapshotStore interface {
	Get(ctx context.Context, sessionID string) (*Snapshot, error)
	Set(ctx context.Context, sessionID string, snap *Snapshot) error
	Delete(ctx context.Context, sessionID string) error
}

// Session is one visitor's live state.
type Session struct {
	ID   string
	Cart *cart.Cart
	Flow *checkout.Flow
}

func (s *Session) snapshot() *Snapshot {
	return &Snapshot{
		Cart:      s.Cart.Snapshot(),
		Checkout:  s.Flow.Snapshot(),
		UpdatedAt: time.Now().UTC(),
	}
}
