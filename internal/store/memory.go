// internal/store/memory.go
//
// In-memory implementation of the session Store interface. Rounds are
// ephemeral: state is lost on restart, which is fine for casual play and
// for tests. Durable backends can implement the same interface.

package store

import (
	"context"
	"errors"
	"sync"

	"github.com/steamguess/go-server/internal/game"
)

// ErrNotFound is returned by Get for unknown session ids.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for in-progress rounds.
type Store interface {
	// Save persists or updates a round.
	Save(ctx context.Context, s *game.Session) error

	// Get retrieves a round by ID.
	Get(ctx context.Context, id string) (*game.Session, error)
}

type memory struct {
	mu       sync.RWMutex
	sessions map[string]*game.Session
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() Store {
	return &memory{sessions: make(map[string]*game.Session)}
}

func (m *memory) Save(ctx context.Context, s *game.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *memory) Get(ctx context.Context, id string) (*game.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if s, ok := m.sessions[id]; ok {
		return s, nil
	}
	return nil, ErrNotFound
}
