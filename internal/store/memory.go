// internal/store/memory.go
//
// In-memory session store.
// Sessions are ephemeral by design: a process restart drops every game in
// progress and nothing is restored from disk.
//
// Characteristics:
//   - Stores *game.Controller values keyed by session ID.
//   - Concurrency-safe via RWMutex (concurrent reads allowed, writes exclusive).
//   - Delete stops the session's pending timers.
//   - Sessions idle past a TTL are dropped by Sweep / Janitor.

package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/robalobadob/vocab-bingo/internal/game"
)

// ErrNotFound is returned for unknown session IDs.
var ErrNotFound = errors.New("session not found")

// Store defines the persistence interface for game sessions.
type Store interface {
	// Save adds or replaces a session.
	Save(ctx context.Context, c *game.Controller) error

	// Get retrieves a session by ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*game.Controller, error)

	// Delete drops a session and cancels its timers. Unknown IDs are ignored.
	Delete(ctx context.Context, id string) error
}

// Memory is an in-memory map-based Store implementation. Entries remember
// when they were last saved or fetched so idle sessions can be swept.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	now      func() time.Time
}

type entry struct {
	c    *game.Controller
	seen time.Time
}

// NewMemoryStore constructs a new in-memory Store.
func NewMemoryStore() *Memory {
	return &Memory{sessions: make(map[string]*entry), now: time.Now}
}

func (m *Memory) Save(ctx context.Context, c *game.Controller) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[c.ID()] = &entry{c: c, seen: m.now()}
	return nil
}

func (m *Memory) Get(ctx context.Context, id string) (*game.Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	e.seen = m.now()
	return e.c, nil
}

func (m *Memory) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	e, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mu.Unlock()
	if ok {
		e.c.Stop()
	}
	return nil
}

// Len reports the number of live sessions.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep drops every session untouched for longer than idle and stops its
// timers. It returns how many were dropped.
func (m *Memory) Sweep(idle time.Duration) int {
	cutoff := m.now().Add(-idle)
	var stale []*game.Controller
	m.mu.Lock()
	for id, e := range m.sessions {
		if e.seen.Before(cutoff) {
			stale = append(stale, e.c)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()
	for _, c := range stale {
		c.Stop()
	}
	return len(stale)
}

// Janitor sweeps idle sessions every interval until ctx is done.
func (m *Memory) Janitor(ctx context.Context, every, idle time.Duration) error {
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			if n := m.Sweep(idle); n > 0 {
				log.Debug().Int("evicted", n).Int("live", m.Len()).Msg("swept idle sessions")
			}
		}
	}
}
