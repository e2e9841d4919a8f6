package preview

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrSessionNotFound is returned when a preview session id is unknown or has
// expired.
var ErrSessionNotFound = errors.New("preview session not found")

// SessionStore persists open preview sessions between events. Sessions are
// stored as snapshot plus structural data so a restored session always
// re-derives its numbering.
type SessionStore interface {
	Save(ctx context.Context, id string, session *Session) error
	Load(ctx context.Context, id string) (*Session, error)
	Delete(ctx context.Context, id string) error
}

type memorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]memoryEntry
	ttl      time.Duration
}

type memoryEntry struct {
	data      SectionData
	snapshot  Snapshot
	expiresAt time.Time
}

// NewMemorySessionStore keeps sessions in process memory. Used in tests and
// single-instance deployments without Redis.
func NewMemorySessionStore(ttl time.Duration) SessionStore {
	return &memorySessionStore{
		sessions: make(map[string]memoryEntry),
		ttl:      ttl,
	}
}

func (m *memorySessionStore) Save(ctx context.Context, id string, session *Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[id] = memoryEntry{
		data:      session.Data(),
		snapshot:  session.Snapshot(),
		expiresAt: time.Now().Add(m.ttl),
	}
	return nil
}

func (m *memorySessionStore) Load(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	entry, ok := m.sessions[id]
	m.mu.RUnlock()

	if !ok || time.Now().After(entry.expiresAt) {
		return nil, ErrSessionNotFound
	}
	return RestoreSession(entry.data, entry.snapshot), nil
}

func (m *memorySessionStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}
