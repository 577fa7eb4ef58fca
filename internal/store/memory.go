package store

import (
	"strings"
	"sync"

	"agribot-wa-relay/internal/types"
)

// Session is the per-user state the relay keeps between messages.
type Session struct {
	DisplayName string
	// Products the backend referenced in its latest reply, in reply order.
	// Replaced wholesale on every successful backend call, never merged.
	LastMentioned []types.ProductSummary
}

// Memory maps a user identity (the transport address with the provider
// prefix stripped) to its Session. Entries are created lazily and live for
// the process lifetime; there is no eviction.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]Session
}

func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]Session)}
}

// Get returns a copy of the session for identity, creating an empty one if
// absent.
func (m *Memory) Get(identity string) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[identity]
	if !ok {
		m.sessions[identity] = Session{}
	}
	return copySession(sess)
}

// SetLastMentioned replaces the mentioned-products list for identity.
// Duplicate titles (case-insensitive) are dropped, first occurrence wins.
func (m *Memory) SetLastMentioned(identity string, products []types.ProductSummary) {
	deduped := make([]types.ProductSummary, 0, len(products))
	seen := make(map[string]struct{}, len(products))
	for _, p := range products {
		key := strings.ToLower(p.Title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		deduped = append(deduped, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.sessions[identity]
	sess.LastMentioned = deduped
	m.sessions[identity] = sess
}

func (m *Memory) SetDisplayName(identity, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.sessions[identity]
	sess.DisplayName = name
	m.sessions[identity] = sess
}

// GetDisplayName returns the stored display name, empty if never set.
func (m *Memory) GetDisplayName(identity string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[identity].DisplayName
}

func copySession(s Session) Session {
	out := Session{DisplayName: s.DisplayName}
	if len(s.LastMentioned) > 0 {
		out.LastMentioned = append([]types.ProductSummary(nil), s.LastMentioned...)
	}
	return out
}
