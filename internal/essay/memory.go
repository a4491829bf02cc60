// Package essay holds the essay memory, the section-wise generation
// engine and the comparison agent.
package essay

import "sync"

// Memory is the per-user store of the most recent essay text. It lives
// for the process lifetime; there is no TTL and no size bound, which is
// acceptable for a single-process, small-user-count deployment.
//
// The mutex protects map integrity only. Two requests for the same user
// interleaving between Get and Set still race: the last Set wins. That
// matches upstream behavior and is deliberately not serialized here.
type Memory struct {
	mu     sync.RWMutex
	essays map[string]string
}

func NewMemory() *Memory {
	return &Memory{essays: make(map[string]string)}
}

// Get returns the stored essay for userID, if any. There is no
// distinction between "never set" and "cleared".
func (m *Memory) Get(userID string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	text, ok := m.essays[userID]
	return text, ok
}

// Set overwrites the stored essay unconditionally.
func (m *Memory) Set(userID, text string) {
	m.mu.Lock()
	m.essays[userID] = text
	m.mu.Unlock()
}

// Clear removes the entry for userID.
func (m *Memory) Clear(userID string) {
	m.mu.Lock()
	delete(m.essays, userID)
	m.mu.Unlock()
}
