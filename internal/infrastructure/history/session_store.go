package history

import (
	"sync"

	"github.com/doeshing/replize-go/internal/domain"
	"github.com/doeshing/replize-go/internal/ports"
)

// SessionStore keeps the lines entered during one session in memory.
// Entries are never removed or rewritten, so an index stays valid for the
// lifetime of the store.
type SessionStore struct {
	mu    sync.RWMutex
	lines []string
}

// NewSessionStore creates an empty store.
func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

// Append implements ports.HistoryRepository.
func (s *SessionStore) Append(line string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
	return len(s.lines) - 1
}

// Get returns the entry at index, or false when index is out of range.
func (s *SessionStore) Get(index int) (domain.HistoryEntry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if index < 0 || index >= len(s.lines) {
		return domain.HistoryEntry{}, false
	}
	return domain.HistoryEntry{Index: index, Line: s.lines[index]}, true
}

// List returns every entry in order.
func (s *SessionStore) List() []domain.HistoryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := make([]domain.HistoryEntry, len(s.lines))
	for i, line := range s.lines {
		entries[i] = domain.HistoryEntry{Index: i, Line: line}
	}
	return entries
}

// Len returns the number of entries.
func (s *SessionStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lines)
}

var _ ports.HistoryRepository = (*SessionStore)(nil)
