package grid

import "sync"

// SelectionStore is a ready-made SelectionHost. It keeps the committed set,
// counts commits and notifies listeners after each one.
type SelectionStore struct {
	mu        sync.RWMutex
	committed Set
	commits   int
	listeners []func(Set)
}

// NewSelectionStore creates a store holding initial.
func NewSelectionStore(initial ...string) *SelectionStore {
	return &SelectionStore{committed: NewSet(initial...)}
}

// Selection returns a copy of the committed set.
func (s *SelectionStore) Selection() Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.committed.Clone()
}

// CommitSelection replaces the committed set.
func (s *SelectionStore) CommitSelection(next Set) {
	s.mu.Lock()
	s.committed = next.Clone()
	s.commits++
	listeners := append([]func(Set){}, s.listeners...)
	snapshot := s.committed.Clone()
	s.mu.Unlock()

	for _, fn := range listeners {
		fn(snapshot)
	}
}

// Commits returns how many times the selection was committed.
func (s *SelectionStore) Commits() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.commits
}

// OnCommit registers fn to run after every commit.
func (s *SelectionStore) OnCommit(fn func(Set)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

// Retain drops committed keys that are not in keep. It is used when items
// disappear from the library and does not count as a commit.
func (s *SelectionStore) Retain(keep Set) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for k := range s.committed {
		if !keep.Has(k) {
			delete(s.committed, k)
		}
	}
}
