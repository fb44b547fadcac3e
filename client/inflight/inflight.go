// Package inflight tracks which entities have a request in progress so a
// UI can disable controls for them. It does not order or merge requests:
// two updates to the same entity that both get through are last-response-wins.
package inflight

import (
	"sort"
	"sync"
)

// Set is a concurrency-safe set of entity IDs.
type Set struct {
	mu  sync.Mutex
	ids map[string]struct{}
}

func New() *Set {
	return &Set{ids: make(map[string]struct{})}
}

// Begin marks id as in flight. It returns false if id already was.
func (s *Set) Begin(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.ids[id]; ok {
		return false
	}
	s.ids[id] = struct{}{}
	return true
}

// Done clears id. Clearing an id that is not in flight is a no-op.
func (s *Set) Done(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.ids, id)
}

// Has reports whether id is in flight.
func (s *Set) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.ids[id]
	return ok
}

// IDs returns the in-flight ids, sorted.
func (s *Set) IDs() []string {
	s.mu.Lock()
	out := make([]string, 0, len(s.ids))
	for id := range s.ids {
		out = append(out, id)
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out
}

// Len returns the number of ids in flight.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.ids)
}
