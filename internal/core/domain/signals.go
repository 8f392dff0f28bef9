package domain

import (
	"maps"
	"slices"
	"sync"
)

// Signals is the set of flags raised by completed tasks during one run.
// Flags are only ever added. It is safe for concurrent use.
type Signals struct {
	mu    sync.RWMutex
	flags map[string]struct{}
}

// NewSignals creates an empty signal set.
func NewSignals() *Signals {
	return &Signals{
		flags: make(map[string]struct{}),
	}
}

// Raise adds a flag to the set.
func (s *Signals) Raise(flag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags[flag] = struct{}{}
}

// Has reports whether the flag has been raised.
func (s *Signals) Has(flag string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.flags[flag]
	return ok
}

// Len returns the number of raised flags.
func (s *Signals) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.flags)
}

// Snapshot returns the raised flags in sorted order.
func (s *Signals) Snapshot() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Sorted(maps.Keys(s.flags))
}
