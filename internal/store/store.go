package store

import (
	"sort"
	"sync"

	"github.com/rs/zerolog/log"
)

// Store holds the current snapshot and serializes every write through a
// single mutex. The transition function itself is not safe to invoke
// concurrently on the same snapshot, so the store is the one sanctioned
// serialization point: one dispatch is fully applied and published before
// the next begins. Immediately after Dispatch returns, Snapshot reflects
// the new state.
type Store struct {
	mu      sync.RWMutex
	current Snapshot
	nextSub int
	subs    map[int]func(Snapshot)
}

// New creates a store with an empty snapshot.
func New() *Store {
	return &Store{
		current: NewSnapshot(),
		subs:    make(map[int]func(Snapshot)),
	}
}

// Snapshot returns the latest published snapshot. The returned value must be
// treated as frozen.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Dispatch applies one action and synchronously notifies all subscribers
// with the resulting snapshot before returning. Subscribers are notified in
// registration order. They receive the new snapshot as an argument and must
// not call back into the store from the callback.
func (s *Store) Dispatch(action Action) {
	s.mu.Lock()
	defer s.mu.Unlock()

	log.Debug().Type("action", action).Msg("applying action")
	s.current = Apply(s.current, action)

	ids := make([]int, 0, len(s.subs))
	for id := range s.subs {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	for _, id := range ids {
		s.subs[id](s.current)
	}
}

// Subscribe registers a callback invoked on every dispatch. The returned
// function removes the subscription.
func (s *Store) Subscribe(fn func(Snapshot)) func() {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs, id)
	}
}
