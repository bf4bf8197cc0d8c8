package config

import (
	"slices"
	"sync"
	"sync/atomic"
)

// Provider supplies configuration snapshots and change notifications.
type Provider interface {
	// Current returns the latest snapshot.
	Current() Options
	// Subscribe registers fn to receive every replacement snapshot. The
	// returned cancel func is idempotent.
	Subscribe(fn func(Options)) (cancel func())
}

type subscriber struct {
	id uint64
	fn func(Options)
}

// Store holds the current Options behind an atomic pointer, so readers never
// observe a half-replaced snapshot.
type Store struct {
	current atomic.Pointer[Options]

	// replaceMu orders stores and notifications across concurrent Replace calls.
	replaceMu sync.Mutex

	mu   sync.Mutex
	subs []subscriber
	next uint64
}

var _ Provider = (*Store)(nil)

// NewStore returns a Store seeded with initial.
func NewStore(initial Options) *Store {
	s := &Store{}
	s.current.Store(&initial)
	return s
}

// Current returns a copy of the current snapshot.
func (s *Store) Current() Options {
	return *s.current.Load()
}

// Replace swaps in opts wholesale and notifies subscribers in registration
// order. Concurrent calls are serialized, so the last snapshot a subscriber
// sees is always Current. Callbacks run on the caller's goroutine and must not
// call Replace.
func (s *Store) Replace(opts Options) {
	s.replaceMu.Lock()
	defer s.replaceMu.Unlock()

	s.current.Store(&opts)

	s.mu.Lock()
	subs := slices.Clone(s.subs)
	s.mu.Unlock()

	for _, sub := range subs {
		sub.fn(opts)
	}
}

// Subscribe implements Provider.
func (s *Store) Subscribe(fn func(Options)) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			s.subs = slices.DeleteFunc(s.subs, func(sub subscriber) bool { return sub.id == id })
			s.mu.Unlock()
		})
	}
}

// Subscribers returns the number of live subscriptions.
func (s *Store) Subscribers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}
