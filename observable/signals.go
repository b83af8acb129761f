package observable

import "sync"

// Signal[T] is a reactive value that notifies subscribers when changed.
type Signal[T any] struct {
	mu    sync.RWMutex
	value T
	subs  subscribers[func(T)]
}

// NewSignal creates a Signal with an initial value.
func NewSignal[T any](initial T) *Signal[T] {
	return &Signal[T]{value: initial}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and notifies all subscribers with the new value.
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	s.value = v
	fns := s.subs.snapshot()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Subscribe registers a callback fired when the value changes.
// Returns an unsubscribe func; call it when the subscriber is disposed.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.subs.add(fn)

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		s.subs.remove(id)
	}
}

// subscribers keeps callbacks in registration order, addressed by id so that
// removal does not shift the identity of the remaining entries.
type subscribers[F any] struct {
	next  uint64
	ids   []uint64
	funcs []F
}

func (s *subscribers[F]) add(fn F) uint64 {
	s.next++
	s.ids = append(s.ids, s.next)
	s.funcs = append(s.funcs, fn)
	return s.next
}

func (s *subscribers[F]) remove(id uint64) bool {
	for i, v := range s.ids {
		if v == id {
			s.ids = append(s.ids[:i], s.ids[i+1:]...)
			s.funcs = append(s.funcs[:i], s.funcs[i+1:]...)
			return true
		}
	}
	return false
}

func (s *subscribers[F]) len() int {
	return len(s.ids)
}

// snapshot copies the callbacks so they can run while the set is modified.
func (s *subscribers[F]) snapshot() []F {
	out := make([]F, len(s.funcs))
	copy(out, s.funcs)
	return out
}
