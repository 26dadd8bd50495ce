package usecase

import "sync"

// session holds one owner's in-memory value. Its mutex serialises every
// operation for that owner, so each runs to completion before the next.
type session[T any] struct {
	mu     sync.Mutex
	loaded bool
	value  T
}

type sessions[T any] struct {
	mu    sync.Mutex
	items map[string]*session[T]
}

func (s *sessions[T]) get(ownerID string) *session[T] {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.items == nil {
		s.items = make(map[string]*session[T])
	}
	sess, ok := s.items[ownerID]
	if !ok {
		sess = &session[T]{}
		s.items[ownerID] = sess
	}
	return sess
}
