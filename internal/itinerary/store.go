package itinerary

import (
	"sync"
	"time"
)

// Store keeps one draft per logged-in user for the length of the process.
type Store struct {
	mu     sync.Mutex
	drafts map[uint]*userDraft
	now    func() time.Time
}

type userDraft struct {
	mu    sync.Mutex
	draft *Draft
}

func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{drafts: make(map[uint]*userDraft), now: now}
}

// With runs fn with exclusive access to the user's draft, creating an
// empty one on first use.
func (s *Store) With(userID uint, fn func(*Draft) error) error {
	s.mu.Lock()
	ud, ok := s.drafts[userID]
	if !ok {
		ud = &userDraft{draft: NewDraft(s.now)}
		s.drafts[userID] = ud
	}
	s.mu.Unlock()

	ud.mu.Lock()
	defer ud.mu.Unlock()
	return fn(ud.draft)
}

func (s *Store) Discard(userID uint) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, userID)
}
