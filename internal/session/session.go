package session

import (
	"sync"
	"time"

	"github.com/vancomm/battleship-server/internal/fleet"
)

// Session owns one game. A [fleet.GameState] is not safe for concurrent use,
// so every access goes through Do.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu        sync.Mutex
	game      *fleet.GameState
	touchedAt time.Time
	now       func() time.Time
}

// Do runs fn with exclusive access to the game. Observer callbacks fired by
// fn run with the lock held.
func (s *Session) Do(fn func(*fleet.GameState) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.touchedAt = s.now()
	return fn(s.game)
}

// With is Do for fn that cannot fail.
func (s *Session) With(fn func(*fleet.GameState)) {
	s.Do(func(g *fleet.GameState) error {
		fn(g)
		return nil
	})
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.touchedAt
}
