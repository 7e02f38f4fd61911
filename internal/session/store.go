package session

import (
	"context"
	"errors"
	"hash/maphash"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/vancomm/battleship-server/internal/config"
	"github.com/vancomm/battleship-server/internal/fleet"
)

var ErrSessionNotFound = errors.New("game session not found")

type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	ttl      time.Duration
	logger   *logrus.Logger
	newRand  func() *rand.Rand
	now      func() time.Time
}

func NewStore(logger *logrus.Logger, cfg *config.Sessions) *Store {
	s := &Store{
		sessions: make(map[string]*Session),
		ttl:      cfg.TTL,
		logger:   logger,
		newRand:  createRand,
		now:      time.Now,
	}
	if cfg.Seed != nil {
		s.newRand = seededRand(*cfg.Seed)
	}
	return s
}

func createRand() *rand.Rand {
	return rand.New(rand.NewPCG(
		new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
	))
}

// seededRand hands out a distinct, reproducible stream per game.
func seededRand(seed uint64) func() *rand.Rand {
	var (
		mu sync.Mutex
		n  uint64
	)
	return func() *rand.Rand {
		mu.Lock()
		defer mu.Unlock()
		n++
		return rand.New(rand.NewPCG(seed, n))
	}
}

// Create starts a game with roster and registers it under a fresh id.
func (s *Store) Create(roster []fleet.ShipType) (*Session, error) {
	game := fleet.NewGameState(s.newRand())
	if err := game.StartGame(roster); err != nil {
		return nil, err
	}

	now := s.now()
	session := &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		game:      game,
		touchedAt: now,
		now:       s.now,
	}

	s.mu.Lock()
	s.sessions[session.ID] = session
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"session": session.ID,
		"ships":   len(roster),
	}).Debug("created game session")

	return session, nil
}

func (s *Store) Get(id string) (*Session, error) {
	s.mu.RLock()
	session, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// Sweep drops sessions untouched for longer than the configured TTL and
// returns how many were dropped.
func (s *Store) Sweep() int {
	deadline := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, session := range s.sessions {
		if session.idleSince().Before(deadline) {
			delete(s.sessions, id)
			n++
		}
	}
	if n > 0 {
		s.logger.WithFields(logrus.Fields{
			"evicted":   n,
			"remaining": len(s.sessions),
		}).Info("evicted idle game sessions")
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (s *Store) Run(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Sweep()
		}
	}
}
