package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Sessions struct {
	TTL           time.Duration
	SweepInterval time.Duration
	// Seed makes every game's layout reproducible when set.
	Seed *uint64
}

func NewSessions() (*Sessions, error) {
	ttl, err := lookupDuration("SESSION_TTL", 30*time.Minute)
	if err != nil {
		return nil, err
	}
	sweep, err := lookupDuration("SESSION_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return nil, err
	}

	sessions := &Sessions{
		TTL:           ttl,
		SweepInterval: sweep,
	}

	if s, ok := os.LookupEnv("GAME_SEED"); ok && s != "" {
		seed, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("GAME_SEED must be an unsigned int: %w", err)
		}
		sessions.Seed = &seed
	}

	return sessions, nil
}
