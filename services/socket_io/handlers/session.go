package handlers

import (
	"sync"
)

// Session is the per-connection state. A connection is anonymous until
// its create_room/join_room succeeds, then it is bound to exactly one
// player id for its lifetime.
type Session struct {
	mu       sync.Mutex
	playerId string
}

func (s *Session) Bind(playerId string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playerId = playerId
}

func (s *Session) PlayerId() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.playerId
}
