package store

import (
	"errors"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrSessionNotFound is returned for unknown or ended sessions.
var ErrSessionNotFound = errors.New("cart session not found")

// Sessions maps session ids to their carts. Carts live only as long as their session.
type Sessions struct {
	mu     sync.RWMutex
	carts  map[uuid.UUID]*CartStore
	logger *zap.Logger
}

func NewSessions(logger *zap.Logger) *Sessions {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Sessions{
		carts:  make(map[uuid.UUID]*CartStore),
		logger: logger,
	}
}

// Start opens a session with an empty cart.
func (s *Sessions) Start() uuid.UUID {
	id := uuid.New()
	cart := NewCartStore()

	s.mu.Lock()
	s.carts[id] = cart
	n := len(s.carts)
	s.mu.Unlock()

	s.logger.Info("cart session started", zap.Stringer("session_id", id), zap.Int("sessions", n))
	return id
}

func (s *Sessions) Get(id uuid.UUID) (*CartStore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cart, ok := s.carts[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return cart, nil
}

// End closes the session and drops its cart.
func (s *Sessions) End(id uuid.UUID) error {
	s.mu.Lock()
	cart, ok := s.carts[id]
	delete(s.carts, id)
	s.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	cart.Close()
	s.logger.Info("cart session ended", zap.Stringer("session_id", id))
	return nil
}

func (s *Sessions) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.carts)
}

// Close ends every session.
func (s *Sessions) Close() {
	s.mu.Lock()
	carts := s.carts
	s.carts = make(map[uuid.UUID]*CartStore)
	s.mu.Unlock()

	for _, cart := range carts {
		cart.Close()
	}
	s.logger.Info("cart sessions closed", zap.Int("sessions", len(carts)))
}
