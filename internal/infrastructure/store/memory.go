package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"jojo-client/internal/domain/audiosession"
	"jojo-client/internal/infrastructure/metrics"
)

// ErrSessionAlreadyExists is returned when trying to record a session ID twice.
var ErrSessionAlreadyExists = errors.New("session already exists")

// MemoryStore is a mutex-based in-memory session ledger.
// Thread-safe via sync.RWMutex.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*audiosession.Session
	log      zerolog.Logger
}

// NewMemoryStore creates a new in-memory session ledger.
func NewMemoryStore(log zerolog.Logger) *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]*audiosession.Session),
		log:      log.With().Str("component", "session-store").Logger(),
	}
}

// Create records a new session.
func (s *MemoryStore) Create(ctx context.Context, sess *audiosession.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[sess.ID]; exists {
		return ErrSessionAlreadyExists
	}

	stored := *sess
	s.sessions[sess.ID] = &stored
	metrics.RecordSessionIssued(string(sess.KeySource))
	return nil
}

// Get retrieves a session by ID.
func (s *MemoryStore) Get(ctx context.Context, id string) (*audiosession.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess, ok := s.sessions[id]
	if !ok {
		return nil, audiosession.ErrSessionNotFound
	}
	out := *sess
	return &out, nil
}

// List returns all sessions ordered by creation time.
func (s *MemoryStore) List(ctx context.Context) ([]*audiosession.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*audiosession.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out := *sess
		result = append(result, &out)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result, nil
}

// Delete removes a session by ID.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return audiosession.ErrSessionNotFound
	}
	delete(s.sessions, id)
	metrics.RecordSessionEvicted()
	return nil
}

// DeleteExpired removes every session whose expiry is at or before now.
func (s *MemoryStore) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, sess := range s.sessions {
		if sess.Expired(now) {
			delete(s.sessions, id)
			metrics.RecordSessionEvicted()
			removed++
		}
	}
	return removed, nil
}

// Len returns the number of recorded sessions.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
