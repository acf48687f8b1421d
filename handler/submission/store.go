package submission

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/SteveHaveIt/Blog/model"
)

// Store maps a Telegram user ID to their in-flight submission state.
// Implementations must allow concurrent access from different users.
type Store interface {
	Get(userID int64) (model.SubmissionState, bool)
	Set(userID int64, state model.SubmissionState)
	Delete(userID int64)
}

// MemoryStore is the in-process Store. Entries older than the TTL are
// swept by a background janitor so abandoned conversations don't
// accumulate for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	states map[int64]model.SubmissionState
	ttl    time.Duration
}

// NewMemoryStore creates a store and starts its janitor.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	s := &MemoryStore{
		states: make(map[int64]model.SubmissionState),
		ttl:    ttl,
	}
	go s.startJanitor()
	return s
}

// Get retrieves the state for a user.
func (s *MemoryStore) Get(userID int64) (model.SubmissionState, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state, found := s.states[userID]
	return state, found
}

// Set stores the state for a user, replacing any previous one.
func (s *MemoryStore) Set(userID int64, state model.SubmissionState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.states[userID] = state
}

// Delete removes the state for a user.
func (s *MemoryStore) Delete(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.states, userID)
}

// startJanitor runs a background process to clean up expired entries.
func (s *MemoryStore) startJanitor() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		s.sweep(time.Now())
	}
}

// sweep removes states created longer than the TTL ago.
func (s *MemoryStore) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for userID, state := range s.states {
		if now.Sub(state.Timestamp) > s.ttl {
			delete(s.states, userID)
			log.Debug().Int64("user_id", userID).Msg("swept expired submission state")
		}
	}
}
