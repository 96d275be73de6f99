package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore is the single-process fallback used when Redis is not
// configured. Expired entries are dropped lazily on read.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	rounds map[int64]memoryEntry
	now    func() time.Time
}

type memoryEntry struct {
	round     PendingRound
	expiresAt time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		ttl:    ttl,
		rounds: make(map[int64]memoryEntry),
		now:    time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, round PendingRound) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rounds[round.IntentID] = memoryEntry{round: round, expiresAt: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, intentID int64) (PendingRound, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.rounds[intentID]
	if !ok {
		return PendingRound{}, ErrNotFound
	}
	if s.now().After(entry.expiresAt) {
		delete(s.rounds, intentID)
		return PendingRound{}, ErrNotFound
	}
	return entry.round, nil
}

func (s *MemoryStore) Delete(_ context.Context, intentID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.rounds, intentID)
	return nil
}
