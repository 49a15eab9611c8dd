package session

import (
	"context"
	"sync"
	"time"

	"github.com/sangkips/stockdesk/internal/domain/entity"
	domainRepo "github.com/sangkips/stockdesk/internal/domain/repository"
)

type memoryStore struct {
	mu    sync.RWMutex
	items map[string]record
	now   func() time.Time
}

// NewMemoryStore creates a process-local session store.
func NewMemoryStore() domainRepo.SessionRepository {
	return &memoryStore{items: make(map[string]record), now: time.Now}
}

func (s *memoryStore) Get(_ context.Context, token string) (*entity.Session, error) {
	key := Key(token)
	s.mu.RLock()
	rec, ok := s.items[key]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	sess := rec.session(token)
	if sess.IsExpired(s.now()) {
		s.mu.Lock()
		delete(s.items, key)
		s.mu.Unlock()
		return nil, nil
	}
	return sess, nil
}

func (s *memoryStore) Save(_ context.Context, session *entity.Session) error {
	s.mu.Lock()
	s.items[Key(session.Token)] = toRecord(session)
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) Delete(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.items, Key(token))
	s.mu.Unlock()
	return nil
}

func (s *memoryStore) DeleteExpired(_ context.Context, now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for key, rec := range s.items {
		if !rec.ExpiresAt.IsZero() && now.After(rec.ExpiresAt) {
			delete(s.items, key)
			n++
		}
	}
	return n, nil
}
