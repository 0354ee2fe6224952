package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/labstack/gommon/log"
	"github.com/nrednav/cuid2"
	"uk.co.dudmesh.usermanager/internal/model"
)

var ErrorSessionNotFound = errors.New("session not found")

// Context is what a session token resolves to once the user has logged in.
type Context struct {
	UserID    model.UserID
	UserName  string
	ExpiresAt time.Time
}

type Store interface {
	Get(ctx context.Context, token string) (*Context, error)
	Set(ctx context.Context, token string, session *Context) error
	Destroy(ctx context.Context, token string) error
}

func NewToken() string {
	return cuid2.Generate()
}

type memoryStore struct {
	mu       sync.RWMutex
	sessions map[string]Context
	now      func() time.Time
}

func NewMemoryStore() *memoryStore {
	return &memoryStore{
		sessions: map[string]Context{},
		now:      time.Now,
	}
}

func (s *memoryStore) Get(ctx context.Context, token string) (*Context, error) {
	s.mu.RLock()
	session, ok := s.sessions[token]
	s.mu.RUnlock()
	if !ok || s.expired(&session) {
		return nil, ErrorSessionNotFound
	}
	return &session, nil
}

func (s *memoryStore) Set(ctx context.Context, token string, session *Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = *session
	return nil
}

func (s *memoryStore) Destroy(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

// Sweep drops expired sessions and reports how many were removed.
func (s *memoryStore) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	removed := 0
	for token, session := range s.sessions {
		if s.expired(&session) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed
}

// Run sweeps every interval until ctx is cancelled.
func (s *memoryStore) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.Sweep(); n > 0 {
				log.Infof("session: swept %d expired sessions", n)
			}
		}
	}
}

func (s *memoryStore) expired(session *Context) bool {
	return !session.ExpiresAt.IsZero() && !s.now().Before(session.ExpiresAt)
}
