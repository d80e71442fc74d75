package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/futig/puppy-picker/internal/entity"
	"github.com/futig/puppy-picker/internal/questionnaire"
	"github.com/patrickmn/go-cache"
)

// Session is one live questionnaire held in memory
type Session struct {
	ID        string
	Engine    *questionnaire.Engine
	CreatedAt time.Time
}

// SessionRepository defines the interface for in-memory session storage
type SessionRepository interface {
	SaveSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	DeleteSession(ctx context.Context, id string) error
}

var _ SessionRepository = &SessionCache{}

// SessionCache implements SessionRepository on a TTL cache.
// A session is closed when it expires, is deleted or is replaced.
type SessionCache struct {
	ttl   time.Duration
	items *cache.Cache
}

func NewSessionCache(ttl, cleanupInterval time.Duration) *SessionCache {
	items := cache.New(ttl, cleanupInterval)
	items.OnEvicted(func(_ string, v any) {
		if s, ok := v.(*Session); ok {
			s.Engine.Close()
		}
	})

	return &SessionCache{
		ttl:   ttl,
		items: items,
	}
}

func (r *SessionCache) SaveSession(_ context.Context, session *Session) error {
	if session == nil || session.ID == "" || session.Engine == nil {
		return fmt.Errorf("save session: %w", entity.ErrMissingField)
	}

	if prev, ok := r.lookup(session.ID); ok && prev.Engine != session.Engine {
		prev.Engine.Close()
	}

	r.items.Set(session.ID, session, cache.DefaultExpiration)
	return nil
}

// GetSession returns the session and extends its lifetime
func (r *SessionCache) GetSession(_ context.Context, id string) (*Session, error) {
	s, ok := r.lookup(id)
	if !ok {
		return nil, entity.ErrSessionNotFound
	}

	r.items.Set(id, s, cache.DefaultExpiration)
	return s, nil
}

func (r *SessionCache) DeleteSession(_ context.Context, id string) error {
	if _, ok := r.lookup(id); !ok {
		return entity.ErrSessionNotFound
	}

	r.items.Delete(id)
	return nil
}

// Count returns the number of sessions, including expired ones not yet cleaned up
func (r *SessionCache) Count() int {
	return r.items.ItemCount()
}

// Close tears down every stored session
func (r *SessionCache) Close() {
	for id := range r.items.Items() {
		r.items.Delete(id)
	}
}

func (r *SessionCache) lookup(id string) (*Session, bool) {
	v, ok := r.items.Get(id)
	if !ok {
		return nil, false
	}
	s, ok := v.(*Session)
	return s, ok
}
