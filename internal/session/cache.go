// Package session provides a caching decorator for the session store so
// authenticated requests do not hit the database on every call.
package session

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
)

// Compile-time interface check
var _ safecheck.SessionService = (*Cache)(nil)

// Cache wraps a SessionService with an in-memory token cache. Entries
// expire well before sessions do, so a stale hit only defers expiry
// detection by minutes; deletes invalidate immediately.
type Cache struct {
	inner safecheck.SessionService
	cache *gocache.Cache
}

// NewCache creates a session cache in front of the given service.
func NewCache(inner safecheck.SessionService) *Cache {
	return &Cache{
		inner: inner,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (c *Cache) CreateSession(ctx context.Context, userID uuid.UUID, duration time.Duration) (*safecheck.Session, error) {
	return c.inner.CreateSession(ctx, userID, duration)
}

func (c *Cache) FindSessionByToken(ctx context.Context, token string) (*safecheck.Session, error) {
	if cached, found := c.cache.Get(token); found {
		session := cached.(*safecheck.Session)
		if session.IsExpired() {
			c.cache.Delete(token)
			return nil, safecheck.Unauthorized("Session expired")
		}
		return session, nil
	}

	session, err := c.inner.FindSessionByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	c.cache.Set(token, session, gocache.DefaultExpiration)
	return session, nil
}

func (c *Cache) DeleteSession(ctx context.Context, token string) error {
	c.cache.Delete(token)
	return c.inner.DeleteSession(ctx, token)
}

func (c *Cache) DeleteExpiredSessions(ctx context.Context) (int, error) {
	return c.inner.DeleteExpiredSessions(ctx)
}
