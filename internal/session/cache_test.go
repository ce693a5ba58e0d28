package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fieldsafe/safecheck"
	"github.com/fieldsafe/safecheck/mock"
)

func TestCacheHitSkipsStore(t *testing.T) {
	calls := 0
	inner := &mock.SessionService{
		FindSessionByTokenFn: func(ctx context.Context, token string) (*safecheck.Session, error) {
			calls++
			return &safecheck.Session{
				ID:        uuid.New(),
				Token:     token,
				ExpiresAt: time.Now().Add(time.Hour),
			}, nil
		},
	}

	cache := NewCache(inner)
	ctx := context.Background()

	first, err := cache.FindSessionByToken(ctx, "tok")
	require.NoError(t, err)
	second, err := cache.FindSessionByToken(ctx, "tok")
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first.ID, second.ID)
}

func TestCacheDeleteInvalidates(t *testing.T) {
	calls := 0
	inner := &mock.SessionService{
		FindSessionByTokenFn: func(ctx context.Context, token string) (*safecheck.Session, error) {
			calls++
			return &safecheck.Session{ID: uuid.New(), Token: token, ExpiresAt: time.Now().Add(time.Hour)}, nil
		},
	}

	cache := NewCache(inner)
	ctx := context.Background()

	_, err := cache.FindSessionByToken(ctx, "tok")
	require.NoError(t, err)
	require.NoError(t, cache.DeleteSession(ctx, "tok"))

	_, err = cache.FindSessionByToken(ctx, "tok")
	require.NoError(t, err)
	assert.Equal(t, 2, calls, "delete should evict the cached token")
}

func TestCacheExpiredEntry(t *testing.T) {
	inner := &mock.SessionService{
		FindSessionByTokenFn: func(ctx context.Context, token string) (*safecheck.Session, error) {
			return &safecheck.Session{ID: uuid.New(), Token: token, ExpiresAt: time.Now().Add(-time.Minute)}, nil
		},
	}

	cache := NewCache(inner)

	// First lookup caches the already-expired session; both calls reject.
	_, err := cache.FindSessionByToken(context.Background(), "tok")
	require.NoError(t, err)

	_, err = cache.FindSessionByToken(context.Background(), "tok")
	assert.Equal(t, safecheck.EUNAUTHORIZED, safecheck.ErrorCode(err))
}
