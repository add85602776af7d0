package store

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/aidalabs/aida-bot/internal/lib/keylock"
	"github.com/aidalabs/aida-bot/internal/lib/sl"
	"github.com/aidalabs/aida-bot/types"
)

// Cache is the subset of the Redis client the user cache needs.
type Cache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

// CachedUserStore is a read-through cache over another UserStore. Writes go
// to the inner store first and invalidate the cached record; cache failures
// are logged and never surfaced, the inner store stays authoritative.
//
// A per-user lock orders the read-and-fill against invalidation: a fill
// racing a commit cannot re-cache the pre-commit record after the commit's
// delete has run.
type CachedUserStore struct {
	inner types.UserStore
	cache Cache
	ttl   time.Duration
	locks keylock.KeyLock
	log   *slog.Logger
}

func NewCachedUserStore(inner types.UserStore, cache Cache, ttlHours int, log *slog.Logger) *CachedUserStore {
	ttl := time.Duration(ttlHours) * time.Hour
	if ttlHours <= 0 {
		ttl = 24 * time.Hour
	}
	return &CachedUserStore{
		inner: inner,
		cache: cache,
		ttl:   ttl,
		log:   log,
	}
}

func userKey(userID int64) string {
	return fmt.Sprintf("user:%d", userID)
}

func (s *CachedUserStore) GetOrCreate(ctx context.Context, userID int64) (*types.User, error) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	key := userKey(userID)
	var cached types.User
	if err := s.cache.Get(ctx, key, &cached); err == nil {
		return &cached, nil
	} else if err != ErrCacheMiss {
		s.log.Warn("user cache read failed", slog.Int64("user_id", userID), sl.Err(err))
	}

	u, err := s.inner.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(ctx, key, u, s.ttl); err != nil {
		s.log.Warn("user cache write failed", slog.Int64("user_id", userID), sl.Err(err))
	}
	return u, nil
}

func (s *CachedUserStore) Update(ctx context.Context, userID int64, upd types.UserUpdate) error {
	if err := s.inner.Update(ctx, userID, upd); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

func (s *CachedUserStore) ApplyQuotaCommit(ctx context.Context, userID int64, c types.QuotaCommit) error {
	if err := s.inner.ApplyQuotaCommit(ctx, userID, c); err != nil {
		return err
	}
	s.invalidate(ctx, userID)
	return nil
}

// invalidate runs after the inner write and takes the same per-user lock
// as the fill, so the delete always lands after any fill that read the
// pre-write record.
func (s *CachedUserStore) invalidate(ctx context.Context, userID int64) {
	unlock := s.locks.Lock(userID)
	defer unlock()

	if err := s.cache.Del(ctx, userKey(userID)); err != nil {
		s.log.Warn("user cache invalidation failed", slog.Int64("user_id", userID), sl.Err(err))
	}
}
