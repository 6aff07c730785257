// Package session implements the token-based session mechanism on top of
// the key-value cache. Tokens are opaque, expire after a fixed window and
// are revocable across all processes sharing the cache.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/dmarchuk/filesmanager/internal/apperr"
)

// TTL is the fixed validity window of a session. Expiration is not
// sliding: Resolve never refreshes it.
const TTL = 24 * time.Hour

const keyPrefix = "auth_"

// Cache is the key-value contract the store needs.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	SetTTL(ctx context.Context, key, value string, ttl time.Duration) error
	Del(ctx context.Context, key string) error
}

type Store struct {
	cache Cache
}

func NewStore(cache Cache) *Store {
	return &Store{cache: cache}
}

// Issue generates a fresh token mapped to userID for the next TTL window.
func (s *Store) Issue(ctx context.Context, userID string) (string, error) {
	token := uuid.NewString()
	if err := s.cache.SetTTL(ctx, keyPrefix+token, userID, TTL); err != nil {
		return "", apperr.E(apperr.ErrStorageFailure, "session store unavailable")
	}
	return token, nil
}

// Resolve returns the user owning token. An absent or expired mapping is
// indistinguishable from a token that was never issued.
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	userID, ok, err := s.cache.Get(ctx, keyPrefix+token)
	if err != nil {
		return "", apperr.E(apperr.ErrStorageFailure, "session store unavailable")
	}
	if !ok {
		return "", apperr.E(apperr.ErrNotFound, "Not found")
	}
	return userID, nil
}

// Revoke deletes the mapping. Revoking an absent token is a no-op.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.cache.Del(ctx, keyPrefix+token); err != nil {
		return apperr.E(apperr.ErrStorageFailure, "session store unavailable")
	}
	return nil
}
