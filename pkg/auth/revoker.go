package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const revokedKeyPrefix = "revoked:jti:"

// Revoker stores revoked token IDs until their natural expiry. Backed by
// Redis when available; a process-local map otherwise, which is enough for a
// single instance but does not survive restarts (the tokens it tracked have a
// bounded lifetime anyway).
type Revoker struct {
	rdb *redis.Client

	mu    sync.Mutex
	local map[string]time.Time
}

func NewRevoker(rdb *redis.Client) *Revoker {
	return &Revoker{
		rdb:   rdb,
		local: make(map[string]time.Time),
	}
}

// Revoke marks the token id as unusable until expiresAt.
func (r *Revoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil // already expired
	}

	if r.rdb != nil {
		if err := r.rdb.Set(ctx, revokedKeyPrefix+tokenID, "1", ttl).Err(); err == nil {
			return nil
		}
		// Redis failed; fall through to the local map so the logout still
		// takes effect on this instance.
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.local[tokenID] = expiresAt
	return nil
}

// IsRevoked reports whether the token id has been revoked.
func (r *Revoker) IsRevoked(ctx context.Context, tokenID string) bool {
	if r.rdb != nil {
		n, err := r.rdb.Exists(ctx, revokedKeyPrefix+tokenID).Result()
		if err == nil {
			return n > 0
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	exp, ok := r.local[tokenID]
	if !ok {
		return false
	}
	if time.Now().After(exp) {
		delete(r.local, tokenID)
		return false
	}
	return true
}
