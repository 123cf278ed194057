package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/alumnet/alumni-network/internal/core/ports"
)

const (
	defaultIdempotencyTTL = 24 * time.Hour

	// pendingMarker holds a reserved key until its contribution commits.
	pendingMarker = "pending"
)

// releaseScript deletes a key only while it still holds the pending marker,
// so a late Release never drops a completed key.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// IdempotencyStore maps a contributor's Idempotency-Key to the contribution
// it produced.
// Key format: idem:contribution:<user_id>:<key>
type IdempotencyStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ports.IdempotencyStore = (*IdempotencyStore)(nil)

func NewIdempotencyStore(client *redis.Client, ttl time.Duration) *IdempotencyStore {
	if ttl <= 0 {
		ttl = defaultIdempotencyTTL
	}
	return &IdempotencyStore{client: client, ttl: ttl}
}

// Reserve claims key with SETNX. A key that is already claimed yields the
// stored contribution id, or 0 while it is still pending. A key released
// between the SETNX and the GET is claimed again once.
func (s *IdempotencyStore) Reserve(ctx context.Context, userID uint, key string) (bool, uint, error) {
	k := idempotencyKey(userID, key)
	for attempt := 0; ; attempt++ {
		ok, err := s.client.SetNX(ctx, k, pendingMarker, s.ttl).Result()
		if err != nil {
			return false, 0, fmt.Errorf("idempotency reserve: %w", err)
		}
		if ok {
			return true, 0, nil
		}

		v, err := s.client.Get(ctx, k).Result()
		switch {
		case errors.Is(err, redis.Nil) && attempt == 0:
			continue
		case errors.Is(err, redis.Nil), err == nil && v == pendingMarker:
			// still in flight, or released again by a faster caller
			return false, 0, nil
		case err != nil:
			return false, 0, fmt.Errorf("idempotency reserve: %w", err)
		}
		id, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return false, 0, fmt.Errorf("idempotency reserve: corrupt value %q", v)
		}
		return false, uint(id), nil
	}
}

// Complete overwrites the pending marker with the contribution id.
func (s *IdempotencyStore) Complete(ctx context.Context, userID uint, key string, contributionID uint) error {
	err := s.client.Set(ctx, idempotencyKey(userID, key), strconv.FormatUint(uint64(contributionID), 10), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("idempotency complete: %w", err)
	}
	return nil
}

// Release frees a reservation whose contribution never committed.
func (s *IdempotencyStore) Release(ctx context.Context, userID uint, key string) error {
	if err := releaseScript.Run(ctx, s.client, []string{idempotencyKey(userID, key)}, pendingMarker).Err(); err != nil {
		return fmt.Errorf("idempotency release: %w", err)
	}
	return nil
}

func idempotencyKey(userID uint, key string) string {
	return fmt.Sprintf("idem:contribution:%d:%s", userID, key)
}
