package denylist

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const denyKeyPrefix = "deny"

// ErrUnavailable is returned when the Redis backend cannot be reached.
var ErrUnavailable = errors.New("deny list redis unavailable")

// Store defines a public type used by authcore APIs.
//
// Store instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Store struct {
	redis  *redis.Client
	prefix string
}

// NewStore describes the newstore operation and its observable behavior.
//
// NewStore does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func NewStore(redisClient *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = "ac"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
	}
}

func (s *Store) key(tokenID string) string {
	return s.prefix + ":" + denyKeyPrefix + ":" + tokenID
}

// Revoke describes the revoke operation and its observable behavior.
//
// Revoke marks tokenID as revoked for ttl, after which the entry expires on
// its own. A non-positive ttl is a no-op: the token is already expired and
// needs no entry.
// Revoke may return an error when input validation, dependency calls, or security checks fail.
// Revoke does not mutate shared global state beyond the Redis entry and can be used concurrently.
func (s *Store) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if tokenID == "" {
		return errors.New("token id required")
	}
	if ttl <= 0 {
		return nil
	}

	if err := s.redis.Set(ctx, s.key(tokenID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return nil
}

// IsRevoked describes the isrevoked operation and its observable behavior.
//
// IsRevoked may return an error when input validation, dependency calls, or security checks fail.
// IsRevoked does not mutate shared global state and can be used concurrently when the receiver and dependencies are concurrently safe.
func (s *Store) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if tokenID == "" {
		return false, nil
	}

	n, err := s.redis.Exists(ctx, s.key(tokenID)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	return n > 0, nil
}
