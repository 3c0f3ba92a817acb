package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kaungsithu202/Tide-Focus/domain"
)

// PendingLoginStoreImpl implements domain.PendingLoginStore using Redis.
// Entries expire through Redis TTL; no explicit cleanup runs.
type PendingLoginStoreImpl struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// NewPendingLoginStore creates a new Redis-backed pending-2FA store
func NewPendingLoginStore(client *redis.Client, ttl time.Duration) domain.PendingLoginStore {
	return &PendingLoginStoreImpl{
		client: client,
		prefix: "2fa:login:",
		ttl:    ttl,
	}
}

// Put implements domain.PendingLoginStore
func (s *PendingLoginStoreImpl) Put(ctx context.Context, token string, userID uint) error {
	if err := s.client.Set(ctx, s.prefix+token, userID, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store pending login: %w", err)
	}
	return nil
}

// Get implements domain.PendingLoginStore. A missing or expired handle is
// indistinguishable from a forged one.
func (s *PendingLoginStoreImpl) Get(ctx context.Context, token string) (uint, error) {
	val, err := s.client.Get(ctx, s.prefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, domain.ErrTempTokenInvalid
		}
		return 0, fmt.Errorf("failed to read pending login: %w", err)
	}

	userID, err := strconv.ParseUint(val, 10, 64)
	if err != nil {
		return 0, domain.ErrTempTokenInvalid
	}
	return uint(userID), nil
}

// TTLSeconds implements domain.PendingLoginStore
func (s *PendingLoginStoreImpl) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
