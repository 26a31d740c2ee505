package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// ResetStore keeps password-reset token hashes until they are used or expire.
// Key format: reset:<sha256 hex of the token>
type ResetStore struct {
	client redis.UniversalClient
}

// NewResetStore creates a ResetStore wrapping the given Redis client.
func NewResetStore(client redis.UniversalClient) *ResetStore {
	return &ResetStore{client: client}
}

// Save records the hash with its owner. A second Save for the same hash
// replaces the first.
func (s *ResetStore) Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(tokenHash), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save reset token: %w", err)
	}
	return nil
}

// Consume atomically reads and deletes the hash, so a token works once.
func (s *ResetStore) Consume(ctx context.Context, tokenHash string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(tokenHash)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrInvalidResetToken
		}
		return "", fmt.Errorf("consume reset token: %w", err)
	}
	return userID, nil
}

func (s *ResetStore) key(tokenHash string) string {
	return "reset:" + tokenHash
}
