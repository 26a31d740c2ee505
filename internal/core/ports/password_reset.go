package ports

import (
	"context"
	"time"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// ResetTokenStore keeps hashed reset tokens until they are consumed or expire.
type ResetTokenStore interface {
	Save(ctx context.Context, tokenHash, userID string, ttl time.Duration) error
	// Consume removes the token and returns its user ID. A missing or expired
	// token yields domain.ErrInvalidResetToken.
	Consume(ctx context.Context, tokenHash string) (string, error)
}

// ResetNotifier delivers a plaintext reset token to the account owner.
type ResetNotifier interface {
	SendReset(ctx context.Context, to domain.Identity, token string) error
}

type PasswordResetService interface {
	RequestReset(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}
