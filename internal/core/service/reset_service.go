package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

const (
	DefaultResetTokenTTL = time.Hour
	resetTokenBytes      = 32
)

// PasswordResetService issues single-use reset tokens and applies new
// passwords. Outstanding session tokens are not revoked by a reset.
type PasswordResetService struct {
	creds  ports.CredentialStore
	store  ports.ResetTokenStore
	notify ports.ResetNotifier
	ttl    time.Duration
	log    zerolog.Logger
}

func NewPasswordResetService(
	creds ports.CredentialStore,
	store ports.ResetTokenStore,
	notify ports.ResetNotifier,
	ttl time.Duration,
	log zerolog.Logger,
) *PasswordResetService {
	if ttl <= 0 {
		ttl = DefaultResetTokenTTL
	}
	return &PasswordResetService{creds: creds, store: store, notify: notify, ttl: ttl, log: log}
}

// RequestReset succeeds for unknown emails without doing anything, so callers
// cannot probe which accounts exist.
func (s *PasswordResetService) RequestReset(ctx context.Context, email string) error {
	user, err := s.creds.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.log.Debug().Msg("reset requested for unknown email")
			return nil
		}
		return fmt.Errorf("request reset: %w", err)
	}

	token, hash, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("request reset: %w", err)
	}
	if err := s.store.Save(ctx, hash, user.ID, s.ttl); err != nil {
		return fmt.Errorf("request reset: store token: %w", err)
	}
	if err := s.notify.SendReset(ctx, user.Identity(), token); err != nil {
		return fmt.Errorf("request reset: notify: %w", err)
	}

	s.log.Info().Str("user_id", user.ID).Msg("password reset requested")
	return nil
}

// ResetPassword consumes the token and stores the new password. The password
// is checked before the token is consumed so a rejected password does not
// burn the token.
func (s *PasswordResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	if token == "" {
		return domain.ErrInvalidResetToken
	}
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	userID, err := s.store.Consume(ctx, hashResetToken(token))
	if err != nil {
		return err
	}
	if err := s.creds.UpdatePassword(ctx, userID, newPassword); err != nil {
		return fmt.Errorf("reset password: %w", err)
	}

	s.log.Info().Str("user_id", userID).Msg("password reset completed")
	return nil
}

// generateResetToken returns the URL-safe plaintext token and its hex SHA-256.
func generateResetToken() (token, hash string, err error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", "", fmt.Errorf("generate reset token: %w", err)
	}
	token = base64.RawURLEncoding.EncodeToString(b)
	return token, hashResetToken(token), nil
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
