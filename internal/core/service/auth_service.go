package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

// AuthService implements registration and login on top of the credential
// store and token service.
type AuthService struct {
	creds  ports.CredentialStore
	tokens ports.TokenService
	log    zerolog.Logger
}

func NewAuthService(creds ports.CredentialStore, tokens ports.TokenService, log zerolog.Logger) *AuthService {
	return &AuthService{creds: creds, tokens: tokens, log: log}
}

// Register creates the account and issues a token for it. Unapproved doctors
// still receive a token; the approval gate applies at login.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*ports.AuthResult, error) {
	user, err := s.creds.CreateUser(ctx, in)
	if err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("register: %w", err)
	}
	return &ports.AuthResult{User: user, Token: token}, nil
}

// Login returns domain.ErrInvalidCredentials for both an unknown email and a
// wrong password, and both paths pay for a bcrypt compare. domain.ErrPendingApproval is only reported after the
// password has been verified.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.creds.FindUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.creds.VerifyPassword(nil, password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("login: %w", err)
	}

	if !s.creds.VerifyPassword(user, password) {
		s.log.Debug().Str("user_id", user.ID).Msg("password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.CanLogin() {
		s.log.Info().Str("user_id", user.ID).Msg("login blocked pending approval")
		return nil, domain.ErrPendingApproval
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	user.PasswordHash = ""
	return &ports.AuthResult{User: user, Token: token}, nil
}

// Profile returns the full account view for userID.
func (s *AuthService) Profile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.creds.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	p := user.Profile()
	return &p, nil
}
