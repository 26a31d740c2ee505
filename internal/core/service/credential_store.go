package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
	"github.com/priyanshupatel84/ai-healthcare/internal/core/ports"
)

const (
	minPasswordLength = 6
	maxPasswordBytes  = 72
)

// CredentialStore implements ports.CredentialStore and ports.DoctorApprover on
// top of a UserRepository. Plaintext passwords never leave this type.
type CredentialStore struct {
	repo     ports.UserRepository
	cost     int
	validate *validator.Validate
	log      zerolog.Logger

	dummyOnce sync.Once
	dummyHash []byte
}

func NewCredentialStore(repo ports.UserRepository, cost int, log zerolog.Logger) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{repo: repo, cost: cost, validate: validator.New(), log: log}
}

// CreateUser validates the registration, hashes the password and persists the
// user. Doctors start unapproved; every other role starts approved.
func (s *CredentialStore) CreateUser(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	role, err := domain.ParseRole(strings.TrimSpace(in.Role))
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.NewValidationError("name is required")
	}

	email := normalizeEmail(in.Email)
	if err := s.validate.Var(email, "required,email"); err != nil {
		return nil, domain.NewValidationError("email must be a valid email")
	}

	user := &domain.User{
		Name:     name,
		Email:    email,
		Role:     role,
		Approved: !role.RequiresApproval(),
	}
	if role == domain.RoleDoctor {
		user.Specialization = strings.TrimSpace(in.Specialization)
		user.LicenseNumber = strings.TrimSpace(in.LicenseNumber)
		if user.Specialization == "" {
			return nil, domain.NewValidationError("specialization is required for doctors")
		}
		if user.LicenseNumber == "" {
			return nil, domain.NewValidationError("licenseNumber is required for doctors")
		}
	}

	hash, err := s.hashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = hash

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if !errors.Is(err, domain.ErrDuplicateEmail) {
			s.log.Error().Err(err).Str("role", string(role)).Msg("failed to create user")
		}
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(created.Role)).Bool("approved", created.Approved).Msg("user created")
	return created, nil
}

// FindUserByEmail matches case-insensitively. It returns domain.ErrUserNotFound
// when no account exists.
func (s *CredentialStore) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

// FindUserByID returns the user without its password hash.
func (s *CredentialStore) FindUserByID(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// VerifyPassword reports whether candidate matches the stored hash. Without a
// user or hash it still runs a compare at the store's cost and returns false,
// so unknown accounts take as long as wrong passwords.
func (s *CredentialStore) VerifyPassword(user *domain.User, candidate string) bool {
	if user == nil || user.PasswordHash == "" {
		_ = bcrypt.CompareHashAndPassword(s.dummy(), []byte(candidate))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(candidate)) == nil
}

func (s *CredentialStore) dummy() []byte {
	s.dummyOnce.Do(func() {
		hash, err := bcrypt.GenerateFromPassword([]byte("no-such-account"), s.cost)
		if err != nil {
			s.log.Error().Err(err).Msg("generate dummy hash")
			return
		}
		s.dummyHash = hash
	})
	return s.dummyHash
}

// UpdatePassword replaces the stored hash for the given user.
func (s *CredentialStore) UpdatePassword(ctx context.Context, id, password string) error {
	hash, err := s.hashPassword(password)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Msg("password updated")
	return nil
}

func (s *CredentialStore) ListPendingDoctors(ctx context.Context) ([]domain.Profile, error) {
	users, err := s.repo.ListPendingDoctors(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending doctors: %w", err)
	}
	out := make([]domain.Profile, 0, len(users))
	for _, u := range users {
		out = append(out, u.Profile())
	}
	return out, nil
}

// ApproveDoctor flips the approval flag. Only doctor accounts are gated.
func (s *CredentialStore) ApproveDoctor(ctx context.Context, id string) (*domain.Profile, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user.Role != domain.RoleDoctor {
		return nil, domain.NewValidationError("only doctor accounts require approval")
	}
	if !user.Approved {
		if err := s.repo.SetApproved(ctx, id, true); err != nil {
			return nil, fmt.Errorf("approve doctor: %w", err)
		}
		user.Approved = true
		s.log.Info().Str("user_id", id).Msg("doctor approved")
	}
	profile := user.Profile()
	return &profile, nil
}

func (s *CredentialStore) hashPassword(password string) (string, error) {
	if err := validatePassword(password); err != nil {
		return "", err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// validatePassword applies the password policy. The upper bound is bcrypt's
// input limit.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return domain.NewValidationError(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if len(password) > maxPasswordBytes {
		return domain.NewValidationError(fmt.Sprintf("password must be at most %d bytes", maxPasswordBytes))
	}
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
