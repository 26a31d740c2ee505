package domain

import (
	"errors"
	"fmt"
)

var (
	ErrDuplicateEmail        = errors.New("user with this email already exists")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrPendingApproval       = errors.New("your account is pending approval")
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	ErrValidation            = errors.New("validation failed")
	ErrUserNotFound          = errors.New("user not found")
	ErrNotFound              = errors.New("record not found")
	ErrForbidden             = errors.New("access forbidden")
	ErrInvalidResetToken     = errors.New("invalid or expired reset token")
)

// NewValidationError wraps ErrValidation with a field-level message.
func NewValidationError(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
