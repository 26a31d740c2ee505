// Package notify delivers password-reset links to account owners.
package notify

import (
	"context"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

// LogNotifier writes the reset link to the log instead of sending mail. It is
// meant for development setups without an SMTP relay.
type LogNotifier struct {
	baseURL string
	log     zerolog.Logger
}

func NewLogNotifier(baseURL string, log zerolog.Logger) *LogNotifier {
	return &LogNotifier{baseURL: baseURL, log: log}
}

func (n *LogNotifier) SendReset(_ context.Context, to domain.Identity, token string) error {
	n.log.Debug().
		Str("user_id", to.ID).
		Str("email", to.Email).
		Str("link", n.Link(token)).
		Msg("password reset requested")
	return nil
}

// Link builds the reset URL the user follows.
func (n *LogNotifier) Link(token string) string {
	return n.baseURL + "/forgot-password?token=" + url.QueryEscape(token)
}
