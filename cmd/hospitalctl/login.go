package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/priyanshupatel84/ai-healthcare/internal/session"
)

func newLoginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and cache the session locally",
		Long: `Sign in with email and password. Missing values are prompted for.
The issued token is written to the session cache for later commands.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			p := newPrompter(cmd)

			var err error
			if email == "" {
				if email, err = p.line("Email"); err != nil {
					return err
				}
			}
			if password == "" {
				if password, err = p.secret("Password"); err != nil {
					return err
				}
			}

			cache, err := a.cache()
			if err != nil {
				return err
			}
			be, err := a.open(ctx)
			if err != nil {
				return err
			}

			res, err := be.Auth.Login(ctx, email, password)
			if err != nil {
				return err
			}
			id := res.User.Identity()
			if err := cache.Store(session.CachedSession{Token: res.Token, User: id}); err != nil {
				return err
			}

			a.log.Debug().Str("user_id", id.ID).Str("path", cache.Path()).Msg("session cached")
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s <%s> (%s)\n", id.Name, id.Email, id.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "account email")
	cmd.Flags().StringVar(&password, "password", "", "account password (prompted when omitted)")

	return cmd
}
