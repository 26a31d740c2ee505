package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/priyanshupatel84/ai-healthcare/internal/core/domain"
)

func newApproveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "approve <email>",
		Short: "Approve a pending doctor account",
		Long: `Approve the doctor registered under the given email so they can sign in.
Requires a cached admin session.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			caller, err := a.whoami(ctx)
			if err != nil {
				return err
			}
			if caller.Role != domain.RoleAdmin {
				return fmt.Errorf("approve requires an admin session, signed in as %s", caller.Role)
			}

			be, err := a.open(ctx)
			if err != nil {
				return err
			}
			user, err := be.Users.FindUserByEmail(ctx, args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if user.Role != domain.RoleDoctor {
				return fmt.Errorf("%s is a %s account, not a doctor", user.Email, user.Role)
			}

			profile, err := be.Approver.ApproveDoctor(ctx, user.ID)
			if err != nil {
				return err
			}

			a.log.Info().Str("user_id", profile.ID).Str("approved_by", caller.ID).Msg("doctor approved")
			fmt.Fprintf(cmd.OutOrStdout(), "Approved %s <%s>\n", profile.Name, profile.Email)
			return nil
		},
	}
}
