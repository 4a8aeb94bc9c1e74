package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/cmlabs-hris/hris-calendar-go/internal/domain/user"
	"github.com/cmlabs-hris/hris-calendar-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

// tokenCmd signs an access token with the API secret. Login lives outside
// this service, so this is how local clients get a bearer token.
func tokenCmd() *cobra.Command {
	var (
		userID string
		role   string
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue an access token for the calendar API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			r := user.Role(strings.ToUpper(role))
			if _, ok := user.RolePermissions[r]; !ok {
				return fmt.Errorf("unknown role %q", role)
			}

			token, expiresAt, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration).GenerateAccessToken(userID, r)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render("expires "+time.Unix(expiresAt, 0).In(cfg.Location()).Format(time.RFC3339)))
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user ID (required)")
	cmd.Flags().StringVar(&role, "role", string(user.RoleEmployee), "role (EMPLOYEE, ADMIN, SUPERADMIN)")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}
