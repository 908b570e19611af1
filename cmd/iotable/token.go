package main

import (
	"fmt"
	"io"

	"github.com/KevinKickass/OpenIOTable/internal/auth"
	"github.com/spf13/cobra"
)

func newTokenCommand(out io.Writer, global *globalOptions) *cobra.Command {
	var subject, role string

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an API access token signed with the configured JWT secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := global.load()
			if err != nil {
				return err
			}

			token, expiresAt, err := auth.NewAuthService(cfg.Auth).IssueToken(subject, role)
			if err != nil {
				return err
			}

			fmt.Fprintln(out, token)
			fmt.Fprintf(cmd.ErrOrStderr(), "role=%s expires=%s\n", role, expiresAt.Format("2006-01-02 15:04:05"))
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "iotable-cli", "token subject")
	cmd.Flags().StringVar(&role, "role", auth.RoleEngineer, "viewer, engineer or admin")

	return cmd
}
