package main

import (
	"CommandCenter/internal/api/config"
	"CommandCenter/internal/pkg/security"
	"CommandCenter/internal/pkg/util"
	"strings"

	"github.com/spf13/cobra"
)

type tokenRequest struct {
	Subject string `validate:"required"`
	Email   string `validate:"omitempty,email"`
	Role    string `validate:"required,oneof=ADMIN EDITOR USER"`
}

func newTokenCommand() *cobra.Command {
	var req tokenRequest

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development token signed with the configured secret",
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := mintToken(config.Cfg.Auth, req)
			if err != nil {
				return err
			}
			cmd.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Subject, "sub", "", "User ID (sub claim)")
	cmd.Flags().StringVar(&req.Email, "email", "", "User email")
	cmd.Flags().StringVar(&req.Role, "role", "ADMIN", "Role claim: ADMIN, EDITOR or USER")
	return cmd
}

func mintToken(cfg config.AuthConfig, req tokenRequest) (string, error) {
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))
	if err := util.ValidateDTO(req); err != nil {
		return "", err
	}
	security.Init(cfg.JWTSecret, cfg.Issuer, cfg.ExpireHours)
	return security.GenerateToken(req.Subject, req.Email, req.Role)
}
