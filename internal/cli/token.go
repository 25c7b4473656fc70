package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"auris-notifier/config"
	"auris-notifier/pkg/jwt"
)

func newTokenCmd() *cobra.Command {
	var (
		userID, email string
		ttl           time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an HS256 token accepted by the relay",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWT.SecretKey == "" {
				return errors.New("JWT_SECRET_KEY is required")
			}
			if cmd.Flags().Changed("ttl") {
				cfg.JWT.TTL = ttl
			}

			mgr := jwt.New(jwt.Config{
				SecretKey: cfg.JWT.SecretKey,
				TTL:       cfg.JWT.TTL,
				Issuer:    cfg.JWT.Issuer,
			})
			token, err := mgr.GenerateToken(userID, email)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&userID, "user", "", "user id (token subject)")
	cmd.Flags().StringVar(&email, "email", "", "optional email claim")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (JWT_TTL)")
	_ = cmd.MarkFlagRequired("user")
	return cmd
}
