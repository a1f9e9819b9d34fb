package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"conventions/config"
	"conventions/internal/adapters/auth"
)

// newTokenCmd issues a development token signed with JWT_SECRET.
func newTokenCmd() *cobra.Command {
	var (
		subject     string
		permissions []string
		expiry      time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a signed bearer token for local testing",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.JWT.Secret == "" {
				return errors.New("JWT_SECRET is required")
			}
			issuer := auth.NewJWTIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
			tok, err := issuer.Issue(subject, permissions, expiry)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
			return err
		},
	}
	cmd.Flags().StringVar(&subject, "sub", "", "Token subject (user id)")
	cmd.Flags().StringSliceVar(&permissions, "permission", nil, "Permission claim; repeatable")
	cmd.Flags().DurationVar(&expiry, "expiry", time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
