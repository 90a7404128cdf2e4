// Command apitoken mints bearer tokens for the meeting lookup API.
package main

import (
	"fmt"
	"os"
	"time"

	"slack-meet-bot/core/constants"
	"slack-meet-bot/core/utils"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		subject string
		ttl     time.Duration
		scopes  []string
	)

	cmd := &cobra.Command{
		Use:          "apitoken",
		Short:        "Mint a bearer token for GET /api/v1/meetings/:id",
		Long:         "Signs a token with API_JWT_SECRET (read from the environment or .env) and prints it.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
				return err
			}
			v := viper.New()
			v.AutomaticEnv()

			secret := v.GetString("API_JWT_SECRET")
			if len(secret) < constants.MinJWTSecretLength {
				return fmt.Errorf("API_JWT_SECRET must be set and at least %d characters", constants.MinJWTSecretLength)
			}
			if subject == "" {
				return fmt.Errorf("--subject is required")
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}

			token, err := utils.GenerateToken(secret, subject, scopes, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringVar(&subject, "subject", "", "who the token is issued to")
	cmd.Flags().DurationVar(&ttl, "ttl", constants.DefaultTokenTTL, "token lifetime")
	cmd.Flags().StringSliceVar(&scopes, "scope", []string{constants.ScopeMeetingsRead}, "granted scopes")
	return cmd
}
