package commands

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/wolfman30/supplychain-leads/cmd/leadctl/handlers"
)

// Token returns the command that mints an admin bearer token.
func Token() *cobra.Command {
	var (
		secret  string
		subject string
		ttl     time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint an admin token for the /admin endpoints",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.MintToken(cmd.OutOrStdout(), secret, subject, ttl)
		},
	}

	cmd.Flags().StringVar(&secret, "secret", envOr("ADMIN_JWT_SECRET", ""), "HMAC secret shared with the server")
	cmd.Flags().StringVar(&subject, "subject", "operator", "Subject claim of the token")
	cmd.Flags().DurationVar(&ttl, "ttl", time.Hour, "Token lifetime")

	return cmd
}
