package commands

import (
	"github.com/spf13/cobra"

	"github.com/wolfman30/supplychain-leads/cmd/leadctl/handlers"
)

// Leads returns the command group for stored leads.
func Leads() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "leads",
		Short: "Inspect stored leads",
	}
	cmd.AddCommand(leadsList())
	return cmd
}

func leadsList() *cobra.Command {
	var opts handlers.ListOptions

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List leads, newest first",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.ListLeads(cmd.Context(), cmd.OutOrStdout(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ServerURL, "server", "s", envOr("LEADCTL_SERVER", defaultServerURL), "Base URL of the lead site")
	cmd.Flags().StringVar(&opts.Token, "token", envOr("LEADCTL_TOKEN", ""), "Admin bearer token")
	cmd.Flags().StringVar(&opts.Secret, "secret", envOr("ADMIN_JWT_SECRET", ""), "Mint a short-lived token from this secret")
	cmd.Flags().StringVar(&opts.Interest, "interest", "", "Filter by interest (offer or other)")
	cmd.Flags().IntVar(&opts.Limit, "limit", 50, "Page size (1-100)")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "Rows to skip")

	return cmd
}
