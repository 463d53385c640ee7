package commands

import (
	"github.com/spf13/cobra"

	"github.com/wolfman30/supplychain-leads/cmd/leadctl/handlers"
)

// Wizard returns the command that runs the three-step lead wizard in the
// terminal.
//
// Flags:
//
//	--server, -s: Base URL of the lead site (default $LEADCTL_SERVER or http://localhost:8080)
//	--dry-run: Print the lead instead of submitting it
//	--accessible: Use plain prompts for screen readers
func Wizard() *cobra.Command {
	var (
		serverURL  string
		dryRun     bool
		accessible bool
	)

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Request a free assessment from the terminal",
		Long: `Request a free automation assessment from the terminal.

Answers the same three questions as the website:

  - Your name
  - Your work email
  - What interests you (the automation offer or something else)

The lead is submitted to the site's /api/leads endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sink := handlers.NewSink(serverURL, dryRun, cmd.OutOrStdout())
			return handlers.RunWizard(cmd.Context(), sink, handlers.HuhPrompter{Accessible: accessible}, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&serverURL, "server", "s", envOr("LEADCTL_SERVER", defaultServerURL), "Base URL of the lead site")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the lead instead of submitting it")
	cmd.Flags().BoolVar(&accessible, "accessible", false, "Use plain prompts for screen readers")

	return cmd
}
