// Package commands defines the leadctl command tree and flag bindings.
// Execution is delegated to the handlers package.
package commands

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultServerURL = "http://localhost:8080"

// Root returns the root command for the leadctl CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "leadctl",
		Short:         "Capture and inspect supply chain assessment leads",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(Wizard())
	cmd.AddCommand(Token())
	cmd.AddCommand(Leads())

	return cmd
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
