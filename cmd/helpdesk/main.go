// @title Helpdesk API
// @version 1.0
// @description Support ticket management with comments, attachments, notifications and SLA tracking.
// @BasePath /api
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the access token.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helpdeskhq/helpdesk/internal/interfaces/cli/admin"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/cli/migrate"
	"github.com/helpdeskhq/helpdesk/internal/interfaces/cli/server"
	"github.com/helpdeskhq/helpdesk/internal/shared/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "helpdesk",
		Short:        "Helpdesk - support ticket management service",
		Long:         `Helpdesk serves the ticketing REST API and ships migration and administrative commands.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		admin.NewCommand(),
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintln(cmd.OutOrStdout(), version.String())
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
