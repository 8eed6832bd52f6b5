package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/cmd/hhfctl/cmd/admin"
	"github.com/helpinghands-foundation/hhf/cmd/hhfctl/cmd/auth"
)

var serverURL string

var rootCmd = &cobra.Command{
	Use:   "hhfctl",
	Short: "Helping Hands Foundation CLI",
	Long: `hhfctl is the command-line client for the Helping Hands Foundation
platform. Use it to submit the public forms, manage your account, and, as
an admin, review the collected applications, donations, and messages.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if env := os.Getenv("HHF_SERVER_URL"); env != "" && !cmd.Flags().Changed("server") {
			serverURL = env
		}

		// Propagate flags to subcommands
		auth.SetServerURL(serverURL)
		admin.SetServerURL(serverURL)
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Foundation API server URL (env: HHF_SERVER_URL)")
	rootCmd.AddCommand(auth.AuthCmd)
	rootCmd.AddCommand(admin.AdminCmd)
}
