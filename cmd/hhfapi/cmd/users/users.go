package users

import "github.com/spf13/cobra"

// UsersCmd is the parent command for identity management operations
var UsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage identities",
	Long:  `Commands for managing identities directly from the server, bypassing the HTTP API.`,
}

func init() {
	createCmd.Flags().StringVar(&emailFlag, "email", "", "Email address of the identity")
	createCmd.Flags().StringVar(&nameFlag, "name", "", "Display name of the identity")
	createCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (use --stdin to avoid shell history)")
	createCmd.Flags().StringVar(&roleFlag, "role", "member", "Role to assign (member or admin)")
	createCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")

	UsersCmd.AddCommand(createCmd)
	UsersCmd.AddCommand(listCmd)
}
