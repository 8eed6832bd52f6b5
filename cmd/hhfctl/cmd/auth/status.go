package auth

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display authentication status",
	Long: `Shows the cached (optimistic) role, validates the stored session
against the server, and prints the freshly resolved role.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, cache, err := newSessionStore()
		if err != nil {
			return err
		}

		pterm.DefaultSection.Println("Authentication Status")

		if role, ok := cache.ReadInitial(); ok {
			pterm.Info.Printf("Cached role (optimistic): %s\n", role)
		}

		session, err := store.Initialize(cmd.Context())
		if err != nil {
			return err
		}
		if session == nil {
			pterm.Warning.Println("Not logged in")
			return nil
		}

		pterm.Success.Printf("Logged in as %s\n", session.User.Email)
		pterm.Info.Printf("Session expires at %s\n", session.ExpiresAt.Format(time.RFC1123))

		resolver := sdk.NewRoleResolver(sdk.NewClient(ServerURL))
		role := resolver.Resolve(cmd.Context(), session)
		if role == sdk.RoleUnknown {
			pterm.Info.Println("Resolved role: none")
			return nil
		}

		pterm.Info.Printf("Resolved role: %s\n", role)
		if err := cache.Write(string(role)); err != nil {
			pterm.Warning.Printf("Failed to update role cache: %v\n", err)
		}
		return nil
	},
}
