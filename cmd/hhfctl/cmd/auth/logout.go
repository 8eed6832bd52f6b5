package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and revoke the session",
	Long: `Deletes the local credentials and role cache, then asks the server to
revoke every session of the account. Local state is always cleared, even
when the server is unreachable.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		creds, err := sdk.NewFileCredentialStore()
		if err != nil {
			return fmt.Errorf("failed to create credential store: %w", err)
		}
		cache, err := sdk.NewRoleCache()
		if err != nil {
			return fmt.Errorf("failed to create role cache: %w", err)
		}

		stored, err := creds.LoadCredentials()
		if err != nil && !errors.Is(err, sdk.ErrNotLoggedIn) {
			return err
		}

		// Local artifacts go first; the server revoke must not be able to
		// block the sign-out.
		if err := cache.Clear(); err != nil {
			pterm.Warning.Printf("Failed to clear role cache: %v\n", err)
		}
		if err := creds.DeleteCredentials(); err != nil {
			return fmt.Errorf("failed to delete credentials: %w", err)
		}

		if stored != nil && stored.AccessToken != "" {
			client := sdk.NewClient(ServerURL)
			ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
			defer cancel()
			if err := client.SignOut(ctx, stored.AccessToken, true); err != nil {
				pterm.Warning.Printf("Server-side revoke failed: %v\n", err)
			}
		}

		pterm.Success.Println("Logged out successfully")
		return nil
	},
}
