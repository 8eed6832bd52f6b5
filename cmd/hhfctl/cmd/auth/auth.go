package auth

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

// ServerURL is the foundation API server URL, set by the root command
var ServerURL string

// AuthCmd is the parent command for auth operations
var AuthCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage authentication",
	Long:  `Commands for managing authentication and login status.`,
}

func init() {
	AuthCmd.AddCommand(loginCmd)
	AuthCmd.AddCommand(signupCmd)
	AuthCmd.AddCommand(logoutCmd)
	AuthCmd.AddCommand(statusCmd)
}

// SetServerURL sets the server URL for all auth commands
func SetServerURL(url string) {
	ServerURL = url
}

// newSessionStore builds the SDK session store backed by the user's
// credentials file and role cache.
func newSessionStore() (*sdk.SessionStore, *sdk.RoleCache, error) {
	creds, err := sdk.NewFileCredentialStore()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create credential store: %w", err)
	}
	cache, err := sdk.NewRoleCache()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create role cache: %w", err)
	}
	client := sdk.NewClient(ServerURL)
	return sdk.NewSessionStore(client, creds, cache), cache, nil
}
