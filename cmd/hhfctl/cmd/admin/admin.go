package admin

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

// ServerURL is the foundation API server URL, set by the root command
var ServerURL string

// AdminCmd is the parent command for admin operations
var AdminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Review and manage collected data",
	Long: `Admin commands for the collected applications, donations, event
registrations, and contact messages. All of them require an admin role;
the server enforces this regardless of what the CLI shows.`,
}

var filterFlag string

func init() {
	for _, cmd := range []*cobra.Command{membersCmd, donationsCmd, eventsCmd, messagesCmd} {
		cmd.Flags().StringVar(&filterFlag, "filter", "", `Filter expression, e.g. 'status == "pending"'`)
	}

	AdminCmd.AddCommand(membersCmd)
	AdminCmd.AddCommand(donationsCmd)
	AdminCmd.AddCommand(eventsCmd)
	AdminCmd.AddCommand(messagesCmd)
	AdminCmd.AddCommand(setStatusCmd)
	AdminCmd.AddCommand(deleteMemberCmd)
	AdminCmd.AddCommand(setRoleCmd)
}

// SetServerURL sets the server URL for all admin commands
func SetServerURL(url string) {
	ServerURL = url
}

// authedClient returns the API client and the stored bearer token.
func authedClient() (*sdk.Client, string, error) {
	creds, err := sdk.NewFileCredentialStore()
	if err != nil {
		return nil, "", fmt.Errorf("failed to create credential store: %w", err)
	}
	stored, err := creds.LoadCredentials()
	if err != nil {
		return nil, "", fmt.Errorf("not logged in: run 'hhfctl auth login' first")
	}
	if stored.IsExpired() {
		return nil, "", fmt.Errorf("session expired: run 'hhfctl auth login' again")
	}
	return sdk.NewClient(ServerURL), stored.AccessToken, nil
}

func deref(s *string) string {
	if s == nil || *s == "" {
		return "-"
	}
	return *s
}
