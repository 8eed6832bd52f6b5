package auth

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

var (
	emailFlag    string
	passwordFlag string
	stdinFlag    bool
)

func readPassword() (string, error) {
	password := passwordFlag
	if stdinFlag {
		scanner := bufio.NewScanner(os.Stdin)
		fmt.Print("Enter password: ")
		if scanner.Scan() {
			password = scanner.Text()
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
	}
	if password == "" {
		return "", fmt.Errorf("password is required (use --password or --stdin)")
	}
	return password, nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the foundation platform",
	RunE: func(cmd *cobra.Command, args []string) error {
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}
		password, err := readPassword()
		if err != nil {
			return err
		}

		store, _, err := newSessionStore()
		if err != nil {
			return err
		}

		session, err := store.SignIn(cmd.Context(), emailFlag, password)
		if err != nil {
			if errors.Is(err, sdk.ErrInvalidCredentials) {
				return fmt.Errorf("invalid email or password")
			}
			if errors.Is(err, sdk.ErrUnverified) {
				return fmt.Errorf("this account's email is not verified yet")
			}
			return err
		}

		pterm.Success.Printf("Signed in as %s\n", session.User.Email)
		pterm.Info.Printf("Session expires at %s\n", session.ExpiresAt.Format(time.RFC1123))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&emailFlag, "email", "", "Email address")
	loginCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (use --stdin to avoid shell history)")
	loginCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")
}
