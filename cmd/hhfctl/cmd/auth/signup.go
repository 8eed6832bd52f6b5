package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

var (
	signupNameFlag    string
	signupConfirmFlag string
)

var signupCmd = &cobra.Command{
	Use:   "signup",
	Short: "Create an account and sign in",
	Long:  `Registers a new account. New accounts start with the member role.`,
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

		session, err := store.SignUp(cmd.Context(), emailFlag, password, signupConfirmFlag, signupNameFlag)
		if err != nil {
			switch {
			case errors.Is(err, sdk.ErrPasswordTooShort):
				return fmt.Errorf("password must be at least %d characters", sdk.MinPasswordLength)
			case errors.Is(err, sdk.ErrPasswordMismatch):
				return fmt.Errorf("passwords do not match")
			case errors.Is(err, sdk.ErrEmailTaken):
				return fmt.Errorf("an account with this email already exists")
			}
			return err
		}

		pterm.Success.Printf("Account created for %s\n", session.User.Email)
		if session.User.Role != nil {
			pterm.Info.Printf("Role: %s\n", *session.User.Role)
		}
		pterm.Info.Printf("Session expires at %s\n", session.ExpiresAt.Format(time.RFC1123))
		return nil
	},
}

func init() {
	signupCmd.Flags().StringVar(&emailFlag, "email", "", "Email address")
	signupCmd.Flags().StringVar(&passwordFlag, "password", "", "Password (use --stdin to avoid shell history)")
	signupCmd.Flags().BoolVar(&stdinFlag, "stdin", false, "Read password from stdin instead of --password flag")
	signupCmd.Flags().StringVar(&signupNameFlag, "name", "", "Display name")
	signupCmd.Flags().StringVar(&signupConfirmFlag, "confirm", "", "Password confirmation")
}
