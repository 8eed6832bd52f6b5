package admin

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

var (
	memberIDFlag string
	statusFlag   string
	roleEmail    string
	roleValue    string
)

var setStatusCmd = &cobra.Command{
	Use:   "set-status",
	Short: "Update a membership application's status",
	Long:  `Sets a membership application to pending, approved, or rejected.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if memberIDFlag == "" {
			return fmt.Errorf("--id flag is required")
		}
		if statusFlag == "" {
			return fmt.Errorf("--status flag is required")
		}

		client, token, err := authedClient()
		if err != nil {
			return err
		}

		member, err := client.PatchMember(cmd.Context(), token, sdk.MemberPatch{
			ID:     memberIDFlag,
			Status: &statusFlag,
		})
		if err != nil {
			return fmt.Errorf("failed to update member: %w", err)
		}

		pterm.Success.Printf("Member %s (%s %s) is now %s\n",
			member.ID, member.FirstName, member.LastName, member.Status)
		return nil
	},
}

var deleteMemberCmd = &cobra.Command{
	Use:   "delete-member",
	Short: "Delete a membership application",
	RunE: func(cmd *cobra.Command, args []string) error {
		if memberIDFlag == "" {
			return fmt.Errorf("--id flag is required")
		}

		client, token, err := authedClient()
		if err != nil {
			return err
		}

		if err := client.DeleteMember(cmd.Context(), token, memberIDFlag); err != nil {
			return fmt.Errorf("failed to delete member: %w", err)
		}

		pterm.Success.Printf("Member %s deleted\n", memberIDFlag)
		return nil
	},
}

var setRoleCmd = &cobra.Command{
	Use:   "set-role",
	Short: "Change an account's role",
	Long: `Changes the role recorded for an account to member or admin. The change
is visible to the account on its next role resolution.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if roleEmail == "" {
			return fmt.Errorf("--email flag is required")
		}
		if roleValue == "" {
			return fmt.Errorf("--role flag is required")
		}

		client, token, err := authedClient()
		if err != nil {
			return err
		}

		if err := client.SetUserRole(cmd.Context(), token, roleEmail, roleValue); err != nil {
			return fmt.Errorf("failed to set role: %w", err)
		}

		pterm.Success.Printf("Role for %s set to %s\n", roleEmail, roleValue)
		return nil
	},
}

func init() {
	setStatusCmd.Flags().StringVar(&memberIDFlag, "id", "", "Membership application ID")
	setStatusCmd.Flags().StringVar(&statusFlag, "status", "", "New status (pending, approved, rejected)")

	deleteMemberCmd.Flags().StringVar(&memberIDFlag, "id", "", "Membership application ID")

	setRoleCmd.Flags().StringVar(&roleEmail, "email", "", "Email of the account")
	setRoleCmd.Flags().StringVar(&roleValue, "role", "", "New role (member or admin)")
}
