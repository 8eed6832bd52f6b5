package admin

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var membersCmd = &cobra.Command{
	Use:   "members",
	Short: "List membership applications",
	Long:  `Lists membership applications, newest first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, token, err := authedClient()
		if err != nil {
			return err
		}

		members, err := client.ListMembers(cmd.Context(), token, filterFlag)
		if err != nil {
			return fmt.Errorf("failed to list members: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tEMAIL\tINTEREST\tSTATUS\tSUBMITTED")
		for _, m := range members {
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\t%s\n",
				m.ID, m.FirstName, m.LastName, m.Email, deref(m.Interest), m.Status,
				m.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var donationsCmd = &cobra.Command{
	Use:   "donations",
	Short: "List recorded donations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, token, err := authedClient()
		if err != nil {
			return err
		}

		donations, err := client.ListDonations(cmd.Context(), token, filterFlag)
		if err != nil {
			return fmt.Errorf("failed to list donations: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDONOR\tEMAIL\tAMOUNT\tSTATUS\tRECEIVED")
		for _, d := range donations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%.2f %s\t%s\t%s\n",
				d.ID, d.DonorName, d.DonorEmail, d.Amount, d.Currency, d.Status,
				d.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "List event registrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, token, err := authedClient()
		if err != nil {
			return err
		}

		registrations, err := client.ListEventRegistrations(cmd.Context(), token, filterFlag)
		if err != nil {
			return fmt.Errorf("failed to list event registrations: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEVENT\tPARTICIPANT\tEMAIL\tGUESTS\tSTATUS")
		for _, r := range registrations {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
				r.ID, r.EventName, r.ParticipantName, r.ParticipantEmail, r.NumGuests, r.Status)
		}
		return w.Flush()
	},
}

var messagesCmd = &cobra.Command{
	Use:   "messages",
	Short: "List contact messages",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, token, err := authedClient()
		if err != nil {
			return err
		}

		messages, err := client.ListContactMessages(cmd.Context(), token, filterFlag)
		if err != nil {
			return fmt.Errorf("failed to list contact messages: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tFROM\tEMAIL\tSUBJECT\tSTATUS\tRECEIVED")
		for _, m := range messages {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				m.ID, m.Name, m.Email, deref(m.Subject), m.Status,
				m.CreatedAt.Format(time.RFC3339))
		}
		return w.Flush()
	},
}
