package cmd

import (
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/pkg/sdk"
)

var (
	joinFirstName string
	joinLastName  string
	joinEmail     string
	joinPhone     string
	joinInterest  string
	joinMessage   string

	donorName   string
	donorEmail  string
	amountFlag  float64
	methodFlag  string
	txnFlag     string
	donateNotes string

	eventName     string
	partName      string
	partEmail     string
	partPhone     string
	guestsFlag    int
	registerNotes string

	contactName string
	contactMail string
	subjectFlag string
	messageFlag string
)

// optional returns nil for empty strings so empty flags stay out of the
// submitted payload (the schemas reject unknown or empty-typed fields).
func optional(value string) any {
	if value == "" {
		return nil
	}
	return value
}

func buildForm(fields map[string]any) map[string]any {
	form := make(map[string]any, len(fields))
	for key, value := range fields {
		if value == nil {
			continue
		}
		form[key] = value
	}
	return form
}

var joinCmd = &cobra.Command{
	Use:   "join",
	Short: "Apply for membership",
	Long:  `Submits a membership application. Applications start out pending review.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if joinFirstName == "" || joinLastName == "" || joinEmail == "" {
			return fmt.Errorf("--first-name, --last-name, and --email are required")
		}

		client := sdk.NewClient(serverURL)
		member, err := client.SubmitMember(cmd.Context(), buildForm(map[string]any{
			"first_name": joinFirstName,
			"last_name":  joinLastName,
			"email":      joinEmail,
			"phone":      optional(joinPhone),
			"interest":   optional(joinInterest),
			"message":    optional(joinMessage),
		}))
		if err != nil {
			return fmt.Errorf("failed to submit application: %w", err)
		}

		pterm.Success.Printf("Application submitted (id %s, status %s)\n", member.ID, member.Status)
		return nil
	},
}

var donateCmd = &cobra.Command{
	Use:   "donate",
	Short: "Record a donation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if donorName == "" || donorEmail == "" {
			return fmt.Errorf("--name and --email are required")
		}
		if amountFlag <= 0 {
			return fmt.Errorf("--amount must be positive")
		}

		client := sdk.NewClient(serverURL)
		donation, err := client.SubmitDonation(cmd.Context(), buildForm(map[string]any{
			"donor_name":     donorName,
			"donor_email":    donorEmail,
			"amount":         amountFlag,
			"method":         optional(methodFlag),
			"transaction_id": optional(txnFlag),
			"notes":          optional(donateNotes),
		}))
		if err != nil {
			return fmt.Errorf("failed to record donation: %w", err)
		}

		pterm.Success.Printf("Donation recorded: %.2f %s (id %s)\n",
			donation.Amount, donation.Currency, donation.ID)
		return nil
	},
}

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register for an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		if eventName == "" || partName == "" || partEmail == "" {
			return fmt.Errorf("--event, --name, and --email are required")
		}

		client := sdk.NewClient(serverURL)
		registration, err := client.SubmitEventRegistration(cmd.Context(), buildForm(map[string]any{
			"event_name":        eventName,
			"participant_name":  partName,
			"participant_email": partEmail,
			"participant_phone": optional(partPhone),
			"num_guests":        guestsFlag,
			"notes":             optional(registerNotes),
		}))
		if err != nil {
			return fmt.Errorf("failed to register: %w", err)
		}

		pterm.Success.Printf("Registered for %q (id %s)\n", registration.EventName, registration.ID)
		return nil
	},
}

var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Send a message to the foundation",
	RunE: func(cmd *cobra.Command, args []string) error {
		if contactName == "" || contactMail == "" || messageFlag == "" {
			return fmt.Errorf("--name, --email, and --message are required")
		}

		client := sdk.NewClient(serverURL)
		message, err := client.SubmitContactMessage(cmd.Context(), buildForm(map[string]any{
			"name":    contactName,
			"email":   contactMail,
			"subject": optional(subjectFlag),
			"message": messageFlag,
		}))
		if err != nil {
			return fmt.Errorf("failed to send message: %w", err)
		}

		pterm.Success.Printf("Message sent (id %s)\n", message.ID)
		return nil
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show public counters",
	RunE: func(cmd *cobra.Command, args []string) error {
		client := sdk.NewClient(serverURL)
		stats, err := client.Stats(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to fetch stats: %w", err)
		}

		pterm.Info.Printf("Approved members: %d\n", stats.Members)
		pterm.Info.Printf("Registered accounts: %d\n", stats.Users)
		return nil
	},
}

func init() {
	joinCmd.Flags().StringVar(&joinFirstName, "first-name", "", "First name")
	joinCmd.Flags().StringVar(&joinLastName, "last-name", "", "Last name")
	joinCmd.Flags().StringVar(&joinEmail, "email", "", "Email address")
	joinCmd.Flags().StringVar(&joinPhone, "phone", "", "Phone number")
	joinCmd.Flags().StringVar(&joinInterest, "interest", "", "Area of interest")
	joinCmd.Flags().StringVar(&joinMessage, "message", "", "Message to the foundation")

	donateCmd.Flags().StringVar(&donorName, "name", "", "Donor name")
	donateCmd.Flags().StringVar(&donorEmail, "email", "", "Donor email")
	donateCmd.Flags().Float64Var(&amountFlag, "amount", 0, "Donation amount")
	donateCmd.Flags().StringVar(&methodFlag, "method", "", "Payment method")
	donateCmd.Flags().StringVar(&txnFlag, "transaction-id", "", "External transaction reference")
	donateCmd.Flags().StringVar(&donateNotes, "notes", "", "Notes")

	registerCmd.Flags().StringVar(&eventName, "event", "", "Event name")
	registerCmd.Flags().StringVar(&partName, "name", "", "Participant name")
	registerCmd.Flags().StringVar(&partEmail, "email", "", "Participant email")
	registerCmd.Flags().StringVar(&partPhone, "phone", "", "Participant phone")
	registerCmd.Flags().IntVar(&guestsFlag, "guests", 0, "Number of accompanying guests")
	registerCmd.Flags().StringVar(&registerNotes, "notes", "", "Notes")

	contactCmd.Flags().StringVar(&contactName, "name", "", "Your name")
	contactCmd.Flags().StringVar(&contactMail, "email", "", "Your email")
	contactCmd.Flags().StringVar(&subjectFlag, "subject", "", "Subject")
	contactCmd.Flags().StringVar(&messageFlag, "message", "", "Message body")

	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(donateCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(contactCmd)
	rootCmd.AddCommand(statsCmd)
}
