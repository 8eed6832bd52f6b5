package users

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/internal/config"
	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/repository"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List identities and their roles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		records, err := repository.NewBunRoleRecordRepository(db).List(context.Background())
		if err != nil {
			return fmt.Errorf("failed to list role records: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "IDENTITY_ID\tEMAIL\tROLE")
		for _, record := range records {
			fmt.Fprintf(w, "%s\t%s\t%s\n", record.IdentityID, record.Email, record.Role)
		}
		return w.Flush()
	},
}
