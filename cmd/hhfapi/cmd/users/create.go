package users

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net/mail"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpinghands-foundation/hhf/internal/config"
	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/helpinghands-foundation/hhf/internal/repository"
	"github.com/helpinghands-foundation/hhf/internal/services/iam"
)

var (
	emailFlag    string
	nameFlag     string
	passwordFlag string
	roleFlag     string
	stdinFlag    bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new identity",
	Long:  `Creates an identity with a role record. Use this to bootstrap the first admin.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Validate required flags
		if emailFlag == "" {
			return fmt.Errorf("--email flag is required")
		}

		if roleFlag != models.RoleMember && roleFlag != models.RoleAdmin {
			return fmt.Errorf("invalid role %q: valid roles are %s, %s", roleFlag, models.RoleMember, models.RoleAdmin)
		}

		password := passwordFlag
		if stdinFlag {
			// Read password from stdin
			scanner := bufio.NewScanner(os.Stdin)
			fmt.Print("Enter password: ")
			if scanner.Scan() {
				password = scanner.Text()
			}
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read password: %w", err)
			}
		}

		if password == "" {
			return fmt.Errorf("password is required (use --password or --stdin)")
		}
		if len(password) < iam.MinPasswordLength {
			return fmt.Errorf("password must be at least %d characters", iam.MinPasswordLength)
		}

		// Validate email format
		if _, err := mail.ParseAddress(emailFlag); err != nil {
			return fmt.Errorf("invalid email format: %w", err)
		}

		cfg, err := config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		ctx := context.Background()
		identityRepo := repository.NewBunIdentityRepository(db)
		roleRecordRepo := repository.NewBunRoleRecordRepository(db)

		// Check if email already exists
		existing, err := identityRepo.GetByEmail(ctx, emailFlag)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("failed to check email uniqueness: %w", err)
		}
		if existing != nil {
			return fmt.Errorf("identity with email %q already exists", emailFlag)
		}

		// Hash password with bcrypt
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("failed to hash password: %w", err)
		}

		// Operator-created accounts are trusted and verified up front.
		now := time.Now()
		identity := &models.Identity{
			Email:        emailFlag,
			Name:         nameFlag,
			PasswordHash: string(hashedPassword),
			VerifiedAt:   &now,
		}

		if err := identityRepo.Create(ctx, identity); err != nil {
			return fmt.Errorf("failed to create identity: %w", err)
		}

		record := &models.RoleRecord{
			IdentityID: identity.ID,
			Email:      identity.Email,
			Role:       roleFlag,
		}
		if err := roleRecordRepo.Create(ctx, record); err != nil {
			return fmt.Errorf("failed to create role record: %w", err)
		}

		fmt.Println("Identity created successfully!")
		fmt.Println("----------------------------------------")
		fmt.Printf("ID: %s\n", identity.ID)
		fmt.Printf("Email: %s\n", identity.Email)
		if identity.Name != "" {
			fmt.Printf("Name: %s\n", identity.Name)
		}
		fmt.Printf("Role: %s\n", record.Role)
		fmt.Println("----------------------------------------")

		return nil
	},
}
