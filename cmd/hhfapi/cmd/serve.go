package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/helpinghands-foundation/hhf/internal/auth"
	"github.com/helpinghands-foundation/hhf/internal/db/bunx"
	"github.com/helpinghands-foundation/hhf/internal/repository"
	"github.com/helpinghands-foundation/hhf/internal/server"
	"github.com/helpinghands-foundation/hhf/internal/services/iam"
	"github.com/helpinghands-foundation/hhf/internal/services/validation"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the foundation API server",
	Long:  `Starts the HTTP server with the public form, identity, and admin endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Connect to database
		db, err := bunx.NewDB(cfg.DatabaseURL, cfg.MaxDBConnections)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer bunx.Close(db)

		log.Printf("Connected to database")

		// Initialize repositories
		identityRepo := repository.NewBunIdentityRepository(db)
		sessionRepo := repository.NewBunSessionRepository(db)
		roleRecordRepo := repository.NewBunRoleRecordRepository(db)
		memberRepo := repository.NewBunMemberRepository(db)
		donationRepo := repository.NewBunDonationRepository(db)
		eventRepo := repository.NewBunEventRegistrationRepository(db)
		messageRepo := repository.NewBunContactMessageRepository(db)

		iamService, err := iam.NewService(
			iam.ServiceDependencies{
				Identities:  identityRepo,
				Sessions:    sessionRepo,
				RoleRecords: roleRecordRepo,
			},
			iam.ServiceConfig{
				SessionDuration: cfg.SessionDuration,
				IDTokenSecret:   []byte(cfg.IDTokenSecret),
			},
		)
		if err != nil {
			return fmt.Errorf("create IAM service: %w", err)
		}

		enforcer, err := auth.InitEnforcer(db)
		if err != nil {
			return fmt.Errorf("configure casbin enforcer: %w", err)
		}
		// Authorization is read-only in the request path.
		enforcer.EnableAutoSave(false)

		validator, err := validation.NewFormValidator()
		if err != nil {
			return fmt.Errorf("compile form schemas: %w", err)
		}

		routerOpts := server.RouterOptions{
			IAM:           iamService,
			Enforcer:      enforcer,
			Validator:     validator,
			IDTokenSecret: []byte(cfg.IDTokenSecret),
			Members:       memberRepo,
			Donations:     donationRepo,
			Events:        eventRepo,
			Messages:      messageRepo,
			Identities:    identityRepo,
		}
		if len(cfg.AllowedOrigins) > 0 {
			corsCfg := server.DefaultCORSOptions()
			corsCfg.AllowedOrigins = cfg.AllowedOrigins
			routerOpts.CORSOptions = &corsCfg
		}
		r := server.NewRouter(routerOpts)

		// Create HTTP server
		srv := &http.Server{
			Addr:         cfg.ServerAddr,
			Handler:      r,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Start server in goroutine
		serverErrors := make(chan error, 1)
		go func() {
			log.Printf("Starting server on %s", cfg.ServerAddr)
			log.Printf("Server URL: %s", cfg.ServerURL)
			serverErrors <- srv.ListenAndServe()
		}()

		// Wait for interrupt signal
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			log.Printf("Received signal %v, shutting down gracefully", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				srv.Close()
				return fmt.Errorf("graceful shutdown failed: %w", err)
			}

			log.Printf("Server stopped")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
