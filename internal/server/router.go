package server

import (
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/helpinghands-foundation/hhf/internal/auth"
	hhfmiddleware "github.com/helpinghands-foundation/hhf/internal/middleware"
	"github.com/helpinghands-foundation/hhf/internal/repository"
	"github.com/helpinghands-foundation/hhf/internal/services/iam"
	"github.com/helpinghands-foundation/hhf/internal/services/validation"
)

// RouterOptions controls the construction of the HTTP router.
type RouterOptions struct {
	IAM       iam.Service
	Enforcer  casbin.IEnforcer
	Validator *validation.FormValidator

	// IDTokenSecret verifies the identity tokens attached to sessions. Must
	// match the secret the IAM service signs with.
	IDTokenSecret []byte

	Members    repository.MemberRepository
	Donations  repository.DonationRepository
	Events     repository.EventRegistrationRepository
	Messages   repository.ContactMessageRepository
	Identities repository.IdentityRepository

	CORSOptions   *cors.Options
	Middleware    []func(http.Handler) http.Handler
	HealthHandler http.HandlerFunc
}

// DefaultCORSOptions returns the shared development CORS policy.
func DefaultCORSOptions() cors.Options {
	return cors.Options{
		AllowedOrigins: []string{
			"http://localhost:5173",
			"http://127.0.0.1:5173",
		},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           300,
	}
}

func defaultHealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}

// NewRouter assembles a chi.Router with shared middleware, CORS policy, and
// all API handlers mounted. Public form POSTs are open; reads and mutations
// of collected data require an authenticated admin, enforced by Casbin.
func NewRouter(opts RouterOptions) chi.Router {
	r := chi.NewRouter()

	// Baseline middleware shared across entrypoints.
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	corsCfg := DefaultCORSOptions()
	if opts.CORSOptions != nil {
		corsCfg = *opts.CORSOptions
	}
	r.Use(cors.Handler(corsCfg))

	for _, mw := range opts.Middleware {
		if mw != nil {
			r.Use(mw)
		}
	}

	// Bearer authentication runs for every request; routes decide whether
	// an unauthenticated principal is acceptable.
	r.Use(hhfmiddleware.BearerAuth(opts.IAM))

	// Identity endpoints
	r.Post("/auth/signup", HandleSignUp(opts.IAM))
	r.Post("/auth/login", HandleLogin(opts.IAM))
	r.With(hhfmiddleware.RequireAuth).Post("/auth/logout", HandleLogout(opts.IAM))
	r.With(hhfmiddleware.RequireAuth).Get("/api/auth/whoami", HandleWhoAmI(opts.IAM, opts.IDTokenSecret))

	// Role lookup: the handler produces the 401 itself so the body shape
	// stays uniform for clients resolving roles.
	r.Get("/api/users/role", HandleUserRole())

	// Role mutation: admin-gated server-side.
	r.With(hhfmiddleware.RequirePermission(opts.Enforcer, auth.ObjectUsers, auth.ActionUpdate)).
		Patch("/api/users", HandleSetUserRole(opts.IAM))

	// Public form submissions
	r.Post("/api/members", HandleCreateMember(opts.Members, opts.Validator))
	r.Post("/api/donations", HandleCreateDonation(opts.Donations, opts.Validator))
	r.Post("/api/events", HandleCreateEventRegistration(opts.Events, opts.Validator))
	r.Post("/api/contact", HandleCreateContactMessage(opts.Messages, opts.Validator))

	// Admin reads and mutations of collected data
	r.With(hhfmiddleware.RequirePermission(opts.Enforcer, auth.ObjectMembers, auth.ActionRead)).
		Get("/api/members", HandleListMembers(opts.Members))
	r.With(hhfmiddleware.RequirePermission(opts.Enforcer, auth.ObjectMembers, auth.ActionUpdate)).
		Patch("/api/members", HandlePatchMember(opts.Members))
	r.With(hhfmiddleware.RequirePermission(opts.Enforcer, auth.ObjectMembers, auth.ActionDelete)).
		Delete("/api/members", HandleDeleteMember(opts.Members))
	r.With(hhfmiddleware.RequirePermission(opts.Enforcer, auth.ObjectDonations, auth.ActionRead)).
		Get("/api/donations", HandleListDonations(opts.Donations))
	r.With(hhfmiddleware.RequirePermission(opts.Enforcer, auth.ObjectEvents, auth.ActionRead)).
		Get("/api/events", HandleListEventRegistrations(opts.Events))
	r.With(hhfmiddleware.RequirePermission(opts.Enforcer, auth.ObjectMessages, auth.ActionRead)).
		Get("/api/contact", HandleListContactMessages(opts.Messages))

	// Public counters
	r.Get("/api/stats", HandleStats(opts.Members, opts.Identities))

	healthHandler := opts.HealthHandler
	if healthHandler == nil {
		healthHandler = defaultHealthHandler
	}
	r.Get("/health", healthHandler)

	return r
}
