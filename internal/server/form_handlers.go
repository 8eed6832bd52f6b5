package server

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/helpinghands-foundation/hhf/internal/repository"
	"github.com/helpinghands-foundation/hhf/internal/services/validation"
)

// maxFormBodyBytes bounds public form submissions.
const maxFormBodyBytes = 1 << 20

// readValidatedBody reads the request body, validates it against the named
// form schema, and unmarshals it into dst. Returns false after writing the
// error response when anything fails.
func readValidatedBody(w http.ResponseWriter, r *http.Request, validator *validation.FormValidator, form string, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, "failed to read request body")
		return false
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}

	if err := validator.Validate(form, payload); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return false
	}

	if err := json.Unmarshal(body, dst); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// HandleCreateMember accepts the public join form.
func HandleCreateMember(members repository.MemberRepository, validator *validation.FormValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var member models.Member
		if !readValidatedBody(w, r, validator, validation.FormMember, &member) {
			return
		}

		if err := members.Create(r.Context(), &member); err != nil {
			log.Printf("create member failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to save application")
			return
		}
		respondSuccess(w, http.StatusCreated, member)
	}
}

// HandleCreateDonation records a completed donation.
func HandleCreateDonation(donations repository.DonationRepository, validator *validation.FormValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var donation models.Donation
		if !readValidatedBody(w, r, validator, validation.FormDonation, &donation) {
			return
		}

		if err := donations.Create(r.Context(), &donation); err != nil {
			log.Printf("create donation failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to save donation")
			return
		}
		respondSuccess(w, http.StatusCreated, donation)
	}
}

// HandleCreateEventRegistration accepts an event sign-up.
func HandleCreateEventRegistration(events repository.EventRegistrationRepository, validator *validation.FormValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var registration models.EventRegistration
		if !readValidatedBody(w, r, validator, validation.FormEventRegistration, &registration) {
			return
		}

		if err := events.Create(r.Context(), &registration); err != nil {
			log.Printf("create event registration failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to save registration")
			return
		}
		respondSuccess(w, http.StatusCreated, registration)
	}
}

// HandleCreateContactMessage accepts the public contact form.
func HandleCreateContactMessage(messages repository.ContactMessageRepository, validator *validation.FormValidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var message models.ContactMessage
		if !readValidatedBody(w, r, validator, validation.FormContactMessage, &message) {
			return
		}

		if err := messages.Create(r.Context(), &message); err != nil {
			log.Printf("create contact message failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to save message")
			return
		}
		respondSuccess(w, http.StatusCreated, message)
	}
}

// StatsResponse carries the public landing-page counters.
type StatsResponse struct {
	Members int `json:"members"`
	Users   int `json:"users"`
}

// HandleStats returns public counters: approved members and registered
// identities.
func HandleStats(members repository.MemberRepository, identities repository.IdentityRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		memberCount, err := members.CountByStatus(ctx, models.MemberStatusApproved)
		if err != nil {
			log.Printf("stats member count failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to load stats")
			return
		}

		userCount, err := identities.Count(ctx)
		if err != nil {
			log.Printf("stats user count failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to load stats")
			return
		}

		respondJSON(w, http.StatusOK, StatsResponse{Members: memberCount, Users: userCount})
	}
}
