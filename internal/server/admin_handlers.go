package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/hashicorp/go-bexpr"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/helpinghands-foundation/hhf/internal/repository"
	"github.com/helpinghands-foundation/hhf/internal/services/iam"
)

// filterRecords applies an optional bexpr filter expression to a list of
// records. Records are evaluated as their JSON representation so filter
// fields match the wire names (e.g. `status == "pending"`).
//
// An empty expression returns the input unchanged. An invalid expression
// returns an error for the handler to surface as a 400.
func filterRecords[T any](expr string, records []T) ([]T, error) {
	if expr == "" {
		return records, nil
	}

	evaluator, err := bexpr.CreateEvaluator(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid filter expression: %w", err)
	}

	filtered := make([]T, 0, len(records))
	for _, record := range records {
		raw, err := json.Marshal(record)
		if err != nil {
			return nil, fmt.Errorf("encode record: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal(raw, &fields); err != nil {
			return nil, fmt.Errorf("decode record: %w", err)
		}

		match, err := evaluator.Evaluate(fields)
		if err != nil {
			// Treat evaluation errors (e.g. unknown field) as non-matches
			continue
		}
		if match {
			filtered = append(filtered, record)
		}
	}
	return filtered, nil
}

func respondFilteredList[T any](w http.ResponseWriter, r *http.Request, records []T, err error) {
	if err != nil {
		log.Printf("admin list failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to load records")
		return
	}

	records, err = filterRecords(r.URL.Query().Get("filter"), records)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondData(w, records)
}

// HandleListMembers returns all membership applications, newest first.
func HandleListMembers(members repository.MemberRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := members.List(r.Context())
		respondFilteredList(w, r, records, err)
	}
}

// HandleListDonations returns all donations, newest first.
func HandleListDonations(donations repository.DonationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := donations.List(r.Context())
		respondFilteredList(w, r, records, err)
	}
}

// HandleListEventRegistrations returns all event registrations, newest first.
func HandleListEventRegistrations(events repository.EventRegistrationRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := events.List(r.Context())
		respondFilteredList(w, r, records, err)
	}
}

// HandleListContactMessages returns all contact messages, newest first.
func HandleListContactMessages(messages repository.ContactMessageRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := messages.List(r.Context())
		respondFilteredList(w, r, records, err)
	}
}

// MemberPatchRequest is a partial update for a membership application.
// Only non-nil fields are applied.
type MemberPatchRequest struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Interest  *string `json:"interest,omitempty"`
	Message   *string `json:"message,omitempty"`
	Status    *string `json:"status,omitempty"`
}

// HandlePatchMember applies a partial update to a membership application.
// Used by the admin dashboard to approve or reject applications.
func HandlePatchMember(members repository.MemberRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req MemberPatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.ID == "" {
			respondError(w, http.StatusBadRequest, "id is required")
			return
		}

		member, err := members.GetByID(ctx, req.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				respondError(w, http.StatusNotFound, "member not found")
				return
			}
			log.Printf("get member failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to load member")
			return
		}

		if req.FirstName != nil {
			member.FirstName = *req.FirstName
		}
		if req.LastName != nil {
			member.LastName = *req.LastName
		}
		if req.Email != nil {
			member.Email = *req.Email
		}
		if req.Phone != nil {
			member.Phone = req.Phone
		}
		if req.Interest != nil {
			member.Interest = req.Interest
		}
		if req.Message != nil {
			member.Message = req.Message
		}
		if req.Status != nil {
			switch *req.Status {
			case models.MemberStatusPending, models.MemberStatusApproved, models.MemberStatusRejected:
				member.Status = *req.Status
			default:
				respondError(w, http.StatusBadRequest, "invalid status")
				return
			}
		}

		if err := members.Update(ctx, member); err != nil {
			log.Printf("update member failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to update member")
			return
		}
		respondSuccess(w, http.StatusOK, member)
	}
}

// HandleDeleteMember removes a membership application by ?id=.
func HandleDeleteMember(members repository.MemberRepository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			respondError(w, http.StatusBadRequest, "id is required")
			return
		}

		if err := members.Delete(r.Context(), id); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				respondError(w, http.StatusNotFound, "member not found")
				return
			}
			log.Printf("delete member failed: %v", err)
			respondError(w, http.StatusInternalServerError, "failed to delete member")
			return
		}
		respondSuccess(w, http.StatusOK, nil)
	}
}

// UserRolePatchRequest changes an identity's role. The identity can be
// addressed by id or by email.
type UserRolePatchRequest struct {
	ID    string `json:"id,omitempty"`
	Email string `json:"email,omitempty"`
	Role  string `json:"role"`
}

// HandleSetUserRole updates an identity's role record.
//
// The route is admin-gated server-side; any client-side gating is advisory
// only. The mutation invalidates the server-side role cache entry, so the
// next resolution for that identity observes the new role.
func HandleSetUserRole(iamService iam.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var req UserRolePatchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		if req.Role != models.RoleMember && req.Role != models.RoleAdmin {
			respondError(w, http.StatusBadRequest, "role must be member or admin")
			return
		}

		identityID := req.ID
		if identityID == "" {
			if req.Email == "" {
				respondError(w, http.StatusBadRequest, "id or email is required")
				return
			}
			identity, err := iamService.GetIdentityByEmail(ctx, req.Email)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					respondError(w, http.StatusNotFound, "user not found")
					return
				}
				log.Printf("identity lookup failed: %v", err)
				respondError(w, http.StatusInternalServerError, "failed to look up user")
				return
			}
			identityID = identity.ID
		}

		if err := iamService.SetRole(ctx, identityID, req.Role); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				respondError(w, http.StatusNotFound, "user has no role record")
				return
			}
			log.Printf("set role failed for identity %s: %v", identityID, err)
			respondError(w, http.StatusInternalServerError, "failed to update role")
			return
		}

		respondSuccess(w, http.StatusOK, map[string]string{"id": identityID, "role": req.Role})
	}
}
