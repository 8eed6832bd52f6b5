package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Member is a membership application submitted through the public join form.
type Member struct {
	bun.BaseModel `bun:"table:members,alias:m"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	FirstName string    `bun:"first_name,notnull" json:"first_name"`
	LastName  string    `bun:"last_name,notnull" json:"last_name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Phone     *string   `bun:"phone" json:"phone,omitempty"`
	Interest  *string   `bun:"interest" json:"interest,omitempty"`
	Message   *string   `bun:"message" json:"message,omitempty"`
	Status    string    `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// Member statuses. New applications start as pending and are moved to
// approved or rejected from the admin dashboard.
const (
	MemberStatusPending  = "pending"
	MemberStatusApproved = "approved"
	MemberStatusRejected = "rejected"
)

// Donation records a completed donation submitted through the public form.
// Payment processing happens outside this system; we only record the result.
type Donation struct {
	bun.BaseModel `bun:"table:donations,alias:d"`

	ID            string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	MemberID      *string   `bun:"member_id,type:uuid" json:"member_id,omitempty"`
	DonorName     string    `bun:"donor_name,notnull" json:"donor_name"`
	DonorEmail    string    `bun:"donor_email,notnull" json:"donor_email"`
	Amount        float64   `bun:"amount,notnull" json:"amount"`
	Currency      string    `bun:"currency,notnull,default:'INR'" json:"currency"`
	Method        *string   `bun:"method" json:"method,omitempty"`
	TransactionID *string   `bun:"transaction_id" json:"transaction_id,omitempty"`
	Notes         *string   `bun:"notes" json:"notes,omitempty"`
	Status        string    `bun:"status,notnull,default:'completed'" json:"status"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// EventRegistration records a sign-up for a foundation event.
type EventRegistration struct {
	bun.BaseModel `bun:"table:event_registrations,alias:er"`

	ID               string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	MemberID         *string   `bun:"member_id,type:uuid" json:"member_id,omitempty"`
	EventName        string    `bun:"event_name,notnull" json:"event_name"`
	ParticipantName  string    `bun:"participant_name,notnull" json:"participant_name"`
	ParticipantEmail string    `bun:"participant_email,notnull" json:"participant_email"`
	ParticipantPhone *string   `bun:"participant_phone" json:"participant_phone,omitempty"`
	NumGuests        int       `bun:"num_guests,notnull,default:0" json:"num_guests"`
	Notes            *string   `bun:"notes" json:"notes,omitempty"`
	Status           string    `bun:"status,notnull,default:'registered'" json:"status"`
	CreatedAt        time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}

// ContactMessage is a message submitted through the public contact form.
type ContactMessage struct {
	bun.BaseModel `bun:"table:contact_messages,alias:cm"`

	ID        string    `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	Email     string    `bun:"email,notnull" json:"email"`
	Subject   *string   `bun:"subject" json:"subject,omitempty"`
	Message   string    `bun:"message,notnull" json:"message"`
	Status    string    `bun:"status,notnull,default:'new'" json:"status"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp" json:"created_at"`
}
