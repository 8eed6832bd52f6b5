package sdk

import "time"

// User is the identity profile attached to a session.
type User struct {
	ID    string  `json:"id"`
	Email string  `json:"email"`
	Name  string  `json:"name"`
	Role  *string `json:"role"`
}

// Session is an authenticated session as seen by the client.
type Session struct {
	User        User
	AccessToken string
	IDToken     string
	ExpiresAt   time.Time
}

// Member is a membership application record.
type Member struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Email     string    `json:"email"`
	Phone     *string   `json:"phone,omitempty"`
	Interest  *string   `json:"interest,omitempty"`
	Message   *string   `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Donation is a recorded donation.
type Donation struct {
	ID            string    `json:"id"`
	DonorName     string    `json:"donor_name"`
	DonorEmail    string    `json:"donor_email"`
	Amount        float64   `json:"amount"`
	Currency      string    `json:"currency"`
	Method        *string   `json:"method,omitempty"`
	TransactionID *string   `json:"transaction_id,omitempty"`
	Notes         *string   `json:"notes,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// EventRegistration is a sign-up for a foundation event.
type EventRegistration struct {
	ID               string    `json:"id"`
	EventName        string    `json:"event_name"`
	ParticipantName  string    `json:"participant_name"`
	ParticipantEmail string    `json:"participant_email"`
	ParticipantPhone *string   `json:"participant_phone,omitempty"`
	NumGuests        int       `json:"num_guests"`
	Notes            *string   `json:"notes,omitempty"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// ContactMessage is a message submitted through the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Subject   *string   `json:"subject,omitempty"`
	Message   string    `json:"message"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
}

// Stats is the public counter snapshot.
type Stats struct {
	Members int `json:"members"`
	Users   int `json:"users"`
}

// Whoami describes the authenticated identity and its session.
type Whoami struct {
	User    User `json:"user"`
	Session struct {
		ID        string `json:"id"`
		ExpiresAt int64  `json:"expires_at"`
	} `json:"session"`
}

// MemberPatch carries the mutable membership application fields.
// Nil fields are left unchanged.
type MemberPatch struct {
	ID        string  `json:"id"`
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Email     *string `json:"email,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Interest  *string `json:"interest,omitempty"`
	Message   *string `json:"message,omitempty"`
	Status    *string `json:"status,omitempty"`
}
