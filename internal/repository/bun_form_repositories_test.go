package repository

import (
	"context"
	"testing"

	"github.com/helpinghands-foundation/hhf/internal/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBunDonationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunDonationRepository(db)
	ctx := context.Background()

	donation := &models.Donation{
		DonorName:  "Kiran Rao",
		DonorEmail: "kiran@example.org",
		Amount:     500,
	}
	require.NoError(t, repo.Create(ctx, donation))
	assert.NotEmpty(t, donation.ID)

	donations, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, "INR", donations[0].Currency)
	assert.Equal(t, "completed", donations[0].Status)
	assert.Equal(t, 500.0, donations[0].Amount)
}

func TestBunEventRegistrationRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunEventRegistrationRepository(db)
	ctx := context.Background()

	registration := &models.EventRegistration{
		EventName:        "Annual Health Camp",
		ParticipantName:  "Sana Iyer",
		ParticipantEmail: "sana@example.org",
		NumGuests:        2,
	}
	require.NoError(t, repo.Create(ctx, registration))
	assert.NotEmpty(t, registration.ID)

	registrations, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, registrations, 1)
	assert.Equal(t, "registered", registrations[0].Status)
	assert.Equal(t, 2, registrations[0].NumGuests)
}

func TestBunContactMessageRepository(t *testing.T) {
	db := setupTestDB(t)
	repo := NewBunContactMessageRepository(db)
	ctx := context.Background()

	message := &models.ContactMessage{
		Name:    "Vikram Mehta",
		Email:   "vikram@example.org",
		Message: "How can I volunteer?",
	}
	require.NoError(t, repo.Create(ctx, message))
	assert.NotEmpty(t, message.ID)

	messages, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, messages, 1)
	assert.Equal(t, "new", messages[0].Status)
}
