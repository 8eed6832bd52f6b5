package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	var payload any
	require.NoError(t, json.Unmarshal([]byte(raw), &payload))
	return payload
}

func TestFormValidator_Member(t *testing.T) {
	v, err := NewFormValidator()
	require.NoError(t, err)

	t.Run("valid application", func(t *testing.T) {
		payload := decode(t, `{
			"first_name": "Priya",
			"last_name": "Nair",
			"email": "priya@example.org",
			"phone": "+91 98765 43210",
			"interest": "volunteering"
		}`)
		assert.NoError(t, v.Validate(FormMember, payload))
	})

	t.Run("missing required field", func(t *testing.T) {
		payload := decode(t, `{"first_name": "Priya", "email": "priya@example.org"}`)
		err := v.Validate(FormMember, payload)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("malformed email", func(t *testing.T) {
		payload := decode(t, `{"first_name": "A", "last_name": "B", "email": "not-an-email"}`)
		assert.Error(t, v.Validate(FormMember, payload))
	})

	t.Run("unexpected field rejected", func(t *testing.T) {
		payload := decode(t, `{"first_name": "A", "last_name": "B", "email": "a@b.co", "status": "approved"}`)
		assert.Error(t, v.Validate(FormMember, payload))
	})
}

func TestFormValidator_Donation(t *testing.T) {
	v, err := NewFormValidator()
	require.NoError(t, err)

	t.Run("valid donation", func(t *testing.T) {
		payload := decode(t, `{"donor_name": "Kiran", "donor_email": "kiran@example.org", "amount": 500}`)
		assert.NoError(t, v.Validate(FormDonation, payload))
	})

	t.Run("zero amount rejected", func(t *testing.T) {
		payload := decode(t, `{"donor_name": "Kiran", "donor_email": "kiran@example.org", "amount": 0}`)
		assert.Error(t, v.Validate(FormDonation, payload))
	})

	t.Run("negative amount rejected", func(t *testing.T) {
		payload := decode(t, `{"donor_name": "Kiran", "donor_email": "kiran@example.org", "amount": -50}`)
		assert.Error(t, v.Validate(FormDonation, payload))
	})
}

func TestFormValidator_EventRegistration(t *testing.T) {
	v, err := NewFormValidator()
	require.NoError(t, err)

	t.Run("valid registration", func(t *testing.T) {
		payload := decode(t, `{
			"event_name": "Annual Health Camp",
			"participant_name": "Sana Iyer",
			"participant_email": "sana@example.org",
			"num_guests": 2
		}`)
		assert.NoError(t, v.Validate(FormEventRegistration, payload))
	})

	t.Run("fractional guest count rejected", func(t *testing.T) {
		payload := decode(t, `{
			"event_name": "Camp",
			"participant_name": "Sana",
			"participant_email": "sana@example.org",
			"num_guests": 1.5
		}`)
		assert.Error(t, v.Validate(FormEventRegistration, payload))
	})
}

func TestFormValidator_ContactMessage(t *testing.T) {
	v, err := NewFormValidator()
	require.NoError(t, err)

	t.Run("valid message", func(t *testing.T) {
		payload := decode(t, `{"name": "Vikram", "email": "vikram@example.org", "message": "How can I volunteer?"}`)
		assert.NoError(t, v.Validate(FormContactMessage, payload))
	})

	t.Run("empty message rejected", func(t *testing.T) {
		payload := decode(t, `{"name": "Vikram", "email": "vikram@example.org", "message": ""}`)
		assert.Error(t, v.Validate(FormContactMessage, payload))
	})
}

func TestFormValidator_UnknownForm(t *testing.T) {
	v, err := NewFormValidator()
	require.NoError(t, err)

	assert.Error(t, v.Validate("newsletter", map[string]any{}))
}
