package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUser_Resource(t *testing.T) {
	created := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	user := User{
		ID:           7,
		Email:        "jane.doe@example.com",
		FirstName:    "Jane",
		LastName:     "Doe",
		Birthday:     time.Date(1990, 4, 15, 0, 0, 0, 0, time.UTC),
		PasswordHash: "secret-hash",
		CreatedAt:    created,
		UpdatedAt:    created,
	}

	resource := user.Resource()

	assert.Equal(t, "1990-04-15", resource.Birthday)
	assert.Equal(t, "jane.doe@example.com", resource.Email)
	assert.Equal(t, "Jane", resource.Name.First)
	assert.Equal(t, "Doe", resource.Name.Last)
	assert.Equal(t, "Jane Doe", resource.Name.Full)
	assert.Equal(t, created, resource.CreatedAt)
}

// The resource shape must never leak the internal id or the password hash.
func TestUserResource_JSONOmitsCredentials(t *testing.T) {
	user := User{ID: 7, Email: "jane.doe@example.com", PasswordHash: "secret-hash"}

	data, err := json.Marshal(user.Resource())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.NotContains(t, decoded, "id")
	assert.NotContains(t, decoded, "password_hash")
	assert.NotContains(t, string(data), "secret-hash")
}

// Birthday rendering normalises to UTC so the stored date survives
// timezone-aware scanning.
func TestUser_Resource_BirthdayInUTC(t *testing.T) {
	loc := time.FixedZone("UTC+3", 3*60*60)
	user := User{Birthday: time.Date(1990, 4, 15, 3, 0, 0, 0, loc)}

	assert.Equal(t, "1990-04-15", user.Resource().Birthday)
}

func TestSession_Expired(t *testing.T) {
	now := time.Now()
	session := Session{ExpiresAt: now.Add(time.Hour)}

	assert.False(t, session.Expired(now))
	assert.True(t, session.Expired(now.Add(2*time.Hour)))
	assert.True(t, session.Expired(session.ExpiresAt), "a session expires exactly at its deadline")
}
