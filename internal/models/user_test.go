package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/bazaarhub/internal/models"
)

func TestUserSerializationHidesSecrets(t *testing.T) {
	code := "123456"
	expires := time.Now().Add(10 * time.Minute)
	user := models.User{
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$secret-hash",
		OTP:          &code,
		OTPExpires:   &expires,
		Role:         models.RoleUser,
	}
	user.ID = uuid.New()

	raw, err := json.Marshal(&user)
	require.NoError(t, err)

	assert.NotContains(t, string(raw), "secret-hash")
	assert.NotContains(t, string(raw), "123456")
	assert.NotContains(t, string(raw), "password")
}

func TestUserPublicProjection(t *testing.T) {
	user := models.User{
		Name:         "Alice",
		Email:        "a@x.com",
		PasswordHash: "$2a$10$secret-hash",
		IsVerified:   true,
		Role:         models.RoleAdmin,
	}
	user.ID = uuid.New()

	public := user.Public()

	assert.Equal(t, user.ID, public.ID)
	assert.Equal(t, "Alice", public.Name)
	assert.Equal(t, "a@x.com", public.Email)
	assert.Equal(t, models.RoleAdmin, public.Role)
	assert.True(t, public.IsVerified)

	raw, err := json.Marshal(public)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret-hash")
}

func TestMarkVerifiedClearsOTP(t *testing.T) {
	code := "654321"
	expires := time.Now().Add(10 * time.Minute)
	user := models.User{OTP: &code, OTPExpires: &expires}

	user.MarkVerified()

	assert.True(t, user.IsVerified)
	assert.Nil(t, user.OTP)
	assert.Nil(t, user.OTPExpires)
}
