package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestRegister(t *testing.T) {
	db := setupDB(t)
	svc := NewUserService(db)

	user, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	assert.NotEmpty(t, user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)

	// stored hash verifies against the password and is not the plaintext
	var stored string
	require.NoError(t, db.QueryRow("SELECT password_hash FROM users WHERE email = ?", "asha@example.com").Scan(&stored))
	assert.NotEqual(t, "s3cret", stored)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored), []byte("s3cret")))
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc := NewUserService(setupDB(t))

	_, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Register("Other", "asha@example.com", "different")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	// a different email registers independently
	_, err = svc.Register("Ben", "ben@example.com", "s3cret")
	assert.NoError(t, err)
}

func TestAuthenticate(t *testing.T) {
	svc := NewUserService(setupDB(t))

	registered, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	user, err := svc.Authenticate("asha@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)
	assert.Equal(t, "Asha", user.Name)
	assert.Equal(t, "asha@example.com", user.Email)
	assert.Empty(t, user.PasswordHash)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	svc := NewUserService(setupDB(t))

	_, err := svc.Register("Asha", "asha@example.com", "s3cret")
	require.NoError(t, err)

	_, err = svc.Authenticate("asha@example.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownEmail(t *testing.T) {
	svc := NewUserService(setupDB(t))

	_, err := svc.Authenticate("nobody@example.com", "s3cret")
	assert.ErrorIs(t, err, ErrNotFound)
}
