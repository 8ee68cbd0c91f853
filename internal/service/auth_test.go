package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantryloop/backend/internal/service"
	"github.com/pantryloop/backend/internal/testhelpers"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	token, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	token, err = svc.Login("alice@example.com", "password123")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.NotEqual(t, claims.UserID.String(), "00000000-0000-0000-0000-000000000000")
}

func TestRegisterRejectsExistingEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Register("other alice", "alice@example.com", "different")
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = svc.Login("alice@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.Login("ghost@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	token, err := svc.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := service.NewAuthService(db, "test-secret")

	_, err := svc.ValidateToken("not.a.token")
	assert.Error(t, err)
}
