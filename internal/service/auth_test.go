package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/recipe-catalog/backend/internal/service"
	"github.com/pageza/recipe-catalog/backend/internal/testhelpers"
	"github.com/pageza/recipe-catalog/backend/internal/types"
)

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	authSvc := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	user, err := authSvc.Register(ctx, "Cook@Example.com", "password123", "cook")
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", user.Email)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = authSvc.Register(ctx, "cook@example.com", "password123", "other")
	assert.ErrorIs(t, err, service.ErrUserExists)

	loggedIn, err := authSvc.Login(ctx, "cook@example.com", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = authSvc.Login(ctx, "cook@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = authSvc.Login(ctx, "nobody@example.com", "password123")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	authSvc := service.NewAuthService(db, "test-secret")
	admin := testhelpers.CreateUser(t, db, "admin", true)

	token, err := authSvc.TokenFor(admin)
	require.NoError(t, err)

	claims, err := authSvc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
	assert.True(t, claims.IsAdmin)
}

func TestValidateTokenRejects(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	authSvc := service.NewAuthService(db, "test-secret")
	other := service.NewAuthService(db, "other-secret")

	foreign, err := other.GenerateToken(&types.TokenClaims{UserID: uuid.New()})
	require.NoError(t, err)

	expired, err := authSvc.GenerateToken(&types.TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour))},
		UserID:           uuid.New(),
	})
	require.NoError(t, err)

	for name, token := range map[string]string{
		"garbage":      "not-a-token",
		"wrong secret": foreign,
		"expired":      expired,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := authSvc.ValidateToken(token)
			assert.ErrorIs(t, err, service.ErrInvalidToken)
		})
	}
}

func TestGetUserByID(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	authSvc := service.NewAuthService(db, "test-secret")
	user := testhelpers.CreateUser(t, db, "reader", false)

	got, err := authSvc.GetUserByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, "reader", got.Username)

	_, err = authSvc.GetUserByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, service.ErrUserNotFound)
}
