package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrGet_ExistingUser(t *testing.T) {
	store := newTestStore(t)
	auth := NewAuthService("admin", "secret", "test-secret")
	svc := NewUserService(store.Users, auth)
	ctx := context.Background()

	created, err := svc.CreateOrGet(ctx, " alice ", nil)
	require.NoError(t, err)
	assert.Equal(t, "alice", created.User.Username)
	assert.NotEmpty(t, created.Token)

	_, err = svc.CreateOrGet(ctx, "alice", nil)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	other, err := svc.CreateOrGet(ctx, "bob", nil)
	require.NoError(t, err)
	bobClaims, err := auth.ValidateToken(other.Token)
	require.NoError(t, err)
	_, err = svc.CreateOrGet(ctx, "alice", bobClaims)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	aliceClaims, err := auth.ValidateToken(created.Token)
	require.NoError(t, err)
	again, err := svc.CreateOrGet(ctx, "alice", aliceClaims)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, again.User.ID)

	login, err := auth.Login("admin", "secret")
	require.NoError(t, err)
	adminClaims, err := auth.ValidateToken(login.Token)
	require.NoError(t, err)
	viaAdmin, err := svc.CreateOrGet(ctx, "alice", adminClaims)
	require.NoError(t, err)
	assert.Equal(t, created.User.ID, viaAdmin.User.ID)

	_, err = svc.CreateOrGet(ctx, "   ", nil)
	assert.ErrorIs(t, err, ErrInvalidUsername)
}
