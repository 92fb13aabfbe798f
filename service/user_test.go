package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_PasswordMismatch(t *testing.T) {
	env := newTestEnv(t)
	_, err := env.users.Register(context.Background(), "testuser", "t@example.com", "pass123", "different")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	_, err := env.users.Register(ctx, "testuser", "t@example.com", "pass123", "pass123")
	require.NoError(t, err)
	_, err = env.users.Register(ctx, "testuser", "other@example.com", "pass123", "pass123")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestRegister_HashesPassword(t *testing.T) {
	env := newTestEnv(t)
	user, err := env.users.Register(context.Background(), "testuser", "t@example.com", "pass123", "pass123")
	require.NoError(t, err)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "pass123", user.PasswordHash)
}

func TestLogin_IssuesTokenAndSession(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "testuser")

	gotID, token, err := env.users.Login(ctx, "testuser", "pass123")
	require.NoError(t, err)
	assert.Equal(t, uid, gotID)
	assert.NotEmpty(t, token)

	session, err := env.sessions.GetSession(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, token, session.Token)
}

func TestLogin_BadCredentials(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.register(t, "testuser")

	_, _, err := env.users.Login(ctx, "testuser", "wrongpass")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, _, err = env.users.Login(ctx, "nobody", "pass123")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogout(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "testuser")
	_, token, err := env.users.Login(ctx, "testuser", "pass123")
	require.NoError(t, err)

	assert.ErrorIs(t, env.users.Logout(ctx, uid, "not-the-token"), ErrUnauthorized)
	require.NoError(t, env.users.Logout(ctx, uid, token))
	assert.ErrorIs(t, env.users.Logout(ctx, uid, token), ErrUnauthorized)
}

func TestGetUser(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	uid := env.register(t, "testuser")

	user, err := env.users.GetUser(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "testuser", user.Username)

	_, err = env.users.GetUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}
