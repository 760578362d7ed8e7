package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService(NewMemoryUsers(), NewMemorySessions(), nil)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	u, err := svc.Register(ctx, Registration{
		Username: "jan",
		Email:    "jan@example.com",
		Password: "s3cret",
		City:     "Warsaw",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, []Role{RoleUser}, u.Roles)
	assert.NotEqual(t, "s3cret", u.PasswordHash, "password must be stored hashed")

	token, err := svc.Login(ctx, "jan", "s3cret")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, err := svc.UserByToken(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, u.ID, got.ID)
	assert.Equal(t, "Warsaw", got.City)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	reg := Registration{Username: "jan", Email: "jan@example.com", Password: "pw"}
	_, err := svc.Register(ctx, reg)
	require.NoError(t, err)

	reg.Username = "jan2"
	_, err = svc.Register(ctx, reg)
	require.ErrorIs(t, err, ErrUserExists)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, Registration{Username: "jan", Email: "jan@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "jan", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "pw")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogoutEndsSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestService()

	_, err := svc.Register(ctx, Registration{Username: "jan", Email: "jan@example.com", Password: "pw"})
	require.NoError(t, err)
	token, err := svc.Login(ctx, "jan", "pw")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, token))

	got, err := svc.UserByToken(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	ctx := context.Background()
	users := NewMemoryUsers()

	require.NoError(t, EnsureAdmin(ctx, users, nil))
	first, err := users.UserByUsername(ctx, "admin")
	require.NoError(t, err)
	require.NotNil(t, first)
	assert.True(t, first.IsAdmin())

	require.NoError(t, EnsureAdmin(ctx, users, nil))
	second, err := users.UserByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}
