package service

import (
	"context"
	"infinity-park/internal/apperr"
	"infinity-park/internal/auth"
	"infinity-park/internal/config"
	"infinity-park/internal/dto"
	"infinity-park/internal/model"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(f *fixture, username, email, password string) (*model.User, error) {
	return f.auth.Register(context.Background(), dto.RegisterRequest{
		Username:        username,
		Email:           email,
		Password:        password,
		ConfirmPassword: password,
	})
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	user, err := register(f, "maria", "maria@example.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, model.RoleCommon, user.Role)
	assert.True(t, user.Active)
	assert.NotEqual(t, "secret1", user.PasswordHash)

	resp, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "maria", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.UserID)
	assert.Equal(t, "Common", resp.Role)

	sess, err := auth.NewTokens("test-secret", time.Hour).Parse(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, sess.UserID)

	var stored model.User
	require.NoError(t, f.db.First(&stored, user.ID).Error)
	require.NotNil(t, stored.LastLoginAt)
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	cases := map[string]dto.RegisterRequest{
		"missing username":  {Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret1"},
		"missing email":     {Username: "a", Password: "secret1", ConfirmPassword: "secret1"},
		"missing password":  {Username: "a", Email: "a@example.com"},
		"invalid email":     {Username: "a", Email: "not-an-email", Password: "secret1", ConfirmPassword: "secret1"},
		"short password":    {Username: "a", Email: "a@example.com", Password: "abc", ConfirmPassword: "abc"},
		"password mismatch": {Username: "a", Email: "a@example.com", Password: "secret1", ConfirmPassword: "secret2"},
	}

	for name, req := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.auth.Register(context.Background(), req)
			assert.True(t, apperr.IsValidation(err), "got %v", err)
		})
	}

	assert.Zero(t, f.count(t, &model.User{}))
}

func TestRegisterDuplicates(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	_, err := register(f, "joao", "joao@example.com", "secret1")
	require.NoError(t, err)

	_, err = register(f, "joao", "other@example.com", "secret1")
	require.True(t, apperr.IsConflict(err))
	assert.Equal(t, "username already taken", apperr.Message(err))

	_, err = register(f, "joao2", "joao@example.com", "secret1")
	require.True(t, apperr.IsConflict(err))
	assert.Equal(t, "email already registered", apperr.Message(err))
}

func TestLoginFailures(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	user, err := register(f, "ana", "ana@example.com", "secret1")
	require.NoError(t, err)

	_, err = f.auth.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "wrong"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	_, err = f.auth.Login(context.Background(), dto.LoginRequest{Username: "nobody", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)

	require.NoError(t, f.db.Model(user).Update("active", false).Error)
	_, err = f.auth.Login(context.Background(), dto.LoginRequest{Username: "ana", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t, fixtureOptions{})

	user, err := register(f, "lucas", "lucas@example.com", "secret1")
	require.NoError(t, err)
	sess := &auth.Session{UserID: user.ID, Role: user.Role}
	ctx := context.Background()

	err = f.auth.ChangePassword(ctx, nil, dto.ChangePasswordRequest{})
	assert.ErrorIs(t, err, apperr.ErrAuthenticationRequired)

	err = f.auth.ChangePassword(ctx, sess, dto.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	assert.True(t, apperr.IsValidation(err))

	err = f.auth.ChangePassword(ctx, sess, dto.ChangePasswordRequest{
		CurrentPassword: "secret1", NewPassword: "newpass1", ConfirmPassword: "newpass2",
	})
	assert.True(t, apperr.IsValidation(err))

	err = f.auth.ChangePassword(ctx, sess, dto.ChangePasswordRequest{
		CurrentPassword: "secret1", NewPassword: "newpass1", ConfirmPassword: "newpass1",
	})
	require.NoError(t, err)

	_, err = f.auth.Login(ctx, dto.LoginRequest{Username: "lucas", Password: "secret1"})
	assert.ErrorIs(t, err, apperr.ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, dto.LoginRequest{Username: "lucas", Password: "newpass1"})
	assert.NoError(t, err)
}

func TestEnsureAdminIsIdempotent(t *testing.T) {
	f := newFixture(t, fixtureOptions{})
	admin := config.Admin{Username: "admin", Password: "admin123", Email: "admin@infinitypark.com"}

	require.NoError(t, f.auth.EnsureAdmin(context.Background(), admin))
	require.NoError(t, f.auth.EnsureAdmin(context.Background(), admin))
	assert.Equal(t, int64(1), f.count(t, &model.User{}))

	resp, err := f.auth.Login(context.Background(), dto.LoginRequest{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, string(model.RoleAdministrator), resp.Role)
}
