package server

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khushi740/job-tracker/internal/config"
	"github.com/Khushi740/job-tracker/internal/store"
	"github.com/Khushi740/job-tracker/internal/types"
)

func newUserService() *UserService {
	return NewUserService(store.NewMemory(), &config.PasswordConfig{BcryptCost: 10})
}

func TestUserService_Register(t *testing.T) {
	svc := newUserService()

	user, err := svc.Register(context.Background(), &types.RegisterRequest{
		Name: "Khushi", Email: "khushi@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "khushi@example.com", user.Email)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotEqual(t, "password123", user.PasswordHash)

	_, err = svc.Register(context.Background(), &types.RegisterRequest{
		Name: "Other", Email: "khushi@example.com", Password: "password456",
	})
	var dup *ErrEmailAlreadyExists
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "khushi@example.com", dup.Email)
}

func TestUserService_Login(t *testing.T) {
	svc := newUserService()

	_, err := svc.Register(context.Background(), &types.RegisterRequest{
		Name: "Khushi", Email: "khushi@example.com", Password: "password123",
	})
	require.NoError(t, err)

	user, err := svc.Login(context.Background(), &types.LoginRequest{
		Email: "khushi@example.com", Password: "password123",
	})
	require.NoError(t, err)
	assert.Equal(t, "khushi@example.com", user.Email)

	// Wrong password and unknown user fail identically
	_, wrongPw := svc.Login(context.Background(), &types.LoginRequest{
		Email: "khushi@example.com", Password: "wrong",
	})
	_, unknown := svc.Login(context.Background(), &types.LoginRequest{
		Email: "nobody@example.com", Password: "password123",
	})
	var invalid *ErrInvalidCredentials
	require.ErrorAs(t, wrongPw, &invalid)
	require.ErrorAs(t, unknown, &invalid)
	assert.Equal(t, wrongPw.Error(), unknown.Error())
}
