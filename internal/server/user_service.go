package server

import (
	"context"
	"fmt"

	"github.com/Khushi740/job-tracker/internal/config"
	"github.com/Khushi740/job-tracker/internal/store"
	"github.com/Khushi740/job-tracker/internal/types"
)

// UserService provides business logic for account registration and login.
type UserService struct {
	users          store.UserStore
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a UserService with the given dependencies.
func NewUserService(users store.UserStore, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		users:          users,
		passwordConfig: passwordConfig,
	}
}

// Register creates a new account with a hashed password.
func (s *UserService) Register(ctx context.Context, req *types.RegisterRequest) (*types.User, error) {
	existing, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if existing != nil {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

// Login authenticates an account. Absent users and wrong passwords return
// the same generic error.
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.User, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	if user == nil {
		return nil, &ErrInvalidCredentials{}
	}
	if !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user, nil
}
