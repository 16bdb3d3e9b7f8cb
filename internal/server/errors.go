package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Khushi740/job-tracker/internal/types"
)

// ErrEmailAlreadyExists indicates the email is already registered.
type ErrEmailAlreadyExists struct {
	Email string
}

func (e *ErrEmailAlreadyExists) Error() string {
	return fmt.Sprintf("email already registered: %s", e.Email)
}

// ErrInvalidCredentials indicates invalid login credentials.
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// HTTPStatus returns the HTTP status code for an error.
func HTTPStatus(err error) int {
	var verr *types.ValidationError
	if errors.As(err, &verr) {
		return http.StatusBadRequest
	}
	switch err.(type) {
	case *ErrEmailAlreadyExists:
		return http.StatusConflict
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
