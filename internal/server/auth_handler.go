package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Khushi740/job-tracker/internal/types"
)

// AuthHandler handles registration and login requests.
type AuthHandler struct {
	userService *UserService
	jwtService  *JWTService
}

// NewAuthHandler creates an AuthHandler with the given dependencies.
func NewAuthHandler(userService *UserService, jwtService *JWTService) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		jwtService:  jwtService,
	}
}

// Register handles account registration requests.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req types.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationError(err))
		return
	}

	user, err := h.userService.Register(r.Context(), &req)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	jsonResponse(w, http.StatusCreated, types.AuthResponse{User: user, Token: token})
}

// Login handles login requests.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		errorResponse(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := req.Validate(); err != nil {
		errorResponse(w, http.StatusBadRequest, extractValidationError(err))
		return
	}

	user, err := h.userService.Login(r.Context(), &req)
	if err != nil {
		errorResponse(w, HTTPStatus(err), err.Error())
		return
	}

	token, err := h.jwtService.GenerateToken(user.ID)
	if err != nil {
		errorResponse(w, http.StatusInternalServerError, "Failed to generate token")
		return
	}

	jsonResponse(w, http.StatusOK, types.AuthResponse{User: user, Token: token})
}

// extractValidationError renders the first violated field of a request.
func extractValidationError(err error) string {
	if validationErrors, ok := err.(validator.ValidationErrors); ok && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}
