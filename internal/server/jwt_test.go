package server

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Khushi740/job-tracker/internal/config"
)

func TestJWTService_RoundTrip(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	userID := uuid.New()

	token, err := svc.GenerateToken(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.GetUserID())
}

func TestJWTService_Rejections(t *testing.T) {
	svc := NewJWTService(&config.JWTConfig{Secret: "test-secret", ExpirationHours: 1})
	other := NewJWTService(&config.JWTConfig{Secret: "other-secret", ExpirationHours: 1})

	token, err := other.GenerateToken(uuid.New())
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty token", ""},
		{"garbage token", "not.a.jwt"},
		{"wrong secret", token},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateToken(tt.token)
			assert.Error(t, err)
		})
	}
}
